package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// SearchHandler serves internal search.
type SearchHandler struct {
	svc service.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(svc service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search godoc
// @Summary Search posts, assignments, users, quizzes and votes
// @Description Matches are case insensitive. scope is a comma separated list and defaults to posts,assignments.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Text"
// @Param scope query string false "Scopes"
// @Param period query string false "today, week, month or quarter"
// @Param from query string false "First day"
// @Param to query string false "Last day"
// @Param author query string false "Author username"
// @Success 200 {array} model.SearchResult
// @Failure 400 {object} errors.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return err
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return err
	}
	var scopes []service.SearchScope
	for _, s := range strings.Split(c.QueryParam("scope"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, service.SearchScope(s))
		}
	}
	results, err := h.svc.Search(c.Request().Context(), principal(c), service.SearchQuery{
		Text:   c.QueryParam("q"),
		Scopes: scopes,
		Period: service.Period(c.QueryParam("period")),
		From:   from,
		To:     to,
		Author: c.QueryParam("author"),
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, results)
}
