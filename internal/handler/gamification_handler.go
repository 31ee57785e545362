package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// GamificationHandler serves points, rankings and badges.
type GamificationHandler struct {
	svc service.GamificationService
}

// NewGamificationHandler creates a new gamification handler.
func NewGamificationHandler(svc service.GamificationService) *GamificationHandler {
	return &GamificationHandler{svc: svc}
}

// BadgeRequest awards a badge.
type BadgeRequest struct {
	Username    string `json:"username" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func (h *GamificationHandler) subject(c echo.Context) string {
	if u := c.Param("username"); u != "" {
		return u
	}
	return principal(c).Username
}

// Points godoc
// @Summary Activity points and level of a user
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} model.UserPoints
// @Router /points/{username} [get]
func (h *GamificationHandler) Points(c echo.Context) error {
	points, err := h.svc.Points(c.Request().Context(), h.subject(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, points)
}

// Ranking godoc
// @Summary Ranking by points
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param club query string false "Club"
// @Param limit query int false "Top N" default(10)
// @Success 200 {array} model.UserPoints
// @Router /ranking [get]
func (h *GamificationHandler) Ranking(c echo.Context) error {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}
	ranking, err := h.svc.Ranking(c.Request().Context(), principal(c), c.QueryParam("club"), limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ranking)
}

// Badges godoc
// @Summary Badges of a user
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} model.Badge
// @Router /badges/{username} [get]
func (h *GamificationHandler) Badges(c echo.Context) error {
	badges, err := h.svc.Badges(c.Request().Context(), h.subject(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, badges)
}

// Award godoc
// @Summary Award a badge
// @Tags gamification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param badge body BadgeRequest true "Badge"
// @Success 201 {object} model.Badge
// @Failure 403 {object} errors.ErrorResponse
// @Router /badges [post]
func (h *GamificationHandler) Award(c echo.Context) error {
	var req BadgeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	badge, err := h.svc.AwardBadge(c.Request().Context(), principal(c), req.Username, req.Name, req.Icon, req.Description)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, badge)
}
