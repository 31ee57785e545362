package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// PortfolioHandler serves student portfolios.
type PortfolioHandler struct {
	svc service.PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(svc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// PortfolioRequest is the payload of a new portfolio item.
type PortfolioRequest struct {
	Title        string `json:"title" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Technologies string `json:"technologies"`
	Status       string `json:"status"`
	ProjectURL   string `json:"project_url" validate:"omitempty,url"`
	Tags         string `json:"tags"`
	ImagePath    string `json:"image_path"`
}

// PortfolioStatusRequest changes an item's status.
type PortfolioStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOwn godoc
// @Summary List my portfolio
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category"
// @Success 200 {array} model.PortfolioItem
// @Router /portfolio [get]
func (h *PortfolioHandler) ListOwn(c echo.Context) error {
	items, err := h.svc.ListOwn(c.Request().Context(), principal(c), c.QueryParam("category"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Add godoc
// @Summary Add a portfolio item
// @Description The first item of a user earns the creator badge.
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body PortfolioRequest true "Item"
// @Success 201 {object} model.PortfolioItem
// @Failure 400 {object} errors.ErrorResponse
// @Router /portfolio [post]
func (h *PortfolioHandler) Add(c echo.Context) error {
	var req PortfolioRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.svc.Add(c.Request().Context(), principal(c), service.PortfolioInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Technologies: req.Technologies,
		Status:       req.Status,
		ProjectURL:   req.ProjectURL,
		Tags:         req.Tags,
		ImagePath:    req.ImagePath,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Featured godoc
// @Summary List public portfolio items
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category"
// @Success 200 {array} model.FeaturedPortfolioItem
// @Router /portfolio/featured [get]
func (h *PortfolioHandler) Featured(c echo.Context) error {
	items, err := h.svc.Featured(c.Request().Context(), principal(c), c.QueryParam("category"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Stats godoc
// @Summary Portfolio statistics
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PortfolioStats
// @Router /portfolio/stats [get]
func (h *PortfolioHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// SetStatus godoc
// @Summary Change the status of my portfolio item
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param status body PortfolioStatusRequest true "Status"
// @Success 200 {object} model.PortfolioItem
// @Failure 403 {object} errors.ErrorResponse
// @Router /portfolio/{id}/status [put]
func (h *PortfolioHandler) SetStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req PortfolioStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.svc.SetStatus(c.Request().Context(), principal(c), id, req.Status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a portfolio item
// @Tags portfolio
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
