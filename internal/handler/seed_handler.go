package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/errors"
	"clubportal/internal/repository"
	"clubportal/internal/seed"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	clubs repository.ClubRepository
	users repository.UserRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(clubs repository.ClubRepository, users repository.UserRepository) *SeedHandler {
	return &SeedHandler{clubs: clubs, users: users}
}

// Seed godoc
// @Summary Create the default clubs and accounts
// @Description Existing clubs and accounts are left unchanged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} seed.Result
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	if !principal(c).IsTeacher() {
		return fail(errors.ErrForbidden)
	}
	res, err := seed.Run(c.Request().Context(), h.clubs, h.users)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, res)
}
