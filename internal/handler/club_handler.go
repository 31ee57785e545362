package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// ClubHandler serves club endpoints.
type ClubHandler struct {
	svc service.ClubService
}

// NewClubHandler creates a new club handler.
func NewClubHandler(svc service.ClubService) *ClubHandler {
	return &ClubHandler{svc: svc}
}

// ClubRequest is the payload for creating or updating a club.
type ClubRequest struct {
	Name        string `json:"name" validate:"required"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	President   string `json:"president"`
	MaxMembers  int    `json:"max_members" validate:"gte=0"`
	MeetLink    string `json:"meet_link" validate:"omitempty,url"`
}

func (r ClubRequest) input() service.ClubInput {
	return service.ClubInput{
		Name:        r.Name,
		Icon:        r.Icon,
		Description: r.Description,
		President:   r.President,
		MaxMembers:  r.MaxMembers,
		MeetLink:    r.MeetLink,
	}
}

// List godoc
// @Summary List clubs with member counts
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ClubSummary
// @Router /clubs [get]
func (h *ClubHandler) List(c echo.Context) error {
	clubs, err := h.svc.ListClubs(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, clubs)
}

// Get godoc
// @Summary Get club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} model.Club
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id} [get]
func (h *ClubHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	club, err := h.svc.GetClub(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, club)
}

// Create godoc
// @Summary Create club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club body ClubRequest true "Club"
// @Success 201 {object} model.Club
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clubs [post]
func (h *ClubHandler) Create(c echo.Context) error {
	var req ClubRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	club, err := h.svc.CreateClub(c.Request().Context(), principal(c), req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, club)
}

// Update godoc
// @Summary Update club
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Param club body ClubRequest true "Club"
// @Success 200 {object} model.Club
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id} [put]
func (h *ClubHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ClubRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	club, err := h.svc.UpdateClub(c.Request().Context(), principal(c), id, req.input())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, club)
}

// Delete godoc
// @Summary Delete club
// @Description Rejected while any user still belongs to the club.
// @Tags clubs
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clubs/{id} [delete]
func (h *ClubHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteClub(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Members godoc
// @Summary List club members
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /clubs/{id}/members [get]
func (h *ClubHandler) Members(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.svc.Members(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, users)
}

// MeetQRCode godoc
// @Summary Meeting link QR code
// @Tags clubs
// @Produce png
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Router /clubs/{id}/qr [get]
func (h *ClubHandler) MeetQRCode(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.svc.WriteMeetQRCode(c.Request().Context(), id, &buf); err != nil {
		return fail(err)
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
