package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// VoteHandler serves club votes.
type VoteHandler struct {
	svc service.VoteService
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(svc service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// VoteRequest is the payload of a new vote.
type VoteRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Options       []string `json:"options" validate:"min=2,dive,required"`
	Club          string   `json:"club" validate:"required"`
	EndDate       string   `json:"end_date" validate:"required"`
	AllowMultiple bool     `json:"allow_multiple"`
}

// BallotRequest carries the selected options.
type BallotRequest struct {
	Selected []string `json:"selected" validate:"min=1"`
}

// List godoc
// @Summary List visible votes
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only open votes"
// @Success 200 {array} model.Vote
// @Router /votes [get]
func (h *VoteHandler) List(c echo.Context) error {
	votes, err := h.svc.ListVotes(c.Request().Context(), principal(c), queryBool(c, "active"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, votes)
}

// Create godoc
// @Summary Create vote
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vote body VoteRequest true "Vote"
// @Success 201 {object} model.Vote
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /votes [post]
func (h *VoteHandler) Create(c echo.Context) error {
	var req VoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	end, err := parseTime("end_date", req.EndDate)
	if err != nil {
		return err
	}
	vote, err := h.svc.CreateVote(c.Request().Context(), principal(c), service.VoteInput{
		Title:         req.Title,
		Description:   req.Description,
		Options:       req.Options,
		Club:          req.Club,
		EndDate:       end,
		AllowMultiple: req.AllowMultiple,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, vote)
}

// Submit godoc
// @Summary Cast a ballot
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vote ID"
// @Param ballot body BallotRequest true "Selected options"
// @Success 201 {object} model.VoteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /votes/{id}/responses [post]
func (h *VoteHandler) Submit(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req BallotRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	resp, err := h.svc.Submit(c.Request().Context(), principal(c), id, req.Selected)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// End godoc
// @Summary End vote early
// @Tags votes
// @Security BearerAuth
// @Param id path int true "Vote ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /votes/{id}/end [post]
func (h *VoteHandler) End(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.EndVote(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Results godoc
// @Summary Vote results
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vote ID"
// @Success 200 {object} model.VoteResult
// @Router /votes/{id}/results [get]
func (h *VoteHandler) Results(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.svc.Results(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, res)
}
