package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// AssignmentHandler serves assignments and submissions.
type AssignmentHandler struct {
	svc service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(svc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

// AssignmentRequest is the payload of a new assignment.
type AssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Club        string `json:"club" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`
}

// SubmissionRequest is a member's answer to an assignment.
type SubmissionRequest struct {
	Content  string `json:"content" validate:"required_without=FilePath"`
	FilePath string `json:"file_path"`
}

// GradeRequest grades a submission.
type GradeRequest struct {
	Grade    int    `json:"grade" validate:"gte=0,lte=100"`
	Feedback string `json:"feedback"`
}

// List godoc
// @Summary List visible assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only open assignments"
// @Success 200 {array} model.Assignment
// @Router /assignments [get]
func (h *AssignmentHandler) List(c echo.Context) error {
	items, err := h.svc.ListAssignments(c.Request().Context(), principal(c), queryBool(c, "active"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body AssignmentRequest true "Assignment"
// @Success 201 {object} model.Assignment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req AssignmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	due, err := parseTime("due_date", req.DueDate)
	if err != nil {
		return err
	}
	a, err := h.svc.CreateAssignment(c.Request().Context(), principal(c), service.AssignmentInput{
		Title:       req.Title,
		Description: req.Description,
		Club:        req.Club,
		DueDate:     due,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, a)
}

// Submit godoc
// @Summary Submit work
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param submission body SubmissionRequest true "Submission"
// @Success 201 {object} model.Submission
// @Failure 409 {object} errors.ErrorResponse
// @Router /assignments/{id}/submissions [post]
func (h *AssignmentHandler) Submit(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req SubmissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sub, err := h.svc.Submit(c.Request().Context(), principal(c), id, service.SubmissionInput{
		Content:  req.Content,
		FilePath: req.FilePath,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

// Submissions godoc
// @Summary List submissions of an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {array} model.Submission
// @Failure 403 {object} errors.ErrorResponse
// @Router /assignments/{id}/submissions [get]
func (h *AssignmentHandler) Submissions(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	subs, err := h.svc.ListSubmissions(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}

// MySubmissions godoc
// @Summary List own submissions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Submission
// @Router /submissions/mine [get]
func (h *AssignmentHandler) MySubmissions(c echo.Context) error {
	subs, err := h.svc.MySubmissions(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, subs)
}

// Grade godoc
// @Summary Grade a submission
// @Tags assignments
// @Accept json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param grade body GradeRequest true "Grade and feedback"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /submissions/{id}/grade [put]
func (h *AssignmentHandler) Grade(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req GradeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Grade(c.Request().Context(), principal(c), id, req.Grade, req.Feedback); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Close godoc
// @Summary Close an assignment
// @Tags assignments
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /assignments/{id}/close [post]
func (h *AssignmentHandler) Close(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Close(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
