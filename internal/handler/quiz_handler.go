package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/model"
	"clubportal/internal/service"
)

// QuizHandler serves quizzes.
type QuizHandler struct {
	svc service.QuizService
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(svc service.QuizService) *QuizHandler {
	return &QuizHandler{svc: svc}
}

// QuizRequest is the payload of a new quiz. A question's correct answer is
// the answer text or "선택지 N" for the N-th option.
type QuizRequest struct {
	Title           string           `json:"title" validate:"required"`
	Description     string           `json:"description"`
	Club            string           `json:"club" validate:"required"`
	Questions       []model.Question `json:"questions" validate:"min=1"`
	TimeLimit       int              `json:"time_limit" validate:"gte=0"`
	AttemptsAllowed int              `json:"attempts_allowed" validate:"gte=0"`
}

// AttemptRequest carries one answer per question.
type AttemptRequest struct {
	Answers   []string `json:"answers" validate:"min=1"`
	StartedAt string   `json:"started_at"`
}

// ActiveRequest toggles a quiz.
type ActiveRequest struct {
	Active bool `json:"active"`
}

// List godoc
// @Summary List visible quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active quizzes"
// @Success 200 {array} model.Quiz
// @Router /quizzes [get]
func (h *QuizHandler) List(c echo.Context) error {
	quizzes, err := h.svc.ListQuizzes(c.Request().Context(), principal(c), queryBool(c, "active"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, quizzes)
}

// Get godoc
// @Summary Get quiz
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} model.Quiz
// @Router /quizzes/{id} [get]
func (h *QuizHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	quiz, err := h.svc.GetQuiz(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Create godoc
// @Summary Create quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body QuizRequest true "Quiz"
// @Success 201 {object} model.Quiz
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) Create(c echo.Context) error {
	var req QuizRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	quiz, err := h.svc.CreateQuiz(c.Request().Context(), principal(c), service.QuizInput{
		Title:           req.Title,
		Description:     req.Description,
		Club:            req.Club,
		Questions:       req.Questions,
		TimeLimit:       req.TimeLimit,
		AttemptsAllowed: req.AttemptsAllowed,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, quiz)
}

// Take godoc
// @Summary Submit a quiz attempt
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param attempt body AttemptRequest true "Answers"
// @Success 201 {object} service.QuizResult
// @Failure 409 {object} errors.ErrorResponse
// @Router /quizzes/{id}/attempts [post]
func (h *QuizHandler) Take(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req AttemptRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	started, err := parseTime("started_at", req.StartedAt)
	if err != nil {
		return err
	}
	res, err := h.svc.Take(c.Request().Context(), principal(c), id, service.QuizAttempt{
		Answers:   req.Answers,
		StartedAt: started,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, res)
}

// SetActive godoc
// @Summary Activate or deactivate a quiz
// @Tags quizzes
// @Accept json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body ActiveRequest true "State"
// @Success 204
// @Router /quizzes/{id}/active [put]
func (h *QuizHandler) SetActive(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ActiveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.SetActive(c.Request().Context(), principal(c), id, req.Active); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete quiz and its responses
// @Tags quizzes
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 204
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteQuiz(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Results godoc
// @Summary Quiz results
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} service.QuizSummary
// @Failure 403 {object} errors.ErrorResponse
// @Router /quizzes/{id}/results [get]
func (h *QuizHandler) Results(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	summary, err := h.svc.Results(c.Request().Context(), principal(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// MyResponses godoc
// @Summary List own attempts
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.QuizResponse
// @Router /quiz-responses/mine [get]
func (h *QuizHandler) MyResponses(c echo.Context) error {
	responses, err := h.svc.MyResponses(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, responses)
}
