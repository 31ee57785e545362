package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

// ScheduleHandler serves the club calendar.
type ScheduleHandler struct {
	svc service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(svc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// ScheduleRequest is the payload of a calendar entry.
type ScheduleRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Club        string `json:"club"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Recurrence  string `json:"recurrence" validate:"omitempty,oneof=daily weekly monthly"`
	Repeat      int    `json:"repeat" validate:"gte=0"`
}

func (r ScheduleRequest) input() (service.ScheduleInput, error) {
	date, err := parseTime("date", r.Date)
	if err != nil {
		return service.ScheduleInput{}, err
	}
	return service.ScheduleInput{
		Title:       r.Title,
		Description: r.Description,
		Club:        r.Club,
		Date:        date,
		Time:        r.Time,
		Location:    r.Location,
		Recurrence:  service.Recurrence(r.Recurrence),
		Repeat:      r.Repeat,
	}, nil
}

// List godoc
// @Summary List calendar entries
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param club query string false "Club"
// @Param from query string false "First day"
// @Param to query string false "Last day"
// @Success 200 {array} model.ScheduleEntry
// @Router /schedule [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return err
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return err
	}
	entries, err := h.svc.List(c.Request().Context(), principal(c), c.QueryParam("club"), from, to)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// Create godoc
// @Summary Create calendar entries
// @Description With a recurrence, repeat further entries follow the first.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body ScheduleRequest true "Entry"
// @Success 201 {array} model.ScheduleEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /schedule [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req ScheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	entries, err := h.svc.Create(c.Request().Context(), principal(c), in)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, entries)
}

// Update godoc
// @Summary Update a calendar entry
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param entry body ScheduleRequest true "Entry"
// @Success 200 {object} model.ScheduleEntry
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ScheduleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	entry, err := h.svc.Update(c.Request().Context(), principal(c), id, in)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete a calendar entry
// @Tags schedule
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 204
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
