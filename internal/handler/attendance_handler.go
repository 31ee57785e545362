package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/model"
	"clubportal/internal/service"
)

// AttendanceHandler serves attendance rosters and statistics.
type AttendanceHandler struct {
	svc service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// RosterEntry is one member's status. Status accepts 출석/지각/결석/조퇴 or
// present/late/absent/early_leave.
type RosterEntry struct {
	Username string `json:"username" validate:"required"`
	Status   string `json:"status" validate:"required"`
	Note     string `json:"note"`
}

// RosterRequest records a club's attendance for one day.
type RosterRequest struct {
	Club    string        `json:"club" validate:"required"`
	Date    string        `json:"date" validate:"required"`
	Entries []RosterEntry `json:"entries" validate:"min=1,dive"`
}

// CheckInRequest is a member's own check-in.
type CheckInRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func parseStatus(s string) (model.AttendanceStatus, error) {
	status, ok := model.ParseAttendanceStatus(s)
	if !ok {
		return "", badRequest("unknown attendance status " + s)
	}
	return status, nil
}

// RecordRoster godoc
// @Summary Record a roster
// @Description Existing rows for the same member, club and date are replaced.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roster body RosterRequest true "Roster"
// @Success 200 {object} CountResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /attendance/roster [post]
func (h *AttendanceHandler) RecordRoster(c echo.Context) error {
	var req RosterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	date, err := parseTime("date", req.Date)
	if err != nil {
		return err
	}
	entries := make([]service.AttendanceEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		status, err := parseStatus(e.Status)
		if err != nil {
			return err
		}
		entries = append(entries, service.AttendanceEntry{Username: e.Username, Status: status, Note: e.Note})
	}
	n, err := h.svc.RecordRoster(c.Request().Context(), principal(c), req.Club, date, entries)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// CheckIn godoc
// @Summary Check in for today
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckInRequest false "Status, present when empty"
// @Success 201 {object} model.Attendance
// @Failure 409 {object} errors.ErrorResponse
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	var req CheckInRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status := model.AttendancePresent
	if req.Status != "" {
		var err error
		if status, err = parseStatus(req.Status); err != nil {
			return err
		}
	}
	rec, err := h.svc.CheckIn(c.Request().Context(), principal(c), status, req.Note)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// List godoc
// @Summary List attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param club query string false "Club"
// @Param from query string false "First day"
// @Param to query string false "Last day"
// @Success 200 {array} model.Attendance
// @Router /attendance [get]
func (h *AttendanceHandler) List(c echo.Context) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return err
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return err
	}
	records, err := h.svc.List(c.Request().Context(), principal(c), c.QueryParam("club"), from, to)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, records)
}

// UserStats godoc
// @Summary Attendance statistics of a user
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} service.AttendanceStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /attendance/stats/users/{username} [get]
func (h *AttendanceHandler) UserStats(c echo.Context) error {
	stats, err := h.svc.UserStats(c.Request().Context(), principal(c), c.Param("username"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ClubStats godoc
// @Summary Attendance statistics of a club, best rate first
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param club path string true "Club"
// @Success 200 {array} service.AttendanceStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /attendance/stats/clubs/{club} [get]
func (h *AttendanceHandler) ClubStats(c echo.Context) error {
	stats, err := h.svc.ClubStats(c.Request().Context(), principal(c), c.Param("club"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}
