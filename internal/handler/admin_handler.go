package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/activity"
	"clubportal/internal/repository"
	"clubportal/internal/service"
)

// AdminHandler serves the teacher dashboard and the audit log.
type AdminHandler struct {
	svc service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Dashboard godoc
// @Summary Portal-wide counts and warnings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, d)
}

// Warnings godoc
// @Summary Data consistency warnings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.Warning
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/warnings [get]
func (h *AdminHandler) Warnings(c echo.Context) error {
	w, err := h.svc.Warnings(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, w)
}

// Logs godoc
// @Summary Query the activity log, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param username query string false "Username"
// @Param type query string false "Activity type"
// @Param since query string false "Earliest timestamp"
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {array} model.ActivityLog
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/logs [get]
func (h *AdminHandler) Logs(c echo.Context) error {
	since, err := queryTime(c, "since")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		return err
	}
	logs, err := h.svc.Logs(c.Request().Context(), principal(c), repository.ActivityLogFilter{
		Username:     c.QueryParam("username"),
		ActivityType: c.QueryParam("type"),
		Since:        since,
		Limit:        limit,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, logs)
}

// CleanupLogs godoc
// @Summary Delete old activity log entries
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param days query int false "Days to keep" default(30)
// @Success 200 {object} CountResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/logs [delete]
func (h *AdminHandler) CleanupLogs(c echo.Context) error {
	days, err := queryInt(c, "days", activity.DefaultRetentionDays)
	if err != nil {
		return err
	}
	n, err := h.svc.CleanupLogs(c.Request().Context(), principal(c), days)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}
