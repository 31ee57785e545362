package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/errors"
	"clubportal/internal/service"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// SendNotificationRequest targets a user ("all" for everyone) or a club.
type SendNotificationRequest struct {
	Username string `json:"username" validate:"required_without=Club"`
	Club     string `json:"club" validate:"required_without=Username"`
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=info success warning error"`
}

// List godoc
// @Summary List own notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread"
// @Success 200 {array} model.Notification
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), principal(c), queryBool(c, "unread"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Stats godoc
// @Summary Own notification statistics
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.NotificationStats
// @Router /notifications/stats [get]
func (h *NotificationHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead godoc
// @Summary Mark every own notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CountResponse
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.svc.MarkAllRead(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Delete godoc
// @Summary Delete own notification
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Send godoc
// @Summary Send an announcement
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendNotificationRequest true "Target and text"
// @Success 201 {object} CountResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	var req SendNotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !principal(c).IsTeacher() {
		return fail(errors.ErrForbidden)
	}
	ctx := c.Request().Context()
	var (
		n   int
		err error
	)
	if req.Club != "" {
		n, err = h.svc.NotifyClub(ctx, req.Club, req.Title, req.Message, req.Type)
	} else {
		n, err = h.svc.Notify(ctx, req.Username, req.Title, req.Message, req.Type)
	}
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, CountResponse{Count: n})
}

// DeadlineReminders godoc
// @Summary Remind clubs of assignments due tomorrow
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CountResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reminders/deadlines [post]
func (h *NotificationHandler) DeadlineReminders(c echo.Context) error {
	n, err := h.svc.SendDeadlineReminders(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// ScheduleReminders godoc
// @Summary Remind clubs of tomorrow's schedule
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CountResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reminders/schedule [post]
func (h *NotificationHandler) ScheduleReminders(c echo.Context) error {
	n, err := h.svc.SendScheduleReminders(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}
