package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/service"
)

const defaultChatLimit = 50

// ChatHandler serves club chat rooms. A room is named after its club.
type ChatHandler struct {
	svc service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// ChatRequest is one chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// Recent godoc
// @Summary Recent messages of a room
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param room path string true "Club name, 전체 for every visible room"
// @Param limit query int false "Maximum messages" default(50)
// @Success 200 {array} model.ChatMessage
// @Failure 403 {object} errors.ErrorResponse
// @Router /chat/rooms/{room}/messages [get]
func (h *ChatHandler) Recent(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultChatLimit)
	if err != nil {
		return err
	}
	msgs, err := h.svc.Recent(c.Request().Context(), principal(c), c.Param("room"), limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send godoc
// @Summary Send a message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param room path string true "Club name"
// @Param message body ChatRequest true "Message"
// @Success 201 {object} model.ChatMessage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /chat/rooms/{room}/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	var req ChatRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.svc.Send(c.Request().Context(), principal(c), c.Param("room"), req.Message)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// Stats godoc
// @Summary Room statistics
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param room path string true "Club name"
// @Success 200 {object} service.ChatStats
// @Router /chat/rooms/{room}/stats [get]
func (h *ChatHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), principal(c), c.Param("room"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Delete godoc
// @Summary Hide a message
// @Tags chat
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /chat/messages/{id} [delete]
func (h *ChatHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
