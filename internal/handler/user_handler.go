package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clubportal/internal/model"
	"clubportal/internal/service"
)

// UserHandler bundles user management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest is the payload of a new account. Roles accept the stored
// label or its English name.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	ClubName string `json:"club_name"`
	ClubRole string `json:"club_role"`
}

// UpdateUserRequest changes the fields that are present.
type UpdateUserRequest struct {
	Password *string `json:"password" validate:"omitempty,min=4"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	ClubName *string `json:"club_name"`
	ClubRole *string `json:"club_role"`
}

func rolePtr(s *string) *model.Role {
	if s == nil {
		return nil
	}
	r := model.Role(*s)
	return &r
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.svc.CreateUser(c.Request().Context(), principal(c), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     model.Role(req.Role),
		ClubName: req.ClubName,
		ClubRole: model.Role(req.ClubRole),
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetUser godoc
// @Summary Get user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), principal(c), c.Param("username"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Description Teachers see everyone, others their own club.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param user body UpdateUserRequest true "Changed fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateUser(c.Request().Context(), principal(c), c.Param("username"), service.UpdateUserInput{
		Password: req.Password,
		Name:     req.Name,
		Role:     rolePtr(req.Role),
		ClubName: req.ClubName,
		ClubRole: rolePtr(req.ClubRole),
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Removes the account only; records that mention the user are kept.
// @Tags users
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/{username} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), principal(c), c.Param("username")); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
