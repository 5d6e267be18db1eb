package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

// UserHandler exposes the admin user directory. All routes sit behind the
// Auth and RequireAdmin middleware.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Role        string `json:"role" validate:"omitempty,oneof=user admin"`
	NewPassword string `json:"new_password" validate:"omitempty,min=8"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

type listUsersResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
}

// List returns the directory ordered by creation time, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter by role (user|admin)"
// @Success      200   {object}  listUsersResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: users, Count: len(users)})
}

// Update applies a partial profile update, optionally rotating the password.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update (empty fields untouched)"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Role:        req.Role,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		metrics.DirectoryMutationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, updated)
}

// UpdateStatus activates or suspends an account.
//
// @Summary      Change account status
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      204   "status applied"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		metrics.DirectoryMutationsTotal.WithLabelValues("update_status", "error").Inc()
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("update_status", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account and its site submissions.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "user deleted"
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		metrics.DirectoryMutationsTotal.WithLabelValues("delete", "error").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	metrics.DirectoryMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}
