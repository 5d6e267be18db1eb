package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
	"github.com/sitedesk/admin-api/internal/session"
)

// SessionNotifier receives session-change events (login, logout).
type SessionNotifier interface {
	Notify(token string)
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionNotifier
	resolver    *session.RoleResolver
}

// NewAuthHandler creates an AuthHandler. sessions may be nil when no session
// store is wired (tests).
func NewAuthHandler(authService ports.AuthService, sessions SessionNotifier, resolver *session.RoleResolver) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, resolver: resolver}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account with the user role.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrForbidden):
			metrics.LoginsTotal.WithLabelValues("suspended").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	if h.sessions != nil {
		h.sessions.Notify(token)
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout clears the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "session cleared"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.sessions != nil {
		h.sessions.Notify("")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's principal with the role freshly resolved from the
// profile store.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	uid, email, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	principal := h.resolver.Resolve(c.Request().Context(), uid, email)
	return c.JSON(http.StatusOK, principal)
}
