package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/session"
)

// RequireAdmin gates privileged routes. The role is resolved fresh from the
// profile store on every request; token claims and client-supplied role
// fields are never consulted. Resolution failure denies (fail-closed).
func RequireAdmin(resolver *session.RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			email, _ := c.Get("email").(string)
			principal := resolver.Resolve(c.Request().Context(), uid, email)
			if !domain.IsAdmin(principal) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set("principal", principal)
			return next(c)
		}
	}
}
