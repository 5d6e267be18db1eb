// Package proxy hosts the privileged admin endpoints on their own network
// boundary, separate from the dashboard API. The handlers here never inspect
// caller role claims: once a request reaches this surface it is served with
// the elevated service credential the process was configured with. Transport
// in front of this listener is the enforcement point for who may call it.
package proxy

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/ports"
)

// NewRouter builds the proxy Echo instance. serviceKey is the elevated
// credential; callers must refuse to start the proxy without one.
func NewRouter(directory ports.UserService, client *http.Client, serviceKey string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(reflectOrigin())

	emailHandler := NewEmailHandler(directory, serviceKey, log)
	downloadHandler := NewDownloadHandler(client, log)

	e.Any("/", emailHandler.Handle)
	e.GET("/download", downloadHandler.Download)

	return e
}

// reflectOrigin attaches permissive cross-origin headers echoing the request
// origin to every response, so the dashboard (a different origin) can read
// success and failure bodies alike.
func reflectOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			if origin == "" {
				origin = "*"
			}
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
			h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			return next(c)
		}
	}
}
