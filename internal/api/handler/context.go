package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware.
// Presence of uid proves the middleware ran; a missing uid means the route
// was wired without it and the request must not proceed.
func ctxIdentity(c echo.Context) (uid, email string, err error) {
	uid, _ = c.Get("uid").(string)
	if uid == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ = c.Get("email").(string)
	return uid, email, nil
}
