package proxy

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

// EmailHandler mutates a user's email in the identity store on behalf of an
// admin. It holds the elevated service credential for the process lifetime;
// it performs the mutation unconditionally once reached.
type EmailHandler struct {
	directory  ports.UserService
	serviceKey string
	log        zerolog.Logger
}

func NewEmailHandler(directory ports.UserService, serviceKey string, log zerolog.Logger) *EmailHandler {
	return &EmailHandler{directory: directory, serviceKey: serviceKey, log: log}
}

type emailUpdateRequest struct {
	UserID   string `json:"userId"`
	NewEmail string `json:"newEmail"`
}

// Handle serves the root endpoint: OPTIONS answers the preflight before any
// body handling, POST performs the update, everything else is 405.
func (h *EmailHandler) Handle(c echo.Context) error {
	switch c.Request().Method {
	case http.MethodOptions:
		return c.NoContent(http.StatusNoContent)
	case http.MethodPost:
		return h.update(c)
	default:
		return c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (h *EmailHandler) update(c echo.Context) error {
	var req emailUpdateRequest
	if err := c.Bind(&req); err != nil {
		metrics.EmailUpdatesTotal.WithLabelValues("invalid_request").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}
	if req.UserID == "" || req.NewEmail == "" {
		metrics.EmailUpdatesTotal.WithLabelValues("invalid_request").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and newEmail are required"})
	}

	updated, err := h.directory.UpdateEmail(c.Request().Context(), req.UserID, req.NewEmail)
	if err != nil {
		// Store rejections surface as client errors with the store's message;
		// anything else propagates as a generic failure.
		if errors.Is(err, domain.ErrEmailTaken) ||
			errors.Is(err, domain.ErrUserNotFound) ||
			errors.Is(err, domain.ErrInvalidInput) {
			metrics.EmailUpdatesTotal.WithLabelValues("store_error").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		metrics.EmailUpdatesTotal.WithLabelValues("store_error").Inc()
		return err
	}

	metrics.EmailUpdatesTotal.WithLabelValues("ok").Inc()
	h.log.Info().Str("user_id", req.UserID).Msg("email updated via privileged proxy")

	return c.JSON(http.StatusOK, map[string]any{"data": updated})
}
