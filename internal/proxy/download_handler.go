package proxy

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/api/metrics"
)

const downloadTimeout = 60 * time.Second

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// DownloadHandler streams a remote file back to the dashboard with a
// sanitized attachment filename.
type DownloadHandler struct {
	client *http.Client
	log    zerolog.Logger
}

// NewDownloadHandler creates a DownloadHandler. A nil client falls back to a
// default with downloadTimeout.
func NewDownloadHandler(client *http.Client, log zerolog.Logger) *DownloadHandler {
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	return &DownloadHandler{client: client, log: log}
}

// Download handles GET /download?url=&name=.
func (h *DownloadHandler) Download(c echo.Context) error {
	rawURL := c.QueryParam("url")
	name := c.QueryParam("name")
	if rawURL == "" || name == "" {
		metrics.DownloadsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url and name are required"})
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid url"})
	}

	resp, err := h.client.Do(req)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Str("url", rawURL).Msg("download fetch failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch file"})
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Upstream failure passes through with the upstream's status code.
		metrics.DownloadsTotal.WithLabelValues("upstream_error").Inc()
		return c.JSON(resp.StatusCode, map[string]string{"error": "upstream returned " + resp.Status})
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := unsafeFilenameChars.ReplaceAllString(name, "_")
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return c.Stream(http.StatusOK, contentType, resp.Body)
}
