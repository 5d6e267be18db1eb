package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/core/ports"
)

// StatsHandler serves the dashboard landing-page counters.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Overview returns user and site counts.
//
// @Summary      Dashboard overview (admin)
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.StatsOverview
// @Failure      403  {object}  map[string]string
// @Router       /v1/stats [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
