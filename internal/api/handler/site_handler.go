package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

// SiteHandler exposes website submissions: owners submit and manage their
// own, admins list and review everything.
type SiteHandler struct {
	service ports.SiteService
}

func NewSiteHandler(service ports.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

type submitSiteRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type reviewSiteRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string `json:"notes"`
}

type submitSiteResponse struct {
	Site           *domain.Site `json:"site"`
	AlreadyExisted bool         `json:"already_existed,omitempty"`
}

type listSitesResponse struct {
	Sites []*domain.Site `json:"sites"`
	Count int            `json:"count"`
}

// Submit registers a website for management.
//
// @Summary      Submit a website
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitSiteRequest  true  "Website details"
// @Success      201   {object}  submitSiteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/sites [post]
func (h *SiteHandler) Submit(c echo.Context) error {
	var req submitSiteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitSiteInput{
		OwnerID:     uid,
		URL:         req.URL,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		metrics.SitesSubmittedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, submitSiteResponse{Site: result.Site, AlreadyExisted: true})
	}

	metrics.SitesSubmittedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, submitSiteResponse{Site: result.Site})
}

// ListOwn returns the caller's submissions.
//
// @Summary      List own websites
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listSitesResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/sites [get]
func (h *SiteHandler) ListOwn(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sites, err := h.service.List(c.Request().Context(), ports.SiteFilter{OwnerID: uid})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listSitesResponse{Sites: sites, Count: len(sites)})
}

// ListAll returns every submission, optionally filtered by review status.
//
// @Summary      List all websites (admin)
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending|approved|rejected)"
// @Success      200     {object}  listSitesResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/admin/sites [get]
func (h *SiteHandler) ListAll(c echo.Context) error {
	sites, err := h.service.List(c.Request().Context(), ports.SiteFilter{
		Status: domain.SiteStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listSitesResponse{Sites: sites, Count: len(sites)})
}

// Review applies an admin approval or rejection.
//
// @Summary      Review a website (admin)
// @Tags         sites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Site id"
// @Param        body  body      reviewSiteRequest  true  "Review decision"
// @Success      200   {object}  domain.Site
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/sites/{id}/review [post]
func (h *SiteHandler) Review(c echo.Context) error {
	var req reviewSiteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	site, err := h.service.Review(c.Request().Context(), ports.ReviewSiteInput{
		SiteID: c.Param("id"),
		Status: domain.SiteStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.SiteReviewsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, site)
}

// Delete removes one of the caller's submissions.
//
// @Summary      Delete own website
// @Tags         sites
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Site id"
// @Success      204  "site deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/sites/{id} [delete]
func (h *SiteHandler) Delete(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
