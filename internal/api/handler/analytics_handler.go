package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/propfinder/marketplace-api/internal/core/ports"
)

// ViewEnqueuer accepts view events for asynchronous processing.
type ViewEnqueuer interface {
	Enqueue(event ports.ViewEventInput)
}

// AnalyticsHandler records property views and serves view aggregates.
type AnalyticsHandler struct {
	queue   ViewEnqueuer
	service ports.AnalyticsService
	now     func() time.Time
}

func NewAnalyticsHandler(queue ViewEnqueuer, service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{queue: queue, service: service, now: time.Now}
}

type recordViewResponse struct {
	Accepted bool `json:"accepted"`
}

type propertyStatsResponse struct {
	PropertyID string `json:"property_id"`
	Title      string `json:"title"`
	Views      int64  `json:"views"`
}

type analyticsSummaryResponse struct {
	TotalProperties int64                   `json:"total_properties"`
	TotalViews      int64                   `json:"total_views"`
	Properties      []propertyStatsResponse `json:"properties"`
}

// RecordView handles POST /v1/properties/:id/views. The event is queued and
// processed off the request path, so the endpoint always answers 202.
//
// @Summary      Record a property view
// @Tags         analytics
// @Produce      json
// @Param        id  path  string  true  "Property id"
// @Success      202 {object}  recordViewResponse
// @Router       /v1/properties/{id}/views [post]
func (h *AnalyticsHandler) RecordView(c echo.Context) error {
	viewerID, _ := c.Get("user_id").(string)

	h.queue.Enqueue(ports.ViewEventInput{
		PropertyID: c.Param("id"),
		ViewerID:   viewerID,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
		Referrer:   c.Request().Referer(),
		Timestamp:  h.now().UTC(),
	})

	return c.JSON(http.StatusAccepted, recordViewResponse{Accepted: true})
}

// MySummary handles GET /v1/my/analytics.
//
// @Summary      View aggregates for the caller's listings
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analyticsSummaryResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/my/analytics [get]
func (h *AnalyticsHandler) MySummary(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	summary, err := h.service.OwnerSummary(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

// AdminSummary handles GET /v1/admin/analytics.
//
// @Summary      Marketplace-wide view aggregates (admin)
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analyticsSummaryResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/analytics [get]
func (h *AnalyticsHandler) AdminSummary(c echo.Context) error {
	summary, err := h.service.AdminSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func toSummaryResponse(s *ports.AnalyticsSummary) analyticsSummaryResponse {
	props := make([]propertyStatsResponse, 0, len(s.Properties))
	for _, p := range s.Properties {
		props = append(props, propertyStatsResponse{
			PropertyID: p.PropertyID,
			Title:      p.Title,
			Views:      p.Views,
		})
	}
	return analyticsSummaryResponse{
		TotalProperties: s.TotalProperties,
		TotalViews:      s.TotalViews,
		Properties:      props,
	}
}
