package ports

import (
	"context"
	"time"
)

// ViewEventInput is the DTO passed from the transport layer to AnalyticsService.
type ViewEventInput struct {
	PropertyID string
	ViewerID   string // empty for anonymous visitors
	IPAddress  string
	UserAgent  string
	Referrer   string
	Timestamp  time.Time
}

// AnalyticsSummary is the aggregate view returned to dashboards.
type AnalyticsSummary struct {
	TotalProperties int64
	TotalViews      int64
	Properties      []PropertyViewStats
}

// AnalyticsService processes incoming view events and serves dashboard
// aggregates.
type AnalyticsService interface {
	Process(ctx context.Context, event ViewEventInput) error
	OwnerSummary(ctx context.Context, ownerID string) (*AnalyticsSummary, error)
	AdminSummary(ctx context.Context) (*AnalyticsSummary, error)
}
