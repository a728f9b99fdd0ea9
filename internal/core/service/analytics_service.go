package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
	"github.com/propfinder/marketplace-api/internal/metrics"
)

const topPropertiesLimit = 10

// ViewDedupChecker abstracts the view idempotency store (Redis). A viewer
// counts at most once per property per dedup window.
type ViewDedupChecker interface {
	IsDuplicate(ctx context.Context, propertyID, viewerKey string, ts time.Time) (bool, error)
	Mark(ctx context.Context, propertyID, viewerKey string, ts time.Time) error
}

type analyticsService struct {
	propertyRepo ports.PropertyRepository
	viewRepo     ports.ViewRepository
	dedup        ViewDedupChecker
	log          zerolog.Logger
}

// NewAnalyticsService returns an AnalyticsService implementation.
func NewAnalyticsService(
	propertyRepo ports.PropertyRepository,
	viewRepo ports.ViewRepository,
	dedup ViewDedupChecker,
	log zerolog.Logger,
) ports.AnalyticsService {
	return &analyticsService{
		propertyRepo: propertyRepo,
		viewRepo:     viewRepo,
		dedup:        dedup,
		log:          log,
	}
}

// Process validates, deduplicates, and persists a single view event.
func (s *analyticsService) Process(ctx context.Context, in ports.ViewEventInput) error {
	viewerKey := in.ViewerID
	if viewerKey == "" {
		viewerKey = in.IPAddress
	}

	// 1. Dedup check; repeated views inside the window are silently skipped.
	isDup, err := s.dedup.IsDuplicate(ctx, in.PropertyID, viewerKey, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("property_id", in.PropertyID).Msg("view dedup check failed, processing anyway")
	} else if isDup {
		metrics.ViewsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("property_id", in.PropertyID).Msg("duplicate view skipped")
		return nil
	}
	metrics.ViewsDedupTotal.WithLabelValues("miss").Inc()

	// 2. The property must exist; views against deleted listings are dropped.
	if _, err := s.propertyRepo.FindByID(ctx, in.PropertyID); err != nil {
		return fmt.Errorf("process view: %w", err)
	}

	// 3. Mark before writing so a retried event is not double counted.
	if markErr := s.dedup.Mark(ctx, in.PropertyID, viewerKey, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("property_id", in.PropertyID).Msg("failed to set view dedup key")
	}

	// 4. Bump the denormalised counter on the property.
	if err := s.viewRepo.IncrementViews(ctx, in.PropertyID); err != nil {
		return fmt.Errorf("process view: increment: %w", err)
	}

	// 5. Insert into the audit trail (non-fatal on failure).
	view := &domain.PropertyView{
		PropertyID: in.PropertyID,
		ViewerID:   in.ViewerID,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
		Referrer:   in.Referrer,
		ViewedAt:   in.Timestamp,
	}
	if err := s.viewRepo.InsertView(ctx, view); err != nil {
		s.log.Warn().Err(err).Str("property_id", in.PropertyID).Msg("failed to insert view audit record")
	}

	metrics.ViewsProcessedTotal.Inc()
	s.log.Debug().
		Str("property_id", in.PropertyID).
		Str("viewer_id", in.ViewerID).
		Msg("view processed")

	return nil
}

// OwnerSummary aggregates view stats over the owner's properties.
func (s *analyticsService) OwnerSummary(ctx context.Context, ownerID string) (*ports.AnalyticsSummary, error) {
	stats, err := s.viewRepo.SummaryByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return summarize(stats), nil
}

// AdminSummary aggregates view stats over the whole marketplace. Totals count
// every property; only the Properties list is cut to the most viewed.
func (s *analyticsService) AdminSummary(ctx context.Context) (*ports.AnalyticsSummary, error) {
	stats, err := s.viewRepo.GlobalSummary(ctx, 0)
	if err != nil {
		return nil, err
	}
	summary := summarize(stats)
	if len(summary.Properties) > topPropertiesLimit {
		summary.Properties = summary.Properties[:topPropertiesLimit]
	}
	return summary, nil
}

func summarize(stats []ports.PropertyViewStats) *ports.AnalyticsSummary {
	summary := &ports.AnalyticsSummary{
		TotalProperties: int64(len(stats)),
		Properties:      stats,
	}
	for _, st := range stats {
		summary.TotalViews += st.Views
	}
	return summary
}
