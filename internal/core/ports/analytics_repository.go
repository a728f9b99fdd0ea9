package ports

import (
	"context"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// PropertyViewStats is the per-property aggregate used in analytics summaries.
type PropertyViewStats struct {
	PropertyID string
	Title      string
	Views      int64
}

// ViewRepository handles view persistence and view-counter updates.
type ViewRepository interface {
	// IncrementViews atomically bumps the property's view counter.
	IncrementViews(ctx context.Context, propertyID string) error

	// InsertView persists a view to the property_views audit collection.
	InsertView(ctx context.Context, view *domain.PropertyView) error

	// SummaryByOwner aggregates view stats over the owner's properties,
	// ordered by views descending.
	SummaryByOwner(ctx context.Context, ownerID string) ([]PropertyViewStats, error)

	// GlobalSummary aggregates view stats over all properties, ordered by
	// views descending. A limit of zero or less returns every property.
	GlobalSummary(ctx context.Context, limit int) ([]PropertyViewStats, error)
}
