package ports

import (
	"context"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// ListPropertiesFilter carries all query parameters for listing properties.
// OwnerID is enforced by the service layer for owner-scoped views.
type ListPropertiesFilter struct {
	OwnerID     string  // empty = public/admin listing; non-empty = scoped to owner
	District    string  // optional: exact match
	ListingType string  // optional: rent, sale, lease
	Status      string  // optional: available, sold, rented
	MinPrice    float64 // optional: price >= MinPrice (ignored when 0)
	MaxPrice    float64 // optional: price <= MaxPrice (ignored when 0)
	Search      string  // optional: partial match on title or location
	Page        int     // 1-based
	Limit       int     // max rows per page (capped at 100 by service)
}

// PropertyRepository defines persistence operations for property listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// List returns a page of properties matching filter and the total count.
	List(ctx context.Context, filter ListPropertiesFilter) ([]*domain.Property, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error
	Delete(ctx context.Context, id string) error
}
