package ports

import (
	"context"
	"time"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// CreatePropertyInput carries all data needed to create a new listing.
type CreatePropertyInput struct {
	OwnerID     string
	OwnerRole   string
	Title       string
	Description string
	Price       float64
	Currency    string
	Location    string
	District    string
	Images      []string
	Bedrooms    int
	Bathrooms   int
	AreaSqm     float64
	Amenities   []string
	ListingType string
}

// PropertyResult is returned by the service after creating a listing.
type PropertyResult struct {
	ID        string
	Status    string
	CreatedAt time.Time
	// Decision is the gate outcome that allowed the listing; carried so the
	// UI can show remaining grace days alongside the created listing.
	Decision *Decision
}

// GetPropertyInput carries the parameters to retrieve a single listing.
type GetPropertyInput struct {
	PropertyID string
}

// UpdatePropertyStatusInput carries a market-status change request. Role and
// CallerID enforce that only the owner or an admin may update.
type UpdatePropertyStatusInput struct {
	PropertyID string
	Status     string
	CallerID   string
	CallerRole string
}

// DeletePropertyInput carries a deletion request, owner- or admin-only.
type DeletePropertyInput struct {
	PropertyID string
	CallerID   string
	CallerRole string
}

// ListPropertiesInput carries all parameters for the list endpoint.
type ListPropertiesInput struct {
	OwnerID     string
	District    string
	ListingType string
	Status      string
	MinPrice    float64
	MaxPrice    float64
	Search      string
	Page        int
	Limit       int
}

// ListPropertiesResult is returned by ListProperties.
type ListPropertiesResult struct {
	Items      []*domain.Property
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PropertyService defines use-case operations for property listings.
type PropertyService interface {
	// CreateProperty runs the verification gate before persisting. A blocked
	// decision surfaces as domain.ErrListingBlocked carrying the gate reason.
	CreateProperty(ctx context.Context, input CreatePropertyInput) (*PropertyResult, error)
	GetProperty(ctx context.Context, input GetPropertyInput) (*domain.Property, error)
	ListProperties(ctx context.Context, input ListPropertiesInput) (*ListPropertiesResult, error)
	UpdateStatus(ctx context.Context, input UpdatePropertyStatusInput) error
	DeleteProperty(ctx context.Context, input DeletePropertyInput) error
}
