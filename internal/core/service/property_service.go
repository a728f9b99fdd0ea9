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

const maxPropertiesPageSize = 100

// PropertyService implements listing use cases. Creation is gated by the
// verification service.
type PropertyService struct {
	repo   ports.PropertyRepository
	gate   ports.VerificationService
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, gate ports.VerificationService, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, gate: gate, logger: logger}
}

// CreateProperty evaluates the verification gate and persists the listing
// when allowed. A blocked decision surfaces as domain.ErrListingBlocked with
// the gate's reason; store failures propagate untouched so the transport
// layer can answer with a generic retry message.
func (s *PropertyService) CreateProperty(ctx context.Context, input ports.CreatePropertyInput) (*ports.PropertyResult, error) {
	role := domain.Role(input.OwnerRole)
	if !role.CanListProperties() {
		return nil, fmt.Errorf("%w: role %s cannot list properties", domain.ErrForbidden, role)
	}

	decision, err := s.gate.Evaluate(ctx, input.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("verification gate unavailable")
		return nil, err
	}
	if !decision.CanListProperties {
		reason := "verification required"
		if decision.Reason != nil {
			reason = *decision.Reason
		}
		metrics.ListingsBlockedTotal.Inc()
		s.logger.Info().Str("owner_id", input.OwnerID).Str("reason", reason).Msg("listing blocked by verification gate")
		return nil, fmt.Errorf("%w: %s", domain.ErrListingBlocked, reason)
	}

	now := time.Now().UTC()
	property := &domain.Property{
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Currency:    input.Currency,
		Location:    input.Location,
		District:    input.District,
		Images:      input.Images,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		AreaSqm:     input.AreaSqm,
		Amenities:   input.Amenities,
		ListingType: domain.ListingType(input.ListingType),
		Status:      domain.PropertyAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.logger.Error().Err(err).Msg("failed to create property")
		return nil, err
	}

	metrics.ListingsCreatedTotal.WithLabelValues(input.ListingType).Inc()
	s.logger.Info().
		Str("property_id", property.ID).
		Str("owner_id", input.OwnerID).
		Str("listing_type", input.ListingType).
		Msg("property created")

	return &ports.PropertyResult{
		ID:        property.ID,
		Status:    string(property.Status),
		CreatedAt: property.CreatedAt,
		Decision:  decision,
	}, nil
}

// GetProperty retrieves a single listing by id.
func (s *PropertyService) GetProperty(ctx context.Context, input ports.GetPropertyInput) (*domain.Property, error) {
	return s.repo.FindByID(ctx, input.PropertyID)
}

// ListProperties returns a page of listings matching the filters.
func (s *PropertyService) ListProperties(ctx context.Context, input ports.ListPropertiesInput) (*ports.ListPropertiesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPropertiesPageSize {
		limit = maxPropertiesPageSize
	}

	items, total, err := s.repo.List(ctx, ports.ListPropertiesFilter{
		OwnerID:     input.OwnerID,
		District:    input.District,
		ListingType: input.ListingType,
		Status:      input.Status,
		MinPrice:    input.MinPrice,
		MaxPrice:    input.MaxPrice,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListPropertiesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus changes the market status of a listing. Only the owner or an
// admin may update.
func (s *PropertyService) UpdateStatus(ctx context.Context, input ports.UpdatePropertyStatusInput) error {
	property, err := s.repo.FindByID(ctx, input.PropertyID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(property, input.CallerID, input.CallerRole); err != nil {
		return err
	}

	status := domain.PropertyStatus(input.Status)
	switch status {
	case domain.PropertyAvailable, domain.PropertySold, domain.PropertyRented:
	default:
		return fmt.Errorf("unknown property status %q", input.Status)
	}

	if err := s.repo.UpdateStatus(ctx, input.PropertyID, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("property_id", input.PropertyID).
		Str("status", input.Status).
		Msg("property status updated")
	return nil
}

// DeleteProperty removes a listing. Only the owner or an admin may delete.
func (s *PropertyService) DeleteProperty(ctx context.Context, input ports.DeletePropertyInput) error {
	property, err := s.repo.FindByID(ctx, input.PropertyID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(property, input.CallerID, input.CallerRole); err != nil {
		return err
	}
	return s.repo.Delete(ctx, input.PropertyID)
}

func authorizeOwner(p *domain.Property, callerID, callerRole string) error {
	if domain.Role(callerRole) == domain.RoleAdmin {
		return nil
	}
	if p.OwnerID != callerID {
		return domain.ErrForbidden
	}
	return nil
}
