package handler

import (
	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

func links(propertyID string) propertyLinks {
	return propertyLinks{
		Self:  "/v1/properties/" + propertyID,
		Views: "/v1/properties/" + propertyID + "/views",
	}
}

func toDecisionResponse(d *ports.Decision) *decisionResponse {
	if d == nil {
		return nil
	}
	return &decisionResponse{
		CanListProperties: d.CanListProperties,
		Reason:            d.Reason,
		DaysRemaining:     d.DaysRemaining,
	}
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Location:    p.Location,
		District:    p.District,
		Images:      p.Images,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		AreaSqm:     p.AreaSqm,
		Amenities:   p.Amenities,
		ListingType: string(p.ListingType),
		Status:      string(p.Status),
		IsVerified:  p.IsVerified,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
		Links:       links(p.ID),
	}
}

func toListPropertiesResponse(result *ports.ListPropertiesResult) listPropertiesResponse {
	items := make([]propertySummaryResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, propertySummaryResponse{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Currency:    p.Currency,
			Location:    p.Location,
			District:    p.District,
			Bedrooms:    p.Bedrooms,
			Bathrooms:   p.Bathrooms,
			ListingType: string(p.ListingType),
			Status:      string(p.Status),
			Views:       p.Views,
			CreatedAt:   p.CreatedAt,
			Links:       links(p.ID),
		})
	}
	return listPropertiesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
}
