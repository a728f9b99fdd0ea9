package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createPropertyRequest struct {
	Title       string   `json:"title"        validate:"required"`
	Description string   `json:"description"  validate:"required"`
	Price       float64  `json:"price"        validate:"required,gt=0"`
	Currency    string   `json:"currency"     validate:"required,len=3"`
	Location    string   `json:"location"     validate:"required"`
	District    string   `json:"district"     validate:"required"`
	Images      []string `json:"images"`
	Bedrooms    int      `json:"bedrooms"     validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms"    validate:"gte=0"`
	AreaSqm     float64  `json:"area_sqm"     validate:"gt=0"`
	Amenities   []string `json:"amenities"`
	ListingType string   `json:"listing_type" validate:"required,oneof=rent sale lease"`
}

type updatePropertyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available sold rented"`
}

// --- Response types ---
// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type propertyLinks struct {
	Self  string `json:"self"`
	Views string `json:"views"`
}

// decisionResponse mirrors ports.Decision: reason and days_remaining are null
// for fully verified accounts.
type decisionResponse struct {
	CanListProperties bool    `json:"can_list_properties"`
	Reason            *string `json:"reason"`
	DaysRemaining     *int    `json:"days_remaining"`
}

type createPropertyResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	Verification *decisionResponse `json:"verification,omitempty"`
	Links        propertyLinks     `json:"_links"`
}

type propertyResponse struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Currency    string        `json:"currency"`
	Location    string        `json:"location"`
	District    string        `json:"district"`
	Images      []string      `json:"images"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	AreaSqm     float64       `json:"area_sqm"`
	Amenities   []string      `json:"amenities"`
	ListingType string        `json:"listing_type"`
	Status      string        `json:"status"`
	IsVerified  bool          `json:"is_verified"`
	Views       int64         `json:"views"`
	CreatedAt   time.Time     `json:"created_at"`
	Links       propertyLinks `json:"_links"`
}

// propertySummaryResponse is the lightweight item used in list responses.
// It intentionally omits description and amenities to keep payloads small.
type propertySummaryResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Price       float64       `json:"price"`
	Currency    string        `json:"currency"`
	Location    string        `json:"location"`
	District    string        `json:"district"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	ListingType string        `json:"listing_type"`
	Status      string        `json:"status"`
	Views       int64         `json:"views"`
	CreatedAt   time.Time     `json:"created_at"`
	Links       propertyLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listPropertiesResponse struct {
	Data       []propertySummaryResponse `json:"data"`
	Pagination paginationResponse        `json:"pagination"`
}
