package domain

import (
	"errors"
	"time"
)

// ListingType describes how a property is offered on the market.
type ListingType string

const (
	ListingRent  ListingType = "rent"
	ListingSale  ListingType = "sale"
	ListingLease ListingType = "lease"
)

// PropertyStatus represents the market state of a listing.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertySold      PropertyStatus = "sold"
	PropertyRented    PropertyStatus = "rented"
)

var ErrPropertyNotFound = errors.New("property not found")
var ErrForbidden = errors.New("access forbidden")

// Property is the core listing aggregate.
type Property struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	OwnerID     string         `json:"owner_id" bson:"owner_id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Price       float64        `json:"price" bson:"price"`
	Currency    string         `json:"currency" bson:"currency"`
	Location    string         `json:"location" bson:"location"`
	District    string         `json:"district" bson:"district"`
	Images      []string       `json:"images" bson:"images"`
	Bedrooms    int            `json:"bedrooms" bson:"bedrooms"`
	Bathrooms   int            `json:"bathrooms" bson:"bathrooms"`
	AreaSqm     float64        `json:"area_sqm" bson:"area_sqm"`
	Amenities   []string       `json:"amenities" bson:"amenities"`
	ListingType ListingType    `json:"listing_type" bson:"listing_type"`
	Status      PropertyStatus `json:"status" bson:"status"`
	IsVerified  bool           `json:"is_verified" bson:"is_verified"`
	Views       int64          `json:"views" bson:"views"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}
