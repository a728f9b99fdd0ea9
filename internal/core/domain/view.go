package domain

import "time"

// PropertyView records a single property page view for analytics. ViewerID is
// empty for anonymous visitors.
type PropertyView struct {
	PropertyID string    `json:"property_id"`
	ViewerID   string    `json:"viewer_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
	ViewedAt   time.Time `json:"viewed_at"`
}
