package handler

import "time"

type submitDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required,oneof=business_license property_deed national_id other"`
	DocumentURL  string `json:"document_url"  validate:"required,url"`
	DocumentName string `json:"document_name" validate:"required"`
}

type reviewDocumentRequest struct {
	Status     string `json:"status"      validate:"required,oneof=verified rejected"`
	AdminNotes string `json:"admin_notes"`
}

type documentResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	DocumentType string     `json:"document_type"`
	DocumentURL  string     `json:"document_url"`
	DocumentName string     `json:"document_name"`
	Status       string     `json:"status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
}

type listDocumentsResponse struct {
	Data       []documentResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// verificationStatusResponse is the gate decision rendered for dashboards:
// either a "verified" badge or the remaining grace days with an explanation.
type verificationStatusResponse struct {
	CanListProperties bool    `json:"can_list_properties"`
	Reason            *string `json:"reason"`
	DaysRemaining     *int    `json:"days_remaining"`
}
