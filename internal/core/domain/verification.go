package domain

import (
	"errors"
	"time"
)

// DocumentStatus represents the review state of a verification document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// validReviewTransitions defines the allowed review state machine. A document
// is reviewed exactly once; verified and rejected are terminal.
var validReviewTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentPending: {DocumentVerified, DocumentRejected},
}

// CanTransitionTo reports whether a review transition from the current status
// to next is valid.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	for _, allowed := range validReviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DocumentType is the kind of identity/ownership evidence submitted.
type DocumentType string

const (
	DocumentBusinessLicense DocumentType = "business_license"
	DocumentPropertyDeed    DocumentType = "property_deed"
	DocumentNationalID      DocumentType = "national_id"
	DocumentOther           DocumentType = "other"
)

var ErrDocumentNotFound = errors.New("verification document not found")
var ErrInvalidTransition = errors.New("invalid document status transition")

// ErrVerificationStoreUnavailable wraps failures from the document or account
// stores. The gate never retries; callers surface a generic retry message and
// must not assume permission either way.
var ErrVerificationStoreUnavailable = errors.New("verification store unavailable")

// ErrListingBlocked is returned when the verification gate denies listing
// creation. The wrapped message carries the human-readable reason.
var ErrListingBlocked = errors.New("listing blocked")

// VerificationDocument is a single piece of submitted evidence. SubmittedAt is
// immutable once set; ReviewedAt and ReviewedBy are set exactly once when the
// status leaves pending.
type VerificationDocument struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	UserID       string         `json:"user_id" bson:"user_id"`
	DocumentType DocumentType   `json:"document_type" bson:"document_type"`
	DocumentURL  string         `json:"document_url" bson:"document_url"`
	DocumentName string         `json:"document_name" bson:"document_name"`
	Status       DocumentStatus `json:"status" bson:"status"`
	AdminNotes   string         `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	SubmittedAt  time.Time      `json:"submitted_at" bson:"submitted_at"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	ReviewedBy   string         `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
}
