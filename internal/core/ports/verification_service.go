package ports

import (
	"context"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// Decision is the derived outcome of the verification gate. It is computed on
// demand and never persisted. Reason and DaysRemaining are nil for fully
// verified accounts.
type Decision struct {
	CanListProperties bool
	Reason            *string
	DaysRemaining     *int
}

// SubmitDocumentInput carries a new verification document submission.
type SubmitDocumentInput struct {
	UserID       string
	DocumentType string
	DocumentURL  string
	DocumentName string
}

// ReviewDocumentInput carries an administrative review action.
type ReviewDocumentInput struct {
	DocumentID string
	Status     string // "verified" or "rejected"
	AdminNotes string
	ReviewerID string
}

// ListDocumentsInput carries parameters for the admin document listing.
type ListDocumentsInput struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

// ListDocumentsResult is returned by ListDocuments.
type ListDocumentsResult struct {
	Items      []*domain.VerificationDocument
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// VerificationService owns the verification-gated listing permission and the
// document submission/review workflow around it.
type VerificationService interface {
	// Evaluate decides whether the account may currently create listings.
	// Store failures are returned as domain.ErrVerificationStoreUnavailable;
	// a missing account yields a blocked decision, not an error.
	Evaluate(ctx context.Context, userID string) (*Decision, error)
	SubmitDocument(ctx context.Context, input SubmitDocumentInput) (*domain.VerificationDocument, error)
	ReviewDocument(ctx context.Context, input ReviewDocumentInput) (*domain.VerificationDocument, error)
	ListUserDocuments(ctx context.Context, userID string) ([]*domain.VerificationDocument, error)
	ListDocuments(ctx context.Context, input ListDocumentsInput) (*ListDocumentsResult, error)
}
