package ports

import (
	"context"

	"github.com/propfinder/marketplace-api/internal/core/domain"
)

// ListDocumentsFilter narrows admin document queries. An empty Status means
// all statuses; an empty UserID means all users.
type ListDocumentsFilter struct {
	UserID string
	Status string
	Page   int // 1-based
	Limit  int // capped at 100 by the service
}

// DocumentRepository defines persistence operations for verification documents.
type DocumentRepository interface {
	// ListByUser returns all documents for a user, any status.
	ListByUser(ctx context.Context, userID string) ([]*domain.VerificationDocument, error)
	FindByID(ctx context.Context, id string) (*domain.VerificationDocument, error)
	Create(ctx context.Context, doc *domain.VerificationDocument) error
	// UpdateReview sets status, admin notes, and the review stamp in one write.
	// The repository must only match documents still in pending status so a
	// completed review is never overwritten.
	UpdateReview(ctx context.Context, id string, status domain.DocumentStatus, adminNotes, reviewedBy string) (*domain.VerificationDocument, error)
	// List returns a page of documents matching filter and the total count.
	List(ctx context.Context, filter ListDocumentsFilter) ([]*domain.VerificationDocument, int64, error)
}
