package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
	"github.com/propfinder/marketplace-api/internal/metrics"
)

// graceDays is the fixed verification grace window. It applies identically to
// the account-age window and the pending-submission window; the two windows
// are independently resettable, so an account can chain them back to back by
// submitting a document just before the account-age window expires.
const graceDays = 5

const (
	reasonPending    = "Verification pending. %d days remaining to complete verification."
	reasonNewAccount = "New account. %d days remaining to verify your account."
	reasonExpired    = "Verification period expired. Please verify your account to list properties."
	reasonUnknown    = "Unable to determine verification status."
)

const maxDocumentsPageSize = 100

// VerificationService implements the verification gate and the document
// submission/review workflow.
type VerificationService struct {
	docs     ports.DocumentRepository
	accounts ports.AccountReader
	now      func() time.Time
	log      zerolog.Logger
}

// NewVerificationService returns a VerificationService. now may be nil, in
// which case time.Now is used; tests inject a fixed clock.
func NewVerificationService(
	docs ports.DocumentRepository,
	accounts ports.AccountReader,
	now func() time.Time,
	log zerolog.Logger,
) *VerificationService {
	if now == nil {
		now = time.Now
	}
	return &VerificationService{docs: docs, accounts: accounts, now: now, log: log}
}

// Evaluate decides whether userID may currently create listings. It is a pure
// read-and-compute operation: 1-2 store reads, no writes, no internal retry.
// Rule order matters: verified wins over pending, pending wins over account age.
func (s *VerificationService) Evaluate(ctx context.Context, userID string) (*ports.Decision, error) {
	if userID == "" {
		return nil, domain.ErrAccountNotFound
	}

	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", domain.ErrVerificationStoreUnavailable, err)
	}

	// 1. Any verified document is a permanent unlock, regardless of what
	// else the account has submitted.
	var earliestPending *time.Time
	for _, doc := range docs {
		switch doc.Status {
		case domain.DocumentVerified:
			metrics.GateDecisionsTotal.WithLabelValues("verified").Inc()
			return &ports.Decision{CanListProperties: true}, nil
		case domain.DocumentPending:
			submitted := doc.SubmittedAt
			if earliestPending == nil || submitted.Before(*earliestPending) {
				earliestPending = &submitted
			}
		}
		// Rejected documents are inert: they neither unlock nor block.
	}

	now := s.now().UTC()

	// 2. Pending documents grant a grace window measured from the earliest
	// submission. A fresh submission after expiry re-enters grace.
	if earliestPending != nil {
		decision := graceDecision(*earliestPending, now, reasonPending)
		s.observeGrace(decision, "grace_pending")
		return decision, nil
	}

	// 3. No verified, no pending (new account or only rejected documents):
	// the window runs from account creation. An account whose only document
	// was rejected falls back to this original window even when it is
	// already expired.
	createdAt, err := s.accounts.CreatedAt(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// 4. Defensive fallback; should not occur in practice.
			metrics.GateDecisionsTotal.WithLabelValues("unknown").Inc()
			reason := reasonUnknown
			return &ports.Decision{CanListProperties: false, Reason: &reason}, nil
		}
		return nil, fmt.Errorf("%w: account created_at: %v", domain.ErrVerificationStoreUnavailable, err)
	}

	decision := graceDecision(createdAt, now, reasonNewAccount)
	s.observeGrace(decision, "grace_new_account")
	return decision, nil
}

// graceDecision computes the decision for a grace window starting at start.
// Day counting uses ceiling division so a deadline later the same day still
// reports a non-negative whole number of days.
func graceDecision(start, now time.Time, allowedFormat string) *ports.Decision {
	deadline := start.UTC().AddDate(0, 0, graceDays)
	daysRemaining := int(math.Ceil(deadline.Sub(now).Hours() / 24))

	if daysRemaining >= 0 {
		reason := fmt.Sprintf(allowedFormat, daysRemaining)
		return &ports.Decision{
			CanListProperties: true,
			Reason:            &reason,
			DaysRemaining:     &daysRemaining,
		}
	}

	reason := reasonExpired
	zero := 0
	return &ports.Decision{
		CanListProperties: false,
		Reason:            &reason,
		DaysRemaining:     &zero,
	}
}

func (s *VerificationService) observeGrace(d *ports.Decision, outcome string) {
	if !d.CanListProperties {
		outcome = "expired"
	}
	metrics.GateDecisionsTotal.WithLabelValues(outcome).Inc()
}

// SubmitDocument records a new pending document for the user.
func (s *VerificationService) SubmitDocument(ctx context.Context, input ports.SubmitDocumentInput) (*domain.VerificationDocument, error) {
	docType := domain.DocumentType(input.DocumentType)
	doc := &domain.VerificationDocument{
		UserID:       input.UserID,
		DocumentType: docType,
		DocumentURL:  input.DocumentURL,
		DocumentName: input.DocumentName,
		Status:       domain.DocumentPending,
		SubmittedAt:  s.now().UTC(),
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create verification document")
		return nil, err
	}

	metrics.DocumentsSubmittedTotal.WithLabelValues(string(docType)).Inc()
	s.log.Info().
		Str("user_id", input.UserID).
		Str("document_type", input.DocumentType).
		Msg("verification document submitted")

	return doc, nil
}

// ReviewDocument applies an administrative review. Only pending documents can
// be reviewed; verified and rejected are terminal.
func (s *VerificationService) ReviewDocument(ctx context.Context, input ports.ReviewDocumentInput) (*domain.VerificationDocument, error) {
	target := domain.DocumentStatus(input.Status)

	current, err := s.docs.FindByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, target)
	}

	reviewed, err := s.docs.UpdateReview(ctx, input.DocumentID, target, input.AdminNotes, input.ReviewerID)
	if err != nil {
		return nil, err
	}

	metrics.DocumentsReviewedTotal.WithLabelValues(string(target)).Inc()
	s.log.Info().
		Str("document_id", input.DocumentID).
		Str("status", input.Status).
		Str("reviewed_by", input.ReviewerID).
		Msg("verification document reviewed")

	return reviewed, nil
}

// ListUserDocuments returns all of the user's documents, any status.
func (s *VerificationService) ListUserDocuments(ctx context.Context, userID string) ([]*domain.VerificationDocument, error) {
	return s.docs.ListByUser(ctx, userID)
}

// ListDocuments serves the admin review queue.
func (s *VerificationService) ListDocuments(ctx context.Context, input ports.ListDocumentsInput) (*ports.ListDocumentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxDocumentsPageSize {
		limit = maxDocumentsPageSize
	}

	items, total, err := s.docs.List(ctx, ports.ListDocumentsFilter{
		UserID: input.UserID,
		Status: input.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListDocumentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
