package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

type stubVerificationService struct {
	evaluateFn func(ctx context.Context, userID string) (*ports.Decision, error)
	submitFn   func(ctx context.Context, input ports.SubmitDocumentInput) (*domain.VerificationDocument, error)
	reviewFn   func(ctx context.Context, input ports.ReviewDocumentInput) (*domain.VerificationDocument, error)
	listUserFn func(ctx context.Context, userID string) ([]*domain.VerificationDocument, error)
	listFn     func(ctx context.Context, input ports.ListDocumentsInput) (*ports.ListDocumentsResult, error)
}

func (s *stubVerificationService) Evaluate(ctx context.Context, userID string) (*ports.Decision, error) {
	return s.evaluateFn(ctx, userID)
}

func (s *stubVerificationService) SubmitDocument(ctx context.Context, input ports.SubmitDocumentInput) (*domain.VerificationDocument, error) {
	return s.submitFn(ctx, input)
}

func (s *stubVerificationService) ReviewDocument(ctx context.Context, input ports.ReviewDocumentInput) (*domain.VerificationDocument, error) {
	return s.reviewFn(ctx, input)
}

func (s *stubVerificationService) ListUserDocuments(ctx context.Context, userID string) ([]*domain.VerificationDocument, error) {
	return s.listUserFn(ctx, userID)
}

func (s *stubVerificationService) ListDocuments(ctx context.Context, input ports.ListDocumentsInput) (*ports.ListDocumentsResult, error) {
	return s.listFn(ctx, input)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, userID, role string) {
	c.Set("user_id", userID)
	c.Set("role", role)
}

func TestVerificationHandler_Status_ReturnsDecision(t *testing.T) {
	reason := "Verification pending. 3 days remaining to complete verification."
	days := 3
	stub := &stubVerificationService{
		evaluateFn: func(_ context.Context, userID string) (*ports.Decision, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &ports.Decision{CanListProperties: true, Reason: &reason, DaysRemaining: &days}, nil
		},
	}
	h := NewVerificationHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/verification/status", "")
	authenticate(c, "user-1", "landlord")

	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["can_list_properties"] != true {
		t.Errorf("expected can_list_properties=true, got %v", resp["can_list_properties"])
	}
	if resp["reason"] != reason {
		t.Errorf("expected reason %q, got %v", reason, resp["reason"])
	}
	if resp["days_remaining"] != float64(3) {
		t.Errorf("expected days_remaining 3, got %v", resp["days_remaining"])
	}
}

func TestVerificationHandler_Status_Unauthenticated(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	c, _ := newTestContext(t, http.MethodGet, "/v1/verification/status", "")

	err := h.Status(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestVerificationHandler_Status_StoreUnavailablePropagates(t *testing.T) {
	stub := &stubVerificationService{
		evaluateFn: func(context.Context, string) (*ports.Decision, error) {
			return nil, domain.ErrVerificationStoreUnavailable
		},
	}
	h := NewVerificationHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/v1/verification/status", "")
	authenticate(c, "user-1", "landlord")

	err := h.Status(c)
	if !errors.Is(err, domain.ErrVerificationStoreUnavailable) {
		t.Fatalf("store failure must propagate to the error handler, got %v", err)
	}
}

func TestVerificationHandler_Submit_Success(t *testing.T) {
	stub := &stubVerificationService{
		submitFn: func(_ context.Context, input ports.SubmitDocumentInput) (*domain.VerificationDocument, error) {
			if input.UserID != "user-1" {
				t.Fatalf("user id must come from claims, got %q", input.UserID)
			}
			if input.DocumentType != "property_deed" {
				t.Fatalf("unexpected document type %q", input.DocumentType)
			}
			return &domain.VerificationDocument{
				ID:           "doc-1",
				UserID:       input.UserID,
				DocumentType: domain.DocumentPropertyDeed,
				DocumentURL:  input.DocumentURL,
				DocumentName: input.DocumentName,
				Status:       domain.DocumentPending,
				SubmittedAt:  time.Now().UTC(),
			}, nil
		},
	}
	h := NewVerificationHandler(stub)

	body := `{"document_type":"property_deed","document_url":"https://cdn.example.com/deed.pdf","document_name":"deed.pdf"}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/verification/documents", body)
	authenticate(c, "user-1", "landlord")

	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Errorf("expected pending status in response, got %v", resp["status"])
	}
}

func TestVerificationHandler_Submit_UnknownDocumentType(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{
		submitFn: func(context.Context, ports.SubmitDocumentInput) (*domain.VerificationDocument, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	})

	body := `{"document_type":"selfie","document_url":"https://cdn.example.com/x.jpg","document_name":"x.jpg"}`
	c, _ := newTestContext(t, http.MethodPost, "/v1/verification/documents", body)
	authenticate(c, "user-1", "landlord")

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 error, got %v", err)
	}
}

func TestVerificationHandler_Submit_MalformedJSON(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	c, _ := newTestContext(t, http.MethodPost, "/v1/verification/documents", "{")

	err := h.Submit(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestVerificationHandler_AdminReview_PassesReviewerFromClaims(t *testing.T) {
	stub := &stubVerificationService{
		reviewFn: func(_ context.Context, input ports.ReviewDocumentInput) (*domain.VerificationDocument, error) {
			if input.ReviewerID != "admin-1" {
				t.Fatalf("reviewer must come from claims, got %q", input.ReviewerID)
			}
			if input.DocumentID != "doc-9" {
				t.Fatalf("document id must come from the path, got %q", input.DocumentID)
			}
			now := time.Now().UTC()
			return &domain.VerificationDocument{
				ID: input.DocumentID, Status: domain.DocumentVerified,
				ReviewedBy: input.ReviewerID, ReviewedAt: &now,
			}, nil
		},
	}
	h := NewVerificationHandler(stub)

	body := `{"status":"verified","admin_notes":"checked against registry"}`
	c, rec := newTestContext(t, http.MethodPatch, "/v1/admin/verification/documents/doc-9", body)
	c.SetParamNames("id")
	c.SetParamValues("doc-9")
	authenticate(c, "admin-1", "admin")

	if err := h.AdminReview(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVerificationHandler_AdminReview_InvalidStatusRejected(t *testing.T) {
	h := NewVerificationHandler(&stubVerificationService{})

	body := `{"status":"pending"}`
	c, _ := newTestContext(t, http.MethodPatch, "/v1/admin/verification/documents/doc-9", body)
	c.SetParamNames("id")
	c.SetParamValues("doc-9")
	authenticate(c, "admin-1", "admin")

	err := h.AdminReview(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 error, got %v", err)
	}
}

func TestVerificationHandler_AdminList_ForwardsQuery(t *testing.T) {
	stub := &stubVerificationService{
		listFn: func(_ context.Context, input ports.ListDocumentsInput) (*ports.ListDocumentsResult, error) {
			if input.Status != "pending" || input.Page != 2 || input.Limit != 5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ListDocumentsResult{Page: 2, Limit: 5}, nil
		},
	}
	h := NewVerificationHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/v1/admin/verification/documents?status=pending&page=2&limit=5", "")
	authenticate(c, "admin-1", "admin")

	if err := h.AdminList(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
