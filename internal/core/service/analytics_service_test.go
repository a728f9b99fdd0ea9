package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub view repository and dedup checker
// ---------------------------------------------------------------------------

type stubViewRepo struct {
	counters     map[string]int64
	inserted     []*domain.PropertyView
	incrementErr error
	insertErr    error
	stats        []ports.PropertyViewStats
}

func newStubViewRepo() *stubViewRepo {
	return &stubViewRepo{counters: make(map[string]int64)}
}

func (r *stubViewRepo) IncrementViews(_ context.Context, propertyID string) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.counters[propertyID]++
	return nil
}

func (r *stubViewRepo) InsertView(_ context.Context, view *domain.PropertyView) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *view
	r.inserted = append(r.inserted, &clone)
	return nil
}

func (r *stubViewRepo) SummaryByOwner(_ context.Context, _ string) ([]ports.PropertyViewStats, error) {
	return r.stats, nil
}

func (r *stubViewRepo) GlobalSummary(_ context.Context, limit int) ([]ports.PropertyViewStats, error) {
	if limit > 0 && limit < len(r.stats) {
		return r.stats[:limit], nil
	}
	return r.stats, nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(propertyID, viewerKey string) string {
	return propertyID + "|" + viewerKey
}

func (d *stubDedup) IsDuplicate(_ context.Context, propertyID, viewerKey string, _ time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(propertyID, viewerKey)], nil
}

func (d *stubDedup) Mark(_ context.Context, propertyID, viewerKey string, _ time.Time) error {
	d.seen[d.key(propertyID, viewerKey)] = true
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedStoredProperty(repo *stubPropertyRepo, id, ownerID string) {
	repo.byID[id] = &domain.Property{
		ID:      id,
		OwnerID: ownerID,
		Title:   "Test listing",
		Status:  domain.PropertyAvailable,
	}
}

func viewEvent(propertyID, viewerID, ip string) ports.ViewEventInput {
	return ports.ViewEventInput{
		PropertyID: propertyID,
		ViewerID:   viewerID,
		IPAddress:  ip,
		UserAgent:  "test-agent",
		Timestamp:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// Process tests
// ---------------------------------------------------------------------------

func TestProcess_CountsFirstView(t *testing.T) {
	props := newStubPropertyRepo()
	seedStoredProperty(props, "prop-1", "owner-1")
	views := newStubViewRepo()
	svc := NewAnalyticsService(props, views, newStubDedup(), zerolog.Nop())

	err := svc.Process(context.Background(), viewEvent("prop-1", "viewer-1", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views.counters["prop-1"] != 1 {
		t.Errorf("expected counter 1, got %d", views.counters["prop-1"])
	}
	if len(views.inserted) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(views.inserted))
	}
	if views.inserted[0].ViewerID != "viewer-1" {
		t.Errorf("audit record viewer: want viewer-1, got %q", views.inserted[0].ViewerID)
	}
}

func TestProcess_DuplicateViewSkipped(t *testing.T) {
	props := newStubPropertyRepo()
	seedStoredProperty(props, "prop-1", "owner-1")
	views := newStubViewRepo()
	svc := NewAnalyticsService(props, views, newStubDedup(), zerolog.Nop())

	event := viewEvent("prop-1", "viewer-1", "")
	_ = svc.Process(context.Background(), event)
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate must be skipped silently: %v", err)
	}

	if views.counters["prop-1"] != 1 {
		t.Errorf("duplicate must not bump the counter, got %d", views.counters["prop-1"])
	}
	if len(views.inserted) != 1 {
		t.Errorf("duplicate must not add audit records, got %d", len(views.inserted))
	}
}

func TestProcess_AnonymousViewerKeyedByIP(t *testing.T) {
	props := newStubPropertyRepo()
	seedStoredProperty(props, "prop-1", "owner-1")
	views := newStubViewRepo()
	svc := NewAnalyticsService(props, views, newStubDedup(), zerolog.Nop())

	_ = svc.Process(context.Background(), viewEvent("prop-1", "", "10.0.0.1"))
	_ = svc.Process(context.Background(), viewEvent("prop-1", "", "10.0.0.1"))
	_ = svc.Process(context.Background(), viewEvent("prop-1", "", "10.0.0.2"))

	if views.counters["prop-1"] != 2 {
		t.Errorf("expected 2 distinct anonymous views, got %d", views.counters["prop-1"])
	}
}

func TestProcess_MissingPropertyDropped(t *testing.T) {
	views := newStubViewRepo()
	svc := NewAnalyticsService(newStubPropertyRepo(), views, newStubDedup(), zerolog.Nop())

	err := svc.Process(context.Background(), viewEvent("ghost", "viewer-1", ""))
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
	if views.counters["ghost"] != 0 {
		t.Error("missing property must not be counted")
	}
}

func TestProcess_DedupFailureStillCounts(t *testing.T) {
	props := newStubPropertyRepo()
	seedStoredProperty(props, "prop-1", "owner-1")
	views := newStubViewRepo()
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewAnalyticsService(props, views, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), viewEvent("prop-1", "viewer-1", "")); err != nil {
		t.Fatalf("dedup outage must not drop views: %v", err)
	}
	if views.counters["prop-1"] != 1 {
		t.Errorf("expected counter 1 despite dedup outage, got %d", views.counters["prop-1"])
	}
}

func TestProcess_AuditInsertFailureIsNonFatal(t *testing.T) {
	props := newStubPropertyRepo()
	seedStoredProperty(props, "prop-1", "owner-1")
	views := newStubViewRepo()
	views.insertErr = errors.New("collection locked")
	svc := NewAnalyticsService(props, views, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), viewEvent("prop-1", "viewer-1", "")); err != nil {
		t.Fatalf("audit failure must not fail processing: %v", err)
	}
	if views.counters["prop-1"] != 1 {
		t.Errorf("expected counter bumped, got %d", views.counters["prop-1"])
	}
}

// ---------------------------------------------------------------------------
// Summary tests
// ---------------------------------------------------------------------------

func TestOwnerSummary_Totals(t *testing.T) {
	views := newStubViewRepo()
	views.stats = []ports.PropertyViewStats{
		{PropertyID: "prop-1", Title: "A", Views: 40},
		{PropertyID: "prop-2", Title: "B", Views: 2},
	}
	svc := NewAnalyticsService(newStubPropertyRepo(), views, newStubDedup(), zerolog.Nop())

	summary, err := svc.OwnerSummary(context.Background(), "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalProperties != 2 {
		t.Errorf("expected 2 properties, got %d", summary.TotalProperties)
	}
	if summary.TotalViews != 42 {
		t.Errorf("expected 42 total views, got %d", summary.TotalViews)
	}
}

func TestAdminSummary_GlobalTotalsWithTopPropertiesCut(t *testing.T) {
	views := newStubViewRepo()
	for i := 0; i < 15; i++ {
		views.stats = append(views.stats, ports.PropertyViewStats{PropertyID: "p", Views: 2})
	}
	svc := NewAnalyticsService(newStubPropertyRepo(), views, newStubDedup(), zerolog.Nop())

	summary, err := svc.AdminSummary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalProperties != 15 {
		t.Errorf("totals must cover every property, got %d", summary.TotalProperties)
	}
	if summary.TotalViews != 30 {
		t.Errorf("expected 30 total views, got %d", summary.TotalViews)
	}
	if len(summary.Properties) != 10 {
		t.Errorf("expected the most-viewed list cut to 10, got %d", len(summary.Properties))
	}
}
