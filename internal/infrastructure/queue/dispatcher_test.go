package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/propfinder/marketplace-api/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.ViewEventInput
	done   chan struct{}
	want   int
}

func newRecordingService(want int) *recordingService {
	return &recordingService{done: make(chan struct{}), want: want}
}

func (s *recordingService) Process(_ context.Context, event ports.ViewEventInput) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	s.mu.Unlock()
	return nil
}

func (s *recordingService) OwnerSummary(context.Context, string) (*ports.AnalyticsSummary, error) {
	panic("not used")
}

func (s *recordingService) AdminSummary(context.Context) (*ports.AnalyticsSummary, error) {
	panic("not used")
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := newRecordingService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ViewEventInput{PropertyID: "prop-1", ViewerID: "a"})
	d.Enqueue(ports.ViewEventInput{PropertyID: "prop-2", ViewerID: "b"})
	d.Enqueue(ports.ViewEventInput{PropertyID: "prop-3", ViewerID: "c"})

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events to be processed")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 3 {
		t.Fatalf("expected 3 processed events, got %d", len(svc.events))
	}
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	first := d.shardIndex("prop-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("prop-42") != first {
			t.Fatal("same property id must always map to the same worker")
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultsWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
