package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewDedupTTL = 24 * time.Hour

// ViewDedupChecker provides per-day view deduplication backed by Redis.
// Key format: view:<property_id>:<viewer_key>:<yyyy-mm-dd>
// A viewer therefore counts at most once per property per UTC day.
type ViewDedupChecker struct {
	client *redis.Client
}

// NewViewDedupChecker creates a ViewDedupChecker wrapping the given client.
func NewViewDedupChecker(client *redis.Client) *ViewDedupChecker {
	return &ViewDedupChecker{client: client}
}

// IsDuplicate reports whether this viewer already counted for the property today.
func (d *ViewDedupChecker) IsDuplicate(ctx context.Context, propertyID, viewerKey string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(propertyID, viewerKey, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("view dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this view has been counted (expires after viewDedupTTL).
func (d *ViewDedupChecker) Mark(ctx context.Context, propertyID, viewerKey string, ts time.Time) error {
	return d.client.Set(ctx, d.key(propertyID, viewerKey, ts), "1", viewDedupTTL).Err()
}

func (d *ViewDedupChecker) key(propertyID, viewerKey string, ts time.Time) string {
	return fmt.Sprintf("view:%s:%s:%s", propertyID, viewerKey, ts.UTC().Format("2006-01-02"))
}
