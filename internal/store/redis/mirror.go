// Package redis mirrors the latest snapshot into Redis for dashboards that
// prefer a key lookup over reading the signals directory. The mirror is a
// best-effort read-side cache: the CSV ledger and the snapshot files remain
// the only sources of truth, and every operation here may fail without
// affecting a submission.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zbreeden/FourTwentyAnalytics/internal/domain"
)

// Mirror publishes accepted broadcasts to Redis.
type Mirror struct {
	client *redis.Client
}

// NewMirror creates a mirror over an established client.
func NewMirror(client *redis.Client) *Mirror {
	return &Mirror{client: client}
}

// Publish stores record as the latest snapshot and bumps the accepted
// counters.
func (m *Mirror) Publish(ctx context.Context, record *domain.BroadcastRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast for mirror: %w", err)
	}

	pipe := m.client.Pipeline()
	pipe.Set(ctx, KeyLatest, data, 0)
	pipe.Incr(ctx, KeyAcceptedCount)
	pipe.Incr(ctx, ModuleCountKey(record.ModuleID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mirror broadcast: %w", err)
	}
	return nil
}

// Latest retrieves the mirrored snapshot, when one exists.
func (m *Mirror) Latest(ctx context.Context) (json.RawMessage, error) {
	data, err := m.client.Get(ctx, KeyLatest).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read mirrored snapshot: %w", err)
	}
	return data, nil
}
