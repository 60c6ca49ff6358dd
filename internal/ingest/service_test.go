package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zbreeden/FourTwentyAnalytics/internal/clock"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/ledger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/snapshot"
)

type fixture struct {
	service   *Service
	ledger    *ledger.Ledger
	snapshots *snapshot.Store
	seedsDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	seedsDir := filepath.Join(root, "seeds")
	if err := os.MkdirAll(seedsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	l := ledger.New(filepath.Join(root, "data", "internal", "broadcast.csv"))
	snapshots := snapshot.New(filepath.Join(root, "signals"))

	authority := clock.New("UTC").WithNow(func() time.Time {
		return time.Date(2025, 9, 1, 14, 22, 33, 0, time.UTC)
	})

	return &fixture{
		service:   New(seeds.NewLoader(seedsDir), authority, l, snapshots, nil, logger.Nop()),
		ledger:    l,
		snapshots: snapshots,
		seedsDir:  seedsDir,
	}
}

func (f *fixture) writeSeed(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(f.seedsDir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func pulsePayload() Payload {
	return Payload{
		"moduleId":        "signals-core",
		"broadcastRating": "critical",
		"broadcastName":   "Pulse check",
	}
}

func TestSubmitFirstBroadcast(t *testing.T) {
	f := newFixture(t)

	rec, err := f.service.Submit(context.Background(), pulsePayload())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	wantID := "20250901T142233Z-FourTwentyAnalytics-signals-core"
	if rec.ID != wantID {
		t.Errorf("id = %q, want %q (no numeric suffix on an empty ledger)", rec.ID, wantID)
	}
	if rec.Date != "2025-09-01" {
		t.Errorf("date = %q, want server date in fixed zone", rec.Date)
	}
	if rec.Timestamp == "" || rec.Timestamp[:10] != rec.Date {
		t.Errorf("timestamp %q does not open with date %q", rec.Timestamp, rec.Date)
	}

	ids, err := f.ledger.Identifiers()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ids[wantID]; !ok {
		t.Error("ledger is missing the accepted row")
	}

	latest, ok := f.snapshots.Latest()
	if !ok {
		t.Fatal("latest snapshot not written")
	}
	var obj struct {
		ID string `json:"broadcast.id"`
	}
	if err := json.Unmarshal(latest, &obj); err != nil {
		t.Fatal(err)
	}
	if obj.ID != wantID {
		t.Errorf("latest snapshot id = %q, want %q", obj.ID, wantID)
	}
}

func TestSubmitDuplicateGetsSuffix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Submit(ctx, pulsePayload())
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.service.Submit(ctx, pulsePayload())
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID+"-1" {
		t.Errorf("second id = %q, want %q", second.ID, first.ID+"-1")
	}

	archive := f.snapshots.Archive()
	if len(archive) != 1 {
		t.Fatalf("archive has %d entries, want 1", len(archive))
	}
	var archived struct {
		ID string `json:"broadcast.id"`
	}
	if err := json.Unmarshal(archive[0], &archived); err != nil {
		t.Fatal(err)
	}
	if archived.ID != first.ID {
		t.Errorf("archive head = %q, want first submission %q", archived.ID, first.ID)
	}
}

func TestSubmitClientSuppliedIDCollision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload := pulsePayload()
	payload["broadcastId"] = "my-id"

	first, err := f.service.Submit(ctx, payload)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != "my-id" {
		t.Errorf("first id = %q, want client-supplied my-id", first.ID)
	}

	second, err := f.service.Submit(ctx, payload)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != "my-id-1" {
		t.Errorf("colliding client id resolved to %q, want my-id-1", second.ID)
	}
}

func TestSubmitIgnoresClientTimestamp(t *testing.T) {
	f := newFixture(t)

	payload := pulsePayload()
	payload["timestamp"] = "1999-01-01T00:00:00Z"
	payload["ts.utc5"] = "1999-01-01T00:00:00Z"

	rec, err := f.service.Submit(context.Background(), payload)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Date != "2025-09-01" {
		t.Errorf("date = %q, client timestamp must be ignored", rec.Date)
	}
}

func TestSubmitRejectionsLeaveNoFiles(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		seeds   map[string]string
		want    string
	}{
		{
			name:    "empty module id",
			payload: Payload{"moduleId": ""},
			want:    "moduleId is required",
		},
		{
			name:    "rating outside allowed set",
			payload: Payload{"moduleId": "m", "broadcastRating": "apocalyptic"},
			want:    "invalid broadcastRating",
		},
		{
			name:    "unknown status with loaded catalog",
			payload: Payload{"moduleId": "m", "statusId": "nonexistent"},
			seeds:   map[string]string{"statuses.yml": "- id: active\n"},
			want:    "invalid statusId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for name, content := range tt.seeds {
				f.writeSeed(t, name, content)
			}

			_, err := f.service.Submit(context.Background(), tt.payload)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() error = %v, want ValidationError", err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}

			// Rejection happens before any side effect: the ledger file
			// is not even created.
			if _, statErr := os.Stat(f.ledger.Path()); !errors.Is(statErr, os.ErrNotExist) {
				t.Error("rejected submission touched the ledger")
			}
			if _, ok := f.snapshots.Latest(); ok {
				t.Error("rejected submission wrote a snapshot")
			}
		})
	}
}

func TestSubmitEnrichesFromSeeds(t *testing.T) {
	f := newFixture(t)
	f.writeSeed(t, "modules.yml", `---
- id: signals-core
  glyphs: [pulse]
`)
	f.writeSeed(t, "emoji_palette.yml", `glyph_icons:
  pulse: "📡"
status_icons:
  critical: "🚨"
`)

	rec, err := f.service.Submit(context.Background(), pulsePayload())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if rec.GlyphIcons != "📡" {
		t.Errorf("glyph icons = %q, want palette-mapped icon", rec.GlyphIcons)
	}
	if rec.StatusIcon != "🚨" {
		t.Errorf("status icon = %q, want rating-keyed icon", rec.StatusIcon)
	}
}

func TestSubmitSeedEditsApplyImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No module catalog yet: any module id passes.
	if _, err := f.service.Submit(ctx, pulsePayload()); err != nil {
		t.Fatalf("Submit() without catalog error = %v", err)
	}

	// Catalog appears between requests and is honored on the next one.
	f.writeSeed(t, "modules.yml", "- id: other-module\n")
	_, err := f.service.Submit(ctx, pulsePayload())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "unknown moduleId" {
		t.Errorf("Submit() after catalog edit = %v, want unknown moduleId", err)
	}
}

func TestSubmitArchiveOrderAfterSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		rec, err := f.service.Submit(ctx, pulsePayload())
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, rec.ID)
	}

	latest, ok := f.snapshots.Latest()
	if !ok {
		t.Fatal("no latest snapshot")
	}
	var latestObj struct {
		ID string `json:"broadcast.id"`
	}
	if err := json.Unmarshal(latest, &latestObj); err != nil {
		t.Fatal(err)
	}
	if latestObj.ID != ids[3] {
		t.Errorf("latest = %q, want last accepted %q", latestObj.ID, ids[3])
	}

	archive := f.snapshots.Archive()
	if len(archive) != 3 {
		t.Fatalf("archive has %d entries, want 3", len(archive))
	}
	for i, wantIdx := range []int{2, 1, 0} {
		var obj struct {
			ID string `json:"broadcast.id"`
		}
		if err := json.Unmarshal(archive[i], &obj); err != nil {
			t.Fatal(err)
		}
		if obj.ID != ids[wantIdx] {
			t.Errorf("archive[%d] = %q, want %q (reverse-chronological)", i, obj.ID, ids[wantIdx])
		}
	}
}
