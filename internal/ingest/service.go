package ingest

import (
	"context"
	"sync"

	"github.com/zbreeden/FourTwentyAnalytics/internal/assign"
	"github.com/zbreeden/FourTwentyAnalytics/internal/clock"
	"github.com/zbreeden/FourTwentyAnalytics/internal/domain"
	"github.com/zbreeden/FourTwentyAnalytics/internal/enrich"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/ledger"
	redisstore "github.com/zbreeden/FourTwentyAnalytics/internal/store/redis"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/snapshot"
)

// Service sequences a submission through normalization, validation,
// timestamping, identifier assignment, enrichment and persistence.
//
// A single writer mutex spans the identifier scan through the snapshot
// swap: the uniqueness check and the snapshot read-modify-write-rename must
// never race against a concurrent submission, and the lock is the explicit
// mutual-exclusion boundary that makes concurrent HTTP connections safe.
type Service struct {
	mu sync.Mutex

	seeds     *seeds.Loader
	clock     *clock.Authority
	ledger    *ledger.Ledger
	snapshots *snapshot.Store
	mirror    *redisstore.Mirror // nil when no mirror is configured
	logger    logger.Logger
}

// New wires an ingestion service. mirror may be nil.
func New(
	seedLoader *seeds.Loader,
	authority *clock.Authority,
	l *ledger.Ledger,
	snapshots *snapshot.Store,
	mirror *redisstore.Mirror,
	log logger.Logger,
) *Service {
	return &Service{
		seeds:     seedLoader,
		clock:     authority,
		ledger:    l,
		snapshots: snapshots,
		mirror:    mirror,
		logger:    log,
	}
}

// Submit processes one broadcast submission and returns the accepted
// record. A *ValidationError return means nothing was written; a
// *PersistenceError means the ledger could not record the submission and no
// identifier was consumed. Snapshot and mirror failures are logged and
// swallowed: once the ledger row is on disk the submission has succeeded.
func (s *Service) Submit(ctx context.Context, payload Payload) (*domain.BroadcastRecord, error) {
	payload = Normalize(payload)

	// Catalogs are read fresh per submission so seed edits apply
	// immediately.
	catalog := s.seeds.Load()

	if verr := Validate(payload, catalog); verr != nil {
		return nil, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, date := s.clock.Stamp()

	if err := s.ledger.EnsureSchema(); err != nil {
		return nil, &PersistenceError{Op: "failed to prepare ledger", Err: err}
	}
	existing, err := s.ledger.Identifiers()
	if err != nil {
		return nil, &PersistenceError{Op: "failed to check existing ledger", Err: err}
	}

	moduleID := payload.String("moduleId")
	rating := payload.String("broadcastRating")
	statusID := payload.String("statusId")

	base := payload.String("broadcastId")
	if base == "" {
		base = assign.BaseID(moduleID, s.clock.Now())
	}

	record := &domain.BroadcastRecord{
		ID:         assign.Resolve(base, existing),
		Timestamp:  ts,
		Date:       date,
		ModuleID:   moduleID,
		Rating:     rating,
		Name:       payload.String("broadcastName"),
		Summary:    payload.String("broadcastSummary"),
		StatusID:   statusID,
		GitLink:    payload.String("artifactGitLink"),
		TagKeys:    payload.Tags(),
		GlyphIcons: enrich.GlyphIcons(moduleID, catalog),
		StatusIcon: enrich.StatusIcon(rating, statusID, catalog),
	}

	if err := s.ledger.Append(record); err != nil {
		return nil, &PersistenceError{Op: "failed to write ledger row", Err: err}
	}

	// The ledger append is the authoritative record of acceptance; the
	// snapshot files and the mirror are best-effort read-side caches.
	if err := s.snapshots.Publish(record); err != nil {
		s.logger.Warn("failed to update signals snapshot",
			logger.String("broadcast_id", record.ID),
			logger.Error(err))
	}
	if s.mirror != nil {
		if err := s.mirror.Publish(ctx, record); err != nil {
			s.logger.Warn("failed to mirror broadcast to redis",
				logger.String("broadcast_id", record.ID),
				logger.Error(err))
		}
	}

	s.logger.Info("broadcast accepted",
		logger.String("broadcast_id", record.ID),
		logger.String("module_id", record.ModuleID),
		logger.String("rating", record.Rating))

	return record, nil
}
