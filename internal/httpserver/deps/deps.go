package deps

import (
	"time"

	"github.com/zbreeden/FourTwentyAnalytics/internal/clock"
	"github.com/zbreeden/FourTwentyAnalytics/internal/ingest"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
	"github.com/zbreeden/FourTwentyAnalytics/internal/sequence"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/snapshot"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time  // for testing, defaults to time.Now
	Ingest        *ingest.Service   // broadcast submission pipeline
	Snapshots     *snapshot.Store   // latest/archive readers
	Seeds         *seeds.Loader     // seed catalog access for /debug
	Clock         *clock.Authority  // timestamp authority
	Sequence      *sequence.Service // ticket id allocator
	MirrorEnabled bool              // true when the Redis mirror is wired
}
