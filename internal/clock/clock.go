package clock

import "time"

// DefaultZone is the canonical reporting zone for broadcast timestamps.
const DefaultZone = "America/New_York"

// Authority computes the single server-authoritative submission time.
//
// Client-supplied timestamps are ignored entirely: every accepted record is
// stamped from the process clock, converted into one fixed named zone so the
// ledger reads consistently regardless of where a submission came from.
type Authority struct {
	loc      *time.Location
	fallback bool
	now      func() time.Time
}

// New builds an Authority for the named zone. When the zone database cannot
// resolve the name the Authority degrades to UTC instead of failing, and
// UsingFallback reports it.
func New(zone string) *Authority {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return &Authority{loc: time.UTC, fallback: true, now: time.Now}
	}
	return &Authority{loc: loc, now: time.Now}
}

// WithNow overrides the clock source. For tests.
func (a *Authority) WithNow(now func() time.Time) *Authority {
	a.now = now
	return a
}

// UsingFallback reports whether the named zone was unavailable and UTC is
// in use instead.
func (a *Authority) UsingFallback() bool { return a.fallback }

// Now returns the current time in the authority's zone.
func (a *Authority) Now() time.Time {
	return a.now().In(a.loc)
}

// Stamp returns the zoned timestamp string and its derived calendar date.
func (a *Authority) Stamp() (ts string, date string) {
	now := a.Now()
	return now.Format("2006-01-02T15:04:05-07:00"), now.Format("2006-01-02")
}
