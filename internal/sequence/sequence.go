// Package sequence owns the monotonic ticket counter used by the authoring
// tools. State is persisted as a small JSON document and scoped to the
// calendar year: the counter resets to zero whenever the year rolls over.
package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type state struct {
	Year int `json:"year"`
	Seq  int `json:"seq"`
}

// Service hands out year-scoped ticket identifiers like TKT-2025-007.
type Service struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New creates a sequence service persisting state at path.
func New(path string) *Service {
	return &Service{path: path, now: time.Now}
}

// WithNow overrides the clock source. For tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Next increments the counter and returns the next ticket identifier.
// A missing or corrupt state file restarts the sequence for the current
// year rather than failing.
func (s *Service) Next() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.load()
	year := s.now().Year()
	if st.Year != year {
		st.Year = year
		st.Seq = 0
	}
	st.Seq++

	if err := s.save(st); err != nil {
		return "", err
	}
	return fmt.Sprintf("TKT-%d-%03d", st.Year, st.Seq), nil
}

func (s *Service) load() state {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return state{}
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}
	}
	return st
}

func (s *Service) save(st state) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal sequence state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create sequence directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sequence state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace sequence state: %w", err)
	}
	return nil
}
