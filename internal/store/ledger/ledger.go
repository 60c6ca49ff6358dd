// Package ledger persists every accepted broadcast as one row of an
// append-only CSV file with a fixed, versionless column schema. The ledger
// is the sole source of truth: identifier uniqueness is checked against it,
// and a submission only counts as accepted once its row is on disk.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zbreeden/FourTwentyAnalytics/internal/domain"
)

// Ledger appends broadcast rows to a CSV file.
type Ledger struct {
	path string
}

// New creates a ledger backed by the CSV file at path.
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// EnsureSchema idempotently creates the parent directory and the ledger file
// with its header row. An existing file is left untouched.
func (l *Ledger) EnsureSchema() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat ledger file: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create ledger file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(domain.Header()); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger header: %w", err)
	}
	return f.Close()
}

// Append writes one row for record, in call order. No reordering and no
// deduplication happen here; identifier uniqueness was resolved upstream.
func (l *Ledger) Append(record *domain.BroadcastRecord) error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger for append: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(record.CSVRow()); err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger row: %w", err)
	}
	return f.Close()
}

// Identifiers returns the set of every broadcast id currently recorded.
// The scan is linear in ledger size, which is fine for a human-rate event
// log; a high-volume caller should maintain an index instead.
func (l *Ledger) Identifiers() (map[string]struct{}, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows from older writers

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger header: %w", err)
	}

	idCol := -1
	for i, col := range header {
		if col == "broadcast.id" {
			idCol = i
			break
		}
	}
	if idCol == -1 {
		return nil, fmt.Errorf("ledger header is missing the broadcast.id column")
	}

	ids := make(map[string]struct{})
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger row: %w", err)
		}
		if idCol < len(row) && row[idCol] != "" {
			ids[row[idCol]] = struct{}{}
		}
	}
	return ids, nil
}
