// Package snapshot maintains the signals directory: the single latest
// broadcast (latest.json) and a newest-first archive of every previously
// latest broadcast (archive.latest.json). Both files are replaced via
// write-to-temporary-then-rename so a reader never observes a torn file.
//
// The snapshot files are best-effort read-side caches; the CSV ledger is the
// authoritative record of acceptance.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zbreeden/FourTwentyAnalytics/internal/domain"
)

const (
	latestFile  = "latest.json"
	archiveFile = "archive.latest.json"
)

// Store manages the latest/archive pair under one directory.
type Store struct {
	dir string
}

// New creates a snapshot store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) latestPath() string  { return filepath.Join(s.dir, latestFile) }
func (s *Store) archivePath() string { return filepath.Join(s.dir, archiveFile) }

// Publish makes record the new latest snapshot, prepending the previous
// latest (when one exists) to the archive. A partial failure never leaves a
// half-written file; any errors from the two writes are joined and returned
// for the caller to log.
func (s *Store) Publish(record *domain.BroadcastRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create signals directory: %w", err)
	}

	var archiveErr error
	if prev, ok := s.readLatest(); ok {
		archive := s.readArchive()
		archive = append([]json.RawMessage{prev}, archive...)
		archiveErr = s.writeJSON(s.archivePath(), archive)
	}

	latestErr := s.writeJSON(s.latestPath(), record)
	return errors.Join(archiveErr, latestErr)
}

// Latest returns the current snapshot document, when a readable one exists.
func (s *Store) Latest() (json.RawMessage, bool) {
	return s.readLatest()
}

// Archive returns the archived snapshots, newest first. Missing or
// malformed content reads as empty.
func (s *Store) Archive() []json.RawMessage {
	return s.readArchive()
}

// readLatest tolerates a missing or malformed file as "no previous
// snapshot". Historical writers stored the latest as a single-item array;
// both shapes are accepted.
func (s *Store) readLatest() (json.RawMessage, bool) {
	data, err := os.ReadFile(s.latestPath())
	if err != nil {
		return nil, false
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false
	}

	if data[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(data, &arr); err != nil || len(arr) == 0 {
			return nil, false
		}
		return arr[0], true
	}

	if !json.Valid(data) {
		return nil, false
	}
	return json.RawMessage(data), true
}

func (s *Store) readArchive() []json.RawMessage {
	data, err := os.ReadFile(s.archivePath())
	if err != nil {
		return nil
	}
	var archive []json.RawMessage
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil
	}
	return archive
}

// writeJSON writes v to path atomically: marshal, write a sibling temporary
// file, then rename over the target.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
