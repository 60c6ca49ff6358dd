package sequence

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func at(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestNextIncrements(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ticket_seq.json")).WithNow(at(2025))

	want := []string{"TKT-2025-001", "TKT-2025-002", "TKT-2025-003"}
	for _, w := range want {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if got != w {
			t.Errorf("Next() = %q, want %q", got, w)
		}
	}
}

func TestNextPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticket_seq.json")

	first := New(path).WithNow(at(2025))
	if _, err := first.Next(); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Next(); err != nil {
		t.Fatal(err)
	}

	second := New(path).WithNow(at(2025))
	got, err := second.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got != "TKT-2025-003" {
		t.Errorf("Next() after reload = %q, want TKT-2025-003", got)
	}
}

func TestNextResetsOnYearRollover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticket_seq.json")

	s := New(path).WithNow(at(2025))
	for i := 0; i < 5; i++ {
		if _, err := s.Next(); err != nil {
			t.Fatal(err)
		}
	}

	s.WithNow(at(2026))
	got, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got != "TKT-2026-001" {
		t.Errorf("Next() after rollover = %q, want TKT-2026-001", got)
	}
}

func TestNextToleratesCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticket_seq.json")
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := New(path).WithNow(at(2025)).Next()
	if err != nil {
		t.Fatalf("Next() over corrupt state error = %v", err)
	}
	if got != "TKT-2025-001" {
		t.Errorf("Next() = %q, want restart at TKT-2025-001", got)
	}
}
