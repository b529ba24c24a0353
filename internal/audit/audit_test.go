package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAuditor_Record(t *testing.T) {
	dir := t.TempDir()
	auditor := NewAuditor(dir)

	auditor.Record("login", "a@x.com", OutcomeFailure, "invalid email or password")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() unexpected error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d audit files, want 1", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error = %v", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("Unmarshal() unexpected error = %v", err)
	}
	if event.Action != "login" || event.Email != "a@x.com" || event.Outcome != OutcomeFailure {
		t.Errorf("event = %+v", event)
	}
	if event.ID == "" {
		t.Error("event.ID is empty")
	}
}

func TestAuditor_Prune(t *testing.T) {
	dir := t.TempDir()
	auditor := NewAuditor(dir)

	auditor.Record("register", "old@x.com", OutcomeSuccess, "")
	auditor.Record("register", "new@x.com", OutcomeSuccess, "")

	// Age one file past the cutoff.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() unexpected error = %v", err)
	}
	old := filepath.Join(dir, entries[0].Name())
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("Chtimes() unexpected error = %v", err)
	}

	removed, err := auditor.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune() unexpected error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed = %d, want 1", removed)
	}

	remaining, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() unexpected error = %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("got %d files after prune, want 1", len(remaining))
	}
}

func TestAuditor_Prune_MissingDir(t *testing.T) {
	auditor := NewAuditor(filepath.Join(t.TempDir(), "does-not-exist"))

	removed, err := auditor.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune() unexpected error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Prune() removed = %d, want 0", removed)
	}
}
