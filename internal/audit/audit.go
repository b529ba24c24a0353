// Package audit records authentication events as JSON files on disk.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Outcomes recorded for auth events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Event is a single recorded authentication event.
type Event struct {
	ID      string    `json:"id"`
	Action  string    `json:"action"` // "register", "login", "confirm"
	Email   string    `json:"email"`
	Outcome string    `json:"outcome"`
	Detail  string    `json:"detail,omitempty"`
	Time    time.Time `json:"time"`
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Record saves an auth event as a JSON file with a UUID4 filename.
// Audit failures are logged, never propagated: auditing must not break the
// request that triggered it.
func (a *Auditor) Record(action, email, outcome, detail string) {
	if a == nil {
		return
	}
	event := Event{
		ID:      uuid.New().String(),
		Action:  action,
		Email:   email,
		Outcome: outcome,
		Detail:  detail,
		Time:    time.Now().UTC(),
	}

	if err := a.save(event); err != nil {
		log.Printf("WARNING: failed to record audit event: %v", err)
	}
}

func (a *Auditor) save(event Event) error {
	if err := a.ensureAuditDir(); err != nil {
		return fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", event.ID)
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write audit file: %w", err)
	}

	return nil
}

// Prune removes audit files older than the retention window.
// Returns the number of files removed.
func (a *Auditor) Prune(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(a.AuditDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read audit directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(a.AuditDir, entry.Name())); err != nil {
				log.Printf("WARNING: failed to remove audit file %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}

	return removed, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
