package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"GalaPilot/internal/model"
)

// ActionLedger is the bounded decision history, persisted as a JSON array,
// newest first. Append is the only mutation: entries are never edited or
// removed individually, the oldest simply fall off the end.
type ActionLedger struct {
	path string
	max  int
}

// NewActionLedger creates a ledger that retains at most max entries.
func NewActionLedger(path string, max int) *ActionLedger {
	return &ActionLedger{path: path, max: max}
}

// Records returns the stored history, newest first. A missing or corrupt
// file reads as empty.
func (l *ActionLedger) Records() []model.ActionRecord {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var records []model.ActionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// Append inserts a record at the front, truncates to the retention cap and
// persists the whole ledger.
func (l *ActionLedger) Append(rec model.ActionRecord) error {
	records := append([]model.ActionRecord{rec}, l.Records()...)
	if len(records) > l.max {
		records = records[:l.max]
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal action history: %w", err)
	}
	if err := ensureDir(l.path); err != nil {
		return fmt.Errorf("create action history dir: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write action history: %w", err)
	}
	return nil
}
