package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

// PriceLedger persists the rolling price history as newline-delimited
// "price,RFC3339-timestamp" text, newest first. Samples older than the
// retention window are pruned on every write. Malformed lines are treated
// as absent, never fatal: the file may be mid-write while the dashboard
// reads it.
type PriceLedger struct {
	path      string
	retention time.Duration
}

// NewPriceLedger creates a ledger backed by the given file.
func NewPriceLedger(path string, retention time.Duration) *PriceLedger {
	return &PriceLedger{path: path, retention: retention}
}

// Record prepends a sample and prunes everything older than the retention
// window relative to now.
func (l *PriceLedger) Record(price decimal.Decimal, now time.Time) error {
	samples := l.Samples()
	kept := make([]model.PriceSample, 0, len(samples)+1)
	kept = append(kept, model.PriceSample{Price: price, ObservedAt: now})
	cutoff := now.Add(-l.retention)
	for _, s := range samples {
		if !s.ObservedAt.Before(cutoff) {
			kept = append(kept, s)
		}
	}

	var b strings.Builder
	for _, s := range kept {
		b.WriteString(s.Price.String())
		b.WriteByte(',')
		b.WriteString(s.ObservedAt.UTC().Format(time.RFC3339Nano))
		b.WriteByte('\n')
	}
	if err := ensureDir(l.path); err != nil {
		return fmt.Errorf("create price history dir: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write price history: %w", err)
	}
	return nil
}

// Samples returns the retained history, newest first. A missing or corrupt
// file reads as empty.
func (l *PriceLedger) Samples() []model.PriceSample {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var samples []model.PriceSample
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		samples = append(samples, model.PriceSample{Price: price, ObservedAt: ts})
	}
	return samples
}

// Latest returns the newest retained sample.
func (l *PriceLedger) Latest() (model.PriceSample, bool) {
	samples := l.Samples()
	if len(samples) == 0 {
		return model.PriceSample{}, false
	}
	return samples[0], true
}

// HistoryText returns the persisted history verbatim, for embedding into the
// reasoning prompt.
func (l *PriceLedger) HistoryText() string {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return ""
	}
	return string(data)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
