package ledger

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RunGate enforces the minimum interval between runs. The persisted state is
// a single epoch-milliseconds value. The check is advisory: invocations are
// assumed to be serialized externally, so there is no cross-process lock.
type RunGate struct {
	path        string
	minInterval time.Duration
}

// NewRunGate creates a gate backed by the given file.
func NewRunGate(path string, minInterval time.Duration) *RunGate {
	return &RunGate{path: path, minInterval: minInterval}
}

// TryAcquire reports whether a run may proceed at now. When blocked, the
// second return value is the remaining wait. A missing or unparseable state
// file means no prior run and the gate opens. The caller must Commit
// immediately after a successful acquire.
func (g *RunGate) TryAcquire(now time.Time) (bool, time.Duration) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return true, 0
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true, 0
	}
	elapsed := now.Sub(time.UnixMilli(millis))
	if elapsed >= g.minInterval {
		return true, 0
	}
	return false, g.minInterval - elapsed
}

// Commit persists now as the last run timestamp.
func (g *RunGate) Commit(now time.Time) error {
	if err := ensureDir(g.path); err != nil {
		return fmt.Errorf("create last run dir: %w", err)
	}
	if err := os.WriteFile(g.path, []byte(strconv.FormatInt(now.UnixMilli(), 10)), 0o644); err != nil {
		return fmt.Errorf("write last run: %w", err)
	}
	return nil
}
