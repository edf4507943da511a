package dashboard

import (
	"context"
	"time"

	"GalaPilot/internal/dex"
	"GalaPilot/internal/ledger"
	"GalaPilot/internal/model"
	"GalaPilot/internal/stats"
)

// Snapshot is everything one refresh of the dashboard displays. Fields are
// filled independently; a failed source leaves its field nil and the view
// renders a placeholder instead.
type Snapshot struct {
	Summary   *stats.Summary
	Portfolio *model.Portfolio
	Swaps     *dex.SwapTotals
	Actions   []model.ActionRecord
	NextRun   time.Duration
	UpdatedAt time.Time

	PortfolioErr error
	SwapsErr     error
}

// Collector assembles snapshots from the ledgers and remote read endpoints.
type Collector struct {
	Dex     dex.Client
	Scan    *dex.ScanClient
	Prices  *ledger.PriceLedger
	Gate    *ledger.RunGate
	Actions *ledger.ActionLedger
	User    string
}

// Collect builds one snapshot. It never fails outright: unreachable sources
// are reported per-field.
func (c *Collector) Collect(ctx context.Context) *Snapshot {
	now := time.Now()
	snap := &Snapshot{UpdatedAt: now, Actions: c.Actions.Records()}

	if samples := c.Prices.Samples(); len(samples) > 0 {
		snap.Summary, _ = stats.Summarize(samples, now)
	}
	if ok, wait := c.Gate.TryAcquire(now); !ok {
		snap.NextRun = wait
	}

	snap.Portfolio, snap.PortfolioErr = c.Dex.UserAssets(ctx, c.User, 1, 20)
	if c.Scan != nil {
		snap.Swaps, snap.SwapsErr = c.Scan.SwapTotals(ctx, c.User)
	}
	return snap
}
