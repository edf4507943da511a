package dex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// SwapTotals aggregates the user's on-chain swap activity, for display only.
type SwapTotals struct {
	Count  int
	Volume decimal.Decimal // GALA terms
}

// ScanClient queries the block-explorer API. Monitoring only: the decision
// loop never consults it.
type ScanClient struct {
	client *resty.Client
}

// NewScanClient creates a client for the given explorer base URL.
func NewScanClient(baseURL string) *ScanClient {
	return &ScanClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
	}
}

type scanTransaction struct {
	Method string `json:"Method"`
	Amount string `json:"Amount"`
}

// SwapTotals fetches all transactions for a user and derives swap count and
// GALA volume.
func (s *ScanClient) SwapTotals(ctx context.Context, user string) (*SwapTotals, error) {
	var txs []scanTransaction
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&txs).
		Get("/api/all-transactions/" + user)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch transactions: status %d", resp.StatusCode())
	}

	totals := &SwapTotals{Volume: decimal.Zero}
	for _, tx := range txs {
		if !strings.Contains(tx.Method, "Swap") {
			continue
		}
		totals.Count++
		if amount, ok := parseScanAmount(tx.Amount, "GALA"); ok {
			totals.Volume = totals.Volume.Add(amount)
		}
	}
	return totals, nil
}

// parseScanAmount extracts the numeric part of explorer amounts formatted as
// "0.23462743:GALA".
func parseScanAmount(raw, symbol string) (decimal.Decimal, bool) {
	if !strings.Contains(raw, symbol) {
		return decimal.Zero, false
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
