package dex

import (
	"context"
	"errors"

	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

// Mock returns controllable fixed data for development and testing.
type Mock struct {
	Price     decimal.Decimal
	PriceErr  error
	Portfolio *model.Portfolio
	AssetsErr error

	QuoteFeeTier   int
	QuoteAmountOut decimal.Decimal
	QuoteErr       error

	SwapErr       error
	SettleMessage string
	SettleErr     error

	// Recorded calls for assertions.
	LastQuoteIn  decimal.Decimal
	LastSwap     *SwapRequest
	SwapCount    int
}

var _ Client = (*Mock)(nil)

func (m *Mock) CurrentPrice(_ context.Context, _ string) (decimal.Decimal, error) {
	if m.PriceErr != nil {
		return decimal.Zero, m.PriceErr
	}
	return m.Price, nil
}

func (m *Mock) UserAssets(_ context.Context, _ string, _, _ int) (*model.Portfolio, error) {
	if m.AssetsErr != nil {
		return nil, m.AssetsErr
	}
	if m.Portfolio == nil {
		return &model.Portfolio{}, nil
	}
	return m.Portfolio, nil
}

func (m *Mock) QuoteExactInput(_ context.Context, _, _ string, amountIn decimal.Decimal) (*Quote, error) {
	if m.QuoteErr != nil {
		return nil, m.QuoteErr
	}
	m.LastQuoteIn = amountIn
	return &Quote{FeeTier: m.QuoteFeeTier, AmountOut: m.QuoteAmountOut}, nil
}

func (m *Mock) Swap(_ context.Context, req SwapRequest) (Pending, error) {
	if m.SwapErr != nil {
		return nil, m.SwapErr
	}
	m.SwapCount++
	m.LastSwap = &req
	return &mockPending{message: m.SettleMessage, err: m.SettleErr}, nil
}

type mockPending struct {
	message string
	err     error
}

func (p *mockPending) TransactionID() string { return "mock-tx-1" }

func (p *mockPending) Wait(_ context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.message == "" {
		return "transaction processed", nil
	}
	return p.message, nil
}

// ErrUnavailable is a convenience error for simulating backend outages.
var ErrUnavailable = errors.New("dex backend unavailable")
