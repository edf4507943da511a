package dex

import (
	"context"

	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

// Composite token keys used by the DEX backend. Read endpoints use the
// dollar-delimited form, swap endpoints the pipe-delimited form.
const (
	PriceKeyGALA  = "GALA$Unit$none$none"
	PriceKeyGUSDC = "GUSDC$Unit$none$none"
	SwapKeyGALA   = "GALA|Unit|none|none"
	SwapKeyGUSDC  = "GUSDC|Unit|none|none"
)

// Quote is an exchange-provided estimate for an exact-input swap.
type Quote struct {
	FeeTier   int
	AmountOut decimal.Decimal
}

// SwapRequest describes an exact-input swap submission.
type SwapRequest struct {
	TokenIn          string
	TokenOut         string
	FeeTier          int
	ExactIn          decimal.Decimal
	AmountOutMinimum decimal.Decimal
	Recipient        string
}

// Pending is a submitted swap awaiting its terminal settlement state.
type Pending interface {
	TransactionID() string
	// Wait blocks until the swap settles and returns the settlement message.
	// A failed settlement is reported as an error.
	Wait(ctx context.Context) (string, error)
}

// Client defines the surface of the DEX backend the agent needs.
type Client interface {
	CurrentPrice(ctx context.Context, token string) (decimal.Decimal, error)
	UserAssets(ctx context.Context, user string, page, limit int) (*model.Portfolio, error)
	QuoteExactInput(ctx context.Context, tokenIn, tokenOut string, amountIn decimal.Decimal) (*Quote, error)
	Swap(ctx context.Context, req SwapRequest) (Pending, error)
}
