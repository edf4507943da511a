package policy

import (
	"fmt"

	"GalaPilot/internal/dex"
	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

// RejectError reports a candidate action that failed the safety policy. A
// rejected action stops the run before any trade; nothing is appended to the
// action ledger.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string { return "action rejected: " + e.Reason }

// Sanitize validates and clamps an untrusted candidate action against the
// current holdings. The guarantees are deliberately minimal: the fee reserve
// stays untouched after a sell, and only the two supported direction pairs
// pass. Position sizing is advisory, enforced only by the prompt.
func Sanitize(action model.CandidateAction, portfolio *model.Portfolio, latestPrice, feeReserve decimal.Decimal) (*model.TradeInstruction, error) {
	amount := action.Amount

	// Rule 1: a GALA sell may never dip into the fee reserve.
	if action.Token == "GALA" && action.Action == model.SideSell {
		sellable := portfolio.Quantity("GALA").Sub(feeReserve)
		if amount.GreaterThan(sellable) {
			amount = sellable
		}
		if !amount.IsPositive() {
			return nil, &RejectError{Reason: "insufficient balance after fee reserve"}
		}
	}

	// Rule 2: resolve the direction pair.
	switch {
	case action.Action == model.SideBuy && action.Token == "GALA":
		// Buying GALA spends the stable token; the requested amount is
		// converted to stable terms at the latest recorded price.
		if !latestPrice.IsPositive() {
			return nil, &RejectError{Reason: "no recorded price to convert buy amount"}
		}
		clamped := action
		clamped.Amount = amount
		return &model.TradeInstruction{
			TokenIn:  dex.SwapKeyGUSDC,
			TokenOut: dex.SwapKeyGALA,
			AmountIn: amount.Mul(latestPrice),
			Action:   clamped,
		}, nil

	case action.Action == model.SideSell && action.Token == "GALA":
		clamped := action
		clamped.Amount = amount
		return &model.TradeInstruction{
			TokenIn:  dex.SwapKeyGALA,
			TokenOut: dex.SwapKeyGUSDC,
			AmountIn: amount,
			Action:   clamped,
		}, nil

	default:
		return nil, &RejectError{
			Reason: fmt.Sprintf("invalid instruction: %s %s", action.Action, action.Token),
		}
	}
}
