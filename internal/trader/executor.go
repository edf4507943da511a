package trader

import (
	"context"
	"fmt"

	"GalaPilot/internal/dex"
	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "trader")

// Outcome is the terminal state of an executed instruction. Settlement
// failures are reported here, not as errors: they still become a ledger
// entry so the next run can see what happened.
type Outcome struct {
	TransactionID string
	Result        string
	Settled       bool
}

// Executor turns a sanitized instruction into a quoted, slippage-bounded
// swap against the DEX backend.
type Executor struct {
	dex      dex.Client
	user     string
	slippage decimal.Decimal
}

// NewExecutor creates an executor. slippage is the fraction of the quoted
// output accepted as minimum, e.g. 0.95 for a 5% tolerance.
func NewExecutor(client dex.Client, user string, slippage decimal.Decimal) *Executor {
	return &Executor{dex: client, user: user, slippage: slippage}
}

// Execute quotes, submits and awaits one swap. Quote and submission errors
// are returned to the caller (the run aborts with no ledger entry);
// settlement failures are folded into the Outcome.
func (e *Executor) Execute(ctx context.Context, instr *model.TradeInstruction) (*Outcome, error) {
	quote, err := e.dex.QuoteExactInput(ctx, instr.TokenIn, instr.TokenOut, instr.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("quote %s -> %s: %w", instr.TokenIn, instr.TokenOut, err)
	}
	minOut := quote.AmountOut.Mul(e.slippage)
	log.Infof("quoted %s %s -> %s %s (fee tier %d, min out %s)",
		instr.AmountIn, instr.TokenIn, quote.AmountOut, instr.TokenOut, quote.FeeTier, minOut)

	pending, err := e.dex.Swap(ctx, dex.SwapRequest{
		TokenIn:          instr.TokenIn,
		TokenOut:         instr.TokenOut,
		FeeTier:          quote.FeeTier,
		ExactIn:          instr.AmountIn,
		AmountOutMinimum: minOut,
		Recipient:        e.user,
	})
	if err != nil {
		return nil, fmt.Errorf("submit swap: %w", err)
	}
	log.Infof("swap transaction submitted: %s", pending.TransactionID())

	message, err := pending.Wait(ctx)
	if err != nil {
		log.Errorf("swap %s settlement failed: %v", pending.TransactionID(), err)
		return &Outcome{
			TransactionID: pending.TransactionID(),
			Result:        fmt.Sprintf("settlement failed: %v", err),
			Settled:       false,
		}, nil
	}
	log.Infof("swap %s completed: %s", pending.TransactionID(), message)
	return &Outcome{
		TransactionID: pending.TransactionID(),
		Result:        message,
		Settled:       true,
	}, nil
}
