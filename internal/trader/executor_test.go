package trader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"GalaPilot/internal/dex"
	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

func instruction(amount int64) *model.TradeInstruction {
	return &model.TradeInstruction{
		TokenIn:  dex.SwapKeyGALA,
		TokenOut: dex.SwapKeyGUSDC,
		AmountIn: decimal.NewFromInt(amount),
		Action: model.CandidateAction{
			Action: model.SideSell,
			Token:  "GALA",
			Amount: decimal.NewFromInt(amount),
		},
	}
}

func TestExecute_AppliesSlippageFloor(t *testing.T) {
	mock := &dex.Mock{
		QuoteFeeTier:   3000,
		QuoteAmountOut: decimal.NewFromInt(100),
	}
	e := NewExecutor(mock, "client|abc", decimal.NewFromFloat(0.95))

	outcome, err := e.Execute(context.Background(), instruction(90))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !outcome.Settled {
		t.Error("expected settled outcome")
	}
	if mock.LastSwap == nil {
		t.Fatal("no swap submitted")
	}
	if mock.LastSwap.FeeTier != 3000 {
		t.Errorf("fee tier = %d, want quoted 3000", mock.LastSwap.FeeTier)
	}
	if !mock.LastSwap.ExactIn.Equal(decimal.NewFromInt(90)) {
		t.Errorf("exactIn = %s, want 90", mock.LastSwap.ExactIn)
	}
	want := decimal.NewFromInt(95)
	if !mock.LastSwap.AmountOutMinimum.Equal(want) {
		t.Errorf("amountOutMinimum = %s, want %s", mock.LastSwap.AmountOutMinimum, want)
	}
	if mock.LastSwap.Recipient != "client|abc" {
		t.Errorf("recipient = %q", mock.LastSwap.Recipient)
	}
}

func TestExecute_SettlementFailureBecomesOutcome(t *testing.T) {
	mock := &dex.Mock{
		QuoteAmountOut: decimal.NewFromInt(10),
		SettleErr:      errors.New("transaction reverted"),
	}
	e := NewExecutor(mock, "client|abc", decimal.NewFromFloat(0.95))

	outcome, err := e.Execute(context.Background(), instruction(5))
	if err != nil {
		t.Fatalf("settlement failure must not be an error: %v", err)
	}
	if outcome.Settled {
		t.Error("expected unsettled outcome")
	}
	if !strings.Contains(outcome.Result, "transaction reverted") {
		t.Errorf("result %q should carry the failure text", outcome.Result)
	}
	if outcome.TransactionID == "" {
		t.Error("expected transaction id even on failure")
	}
}

func TestExecute_QuoteErrorPropagates(t *testing.T) {
	mock := &dex.Mock{QuoteErr: dex.ErrUnavailable}
	e := NewExecutor(mock, "client|abc", decimal.NewFromFloat(0.95))

	if _, err := e.Execute(context.Background(), instruction(5)); !errors.Is(err, dex.ErrUnavailable) {
		t.Fatalf("expected quote error to propagate, got %v", err)
	}
	if mock.SwapCount != 0 {
		t.Error("no swap should be submitted after a failed quote")
	}
}

func TestExecute_SubmitErrorPropagates(t *testing.T) {
	mock := &dex.Mock{
		QuoteAmountOut: decimal.NewFromInt(10),
		SwapErr:        dex.ErrUnavailable,
	}
	e := NewExecutor(mock, "client|abc", decimal.NewFromFloat(0.95))

	if _, err := e.Execute(context.Background(), instruction(5)); !errors.Is(err, dex.ErrUnavailable) {
		t.Fatalf("expected submit error to propagate, got %v", err)
	}
}
