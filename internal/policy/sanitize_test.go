package policy

import (
	"errors"
	"testing"

	"GalaPilot/internal/dex"
	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

func portfolio(gala, gusdc int64) *model.Portfolio {
	return &model.Portfolio{
		Balances: []model.TokenBalance{
			{Symbol: "GALA", Quantity: decimal.NewFromInt(gala)},
			{Symbol: "GUSDC", Quantity: decimal.NewFromInt(gusdc)},
		},
		Count: 2,
	}
}

var feeReserve = decimal.NewFromInt(10)

func TestSanitize_SellWithinBalance(t *testing.T) {
	// 100 GALA, sell 90: exactly the sellable maximum, no clamp needed.
	action := model.CandidateAction{Action: model.SideSell, Token: "GALA", Amount: decimal.NewFromInt(90)}
	instr, err := Sanitize(action, portfolio(100, 50), decimal.NewFromFloat(0.016), feeReserve)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if !instr.AmountIn.Equal(decimal.NewFromInt(90)) {
		t.Errorf("amountIn = %s, want 90", instr.AmountIn)
	}
	if instr.TokenIn != dex.SwapKeyGALA || instr.TokenOut != dex.SwapKeyGUSDC {
		t.Errorf("wrong direction: %s -> %s", instr.TokenIn, instr.TokenOut)
	}
}

func TestSanitize_SellClampedToReserve(t *testing.T) {
	// 12 GALA, sell 10: only 2 are sellable above the reserve.
	action := model.CandidateAction{Action: model.SideSell, Token: "GALA", Amount: decimal.NewFromInt(10)}
	instr, err := Sanitize(action, portfolio(12, 0), decimal.NewFromFloat(0.016), feeReserve)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if !instr.AmountIn.Equal(decimal.NewFromInt(2)) {
		t.Errorf("amountIn = %s, want 2", instr.AmountIn)
	}
	if !instr.Action.Amount.Equal(decimal.NewFromInt(2)) {
		t.Errorf("clamped action amount = %s, want 2", instr.Action.Amount)
	}
}

func TestSanitize_SellBelowReserveRejected(t *testing.T) {
	// 8 GALA, sell 5: nothing sellable above the reserve of 10.
	action := model.CandidateAction{Action: model.SideSell, Token: "GALA", Amount: decimal.NewFromInt(5)}
	_, err := Sanitize(action, portfolio(8, 0), decimal.NewFromFloat(0.016), feeReserve)
	var rej *RejectError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectError, got %v", err)
	}
	if rej.Reason != "insufficient balance after fee reserve" {
		t.Errorf("reason = %q", rej.Reason)
	}
}

func TestSanitize_ClampNeverExceedsSellable(t *testing.T) {
	balances := []int64{0, 5, 10, 11, 50, 1000}
	amounts := []int64{1, 10, 100, 10000}
	for _, bal := range balances {
		for _, amt := range amounts {
			action := model.CandidateAction{Action: model.SideSell, Token: "GALA", Amount: decimal.NewFromInt(amt)}
			instr, err := Sanitize(action, portfolio(bal, 0), decimal.NewFromFloat(0.02), feeReserve)
			sellable := decimal.NewFromInt(bal).Sub(feeReserve)
			if !sellable.IsPositive() {
				if err == nil {
					t.Errorf("balance %d amount %d: expected rejection", bal, amt)
				}
				continue
			}
			if err != nil {
				t.Errorf("balance %d amount %d: unexpected error %v", bal, amt, err)
				continue
			}
			if instr.AmountIn.GreaterThan(sellable) {
				t.Errorf("balance %d amount %d: amountIn %s exceeds sellable %s", bal, amt, instr.AmountIn, sellable)
			}
			if !instr.AmountIn.IsPositive() {
				t.Errorf("balance %d amount %d: non-positive amountIn %s", bal, amt, instr.AmountIn)
			}
		}
	}
}

func TestSanitize_BuyConvertsAtLatestPrice(t *testing.T) {
	price := decimal.NewFromFloat(0.016)
	action := model.CandidateAction{Action: model.SideBuy, Token: "GALA", Amount: decimal.NewFromInt(500)}
	instr, err := Sanitize(action, portfolio(100, 50), price, feeReserve)
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if instr.TokenIn != dex.SwapKeyGUSDC || instr.TokenOut != dex.SwapKeyGALA {
		t.Errorf("wrong direction: %s -> %s", instr.TokenIn, instr.TokenOut)
	}
	want := decimal.NewFromInt(500).Mul(price)
	if !instr.AmountIn.Equal(want) {
		t.Errorf("amountIn = %s, want %s", instr.AmountIn, want)
	}
}

func TestSanitize_BuyWithoutPriceRejected(t *testing.T) {
	action := model.CandidateAction{Action: model.SideBuy, Token: "GALA", Amount: decimal.NewFromInt(10)}
	_, err := Sanitize(action, portfolio(100, 50), decimal.Zero, feeReserve)
	var rej *RejectError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectError, got %v", err)
	}
}

func TestSanitize_InvalidPairsRejected(t *testing.T) {
	tests := []model.CandidateAction{
		{Action: model.SideBuy, Token: "GUSDC", Amount: decimal.NewFromInt(5)},
		{Action: model.SideSell, Token: "GUSDC", Amount: decimal.NewFromInt(5)},
		{Action: model.SideSell, Token: "DOGE", Amount: decimal.NewFromInt(5)},
	}
	for _, action := range tests {
		_, err := Sanitize(action, portfolio(100, 50), decimal.NewFromFloat(0.016), feeReserve)
		var rej *RejectError
		if !errors.As(err, &rej) {
			t.Errorf("%s %s: expected RejectError, got %v", action.Action, action.Token, err)
		}
	}
}
