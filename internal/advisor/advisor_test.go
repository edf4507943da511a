package advisor

import (
	"errors"
	"strings"
	"testing"
	"time"

	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

func TestParseDecision_PlainJSON(t *testing.T) {
	reply := `{"reasoning":"price dropped","action":{"action":"buy","token":"GALA","amount":12.5}}`
	d, err := ParseDecision(reply)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Reasoning != "price dropped" {
		t.Errorf("reasoning = %q", d.Reasoning)
	}
	if d.Action.Action != model.SideBuy || d.Action.Token != "GALA" {
		t.Errorf("unexpected action: %+v", d.Action)
	}
	if !d.Action.Amount.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("amount = %s", d.Action.Amount)
	}
}

func TestParseDecision_FencedEqualsUnfenced(t *testing.T) {
	plain := `{"reasoning":"x","action":{"action":"sell","token":"GALA","amount":90}}`
	fenced := "```json\n" + plain + "\n```"

	a, err := ParseDecision(plain)
	if err != nil {
		t.Fatalf("parse plain: %v", err)
	}
	b, err := ParseDecision(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if a.Reasoning != b.Reasoning {
		t.Errorf("reasoning differs: %q vs %q", a.Reasoning, b.Reasoning)
	}
	if a.Action.Action != b.Action.Action || a.Action.Token != b.Action.Token {
		t.Errorf("action differs: %+v vs %+v", a.Action, b.Action)
	}
	if !a.Action.Amount.Equal(b.Action.Amount) {
		t.Errorf("amount differs: %s vs %s", a.Action.Amount, b.Action.Amount)
	}
}

func TestParseDecision_FenceWithoutLanguageTag(t *testing.T) {
	reply := "```\n{\"reasoning\":\"y\",\"action\":{\"action\":\"buy\",\"token\":\"GALA\",\"amount\":1}}\n```"
	if _, err := ParseDecision(reply); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestParseDecision_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I think you should buy GALA."},
		{"missing action", `{"reasoning":"x","action":{"token":"GALA","amount":5}}`},
		{"unknown action", `{"reasoning":"x","action":{"action":"hold","token":"GALA","amount":5}}`},
		{"missing token", `{"reasoning":"x","action":{"action":"buy","amount":5}}`},
		{"zero amount", `{"reasoning":"x","action":{"action":"buy","token":"GALA","amount":0}}`},
		{"negative amount", `{"reasoning":"x","action":{"action":"sell","token":"GALA","amount":-3}}`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDecision(tt.reply)
			if err == nil {
				t.Fatal("expected parse error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Raw != tt.reply {
				t.Errorf("ParseError.Raw = %q, want original reply", perr.Raw)
			}
		})
	}
}

func TestBuildPrompt_Contents(t *testing.T) {
	history := "0.017,2025-06-01T12:00:00Z\n0.016,2025-06-01T11:00:00Z\n"
	balances := []model.TokenBalance{
		{Symbol: "GALA", Quantity: decimal.NewFromInt(100)},
		{Symbol: "GUSDC", Quantity: decimal.NewFromInt(50)},
	}
	records := []model.ActionRecord{
		{ // newest
			Timestamp: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
			Reasoning: "second decision",
			Action:    model.CandidateAction{Action: model.SideSell, Token: "GALA", Amount: decimal.NewFromInt(20)},
			Result:    "ok",
		},
		{ // oldest
			Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			Reasoning: "first decision",
			Action:    model.CandidateAction{Action: model.SideBuy, Token: "GALA", Amount: decimal.NewFromInt(10)},
			Result:    "ok",
		},
	}

	prompt := BuildPrompt(history, balances, records)

	if !strings.Contains(prompt, history) {
		t.Error("prompt missing verbatim price history")
	}
	if !strings.Contains(prompt, "GALA") || !strings.Contains(prompt, "GUSDC") {
		t.Error("prompt missing balances")
	}
	// Oldest record must replay as Step 1.
	first := strings.Index(prompt, "first decision")
	second := strings.Index(prompt, "second decision")
	if first == -1 || second == -1 {
		t.Fatal("prompt missing action replay")
	}
	if first > second {
		t.Error("action replay not oldest-first")
	}
	if !strings.Contains(prompt, "Step 1:\nReasoning: first decision") {
		t.Error("oldest record should be Step 1")
	}
}

func TestBuildPrompt_EmptyInputs(t *testing.T) {
	prompt := BuildPrompt("", nil, nil)
	if !strings.Contains(prompt, "trading assistant") {
		t.Error("prompt missing instructions")
	}
	if strings.Contains(prompt, "Step 1") {
		t.Error("empty history should produce no replay steps")
	}
}
