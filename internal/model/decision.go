package model

import "github.com/shopspring/decimal"

// Side is the trade direction requested by the reasoning service.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// CandidateAction is a trade instruction parsed from the reasoning reply.
// Untrusted until it passes the safety policy.
type CandidateAction struct {
	Action Side            `json:"action"`
	Token  string          `json:"token"`
	Amount decimal.Decimal `json:"amount"`
}

// Decision pairs the model's free-text reasoning with its proposed action.
type Decision struct {
	Reasoning string          `json:"reasoning"`
	Action    CandidateAction `json:"action"`
}

// TradeInstruction is a sanitized action resolved into swap input terms.
type TradeInstruction struct {
	TokenIn  string
	TokenOut string
	AmountIn decimal.Decimal
	// Action carries the post-clamp amount for the ledger entry.
	Action CandidateAction
}
