package model

import "github.com/shopspring/decimal"

// TokenBalance is one held token. Rebuilt fresh from the account query on
// every run, never persisted.
type TokenBalance struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Portfolio is the result of a single account query.
type Portfolio struct {
	Balances []TokenBalance
	Count    int
}

// Quantity returns the held quantity of a symbol, zero when absent.
func (p *Portfolio) Quantity(symbol string) decimal.Decimal {
	for _, b := range p.Balances {
		if b.Symbol == symbol {
			return b.Quantity
		}
	}
	return decimal.Zero
}
