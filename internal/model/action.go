package model

import "time"

// ActionRecord is one entry of the bounded decision history. The ledger is
// the only feedback channel from past runs into future prompts.
type ActionRecord struct {
	Timestamp time.Time       `json:"timestamp"`
	Reasoning string          `json:"reasoning"`
	Action    CandidateAction `json:"action"`
	Result    string          `json:"result"`
}
