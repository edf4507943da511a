package recorder

import "time"

// RunRecord captures one agent run for offline analysis. It is written on
// every run that reaches a decision, including rejected and failed ones.
type RunRecord struct {
	Timestamp    time.Time
	Price        string
	GalaBalance  string
	GusdcBalance string
	Action       string
	Token        string
	Amount       string
	Reasoning    string
	TxID         string
	Result       string
	Status       string // "executed", "rejected", "failed"
}

// Recorder persists run records for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
