package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSample is a single observed market price. Immutable once recorded;
// samples older than the retention window are pruned on the next write.
type PriceSample struct {
	Price      decimal.Decimal
	ObservedAt time.Time
}
