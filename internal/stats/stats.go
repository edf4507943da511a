package stats

import (
	"errors"
	"time"

	"GalaPilot/internal/model"

	"github.com/shopspring/decimal"
)

// Summary condenses the retained price history into the figures shown on the
// dashboard and in notifications.
type Summary struct {
	Latest    decimal.Decimal
	Change24h decimal.Decimal // percent, zero when no sample is old enough
	High      decimal.Decimal
	Low       decimal.Decimal
	SMA       decimal.Decimal
	Samples   int
}

// Summarize computes a Summary from newest-first samples.
func Summarize(samples []model.PriceSample, now time.Time) (*Summary, error) {
	if len(samples) == 0 {
		return nil, errors.New("no price samples")
	}

	s := &Summary{
		Latest:  samples[0].Price,
		High:    samples[0].Price,
		Low:     samples[0].Price,
		Samples: len(samples),
	}
	sum := decimal.Zero
	for _, sample := range samples {
		if sample.Price.GreaterThan(s.High) {
			s.High = sample.Price
		}
		if sample.Price.LessThan(s.Low) {
			s.Low = sample.Price
		}
		sum = sum.Add(sample.Price)
	}
	s.SMA = sum.Div(decimal.NewFromInt(int64(len(samples))))

	if ref := sampleAt(samples, now.Add(-24*time.Hour)); ref != nil && ref.Price.IsPositive() {
		s.Change24h = s.Latest.Sub(ref.Price).Div(ref.Price).Mul(decimal.NewFromInt(100))
	}
	return s, nil
}

// sampleAt returns the newest sample observed at or before the cutoff, or nil
// when the history does not reach back that far.
func sampleAt(samples []model.PriceSample, cutoff time.Time) *model.PriceSample {
	for i := range samples {
		if !samples[i].ObservedAt.After(cutoff) {
			return &samples[i]
		}
	}
	return nil
}
