// Package calc holds the arithmetic shared by every report: zero-safe ratios,
// duration deltas and presentation rounding.
package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate returns numerator/denominator, or 0 when the denominator is 0.
// Stored metrics keep the full float; round only with Percent when rendering.
func Rate[N ~int | ~int64 | ~float64](numerator, denominator N) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// DurationHours returns end-start in hours. A negative delta is a data
// integrity problem and is reported with the given record reference.
func DurationHours(record string, start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, &DataIntegrityError{
			Record: record,
			Reason: "end " + end.UTC().Format(time.RFC3339) + " is before start " + start.UTC().Format(time.RFC3339),
		}
	}
	return end.Sub(start).Hours(), nil
}

// Percent converts a fraction into a percentage rounded to places decimals.
func Percent(rate float64, places int32) float64 {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).Round(places).InexactFloat64()
}

// Round rounds v to places decimals.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
