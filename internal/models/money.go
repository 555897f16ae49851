package models

import "math"

// Round2 rounds a monetary amount to 2 decimal places. Cart totals, line
// subtotals, and order totals all pass through this before being stored
// or returned.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
