// Package output provides deterministic formatting helpers so two scans over
// an unchanged tree render byte-identical results.
package output

import (
	"math"
	"strconv"
)

// Round2 rounds a float to 2 decimal places for stable JSON encoding.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FormatAverage formats an average with exactly two decimals ("0.00" for a
// zero value, including the zero-denominator case).
func FormatAverage(f float64) string {
	return strconv.FormatFloat(Round2(f), 'f', 2, 64)
}

// SafeAverage divides sum by count, defining the zero-denominator case as 0.
func SafeAverage(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return Round2(float64(sum) / float64(count))
}
