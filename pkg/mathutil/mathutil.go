// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/roi-forecast/pkg/constants"
)

// Round rounds a value to the given number of decimal places. Only the
// presentation layer rounds; computations keep full precision.
func Round(val float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(val*scale) / scale
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// SnapToStep rounds val to the nearest multiple of step counted from origin.
// A non-positive step leaves val untouched.
func SnapToStep(val, origin, step float64) float64 {
	if step <= 0 {
		return val
	}
	n := math.Round((val - origin) / step)
	// Re-round to strip binary noise such as 0.30000000000000004.
	return Round(origin+n*step, 10)
}

// SafeDiv divides a by b, reporting false instead of producing an infinity or NaN.
func SafeDiv(a, b float64) (float64, bool) {
	if b == 0 || !IsFinite(a) || !IsFinite(b) {
		return 0, false
	}
	return a / b, true
}

// Lerp interpolates linearly between a and b at progress t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ApplyPercentage applies a whole-number percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
