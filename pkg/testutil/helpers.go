// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/roi-forecast/pkg/output"
)

// DefaultTolerance is the relative tolerance used by AlmostEqual.
const DefaultTolerance = 1e-9

// FindRow finds a rendered row by metric key.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []output.Row, key string) *output.Row {
	for i := range rows {
		if rows[i].Key == key {
			return &rows[i]
		}
	}
	return nil
}

// AlmostEqual reports whether a and b differ by less than DefaultTolerance
// relative to their magnitude.
func AlmostEqual(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= DefaultTolerance*scale
}
