package testutil

import (
	"math"
	"testing"
)

// Ramp returns [0, 1, 2, ...] as float32 samples, n long.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

// Fill returns n samples all set to value.
func Fill(value float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// AssertFloatsEqual fails the test unless got and want match element-wise
// within 32-bit float tolerance.
func AssertFloatsEqual(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !NearlyEqual(got[i], want[i]) {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// NearlyEqual reports whether two float32 values agree within a small
// absolute-or-relative tolerance.
func NearlyEqual(a, b float32) bool {
	diff := math.Abs(float64(a) - float64(b))
	if diff <= 1e-6 {
		return true
	}
	larger := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	return diff <= larger*1e-6
}
