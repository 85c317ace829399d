package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistical helpers shared by the analysis packages, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// Sum returns the sum of data
func Sum(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Sum(data)
}

// Correlation returns the Pearson correlation of x and y. Mismatched lengths or a
// constant input yield 0.
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0.0
	}
	if floats.Max(x) == floats.Min(x) || floats.Max(y) == floats.Min(y) {
		return 0.0
	}
	return stat.Correlation(x, y, nil)
}

// Ints converts integer samples (semitone counts, scores) for the float helpers
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Pitch arithmetic

// Mod12 reduces any integer to 0..11, including negatives
func Mod12(n int) int {
	return ((n % 12) + 12) % 12
}

// AbsInt returns |n|
func AbsInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Sign returns -1, 0 or 1
func Sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Percent returns round(100 * part / whole), halves rounded away from zero.
// A zero whole yields 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100.0 * float64(part) / float64(whole)))
}
