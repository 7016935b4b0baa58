package common

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Shared numeric helpers used across algorithms, backed by gonum where it
// applies.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Max returns the maximum value of a slice using gonum
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// PeakNormalize divides every value by the slice maximum, in place.
// A zero (or negative) maximum leaves the data untouched, so silent input
// stays all zeros instead of producing NaN.
func PeakNormalize(data []float64) {
	if len(data) == 0 {
		return
	}

	max := floats.Max(data)
	if max <= 0 {
		return
	}

	for i := range data {
		data[i] /= max
	}
}

// Clamp01 clamps a value to the [0, 1] range
func Clamp01(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

// IsPowerOfTwo reports whether n is a positive power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
