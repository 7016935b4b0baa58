package stats

import (
	"math"
)

// PearsonCorrelation calculates the Pearson correlation coefficient between
// two equal-length slices. Zero-variance input (either side) yields 0.0
// rather than NaN, so silent or constant signals degrade cleanly.
func PearsonCorrelation(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0.0
	}

	meanA := 0.0
	meanB := 0.0
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	numerator := 0.0
	sumSqA := 0.0
	sumSqB := 0.0

	for i := range a {
		diffA := a[i] - meanA
		diffB := b[i] - meanB
		numerator += diffA * diffB
		sumSqA += diffA * diffA
		sumSqB += diffB * diffB
	}

	if sumSqA == 0 || sumSqB == 0 {
		return 0.0
	}

	return numerator / math.Sqrt(sumSqA*sumSqB)
}

// Autocorrelate computes the mean-of-products autocorrelation of a signal
// for every lag in [minLag, maxLag]:
//
//	corr(lag) = (1/(L-lag)) * sum_{i=0}^{L-lag-1} signal[i]*signal[i+lag]
//
// The result has one entry per lag, index 0 corresponding to minLag. Lags
// outside (0, len(signal)) are clipped; an empty range returns an empty
// slice.
func Autocorrelate(signal []float64, minLag, maxLag int) []float64 {
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(signal) {
		maxLag = len(signal) - 1
	}
	if maxLag < minLag {
		return []float64{}
	}

	corr := make([]float64, maxLag-minLag+1)

	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		count := len(signal) - lag
		for i := 0; i < count; i++ {
			sum += signal[i] * signal[i+lag]
		}
		corr[lag-minLag] = sum / float64(count)
	}

	return corr
}
