package windowing

import (
	"fmt"
	"math"
)

// Hann represents a symmetric Hann window with precomputed coefficients.
// The taper suppresses spectral leakage from frame-edge discontinuities.
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a new Hann window of the given size
func NewHann(size int) *Hann {
	h := &Hann{size: size}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size - 1)
	if h.size <= 1 {
		denominator = 1.0
	}

	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// Apply applies the window to a signal (creates new array)
func (h *Hann) Apply(signal []float64) []float64 {
	if len(signal) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i := range signal {
		windowed[i] = signal[i] * h.coefficients[i]
	}

	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (h *Hann) ApplyInPlace(signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}

	for i := range signal {
		signal[i] *= h.coefficients[i]
	}

	return nil
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}
