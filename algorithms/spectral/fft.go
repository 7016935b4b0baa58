package spectral

import (
	"fmt"
	"math"

	"github.com/audiolens/tempokey/algorithms/common"
)

// FFT computes magnitude spectra of real-valued frames using an iterative
// radix-2 Cooley-Tukey transform: bit-reversal permutation followed by
// log2(N) butterfly stages with twiddle factors exp(-2*pi*i*k/len).
//
// The working real/imaginary buffers are owned by the instance, so an FFT
// is not safe for concurrent use. Each worker gets its own.
type FFT struct {
	re []float64
	im []float64
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Magnitudes transforms a real-valued frame and returns the magnitude
// spectrum of the first len(frame)/2 bins; the upper half mirrors the lower
// for real input. The frame length must be a power of two. Frames of length
// 0 or 1 are returned unchanged.
func (f *FFT) Magnitudes(frame []float64) ([]float64, error) {
	if len(frame) <= 1 {
		return frame, nil
	}

	if !common.IsPowerOfTwo(len(frame)) {
		return nil, fmt.Errorf("frame length must be a power of two, got %d", len(frame))
	}

	return f.magnitudes(frame), nil
}

// magnitudes runs the transform without revalidating the frame length.
// Callers must have checked that len(frame) is a power of two > 1.
func (f *FFT) magnitudes(frame []float64) []float64 {
	n := len(frame)

	if cap(f.re) < n {
		f.re = make([]float64, n)
		f.im = make([]float64, n)
	}
	re := f.re[:n]
	im := f.im[:n]

	copy(re, frame)
	for i := range im {
		im[i] = 0
	}

	// Bit-reversal permutation
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			re[i], re[j] = re[j], re[i]
		}
	}

	// Butterfly stages
	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		ang := -2 * math.Pi / float64(length)

		for start := 0; start < n; start += length {
			for k := 0; k < half; k++ {
				wRe := math.Cos(ang * float64(k))
				wIm := math.Sin(ang * float64(k))

				i1 := start + k
				i2 := i1 + half

				tRe := re[i2]*wRe - im[i2]*wIm
				tIm := re[i2]*wIm + im[i2]*wRe

				re[i2] = re[i1] - tRe
				im[i2] = im[i1] - tIm
				re[i1] += tRe
				im[i1] += tIm
			}
		}
	}

	magnitude := make([]float64, n/2)
	for k := range magnitude {
		magnitude[k] = math.Sqrt(re[k]*re[k] + im[k]*im[k])
	}

	return magnitude
}
