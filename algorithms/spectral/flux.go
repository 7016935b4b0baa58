package spectral

import (
	"github.com/audiolens/tempokey/algorithms/common"
)

// SpectralFlux builds an onset-strength signal from a magnitude
// spectrogram. The frame-to-frame difference is half-wave rectified: only
// rising energy contributes, which tracks perceptual onsets rather than
// decay.
type SpectralFlux struct{}

// NewSpectralFlux creates a new spectral flux calculator
func NewSpectralFlux() *SpectralFlux {
	return &SpectralFlux{}
}

// Compute returns the onset-strength signal, one value per consecutive
// frame pair, peak-normalized to [0, 1]. Each value depends on the
// immediately preceding frame's spectrum, so the pairs are consumed
// strictly in frame order. Fewer than two frames yield an empty signal.
func (sf *SpectralFlux) Compute(spectrogram [][]float64) []float64 {
	if len(spectrogram) < 2 {
		return []float64{}
	}

	flux := make([]float64, len(spectrogram)-1)

	for t := 1; t < len(spectrogram); t++ {
		sum := 0.0
		for f := range spectrogram[t] {
			diff := spectrogram[t][f] - spectrogram[t-1][f]
			if diff > 0 {
				sum += diff
			}
		}
		flux[t-1] = sum
	}

	common.PeakNormalize(flux)

	return flux
}
