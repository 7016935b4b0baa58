package chroma

import (
	"math"

	"github.com/audiolens/tempokey/algorithms/common"
)

// PitchClassNames lists the 12 pitch classes in semitone order starting
// at C.
var PitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Analysis band. Favors fundamentals and lower harmonics and rejects
// high-frequency transients that carry no tonal information.
const (
	minFreq = 60.0
	maxFreq = 2000.0
)

// A4 reference tuning
const tuningFreq = 440.0

// Accumulator folds magnitude spectrograms into a single 12-bin pitch-class
// energy vector. Every FFT bin inside the analysis band is converted to its
// nearest semitone and its squared magnitude added to that pitch class,
// octave-folded, summed across all frames.
type Accumulator struct {
	sampleRate int
}

// NewAccumulator creates a chroma accumulator for the given sample rate
func NewAccumulator(sampleRate int) *Accumulator {
	return &Accumulator{sampleRate: sampleRate}
}

// Accumulate builds the chroma vector for a spectrogram whose frames were
// produced with the given frame size. The result is peak-normalized: all
// values in [0, 1] with at least one exactly 1, unless no energy survived
// the band filter, in which case all 12 values are 0.
func (a *Accumulator) Accumulate(spectrogram [][]float64, frameSize int) []float64 {
	chromaVec := make([]float64, 12)
	if len(spectrogram) == 0 {
		return chromaVec
	}

	mapping := a.pitchClassMapping(len(spectrogram[0]), frameSize)

	for t := range spectrogram {
		for k, pitchClass := range mapping {
			if pitchClass < 0 {
				continue
			}
			magnitude := spectrogram[t][k]
			chromaVec[pitchClass] += magnitude * magnitude
		}
	}

	common.PeakNormalize(chromaVec)

	return chromaVec
}

// pitchClassMapping maps each FFT bin to a pitch class in [0, 11], or -1
// for the DC bin and bins outside the analysis band.
func (a *Accumulator) pitchClassMapping(freqBins, frameSize int) []int {
	mapping := make([]int, freqBins)

	for k := 0; k < freqBins; k++ {
		if k == 0 {
			mapping[k] = -1
			continue
		}

		freq := float64(k) * float64(a.sampleRate) / float64(frameSize)
		if freq < minFreq || freq > maxFreq {
			mapping[k] = -1
			continue
		}

		midiNote := 69.0 + 12.0*math.Log2(freq/tuningFreq)
		mapping[k] = ((int(math.Round(midiNote)) % 12) + 12) % 12
	}

	return mapping
}
