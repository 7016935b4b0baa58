package tonal

import (
	"fmt"
	"sort"

	"github.com/audiolens/tempokey/algorithms/chroma"
	"github.com/audiolens/tempokey/algorithms/stats"
)

// KeyMode represents major or minor mode
type KeyMode int

const (
	KeyModeMajor KeyMode = iota
	KeyModeMinor
)

func (m KeyMode) String() string {
	if m == KeyModeMinor {
		return "minor"
	}
	return "major"
}

// KeyCandidate represents a potential key with confidence
type KeyCandidate struct {
	PitchClass  int     `json:"pitch_class"` // Tonic pitch class (0=C, 1=C#, ..., 11=B)
	Mode        KeyMode `json:"mode"`        // Major or Minor
	KeyName     string  `json:"key_name"`    // Human-readable key name, e.g. "G minor"
	Correlation float64 `json:"correlation"` // Raw profile correlation
	Confidence  float64 `json:"confidence"`  // Rescaled confidence (0-1)
}

// Krumhansl-Kessler profiles: empirically derived pitch-class salience
// weights for major and minor tonal contexts, tonic first.
var (
	krumhanslMajor = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	krumhanslMinor = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// maxCandidates is how many ranked keys Estimate retains
const maxCandidates = 6

// KeyEstimator scores a chroma vector against the Krumhansl-Kessler
// profiles under all 12 circular rotations and ranks the resulting 24
// (key, mode) candidates.
type KeyEstimator struct{}

// NewKeyEstimator creates a new key estimator
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{}
}

// Estimate returns up to 6 key candidates ordered most confident first.
// Rotation r aligns pitch class r with the profile tonic, so unrotated
// chroma scores a tonic of C. Confidence is an affine min-max rescale of
// the correlations across exactly the retained candidates, with the
// denominator floored at 1 so an all-equal top group (e.g. silence) maps
// to confidence 0 instead of dividing by zero.
func (ke *KeyEstimator) Estimate(chromaVec []float64) []KeyCandidate {
	if len(chromaVec) != 12 {
		return []KeyCandidate{}
	}

	candidates := make([]KeyCandidate, 0, 24)
	shifted := make([]float64, 12)

	for r := 0; r < 12; r++ {
		for i := 0; i < 12; i++ {
			shifted[i] = chromaVec[(i+r)%12]
		}

		majorCorr := stats.PearsonCorrelation(shifted, krumhanslMajor)
		minorCorr := stats.PearsonCorrelation(shifted, krumhanslMinor)

		candidates = append(candidates,
			KeyCandidate{
				PitchClass:  r,
				Mode:        KeyModeMajor,
				KeyName:     keyName(r, KeyModeMajor),
				Correlation: majorCorr,
			},
			KeyCandidate{
				PitchClass:  r,
				Mode:        KeyModeMinor,
				KeyName:     keyName(r, KeyModeMinor),
				Correlation: minorCorr,
			},
		)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Correlation > candidates[j].Correlation
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	minCorr := candidates[len(candidates)-1].Correlation
	maxCorr := candidates[0].Correlation

	denominator := maxCorr - minCorr
	if denominator < 1.0 {
		denominator = 1.0
	}

	for i := range candidates {
		candidates[i].Confidence = (candidates[i].Correlation - minCorr) / denominator
	}

	return candidates
}

func keyName(pitchClass int, mode KeyMode) string {
	return fmt.Sprintf("%s %s", chroma.PitchClassNames[pitchClass], mode)
}
