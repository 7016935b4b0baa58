package temporal

import (
	"math"
	"sort"

	"github.com/audiolens/tempokey/algorithms/common"
	"github.com/audiolens/tempokey/algorithms/stats"
)

// TempoStatus distinguishes a measured estimate from the degenerate
// fallbacks. The fallback values are identical either way (120 BPM,
// confidence 0, no alternatives); the status keeps the cause inspectable.
type TempoStatus int

const (
	TempoOK TempoStatus = iota
	TempoInsufficientSignal
	TempoNoPeaks
)

func (s TempoStatus) String() string {
	switch s {
	case TempoOK:
		return "ok"
	case TempoInsufficientSignal:
		return "insufficient_signal"
	case TempoNoPeaks:
		return "no_peaks"
	default:
		return "unknown"
	}
}

// BPMResult contains a tempo estimate
type BPMResult struct {
	BPM          int         `json:"bpm"`          // Estimated tempo, octave-folded toward 80-140
	Confidence   float64     `json:"confidence"`   // How sharply the best peak stands out (0-1)
	Alternatives []int       `json:"alternatives"` // Up to 3 other plausible tempos, ascending
	Status       TempoStatus `json:"status"`
}

// Search range and folding thresholds. These are behavioral contracts, not
// tunables: the alternative spacing, fold boundaries and minimum signal
// length are matched by callers' expectations.
const (
	minBPM = 60
	maxBPM = 180

	foldLowBPM  = 80
	foldHighBPM = 140

	minOnsetFrames  = 100
	altMinGap       = 5
	maxAlternatives = 3

	defaultBPM = 120

	// Guards the zero-variance confidence denominator
	confidenceEpsilon = 0.001
)

// tempoPeak is a local maximum of the lag autocorrelation
type tempoPeak struct {
	strength float64
	bpm      int
}

// TempoEstimator estimates tempo by autocorrelating an onset-strength
// signal over the lag range corresponding to 60-180 BPM.
type TempoEstimator struct{}

// NewTempoEstimator creates a new tempo estimator
func NewTempoEstimator() *TempoEstimator {
	return &TempoEstimator{}
}

// Estimate takes the peak-normalized onset signal and its frame rate
// (sample rate divided by hop size, in frames per second) and returns a
// tempo estimate. Signals with fewer than 100 onset values, or with no
// autocorrelation peak in range, short-circuit to the degenerate result.
func (te *TempoEstimator) Estimate(onset []float64, framesPerSecond float64) BPMResult {
	if len(onset) < minOnsetFrames {
		return fallbackResult(TempoInsufficientSignal)
	}

	minLag := int(framesPerSecond * 60.0 / float64(maxBPM))
	maxLag := int(framesPerSecond * 60.0 / float64(minBPM))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > len(onset)/2 {
		maxLag = len(onset) / 2
	}

	corr := stats.Autocorrelate(onset, minLag, maxLag)

	peaks := findPeaks(corr, minLag, framesPerSecond)
	if len(peaks) == 0 {
		return fallbackResult(TempoNoPeaks)
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].strength > peaks[j].strength
	})

	meanCorr := common.Mean(corr)
	maxCorr := common.Max(corr)
	confidence := common.Clamp01((peaks[0].strength - meanCorr) / (maxCorr - meanCorr + confidenceEpsilon))

	primary := foldOctave(peaks[0].bpm)

	return BPMResult{
		BPM:          primary,
		Confidence:   confidence,
		Alternatives: collectAlternatives(primary, peaks),
		Status:       TempoOK,
	}
}

func fallbackResult(status TempoStatus) BPMResult {
	return BPMResult{
		BPM:          defaultBPM,
		Confidence:   0,
		Alternatives: []int{},
		Status:       status,
	}
}

// findPeaks scans the correlation sequence for strict local maxima and
// converts each peak lag back to BPM.
func findPeaks(corr []float64, minLag int, framesPerSecond float64) []tempoPeak {
	var peaks []tempoPeak

	for i := 1; i < len(corr)-1; i++ {
		if corr[i] > corr[i-1] && corr[i] > corr[i+1] {
			lag := minLag + i
			peaks = append(peaks, tempoPeak{
				strength: corr[i],
				bpm:      int(math.Round(60.0 * framesPerSecond / float64(lag))),
			})
		}
	}

	return peaks
}

// foldOctave normalizes a tempo toward the 80-140 range by at most one
// halving or doubling. A single fold biases toward the common range
// without performing a full octave search.
func foldOctave(bpm int) int {
	half := int(math.Round(float64(bpm) / 2.0))

	if bpm > foldHighBPM && half >= minBPM {
		return half
	}
	if bpm < foldLowBPM && bpm*2 <= maxBPM {
		return bpm * 2
	}
	return bpm
}

// collectAlternatives gathers the primary tempo's own octave partners and
// the next 3 strongest peaks (each folded), keeps those more than 5 BPM
// away from the primary, deduplicates, and returns up to 3 in ascending
// order.
func collectAlternatives(primary int, peaks []tempoPeak) []int {
	var candidates []int

	if primary*2 <= 200 {
		candidates = append(candidates, primary*2)
	}
	if half := int(math.Round(float64(primary) / 2.0)); half >= 50 {
		candidates = append(candidates, half)
	}

	for i := 1; i < len(peaks) && i <= 3; i++ {
		candidates = append(candidates, foldOctave(peaks[i].bpm))
	}

	seen := make(map[int]bool)
	alternatives := make([]int, 0, maxAlternatives)

	for _, bpm := range candidates {
		if bpm == primary || seen[bpm] {
			continue
		}
		diff := bpm - primary
		if diff < 0 {
			diff = -diff
		}
		if diff <= altMinGap {
			continue
		}
		seen[bpm] = true
		alternatives = append(alternatives, bpm)
	}

	sort.Ints(alternatives)

	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	return alternatives
}
