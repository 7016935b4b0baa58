// Package analyzer estimates the tempo (BPM) and musical key of a decoded
// audio buffer from the raw waveform alone.
//
// Pipeline:
//  1. Slice the buffer into Hann-windowed frames, one magnitude spectrum
//     per frame (radix-2 FFT)
//  2. Tempo: half-wave rectified spectral flux -> onset-strength signal ->
//     lag autocorrelation over the 60-180 BPM window -> peak picking and
//     single octave fold
//  3. Key: FFT bins -> 12-bin chroma vector (60-2000 Hz band) ->
//     Krumhansl-Kessler profile correlation over all 12 rotations
//
// Decoding into PCM, rendering and playback are the caller's business; the
// analyzer takes a mono sample buffer plus its sample rate and returns a
// structured result.
package analyzer

import (
	"fmt"
	"sync"

	"github.com/audiolens/tempokey/algorithms/chroma"
	"github.com/audiolens/tempokey/algorithms/spectral"
	"github.com/audiolens/tempokey/algorithms/temporal"
	"github.com/audiolens/tempokey/algorithms/tonal"
	"github.com/audiolens/tempokey/logging"
)

// Result is the analysis output: the folded tempo estimate with its
// confidence and alternatives, and up to 6 ranked key candidates.
type Result struct {
	BPM             int                  `json:"bpm"`
	BPMConfidence   float64              `json:"bpm_confidence"`
	BPMAlternatives []int                `json:"bpm_alternatives"`
	TempoStatus     temporal.TempoStatus `json:"tempo_status"`
	KeyCandidates   []tonal.KeyCandidate `json:"key_candidates"`
}

// Analyzer drives the two analysis passes. Construct once, reuse across
// buffers; Analyze keeps no state between calls and is safe for concurrent
// use.
type Analyzer struct {
	config         *Config
	chromaFramer   *spectral.Framer
	fluxFramer     *spectral.Framer
	flux           *spectral.SpectralFlux
	tempoEstimator *temporal.TempoEstimator
	keyEstimator   *tonal.KeyEstimator
	logger         logging.Logger
}

// New creates an analyzer. A nil config selects DefaultConfig.
func New(config *Config) (*Analyzer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	chromaFramer, err := spectral.NewFramer(config.ChromaFrameSize, config.ChromaHopSize)
	if err != nil {
		return nil, err
	}
	fluxFramer, err := spectral.NewFramer(config.FluxFrameSize, config.FluxHopSize)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:         config,
		chromaFramer:   chromaFramer,
		fluxFramer:     fluxFramer,
		flux:           spectral.NewSpectralFlux(),
		tempoEstimator: temporal.NewTempoEstimator(),
		keyEstimator:   tonal.NewKeyEstimator(),
		logger:         logging.WithFields(logging.Fields{"component": "analyzer"}),
	}, nil
}

// Analyze estimates tempo and key for a mono sample buffer. The buffer is
// never mutated. It returns an error only for input-contract violations
// (empty buffer, non-positive sample rate); short or silent signals degrade
// to the defined fallback values instead.
func (a *Analyzer) Analyze(samples []float64, sampleRate int) (*Result, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("sample buffer is empty")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	a.logger.Debug("starting analysis", logging.Fields{
		"samples":     len(samples),
		"sample_rate": sampleRate,
	})

	// The two passes share no mutable state and run concurrently.
	var (
		wg            sync.WaitGroup
		bpmResult     temporal.BPMResult
		keyCandidates []tonal.KeyCandidate
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		bpmResult = a.detectTempo(samples, sampleRate)
	}()

	go func() {
		defer wg.Done()
		keyCandidates = a.detectKey(samples, sampleRate)
	}()

	wg.Wait()

	result := &Result{
		BPM:             bpmResult.BPM,
		BPMConfidence:   bpmResult.Confidence,
		BPMAlternatives: bpmResult.Alternatives,
		TempoStatus:     bpmResult.Status,
		KeyCandidates:   keyCandidates,
	}

	a.logger.Debug("analysis complete", logging.Fields{
		"bpm":          result.BPM,
		"tempo_status": result.TempoStatus.String(),
		"candidates":   len(result.KeyCandidates),
	})

	return result, nil
}

func (a *Analyzer) detectTempo(samples []float64, sampleRate int) temporal.BPMResult {
	spectrogram := a.fluxFramer.Spectrogram(samples)
	onset := a.flux.Compute(spectrogram)

	framesPerSecond := float64(sampleRate) / float64(a.fluxFramer.HopSize())

	return a.tempoEstimator.Estimate(onset, framesPerSecond)
}

func (a *Analyzer) detectKey(samples []float64, sampleRate int) []tonal.KeyCandidate {
	spectrogram := a.chromaFramer.Spectrogram(samples)
	chromaVec := chroma.NewAccumulator(sampleRate).Accumulate(spectrogram, a.chromaFramer.FrameSize())

	return a.keyEstimator.Estimate(chromaVec)
}

// FirstChannel extracts channel 0 from an interleaved multi-channel buffer.
// No down-mixing is performed; the remaining channels are ignored.
func FirstChannel(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	mono := make([]float64, 0, len(interleaved)/channels)
	for i := 0; i < len(interleaved); i += channels {
		mono = append(mono, interleaved[i])
	}

	return mono
}
