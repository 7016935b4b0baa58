package spectral

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/audiolens/tempokey/algorithms/common"
	"github.com/audiolens/tempokey/algorithms/windowing"
)

// Framer slices a sample buffer into overlapping, Hann-windowed analysis
// frames and computes one magnitude spectrum per frame. Frame i covers
// samples [i*hop, i*hop+frameSize); trailing partial frames are dropped
// rather than zero-padded, which keeps spurious edge energy out of the
// last bucket.
type Framer struct {
	frameSize int
	hopSize   int
	window    *windowing.Hann
}

// NewFramer creates a framer for the given frame and hop sizes. The frame
// size must be a power of two (>= 2) and the hop must be in (0, frameSize].
func NewFramer(frameSize, hopSize int) (*Framer, error) {
	if frameSize < 2 || !common.IsPowerOfTwo(frameSize) {
		return nil, fmt.Errorf("frame size must be a power of two >= 2, got %d", frameSize)
	}
	if hopSize <= 0 || hopSize > frameSize {
		return nil, fmt.Errorf("hop size must be in (0, %d], got %d", frameSize, hopSize)
	}

	return &Framer{
		frameSize: frameSize,
		hopSize:   hopSize,
		window:    windowing.NewHann(frameSize),
	}, nil
}

// FrameSize returns the configured frame size
func (fr *Framer) FrameSize() int {
	return fr.frameSize
}

// HopSize returns the configured hop size
func (fr *Framer) HopSize() int {
	return fr.hopSize
}

// NumFrames returns how many complete frames fit in a buffer of n samples
func (fr *Framer) NumFrames(n int) int {
	if n < fr.frameSize {
		return 0
	}
	return (n-fr.frameSize)/fr.hopSize + 1
}

// Spectrogram computes the magnitude spectrum of every frame. Rows are in
// frame order and have frameSize/2 bins. Per-frame transforms run on a
// worker pool; each worker owns its frame buffer and FFT scratch, and rows
// are written by frame index, so the result is deterministic regardless of
// scheduling.
func (fr *Framer) Spectrogram(samples []float64) [][]float64 {
	numFrames := fr.NumFrames(len(samples))
	magnitude := make([][]float64, numFrames)
	if numFrames == 0 {
		return magnitude
	}

	numWorkers := optimalWorkerCount(numFrames)
	jobs := make(chan int, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			fft := NewFFT()
			frameBuffer := make([]float64, fr.frameSize)

			for frameIdx := range jobs {
				start := frameIdx * fr.hopSize
				copy(frameBuffer, samples[start:start+fr.frameSize])

				fr.window.ApplyInPlace(frameBuffer)
				magnitude[frameIdx] = fft.magnitudes(frameBuffer)
			}
		}()
	}

	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		jobs <- frameIdx
	}
	close(jobs)

	wg.Wait()

	return magnitude
}

// optimalWorkerCount sizes the worker pool to the workload
func optimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()

	workers := numCPU
	if numFrames < 100 {
		workers = numCPU / 2
	}
	if workers > numFrames {
		workers = numFrames
	}
	if workers < 1 {
		workers = 1
	}

	return workers
}
