package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

func TestMagnitudesSinePeak(t *testing.T) {
	const (
		n          = 2048
		sampleRate = 44100
		bin        = 64
	)

	freq := float64(bin) * sampleRate / n
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	magnitude, err := NewFFT().Magnitudes(signal)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}

	if len(magnitude) != n/2 {
		t.Fatalf("Expected %d bins, got %d", n/2, len(magnitude))
	}

	peakBin := 0
	for k, mag := range magnitude {
		if mag > magnitude[peakBin] {
			peakBin = k
		}
	}

	if peakBin != bin {
		t.Errorf("Expected peak at bin %d, got %d", bin, peakBin)
	}
}

func TestMagnitudesMatchesReference(t *testing.T) {
	const n = 512

	signal := make([]float64, n)
	for i := range signal {
		x := float64(i)
		signal[i] = math.Sin(0.03*x) + 0.5*math.Cos(0.11*x) + 0.25*math.Sin(0.29*x+1.0)
	}

	magnitude, err := NewFFT().Magnitudes(signal)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}

	reference := fft.FFTReal(signal)

	for k := range magnitude {
		want := cmplx.Abs(reference[k])
		diff := math.Abs(magnitude[k] - want)
		if diff > 1e-6*(1.0+want) {
			t.Fatalf("Bin %d: got %g, reference %g", k, magnitude[k], want)
		}
	}
}

func TestMagnitudesDegenerate(t *testing.T) {
	single := []float64{0.5}
	out, err := NewFFT().Magnitudes(single)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}
	if len(out) != 1 || out[0] != 0.5 {
		t.Errorf("Expected input unchanged, got %v", out)
	}

	empty, err := NewFFT().Magnitudes(nil)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty output, got %v", empty)
	}
}

func TestMagnitudesNonPowerOfTwo(t *testing.T) {
	if _, err := NewFFT().Magnitudes(make([]float64, 1000)); err == nil {
		t.Error("Expected error for non-power-of-two frame")
	}
}

func TestMagnitudesScratchReuse(t *testing.T) {
	f := NewFFT()

	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = math.Sin(0.2 * float64(i))
	}

	first, err := f.Magnitudes(signal)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}
	second, err := f.Magnitudes(signal)
	if err != nil {
		t.Fatalf("Magnitudes returned error: %v", err)
	}

	for k := range first {
		if first[k] != second[k] {
			t.Fatalf("Bin %d changed between identical calls: %g vs %g", k, first[k], second[k])
		}
	}
}
