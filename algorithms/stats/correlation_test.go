package stats

import (
	"math"
	"testing"
)

func TestPearsonCorrelation(t *testing.T) {
	if corr := PearsonCorrelation([]float64{1, 2, 3}, []float64{2, 4, 6}); math.Abs(corr-1.0) > 1e-12 {
		t.Errorf("Perfectly correlated: got %g, want 1", corr)
	}
	if corr := PearsonCorrelation([]float64{1, 2, 3}, []float64{3, 2, 1}); math.Abs(corr+1.0) > 1e-12 {
		t.Errorf("Perfectly anti-correlated: got %g, want -1", corr)
	}
}

func TestPearsonCorrelationZeroVariance(t *testing.T) {
	if corr := PearsonCorrelation([]float64{1, 1, 1}, []float64{1, 2, 3}); corr != 0 {
		t.Errorf("Constant input: got %g, want 0", corr)
	}
	if corr := PearsonCorrelation([]float64{0, 0, 0}, []float64{0, 0, 0}); corr != 0 {
		t.Errorf("All-zero input: got %g, want 0", corr)
	}
}

func TestPearsonCorrelationMismatch(t *testing.T) {
	if corr := PearsonCorrelation([]float64{1, 2}, []float64{1, 2, 3}); corr != 0 {
		t.Errorf("Mismatched lengths: got %g, want 0", corr)
	}
	if corr := PearsonCorrelation(nil, nil); corr != 0 {
		t.Errorf("Empty input: got %g, want 0", corr)
	}
}

func TestAutocorrelatePeriodicSignal(t *testing.T) {
	signal := make([]float64, 64)
	for i := 0; i < len(signal); i += 8 {
		signal[i] = 1.0
	}

	corr := Autocorrelate(signal, 1, 16)

	if len(corr) != 16 {
		t.Fatalf("Expected 16 lags, got %d", len(corr))
	}

	// Index 0 is lag 1. The period (lag 8) and its double (lag 16) should
	// dominate off-period lags.
	if corr[7] <= corr[6] || corr[7] <= corr[8] {
		t.Errorf("Expected correlation peak at the period lag: %v", corr)
	}
	if corr[7] <= corr[4] {
		t.Errorf("Period lag should exceed off-period lag: %g vs %g", corr[7], corr[4])
	}
}

func TestAutocorrelateEmptyRange(t *testing.T) {
	signal := make([]float64, 10)

	if corr := Autocorrelate(signal, 8, 4); len(corr) != 0 {
		t.Errorf("Expected empty result for inverted range, got %v", corr)
	}
	if corr := Autocorrelate(signal, 20, 30); len(corr) != 0 {
		t.Errorf("Expected empty result for out-of-range lags, got %v", corr)
	}
}
