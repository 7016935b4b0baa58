package tonal

import (
	"testing"
)

// rotateProfile builds a chroma vector whose tonic sits at the given pitch
// class, i.e. the inverse of the rotation Estimate applies.
func rotateProfile(profile []float64, tonic int) []float64 {
	chromaVec := make([]float64, 12)
	for j := range chromaVec {
		chromaVec[j] = profile[((j-tonic)+12)%12]
	}
	return chromaVec
}

func TestEstimateCMajorProfile(t *testing.T) {
	candidates := NewKeyEstimator().Estimate(rotateProfile(krumhanslMajor, 0))

	if len(candidates) != 6 {
		t.Fatalf("Expected 6 candidates, got %d", len(candidates))
	}

	best := candidates[0]
	if best.PitchClass != 0 || best.Mode != KeyModeMajor {
		t.Errorf("Expected C major, got %s", best.KeyName)
	}
	if best.Correlation < 0.99 {
		t.Errorf("Expected near-perfect correlation, got %g", best.Correlation)
	}
	if best.KeyName != "C major" {
		t.Errorf("Expected key name \"C major\", got %q", best.KeyName)
	}
}

func TestEstimateRotatedMajor(t *testing.T) {
	// Profile rotated so the tonic is G (pitch class 7)
	candidates := NewKeyEstimator().Estimate(rotateProfile(krumhanslMajor, 7))

	best := candidates[0]
	if best.PitchClass != 7 || best.Mode != KeyModeMajor {
		t.Errorf("Expected G major, got %s", best.KeyName)
	}
}

func TestEstimateRotatedMinor(t *testing.T) {
	candidates := NewKeyEstimator().Estimate(rotateProfile(krumhanslMinor, 9))

	best := candidates[0]
	if best.PitchClass != 9 || best.Mode != KeyModeMinor {
		t.Errorf("Expected A minor, got %s", best.KeyName)
	}
	if best.KeyName != "A minor" {
		t.Errorf("Expected key name \"A minor\", got %q", best.KeyName)
	}
}

func TestEstimateRankingAndConfidence(t *testing.T) {
	candidates := NewKeyEstimator().Estimate(rotateProfile(krumhanslMajor, 2))

	for i := 1; i < len(candidates); i++ {
		if candidates[i].Correlation > candidates[i-1].Correlation {
			t.Errorf("Candidates not sorted by correlation at %d", i)
		}
	}

	for i, c := range candidates {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Errorf("Candidate %d confidence %g outside [0,1]", i, c.Confidence)
		}
	}

	// Min-max rescale pins the extremes of the retained group
	if candidates[len(candidates)-1].Confidence != 0 {
		t.Errorf("Weakest retained candidate should have confidence 0, got %g",
			candidates[len(candidates)-1].Confidence)
	}
	if candidates[0].Confidence < candidates[len(candidates)-1].Confidence {
		t.Error("Best candidate ranked below weakest")
	}
}

func TestEstimateZeroChroma(t *testing.T) {
	candidates := NewKeyEstimator().Estimate(make([]float64, 12))

	if len(candidates) != 6 {
		t.Fatalf("Expected 6 candidates for silence, got %d", len(candidates))
	}

	for i, c := range candidates {
		if c.Correlation != 0 {
			t.Errorf("Candidate %d correlation %g, want 0", i, c.Correlation)
		}
		if c.Confidence != 0 {
			t.Errorf("Candidate %d confidence %g, want 0", i, c.Confidence)
		}
	}
}

func TestEstimateBadLength(t *testing.T) {
	if candidates := NewKeyEstimator().Estimate(make([]float64, 7)); len(candidates) != 0 {
		t.Errorf("Expected no candidates for malformed chroma, got %d", len(candidates))
	}
}
