package analyzer

import (
	"fmt"

	"github.com/audiolens/tempokey/algorithms/common"
)

// Config holds the frame geometry for the two analysis passes. The chroma
// pass uses a long frame for pitch resolution; the flux pass a short one
// for temporal resolution.
type Config struct {
	ChromaFrameSize int `json:"chroma_frame_size"`
	ChromaHopSize   int `json:"chroma_hop_size"`
	FluxFrameSize   int `json:"flux_frame_size"`
	FluxHopSize     int `json:"flux_hop_size"`
}

// DefaultConfig returns the standard analysis geometry: 8192/4096 for the
// chroma pass (~5.4 Hz per bin at 44.1 kHz, enough to separate semitones
// down to the 60 Hz band edge) and 2048/512 for the flux pass.
func DefaultConfig() *Config {
	return &Config{
		ChromaFrameSize: 8192,
		ChromaHopSize:   4096,
		FluxFrameSize:   2048,
		FluxHopSize:     512,
	}
}

// Validate checks that both passes have power-of-two frame sizes and hops
// in (0, frameSize].
func (c *Config) Validate() error {
	for _, pass := range []struct {
		name      string
		frameSize int
		hopSize   int
	}{
		{"chroma", c.ChromaFrameSize, c.ChromaHopSize},
		{"flux", c.FluxFrameSize, c.FluxHopSize},
	} {
		if pass.frameSize < 2 || !common.IsPowerOfTwo(pass.frameSize) {
			return fmt.Errorf("%s frame size must be a power of two >= 2, got %d", pass.name, pass.frameSize)
		}
		if pass.hopSize <= 0 || pass.hopSize > pass.frameSize {
			return fmt.Errorf("%s hop size must be in (0, %d], got %d", pass.name, pass.frameSize, pass.hopSize)
		}
	}

	return nil
}
