package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_window_cosine(t *testing.T) {
	// Peak in the middle, tapering toward the ends.
	assert.InDelta(t, 1.0, window(BP_WINDOW_COSINE, 9, 4), 1e-12)
	assert.Greater(t, window(BP_WINDOW_COSINE, 9, 4), window(BP_WINDOW_COSINE, 9, 0))
	assert.InDelta(t, window(BP_WINDOW_COSINE, 9, 0), window(BP_WINDOW_COSINE, 9, 8), 1e-12)
}

func Test_window_truncated(t *testing.T) {
	for j := 0; j < 5; j++ {
		assert.Equal(t, 1.0, window(BP_WINDOW_TRUNCATED, 5, j))
	}
}

func Test_gen_matched_filter(t *testing.T) {
	var taps = gen_matched_filter(36.0, MF_WIDTH_SYM)
	assert.Len(t, taps, 54)

	var sum float64
	for _, tap := range taps {
		sum += tap
		assert.Greater(t, tap, 0.0)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Symmetric.
	for j := range taps {
		assert.InDelta(t, taps[j], taps[len(taps)-1-j], 1e-12)
	}
}

func Test_gen_matched_filter_minimum_size(t *testing.T) {
	assert.Len(t, gen_matched_filter(1.0, 1.0), 3)
}

func Test_iir_lowpass_alpha(t *testing.T) {
	var a = iir_lowpass_alpha(2450, 44100)
	assert.Greater(t, a, 0.0)
	assert.Less(t, a, 1.0)

	// Higher cutoff reacts faster.
	assert.Greater(t, iir_lowpass_alpha(5000, 44100), a)
}
