package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func conv_test_bits(n int) []byte {
	var bits = make([]byte, n)
	for i := range bits {
		bits[i] = byte((i*5 + 3) & 1)
	}
	return bits
}

func Test_conv_encode_length(t *testing.T) {
	for _, n := range []int{0, 1, 8, 100} {
		assert.Len(t, conv_encode(conv_test_bits(n)), 2*(n+CONV_FLUSH_BITS))
	}
}

func Test_conv_encode_zeros(t *testing.T) {
	// The all-zero path stays in state 0 and both generators output 0.
	var coded = conv_encode(make([]byte, 8))
	for _, b := range coded {
		assert.Equal(t, byte(0), b)
	}
}

func Test_conv_round_trip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var bits = rapid.SliceOfN(rapid.Byte(), 1, 512).Draw(t, "bits")
		for i := range bits {
			bits[i] &= 1
		}
		assert.Equal(t, bits, conv_decode_info(conv_encode(bits)))
	})
}

func Test_conv_corrects_spaced_errors(t *testing.T) {
	// Free distance 10, so well separated single channel bit errors
	// must always be corrected.
	var bits = conv_test_bits(64)
	var coded = conv_encode(bits)

	for _, idx := range []int{0, 40, 80, 120} {
		coded[idx] ^= 1
	}

	assert.Equal(t, bits, conv_decode_info(coded))
}

func Test_conv_decode_short_input(t *testing.T) {
	assert.Empty(t, viterbi_decode(nil))
	assert.Empty(t, viterbi_decode([]byte{1})) // Odd trailing bit ignored.
	assert.Empty(t, conv_decode_info([]byte{1, 0, 1, 0}))
}
