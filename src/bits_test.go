package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_bytes_to_bits(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 1, 0, 1}, bytes_to_bits([]byte{0xa5}))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, bytes_to_bits([]byte{0x01}))
	assert.Empty(t, bytes_to_bits(nil))
}

func Test_bits_bytes_round_trip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "data")
		assert.Equal(t, data, bits_to_bytes(bytes_to_bits(data)))
	})
}

func Test_bits_to_bytes_drops_trailing(t *testing.T) {
	// 10 bits: only the first whole byte survives.
	var bits = []byte{1, 1, 1, 1, 0, 0, 0, 0, 1, 1}
	assert.Equal(t, []byte{0xf0}, bits_to_bytes(bits))
}

func Test_word_to_bits(t *testing.T) {
	var bits = word_to_bits(FRAME_SYNC_WORD, FRAME_SYNC_BITS)
	assert.Len(t, bits, 32)
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 1, 0, 1}, bits[:8]) // 0xa5
	assert.Equal(t, FRAME_SYNC_WORD, bits_to_word(bits))
}

func Test_word_bits_round_trip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var width = rapid.IntRange(1, 32).Draw(t, "width")
		var word = rapid.Uint32().Draw(t, "word")
		if width < 32 {
			word &= (1 << width) - 1
		}
		assert.Equal(t, word, bits_to_word(word_to_bits(word, width)))
	})
}
