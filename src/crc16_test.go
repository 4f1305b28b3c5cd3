package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_crc16_check_value(t *testing.T) {
	// The standard CRC-16/CCITT-FALSE check value.
	assert.Equal(t, uint16(0x29b1), crc16([]byte("123456789")))
}

func Test_crc16_empty(t *testing.T) {
	assert.Equal(t, uint16(CRC16_INIT), crc16(nil))
}

func Test_crc16_detects_single_bit_flips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(t, "data")
		var idx = rapid.IntRange(0, len(data)*8-1).Draw(t, "idx")

		var before = crc16(data)

		var flipped = make([]byte, len(data))
		copy(flipped, data)
		flipped[idx/8] ^= 1 << (7 - idx%8)

		assert.NotEqual(t, before, crc16(flipped))
	})
}
