package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Conversions between bytes, fixed width words, and
 *		sequences of individual bits.
 *
 * Description:	The whole wire format is defined in terms of bit
 *		sequences so everything here is MSB-first within
 *		each unit.  A bit sequence is a []byte holding only
 *		0 and 1 values, which is wasteful but makes the
 *		framing and trellis code much easier to follow.
 *
 *------------------------------------------------------------------*/

/*------------------------------------------------------------------
 *
 * Name:	bytes_to_bits
 *
 * Purpose:	Expand bytes into 8 bits each, MSB first.
 *
 *------------------------------------------------------------------*/

func bytes_to_bits(data []byte) []byte {

	var bits = make([]byte, 0, len(data)*8)

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}

	return bits
}

/*------------------------------------------------------------------
 *
 * Name:	bits_to_bytes
 *
 * Purpose:	Pack bits back into bytes, MSB first.
 *
 * Description:	Trailing bits that do not fill a whole byte are
 *		silently dropped.  That is deliberate: the frame
 *		layer always works in whole bytes and anything left
 *		over is preamble residue or flush bits.
 *
 *------------------------------------------------------------------*/

func bits_to_bytes(bits []byte) []byte {

	var data = make([]byte, 0, len(bits)/8)

	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[i+j] & 1)
		}
		data = append(data, b)
	}

	return data
}

/*------------------------------------------------------------------
 *
 * Name:	word_to_bits / bits_to_word
 *
 * Purpose:	Fixed width words, e.g. the 32 bit sync word and the
 *		16 bit CRC, as MSB-first bit sequences.
 *
 *------------------------------------------------------------------*/

func word_to_bits(word uint32, width int) []byte {

	Assert(width >= 1 && width <= 32)

	var bits = make([]byte, width)

	for i := 0; i < width; i++ {
		bits[i] = byte((word >> (width - 1 - i)) & 1)
	}

	return bits
}

func bits_to_word(bits []byte) uint32 {

	Assert(len(bits) <= 32)

	var word uint32

	for _, b := range bits {
		word = (word << 1) | uint32(b&1)
	}

	return word
}
