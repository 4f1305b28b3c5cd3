package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Build and check the wire frame.
 *
 * Description:	A frame on the air looks like this:
 *
 *		  preamble (N bits, alternating 1,0,1,0,...)
 *		  sync word (32 bits, 0xA5A5A5A5, MSB first)
 *		  length (8 bits)  version (8 bits)
 *		  payload (length * 8 bits)
 *		  crc16 (16 bits)
 *
 *		With FEC enabled, everything after the sync word is
 *		run through the rate 1/2 convolutional encoder, which
 *		also appends 6 flush bits.  The preamble and sync word
 *		are never coded; the receiver has to find them before
 *		it knows anything.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
)

const FRAME_SYNC_WORD uint32 = 0xa5a5a5a5
const FRAME_SYNC_BITS = 32
const FRAME_VERSION = 1
const FRAME_MAX_PAYLOAD = 255
const FRAME_HEADER_BITS = 16 // length + version
const FRAME_CRC_BITS = 16

/*------------------------------------------------------------------
 *
 * Name:	preamble_bits
 *
 * Purpose:	The alternating warm-up pattern: 1,0,1,0,...
 *
 *------------------------------------------------------------------*/

func preamble_bits(n int) []byte {

	var bits = make([]byte, n)
	for i := range bits {
		bits[i] = byte((i + 1) & 1)
	}
	return bits
}

/*------------------------------------------------------------------
 *
 * Name:	frame_body_bits
 *
 * Purpose:	Header + payload + CRC as a bit sequence, before any
 *		FEC coding.  This is the part the CRC protects.
 *
 *------------------------------------------------------------------*/

func frame_body_bits(payload []byte) []byte {

	var hp = make([]byte, 0, 2+len(payload))
	hp = append(hp, byte(len(payload)), FRAME_VERSION)
	hp = append(hp, payload...)

	var bits = bytes_to_bits(hp)
	bits = append(bits, word_to_bits(uint32(crc16(hp)), FRAME_CRC_BITS)...)
	return bits
}

/*------------------------------------------------------------------
 *
 * Name:	frame_build
 *
 * Purpose:	Build the complete bit sequence for one frame.
 *
 * Inputs:	payload		- Up to 255 bytes of message.
 *		preamble_len	- Number of warm-up bits to prepend.
 *		fec		- Convolutional-code the body.
 *
 * Returns:	The frame as bits, or an error if the payload can
 *		never fit in the 8 bit length field.  That is the
 *		only fatal input condition and it is caught here,
 *		before anything reaches the sound card.
 *
 *------------------------------------------------------------------*/

func frame_build(payload []byte, preamble_len int, fec bool) ([]byte, error) {

	if len(payload) > FRAME_MAX_PAYLOAD {
		return nil, fmt.Errorf("payload is %d bytes, maximum is %d", len(payload), FRAME_MAX_PAYLOAD)
	}

	var body = frame_body_bits(payload)
	if fec {
		body = conv_encode(body)
	}

	var bits = make([]byte, 0, preamble_len+FRAME_SYNC_BITS+len(body))
	bits = append(bits, preamble_bits(preamble_len)...)
	bits = append(bits, word_to_bits(FRAME_SYNC_WORD, FRAME_SYNC_BITS)...)
	bits = append(bits, body...)
	return bits, nil
}

/*------------------------------------------------------------------
 *
 * Name:	frame_body_check
 *
 * Purpose:	Validate a complete uncoded body bit sequence.
 *
 * Inputs:	bits	- Exactly 16 + length*8 + 16 bits: header,
 *			  payload, CRC.
 *
 * Returns:	payload		- The payload bytes, nil on failure.
 *		expected	- CRC computed over header+payload.
 *		received	- CRC found in the frame.
 *		ok		- expected == received.
 *
 *------------------------------------------------------------------*/

func frame_body_check(bits []byte) (payload []byte, expected uint16, received uint16, ok bool) {

	Assert(len(bits) >= FRAME_HEADER_BITS+FRAME_CRC_BITS)
	Assert((len(bits)-FRAME_HEADER_BITS-FRAME_CRC_BITS)%8 == 0)

	var hp = bits_to_bytes(bits[:len(bits)-FRAME_CRC_BITS])
	received = uint16(bits_to_word(bits[len(bits)-FRAME_CRC_BITS:]))
	expected = crc16(hp)

	if expected != received {
		return nil, expected, received, false
	}
	return hp[2:], expected, received, true
}
