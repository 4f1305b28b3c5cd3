package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Extract frames from the demodulator's bit stream.
 *
 * Description:	Two states.  While UNSYNCED, incoming bits pile up in
 *		a search buffer which is scanned for a literal match
 *		of the 32 bit sync word - or its complement, because
 *		the Costas loop is perfectly happy locking 180
 *		degrees out of phase and inverting every bit.
 *
 *		Once the sync word is consumed we are SYNCED and bits
 *		accumulate in a body buffer until a whole frame is
 *		present, then the CRC decides between a frame event
 *		and a crc error event.  Either way the synchronizer
 *		re-arms and goes looking for the next sync word.
 *		There is no partial frame retry.
 *
 *		Nothing here ever fails hard.  Garbage in just means
 *		the search buffer gets trimmed and we keep scanning.
 *
 *------------------------------------------------------------------*/

const SYNC_BUF_CAP = 4096  // Trim the search buffer above this...
const SYNC_BUF_KEEP = 2048 // ...down to the most recent this many bits.

// Extra coded bits beyond the header before trusting a Viterbi
// decode of a partial stream.  Roughly 5 constraint lengths of
// traceback depth.
const SYNC_FEC_PEEK_EXTRA = 32

type frame_sync_state_s struct {
	fec bool
	q   chan rx_event_s

	bit_buf  []byte // Raw bits being searched for a sync word.
	body_buf []byte // Raw bits after the sync word.
	synced   bool
	invert   bool // Sync word matched complemented; body bits are too.
	need     int  // Body bits required for a full frame.  0 = length not known yet.
}

func frame_sync_init(fec bool, q chan rx_event_s) *frame_sync_state_s {
	return &frame_sync_state_s{fec: fec, q: q}
}

func (S *frame_sync_state_s) reset() {
	S.bit_buf = S.bit_buf[:0]
	S.body_buf = S.body_buf[:0]
	S.synced = false
	S.invert = false
	S.need = 0
}

/*------------------------------------------------------------------
 *
 * Name:	frame_sync_bits
 *
 * Purpose:	Feed a batch of demodulated bits in.  Called once per
 *		audio block; also directly from tests and anything
 *		else that wants to bypass the analog path.
 *
 *------------------------------------------------------------------*/

func frame_sync_bits(S *frame_sync_state_s, bits []byte) {

	if S.synced {
		S.body_buf = append(S.body_buf, bits...)
	} else {
		S.bit_buf = append(S.bit_buf, bits...)
	}

	for frame_sync_advance(S) {
	}
}

/*------------------------------------------------------------------
 *
 * Name:	frame_sync_advance
 *
 * Purpose:	Make one state machine step if enough bits are
 *		available.
 *
 * Returns:	True if progress was made and it is worth calling
 *		again, false to wait for more bits.  Starvation is
 *		not an error; we just sit in whatever state we are
 *		in until more arrive or somebody resets us.
 *
 *------------------------------------------------------------------*/

func frame_sync_advance(S *frame_sync_state_s) bool {

	if !S.synced {
		var idx, inv = sync_search(S.bit_buf)
		if idx < 0 {
			if len(S.bit_buf) > SYNC_BUF_CAP {
				// Keep the tail; a partial sync word may be sitting in it.
				var keep = S.bit_buf[len(S.bit_buf)-SYNC_BUF_KEEP:]
				S.bit_buf = append(S.bit_buf[:0], keep...)
			}
			return false
		}

		dwlog.Debug("sync word found", "offset", idx, "inverted", inv)

		S.body_buf = append(S.body_buf[:0], S.bit_buf[idx+FRAME_SYNC_BITS:]...)
		S.bit_buf = S.bit_buf[:0]
		S.synced = true
		S.invert = inv
		S.need = 0
		return true
	}

	if S.fec {
		return frame_sync_try_coded(S)
	}
	return frame_sync_try_plain(S)
}

/*
 * SYNCED, no FEC.  Body is header + payload + CRC in the clear.
 */

func frame_sync_try_plain(S *frame_sync_state_s) bool {

	if len(S.body_buf) < FRAME_HEADER_BITS {
		return false
	}

	var header = sync_corrected(S, S.body_buf[:FRAME_HEADER_BITS])
	var length = int(bits_to_word(header[:8]))
	if length > FRAME_MAX_PAYLOAD {
		return frame_sync_bad_length(S, length)
	}

	var need = FRAME_HEADER_BITS + length*8 + FRAME_CRC_BITS
	if len(S.body_buf) < need {
		return false
	}

	var body = sync_corrected(S, S.body_buf[:need])
	frame_sync_finish(S, body, need)
	return true
}

/*
 * SYNCED, FEC.  Everything after the sync word is rate 1/2 coded.
 * The length field has to be dug out by Viterbi decoding the stream
 * prefix before we know how many coded bits to wait for.
 */

func frame_sync_try_coded(S *frame_sync_state_s) bool {

	if S.need == 0 {
		if len(S.body_buf) < 2*FRAME_HEADER_BITS+SYNC_FEC_PEEK_EXTRA {
			return false
		}

		var peek = viterbi_decode(sync_corrected(S, S.body_buf))
		if len(peek) < FRAME_HEADER_BITS {
			return false
		}

		var length = int(bits_to_word(peek[:8]))
		if length > FRAME_MAX_PAYLOAD {
			return frame_sync_bad_length(S, length)
		}

		S.need = 2 * (FRAME_HEADER_BITS + length*8 + FRAME_CRC_BITS + CONV_FLUSH_BITS)
	}

	if len(S.body_buf) < S.need {
		return false
	}

	var body = conv_decode_info(sync_corrected(S, S.body_buf[:S.need]))
	frame_sync_finish(S, body, S.need)
	return true
}

/*
 * A complete candidate frame.  Check it, report it, re-arm.  Bits
 * beyond the frame go back in the search buffer; a back to back
 * frame may already be sitting in them.
 */

func frame_sync_finish(S *frame_sync_state_s, body []byte, consumed int) {

	var payload, expected, received, ok = frame_body_check(body)
	if ok {
		dlq_post(S.q, rx_event_s{etype: EVENT_FRAME, text: string(payload)})
	} else {
		dwlog.Debug("crc mismatch", "expected", expected, "received", received)
		dlq_post(S.q, rx_event_s{etype: EVENT_CRC_ERROR, expected: expected, received: received})
	}

	S.bit_buf = append(S.bit_buf[:0], S.body_buf[consumed:]...)
	S.body_buf = S.body_buf[:0]
	S.synced = false
	S.invert = false
	S.need = 0
}

/*
 * Implausible length field means we latched onto noise that happened
 * to look like a sync word.  Report it, dump the frame state, resume
 * the search over the same bits.
 */

func frame_sync_bad_length(S *frame_sync_state_s, length int) bool {

	dwlog.Debug("implausible length, resyncing", "length", length)
	dlq_post(S.q, rx_event_s{etype: EVENT_INVALID_LENGTH, length: length})

	S.bit_buf = append(S.bit_buf[:0], S.body_buf...)
	S.body_buf = S.body_buf[:0]
	S.synced = false
	S.invert = false
	S.need = 0
	return true
}

/*------------------------------------------------------------------
 *
 * Name:	sync_search
 *
 * Purpose:	Literal sub-sequence match of the 32 bit sync word,
 *		either polarity, at any bit offset.
 *
 * Returns:	Offset of the first match and whether it was the
 *		complemented pattern, or -1.
 *
 *------------------------------------------------------------------*/

func sync_search(bits []byte) (int, bool) {

	if len(bits) < FRAME_SYNC_BITS {
		return -1, false
	}

	// Run the bits through a 32 bit shift register and compare.
	var acc uint32
	for i, b := range bits {
		acc = (acc << 1) | uint32(b&1)
		if i >= FRAME_SYNC_BITS-1 {
			if acc == FRAME_SYNC_WORD {
				return i - FRAME_SYNC_BITS + 1, false
			}
			if acc == ^FRAME_SYNC_WORD {
				return i - FRAME_SYNC_BITS + 1, true
			}
		}
	}

	return -1, false
}

// sync_corrected returns the bits with the carrier polarity folded
// out.  A copy is made when inverting so the raw buffer stays raw.
func sync_corrected(S *frame_sync_state_s, bits []byte) []byte {

	if !S.invert {
		return bits
	}

	var out = make([]byte, len(bits))
	for i, b := range bits {
		out[i] = b ^ 1
	}
	return out
}
