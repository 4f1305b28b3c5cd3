package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Convolutional error correcting code.
 *
 * Description:	Rate 1/2, constraint length 7, the standard octal
 *		133/171 generator pair.  Encoding is a plain shift
 *		register.  Decoding is a Viterbi search over the 64
 *		state trellis with hard decision Hamming metrics.
 *
 *		This roughly doubles the on-air time of a frame in
 *		exchange for correcting the isolated bit errors that
 *		a marginal acoustic path produces.
 *
 *------------------------------------------------------------------*/

const CONV_K = 7           // Constraint length.
const CONV_STATES = 64     // 2^(K-1)
const CONV_FLUSH_BITS = 6  // K-1 zero bits appended to settle the register.
const CONV_G0 = 0x5b       // Generator polynomials, octal 133 and 171.
const CONV_G1 = 0x79

/*
 * Precomputed trellis.  For each (state, input bit) pair, the next
 * state and the two encoder output bits.
 */

type conv_transition_s struct {
	next int
	o0   byte
	o1   byte
}

var conv_table [CONV_STATES][2]conv_transition_s

func init() {
	for state := 0; state < CONV_STATES; state++ {
		for bit := 0; bit < 2; bit++ {
			var reg = ((state << 1) | bit) & 0x7f
			conv_table[state][bit] = conv_transition_s{
				next: reg & (CONV_STATES - 1),
				o0:   parity7(reg & CONV_G0),
				o1:   parity7(reg & CONV_G1),
			}
		}
	}
}

func parity7(v int) byte {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return byte(v & 1)
}

/*------------------------------------------------------------------
 *
 * Name:	conv_encode
 *
 * Purpose:	Encode a bit sequence at rate 1/2.
 *
 * Inputs:	bits	- Information bits, 0/1 values.
 *
 * Returns:	Coded bits, two per information bit, plus the two
 *		outputs for each of the 6 flush bits.
 *		Length is always 2 * (len(bits) + 6).
 *
 *------------------------------------------------------------------*/

func conv_encode(bits []byte) []byte {

	var out = make([]byte, 0, 2*(len(bits)+CONV_FLUSH_BITS))
	var state int

	var push = func(bit byte) {
		var t = conv_table[state][bit&1]
		out = append(out, t.o0, t.o1)
		state = t.next
	}

	for _, b := range bits {
		push(b)
	}
	for i := 0; i < CONV_FLUSH_BITS; i++ {
		push(0)
	}

	return out
}

/*------------------------------------------------------------------
 *
 * Name:	viterbi_decode
 *
 * Purpose:	Maximum likelihood decode of a rate 1/2 coded stream.
 *
 * Inputs:	coded	- Received bits, 0/1 values.  An odd trailing
 *			  bit is ignored.
 *
 * Returns:	One decoded bit per received pair.  The last 6 are
 *		the flush bits; stripping them is up to the caller
 *		because the caller knows whether the stream was
 *		complete.  Fewer than 2 usable input bits decode to
 *		an empty sequence, never an error.
 *
 * Description:	Path metric update keeps the first-found predecessor
 *		on ties (states are visited in ascending order).
 *		Traceback starts from the best final state across
 *		all 64, not forced to state 0.  The encoder always
 *		flushes to state 0 so for a reasonable channel they
 *		agree anyway.  See DESIGN.md.
 *
 *------------------------------------------------------------------*/

const conv_metric_inf = 1 << 30

type viterbi_decision_s struct {
	prev int8 // Predecessor state, -1 if unreachable.
	bit  int8 // Input bit taken on the transition into this state.
}

func viterbi_decode(coded []byte) []byte {

	var steps = len(coded) / 2
	if steps == 0 {
		return nil
	}

	var metric [CONV_STATES]int
	var next_metric [CONV_STATES]int

	// The encoder starts in state 0 so every survivor path must too.
	for s := 1; s < CONV_STATES; s++ {
		metric[s] = conv_metric_inf
	}

	var decisions = make([][CONV_STATES]viterbi_decision_s, steps)

	for step := 0; step < steps; step++ {
		var r0 = coded[2*step] & 1
		var r1 = coded[2*step+1] & 1

		for s := range next_metric {
			next_metric[s] = conv_metric_inf
			decisions[step][s].prev = -1
		}

		for s := 0; s < CONV_STATES; s++ {
			if metric[s] >= conv_metric_inf {
				continue
			}
			for bit := 0; bit < 2; bit++ {
				var t = conv_table[s][bit]
				var m = metric[s]
				if t.o0 != r0 {
					m++
				}
				if t.o1 != r1 {
					m++
				}
				// Strictly less keeps the lower-indexed predecessor on a tie.
				if m < next_metric[t.next] {
					next_metric[t.next] = m
					decisions[step][t.next] = viterbi_decision_s{prev: int8(s), bit: int8(bit)}
				}
			}
		}

		metric = next_metric
	}

	// Traceback from the globally best final state.

	var best = 0
	for s := 1; s < CONV_STATES; s++ {
		if metric[s] < metric[best] {
			best = s
		}
	}

	var decoded = make([]byte, steps)
	var state = best
	for step := steps - 1; step >= 0; step-- {
		var d = decisions[step][state]
		if d.prev < 0 {
			// Can't happen when the forward pass completed, but don't crash.
			break
		}
		decoded[step] = byte(d.bit)
		state = int(d.prev)
	}

	return decoded
}

/*------------------------------------------------------------------
 *
 * Name:	conv_decode_info
 *
 * Purpose:	Convenience wrapper: decode and strip the flush bits.
 *
 * Returns:	The information bits, or an empty sequence when the
 *		input was too short to contain any.
 *
 *------------------------------------------------------------------*/

func conv_decode_info(coded []byte) []byte {

	var decoded = viterbi_decode(coded)
	if len(decoded) <= CONV_FLUSH_BITS {
		return nil
	}
	return decoded[:len(decoded)-CONV_FLUSH_BITS]
}
