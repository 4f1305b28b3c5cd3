package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* Shared event helpers for the receive side tests. */

func drain_events(q <-chan rx_event_s) []rx_event_s {
	var out []rx_event_s
	for {
		select {
		case e := <-q:
			out = append(out, e)
		default:
			return out
		}
	}
}

func events_of_type(events []rx_event_s, etype event_type_t) []rx_event_s {
	var out []rx_event_s
	for _, e := range events {
		if e.etype == etype {
			out = append(out, e)
		}
	}
	return out
}

func frame_texts(events []rx_event_s) []string {
	var out []string
	for _, e := range events_of_type(events, EVENT_FRAME) {
		out = append(out, e.text)
	}
	return out
}

func Test_frame_sync_clean(t *testing.T) {
	for _, fec := range []bool{false, true} {
		var bits, err = frame_build([]byte("hi"), 32, fec)
		require.NoError(t, err)

		var q = dlq_init()
		var S = frame_sync_init(fec, q)
		frame_sync_bits(S, bits)

		assert.Equal(t, []string{"hi"}, frame_texts(drain_events(q)), "fec=%v", fec)
	}
}

func Test_frame_sync_split_delivery(t *testing.T) {
	// The same frame must come out no matter how the bit stream is
	// chopped into batches.
	var bits, err = frame_build([]byte("chopped up"), 32, true)
	require.NoError(t, err)

	var q = dlq_init()
	var S = frame_sync_init(true, q)
	for i := 0; i < len(bits); i += 3 {
		var end = i + 3
		if end > len(bits) {
			end = len(bits)
		}
		frame_sync_bits(S, bits[i:end])
	}

	assert.Equal(t, []string{"chopped up"}, frame_texts(drain_events(q)))
}

func Test_frame_sync_crc_error_then_recovery(t *testing.T) {
	var bad, err = frame_build([]byte("hi"), 32, false)
	require.NoError(t, err)
	bad[32+FRAME_SYNC_BITS+FRAME_HEADER_BITS+5] ^= 1 // A payload bit.

	var q = dlq_init()
	var S = frame_sync_init(false, q)

	frame_sync_bits(S, bad)
	var events = drain_events(q)
	assert.Empty(t, frame_texts(events))
	var errs = events_of_type(events, EVENT_CRC_ERROR)
	require.Len(t, errs, 1)
	assert.NotEqual(t, errs[0].expected, errs[0].received)

	// The synchronizer re-armed itself; the next frame decodes.
	var good, err2 = frame_build([]byte("ok now"), 32, false)
	require.NoError(t, err2)
	frame_sync_bits(S, good)

	assert.Equal(t, []string{"ok now"}, frame_texts(drain_events(q)))
}

func Test_frame_sync_single_flip_corrected_with_fec(t *testing.T) {
	var bits, err = frame_build([]byte("resilient"), 32, true)
	require.NoError(t, err)
	bits[32+FRAME_SYNC_BITS+20] ^= 1 // One coded body bit.

	var q = dlq_init()
	var S = frame_sync_init(true, q)
	frame_sync_bits(S, bits)

	var events = drain_events(q)
	assert.Equal(t, []string{"resilient"}, frame_texts(events))
	assert.Empty(t, events_of_type(events, EVENT_CRC_ERROR))
}

func Test_frame_sync_inverted_polarity(t *testing.T) {
	// A carrier recovery loop locked 180 degrees out inverts every
	// single bit.  The complemented sync word still has to match and
	// the body has to come out right side up.
	for _, fec := range []bool{false, true} {
		var bits, err = frame_build([]byte("upside down"), 32, fec)
		require.NoError(t, err)
		for i := range bits {
			bits[i] ^= 1
		}

		var q = dlq_init()
		var S = frame_sync_init(fec, q)
		frame_sync_bits(S, bits)

		assert.Equal(t, []string{"upside down"}, frame_texts(drain_events(q)), "fec=%v", fec)
	}
}

func Test_frame_sync_after_long_garbage(t *testing.T) {
	// Enough leading garbage to force a search buffer trim, then a
	// normal frame.  The trim must not eat the frame.
	var bits, err = frame_build([]byte("patience"), 32, true)
	require.NoError(t, err)

	var q = dlq_init()
	var S = frame_sync_init(true, q)
	frame_sync_bits(S, make([]byte, SYNC_BUF_CAP+1000))
	frame_sync_bits(S, bits)

	assert.Equal(t, []string{"patience"}, frame_texts(drain_events(q)))
}

func Test_frame_sync_starved_stays_synced(t *testing.T) {
	// Sync word plus a header announcing 200 payload bytes, then
	// nothing.  The synchronizer just waits; starvation is not an
	// error and produces no events.
	var bits = preamble_bits(16)
	bits = append(bits, word_to_bits(FRAME_SYNC_WORD, FRAME_SYNC_BITS)...)
	bits = append(bits, word_to_bits(200, 8)...)
	bits = append(bits, word_to_bits(FRAME_VERSION, 8)...)
	bits = append(bits, make([]byte, 40)...)

	var q = dlq_init()
	var S = frame_sync_init(false, q)
	frame_sync_bits(S, bits)

	assert.True(t, S.synced)
	assert.Empty(t, drain_events(q))
}

func Test_frame_sync_back_to_back(t *testing.T) {
	for _, fec := range []bool{false, true} {
		var first, err = frame_build([]byte("one"), 32, fec)
		require.NoError(t, err)
		var second, err2 = frame_build([]byte("two"), 32, fec)
		require.NoError(t, err2)

		var q = dlq_init()
		var S = frame_sync_init(fec, q)
		frame_sync_bits(S, append(first, second...))

		assert.Equal(t, []string{"one", "two"}, frame_texts(drain_events(q)), "fec=%v", fec)
	}
}

func Test_sync_search(t *testing.T) {
	var sync = word_to_bits(FRAME_SYNC_WORD, FRAME_SYNC_BITS)

	var idx, inv = sync_search(sync)
	assert.Equal(t, 0, idx)
	assert.False(t, inv)

	idx, inv = sync_search(append(make([]byte, 17), sync...))
	assert.Equal(t, 17, idx)
	assert.False(t, inv)

	var comp = make([]byte, len(sync))
	for i, b := range sync {
		comp[i] = b ^ 1
	}
	idx, inv = sync_search(append(preamble_bits(9), comp...))
	assert.Equal(t, 9, idx)
	assert.True(t, inv)

	idx, _ = sync_search(make([]byte, 100))
	assert.Equal(t, -1, idx)

	idx, _ = sync_search(sync[:FRAME_SYNC_BITS-1])
	assert.Equal(t, -1, idx)
}
