package dogwhistle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
 * Full analog loopback: modulate a message, optionally abuse the
 * samples, and run them through a fresh receiver block by block the
 * way the audio context would.
 *
 * The 13 sample pad lines the free running symbol clock up near the
 * middle of each symbol for the default 44100/1225 rates.  A live
 * receiver gets whatever alignment it gets; a deterministic test
 * should use a good one.
 */

const loopback_pad = 13

func demod_loopback(t *testing.T, tx_config modem_config_s, rx_config modem_config_s,
	text string, mangle func([]float64)) []rx_event_s {

	var tx = NewModem(tx_config)
	var wave, err = tx.EncodeText(text)
	require.NoError(t, err)

	var samples = make([]float64, loopback_pad, loopback_pad+len(wave))
	samples = append(samples, wave...)
	if mangle != nil {
		mangle(samples)
	}

	var rx = NewModem(rx_config)
	var events []rx_event_s
	for pos := 0; pos < len(samples); pos += AUDIO_BLOCK_SIZE {
		var end = pos + AUDIO_BLOCK_SIZE
		if end > len(samples) {
			end = len(samples)
		}
		rx.ProcessBlock(samples[pos:end])
		events = append(events, drain_events(rx.Events())...)
	}
	return events
}

func Test_demod_loopback_clean(t *testing.T) {
	var c = config_defaults()
	c.FECEnabled = false

	var events = demod_loopback(t, c, c, "hello world", nil)

	var locks = events_of_type(events, EVENT_LOCKED)
	require.NotEmpty(t, locks)
	assert.GreaterOrEqual(t, locks[0].score, c.LockThreshold)

	assert.Equal(t, []string{"hello world"}, frame_texts(events))
	assert.Empty(t, events_of_type(events, EVENT_CRC_ERROR))
}

func Test_demod_loopback_fec(t *testing.T) {
	var c = config_defaults()

	var events = demod_loopback(t, c, c, "the quick brown fox jumps over the lazy dog", nil)

	assert.Equal(t, []string{"the quick brown fox jumps over the lazy dog"}, frame_texts(events))
	assert.Empty(t, events_of_type(events, EVENT_CRC_ERROR))
}

func Test_demod_loopback_carrier_offset(t *testing.T) {
	// The far end's clock is never exactly ours.  15 Hz off at 18 kHz
	// is a realistic cheap-hardware error and the Costas loop has to
	// pull it in during the preamble.
	var tx = config_defaults()
	var rx = config_defaults()
	rx.CarrierHz = 18015

	var events = demod_loopback(t, tx, rx, "offset carrier", nil)

	assert.Equal(t, []string{"offset carrier"}, frame_texts(events))
}

func Test_demod_loopback_noisy(t *testing.T) {
	var c = config_defaults()

	var events = demod_loopback(t, c, c, "buried in noise", func(s []float64) {
		channel_awgn(s, 20, 1)
	})

	assert.Equal(t, []string{"buried in noise"}, frame_texts(events))
}

func Test_demod_loopback_quiet_signal(t *testing.T) {
	// The AGC should make a whisper decode like a shout.
	var c = config_defaults()

	var events = demod_loopback(t, c, c, "whisper", func(s []float64) {
		channel_gain(s, 0.05)
	})

	assert.Equal(t, []string{"whisper"}, frame_texts(events))
}

func Test_demod_loopback_clock_skew(t *testing.T) {
	// Two sound cards never share a crystal.  200 ppm of sample clock
	// error drifts the symbol alignment by a fraction of a symbol over
	// one frame, which the matched filter has to tolerate.
	var c = config_defaults()

	var tx = NewModem(c)
	var wave, err = tx.EncodeText("skewed clock")
	require.NoError(t, err)

	var samples = channel_resample(append(make([]float64, loopback_pad), wave...), 1.0002)

	var rx = NewModem(c)
	var events []rx_event_s
	for pos := 0; pos < len(samples); pos += AUDIO_BLOCK_SIZE {
		var end = pos + AUDIO_BLOCK_SIZE
		if end > len(samples) {
			end = len(samples)
		}
		rx.ProcessBlock(samples[pos:end])
		events = append(events, drain_events(rx.Events())...)
	}

	assert.Equal(t, []string{"skewed clock"}, frame_texts(events))
}

func Test_demod_reset_clears_state(t *testing.T) {
	var c = config_defaults()
	var D = demod_bpsk_init(&c)

	D.locked = true
	D.lock_quality = 0.8
	D.agc_env = 1.5
	D.freq_corr = 0.01
	D.batch = append(D.batch, 1, 0, 1)

	D.reset()

	assert.False(t, D.locked)
	assert.Equal(t, 0.0, D.lock_quality)
	assert.Equal(t, 0.0, D.agc_env)
	assert.Equal(t, 0.0, D.freq_corr)
	assert.Empty(t, D.batch)

	// Derived constants survive a reset.
	assert.Equal(t, 36.0, D.spb)
	assert.Len(t, D.mf_taps, 54)
}

func Test_agc_clamp(t *testing.T) {
	assert.Equal(t, AGC_GAIN_CLAMP, agc_clamp(100))
	assert.Equal(t, -AGC_GAIN_CLAMP, agc_clamp(-100))
	assert.Equal(t, 0.5, agc_clamp(0.5))
}
