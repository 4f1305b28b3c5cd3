package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Demodulator for high frequency audio BPSK.
 *
 * Input:	Audio samples from either a file or the "sound card."
 *
 * Outputs:	Hard bits, batched per audio block, plus lock and
 *		diagnostic events.
 *
 * Description:	A continuous per sample pipeline:
 *
 *		  NCO mix to I/Q  ->  one pole low pass  ->  AGC
 *		  ->  Costas loop carrier recovery
 *		  ->  matched filter  ->  fixed rate symbol sampling
 *		  ->  hard decision + preamble correlation lock
 *
 *		Symbol timing is free running: a fractional
 *		accumulator ticks once per sample and a symbol pops
 *		out every spb samples.  There is no timing error
 *		feedback; the symbol rate has to be close and the
 *		matched filter soaks up the rest.
 *
 *------------------------------------------------------------------*/

import (
	"math"
)

/* Costas loop proportional / integral gains.  err is at most a few
   units after AGC so these give roughly 200 Hz of loop bandwidth at
   44100 samples/sec with ~0.8 damping. */

const COSTAS_KP = 0.05
const COSTAS_KI = 0.001

/* AGC envelope tracker.  Fast up, slow down, like the full scale
   trackers in any soundcard modem. */

const AGC_ATTACK = 0.01
const AGC_DECAY = 0.0005
const AGC_FLOOR = 1e-6
const AGC_GAIN_CLAMP = 2.0

const MF_WIDTH_SYM = 1.5 // Matched filter length in symbol times.

/* Lock quality decays slowly so the payload, which looks nothing
   like the preamble, doesn't knock us straight back to unlocked
   in the middle of a frame. */

const LOCK_DECAY = 0.9999

const PLL_REPORT_SYMBOLS = 256 // Diagnostic event interval.

/*------------------------------------------------------------------
 *
 * Name:        demod_bpsk_init
 *
 * Purpose:     Allocate demodulator state and derive all the DSP
 *		constants from the configuration.
 *
 *----------------------------------------------------------------*/

func demod_bpsk_init(c *modem_config_s) *demodulator_state_s {

	var fs = float64(c.SampleRate)
	var spb = c.samples_per_symbol()

	var lp_cutoff = c.SymbolRate * c.LowPassFactor
	if lp_cutoff < 200 {
		lp_cutoff = 200
	}

	var D = &demodulator_state_s{
		fs:            fs,
		nco_step:      2 * math.Pi * c.CarrierHz / fs,
		lp_alpha:      iir_lowpass_alpha(lp_cutoff, fs),
		freq_corr_max: math.Min(0.1, 2*math.Pi*600/fs),
		spb:           spb,
		mf_taps:       gen_matched_filter(spb, MF_WIDTH_SYM),
		lock_thresh:   c.LockThreshold,
		holdoff:       c.HoldoffSymbols,
		pre_len:       c.PreambleLen,
	}

	D.mf_ring = make([]float64, len(D.mf_taps))
	D.pre_window = make([]float64, D.pre_len)

	return D
}

/*------------------------------------------------------------------
 *
 * Name:        demod_bpsk_process_block
 *
 * Purpose:     Run one block of audio samples through the pipeline.
 *
 * Inputs:	D	- Demodulator state.
 *		samples	- Audio block, any length.
 *		q	- Event queue for lock / pll events.
 *
 * Returns:	Hard bits demodulated during this block, valid until
 *		the next call.  Empty while unlocked or in holdoff.
 *
 *----------------------------------------------------------------*/

func demod_bpsk_process_block(D *demodulator_state_s, samples []float64, q chan rx_event_s) []byte {

	D.batch = D.batch[:0]

	for _, s := range samples {
		demod_bpsk_sample(D, s, q)
	}

	return D.batch
}

func demod_bpsk_sample(D *demodulator_state_s, s float64, q chan rx_event_s) {

	/*
	 * NCO mixing.  The correction term is the Costas loop's
	 * current estimate of how far off the far end's carrier is.
	 */

	D.phase += D.nco_step + D.freq_corr
	for D.phase >= 2*math.Pi {
		D.phase -= 2 * math.Pi
	}
	for D.phase < 0 {
		D.phase += 2 * math.Pi
	}

	var mi = s * math.Cos(D.phase)
	var mq = -s * math.Sin(D.phase)

	/* Low pass to kill the 2x carrier image. */

	D.lp_i += D.lp_alpha * (mi - D.lp_i)
	D.lp_q += D.lp_alpha * (mq - D.lp_q)

	/* AGC.  Track the envelope, normalize, clamp the gain. */

	var mag = math.Hypot(D.lp_i, D.lp_q)
	if mag > D.agc_env {
		D.agc_env += AGC_ATTACK * (mag - D.agc_env)
	} else {
		D.agc_env += AGC_DECAY * (mag - D.agc_env)
	}

	var norm_i = agc_clamp(D.lp_i / math.Max(AGC_FLOOR, D.agc_env))
	var norm_q = agc_clamp(D.lp_q / math.Max(AGC_FLOOR, D.agc_env))

	/*
	 * Costas loop.  For BPSK the product I*Q is proportional to
	 * sin(2*phaseError) regardless of the data, so it drives a
	 * classic PI update: integrate into the frequency correction,
	 * nudge the phase directly.
	 */

	var err = norm_i * norm_q

	D.freq_corr += COSTAS_KI * err
	if D.freq_corr > D.freq_corr_max {
		D.freq_corr = D.freq_corr_max
	} else if D.freq_corr < -D.freq_corr_max {
		D.freq_corr = -D.freq_corr_max
	}
	D.phase += COSTAS_KP * err

	/* Matched filter over the normalized in-phase stream. */

	D.mf_ring[D.mf_pos] = norm_i
	D.mf_pos++
	if D.mf_pos >= len(D.mf_ring) {
		D.mf_pos = 0
	}

	/* Free running symbol clock. */

	D.timing_acc++
	if D.timing_acc >= D.spb {
		D.timing_acc -= D.spb
		demod_bpsk_symbol(D, q)
	}
}

func agc_clamp(v float64) float64 {
	if v > AGC_GAIN_CLAMP {
		return AGC_GAIN_CLAMP
	}
	if v < -AGC_GAIN_CLAMP {
		return -AGC_GAIN_CLAMP
	}
	return v
}

/*------------------------------------------------------------------
 *
 * Name:        demod_bpsk_symbol
 *
 * Purpose:     One symbol decision plus the preamble lock logic.
 *
 * Description:	The matched filter output sign is the bit.  The sign
 *		is also pushed into a sliding window which is
 *		correlated against the ideal alternating preamble.
 *		The magnitude of that correlation is the lock metric;
 *		the sign only reflects which way the window happens
 *		to line up (and the 180 degree carrier ambiguity,
 *		which the sync word search resolves later).
 *
 *		State machine:
 *
 *		  Unlocked --(|corr| > threshold)--> Locked+Holdoff
 *		  Holdoff --(counter expires)--> Locked, bits flow
 *		  Locked --(quality < threshold/2 | reset)--> Unlocked
 *
 *----------------------------------------------------------------*/

func demod_bpsk_symbol(D *demodulator_state_s, q chan rx_event_s) {

	D.symbol_count++

	/* Weighted sum over the circular tap buffer. */

	var mf float64
	var pos = D.mf_pos
	for _, tap := range D.mf_taps {
		mf += tap * D.mf_ring[pos]
		pos++
		if pos >= len(D.mf_ring) {
			pos = 0
		}
	}

	var bit byte
	var sign = 1.0
	if mf < 0 {
		bit = 1
		sign = -1.0
	}

	/* Preamble correlation over the sliding window. */

	D.pre_window[D.pre_pos] = sign
	D.pre_pos++
	if D.pre_pos >= len(D.pre_window) {
		D.pre_pos = 0
	}
	D.pre_count++

	if D.pre_count >= int64(D.pre_len) {
		var corr float64
		var ref = 1.0
		for k := 0; k < D.pre_len; k++ {
			corr += ref * D.pre_window[k]
			ref = -ref
		}
		corr /= float64(D.pre_len)

		// An alternating window correlates to +-1 depending only on
		// where the ring pointer happens to be, so use the magnitude.
		var quality = math.Abs(corr)

		D.lock_quality = math.Max(quality, D.lock_quality*LOCK_DECAY)

		if !D.locked && quality >= D.lock_thresh {
			D.locked = true
			D.holdoff_left = D.holdoff
			dlq_post(q, rx_event_s{
				etype:       EVENT_LOCKED,
				score:       quality,
				freq_offset: D.freq_offset_hz(),
			})
		} else if D.locked && D.lock_quality < D.lock_thresh/2 {
			D.locked = false
			dlq_post(q, rx_event_s{etype: EVENT_UNLOCKED})
		}
	}

	if D.locked {
		if D.holdoff_left > 0 {
			D.holdoff_left--
		} else {
			D.batch = append(D.batch, bit)
		}
	}

	if D.symbol_count%PLL_REPORT_SYMBOLS == 0 {
		dlq_post(q, rx_event_s{etype: EVENT_PLL, freq_offset: D.freq_offset_hz()})
	}
}

// Estimated carrier frequency offset in Hz, from the Costas loop
// integrator.  Only meaningful while a signal is present.
func (D *demodulator_state_s) freq_offset_hz() float64 {
	return D.freq_corr * D.fs / (2 * math.Pi)
}
