package dogwhistle

/*
 * This is the current state of one BPSK demodulator.
 *
 * Everything in here is owned by the audio processing context.
 * Nobody else reads or writes it.  A configuration change builds a
 * whole new one rather than mutating in place.
 */

type demodulator_state_s struct {

	/* Constants derived from the configuration. */

	fs            float64 // Sample rate.
	nco_step      float64 // Radians per sample at the nominal carrier.
	lp_alpha      float64 // One pole low pass coefficient for I and Q.
	freq_corr_max float64 // Clamp for the frequency correction, rad/sample.
	spb           float64 // Samples per symbol, fractional.
	mf_taps       []float64
	lock_thresh   float64
	holdoff       int
	pre_len       int

	/* NCO and carrier recovery. */

	phase     float64 // NCO phase, radians, wrapped to [0, 2pi).
	freq_corr float64 // Costas loop frequency correction, rad/sample.

	/* Filters and AGC. */

	lp_i float64 // One pole low pass outputs.
	lp_q float64

	agc_env float64 // Tracked envelope magnitude.

	mf_ring []float64 // Circular tap buffer for the matched filter.
	mf_pos  int

	/* Symbol timing. */

	timing_acc   float64 // Increments by 1 per sample; a symbol pops out
	symbol_count int64   // each time it crosses spb.

	/* Preamble lock. */

	pre_window   []float64 // Sliding window of symbol signs.
	pre_pos      int
	pre_count    int64
	lock_quality float64 // max(|corr|, decayed previous value).
	locked       bool
	holdoff_left int

	/* Output. */

	batch []byte // Bits accumulated during the current block.
}

// reset clears all running state but keeps the derived constants.
func (D *demodulator_state_s) reset() {
	D.phase = 0
	D.freq_corr = 0
	D.lp_i = 0
	D.lp_q = 0
	D.agc_env = 0
	for i := range D.mf_ring {
		D.mf_ring[i] = 0
	}
	D.mf_pos = 0
	D.timing_acc = 0
	D.symbol_count = 0
	for i := range D.pre_window {
		D.pre_window[i] = 0
	}
	D.pre_pos = 0
	D.pre_count = 0
	D.lock_quality = 0
	D.locked = false
	D.holdoff_left = 0
	D.batch = D.batch[:0]
}
