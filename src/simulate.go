package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Channel impairments for testing the receiver without
 *		actually yelling at a microphone.
 *
 *------------------------------------------------------------------*/

import (
	"math"
	"math/rand"
)

/*------------------------------------------------------------------
 *
 * Name:        channel_awgn
 *
 * Purpose:     Add white Gaussian noise for a target signal to
 *		noise ratio.
 *
 * Inputs:	samples	- Modified in place.
 *		snr_db	- Desired SNR relative to the measured
 *			  signal power.
 *		seed	- Deterministic noise for repeatable tests.
 *
 *----------------------------------------------------------------*/

func channel_awgn(samples []float64, snr_db float64, seed int64) {

	var power float64
	for _, s := range samples {
		power += s * s
	}
	power /= float64(len(samples))

	var noise_sigma = math.Sqrt(power / math.Pow(10, snr_db/10))

	var rng = rand.New(rand.NewSource(seed))
	for i := range samples {
		samples[i] += rng.NormFloat64() * noise_sigma
	}
}

/*------------------------------------------------------------------
 *
 * Name:        channel_gain
 *
 * Purpose:     Scale the whole signal, e.g. to simulate a quiet
 *		speaker.  The AGC is supposed to not care.
 *
 *----------------------------------------------------------------*/

func channel_gain(samples []float64, gain float64) {
	for i := range samples {
		samples[i] *= gain
	}
}

/*------------------------------------------------------------------
 *
 * Name:        channel_resample
 *
 * Purpose:     Stretch or squeeze the time axis by a small ratio,
 *		simulating the sample clock mismatch between two real
 *		sound cards.  Linear interpolation; good enough for
 *		the fractions of a percent that actual crystals miss
 *		by.
 *
 * Inputs:	samples	- Original signal.
 *		ratio	- Far end clock relative to ours.  1.0005 means
 *			  their clock runs 500 ppm fast.
 *
 * Returns:	The resampled signal.
 *
 *----------------------------------------------------------------*/

func channel_resample(samples []float64, ratio float64) []float64 {

	Assert(ratio > 0.5 && ratio < 2.0)

	var out = make([]float64, 0, int(float64(len(samples))/ratio)+1)
	for pos := 0.0; pos < float64(len(samples)-1); pos += ratio {
		var i = int(pos)
		var frac = pos - float64(i)
		out = append(out, samples[i]*(1-frac)+samples[i+1]*frac)
	}
	return out
}
