package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Band power diagnostic.
 *
 * Description:	Periodically FFT an audio block and compare the power
 *		inside the signal band around the carrier with the
 *		power everywhere else.  Purely informational - the
 *		demodulator never looks at this - but it makes "is
 *		there even a signal on this carrier" questions easy
 *		to answer from the event stream.
 *
 *------------------------------------------------------------------*/

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

/*------------------------------------------------------------------
 *
 * Name:        band_power_db
 *
 * Purpose:     Power in the band carrier +- half_width versus the
 *		power outside it.
 *
 * Inputs:	samples		- One audio block.
 *		fs		- Sample rate.
 *		carrier		- Band center, Hz.
 *		half_width	- Half the band width, Hz.
 *
 * Returns:	signal_db, noise_db - both relative to full scale.
 *
 *----------------------------------------------------------------*/

func band_power_db(samples []float64, fs float64, carrier float64, half_width float64) (float64, float64) {

	if len(samples) < 32 {
		return -120, -120
	}

	var fft = fourier.NewFFT(len(samples))
	var coeffs = fft.Coefficients(nil, samples)

	var bin_hz = fs / float64(len(samples))
	var lo = int((carrier - half_width) / bin_hz)
	var hi = int((carrier + half_width) / bin_hz)
	if lo < 0 {
		lo = 0
	}
	if hi >= len(coeffs) {
		hi = len(coeffs) - 1
	}

	var in_band, out_band float64
	var in_bins, out_bins int
	for i, c := range coeffs {
		var p = cmplx.Abs(c) * cmplx.Abs(c)
		if i >= lo && i <= hi {
			in_band += p
			in_bins++
		} else {
			out_band += p
			out_bins++
		}
	}

	var n = float64(len(samples))
	return power_db(in_band, in_bins, n), power_db(out_band, out_bins, n)
}

func power_db(total float64, bins int, n float64) float64 {

	if bins == 0 || total <= 0 {
		return -120
	}

	var db = 10 * math.Log10(total/(float64(bins)*n*n))
	if db < -120 {
		db = -120
	}
	return db
}
