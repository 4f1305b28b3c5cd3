package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Generate the filters used by the demodulator.
 *
 *------------------------------------------------------------------*/

import (
	"math"
)

type bp_window_t int

const (
	BP_WINDOW_TRUNCATED bp_window_t = iota
	BP_WINDOW_COSINE
	BP_WINDOW_HAMMING
)

const MAX_FILTER_SIZE = 480

/*------------------------------------------------------------------
 *
 * Name:        window
 *
 * Purpose:     Filter window shape functions.
 *
 * Inputs:   	type	- BP_WINDOW_COSINE, etc.
 *		size	- Number of filter taps.
 *		j	- Index in range of 0 to size-1.
 *
 * Returns:     Multiplier for the window shape.
 *
 *----------------------------------------------------------------*/

func window(windowType bp_window_t, _size int, _j int) float64 {

	var size = float64(_size)
	var j = float64(_j)

	var center = 0.5 * (size - 1)
	var w float64

	switch windowType {

	case BP_WINDOW_COSINE:
		w = math.Cos((j - center) / size * math.Pi)

	case BP_WINDOW_HAMMING:
		w = 0.53836 - 0.46164*math.Cos((j*2*math.Pi)/(size-1))

	case BP_WINDOW_TRUNCATED:
		fallthrough
	default:
		w = 1.0
	}

	return w
}

/*------------------------------------------------------------------
 *
 * Name:        gen_matched_filter
 *
 * Purpose:     Generate the symbol matched filter kernel.
 *
 * Inputs:   	samples_per_symbol	- Can be fractional.
 *		width_sym		- Filter length in symbol times.
 *
 * Returns:	Raised cosine shaped taps, normalized for unit sum
 *		so the filter has unity gain at DC and the decision
 *		values keep the same scale regardless of length.
 *
 *----------------------------------------------------------------*/

func gen_matched_filter(samples_per_symbol float64, width_sym float64) []float64 {

	var size = int(math.Round(samples_per_symbol * width_sym))
	if size < 3 {
		size = 3
	}
	Assert(size <= MAX_FILTER_SIZE)

	var taps = make([]float64, size)
	var sum float64
	for j := range taps {
		taps[j] = window(BP_WINDOW_COSINE, size, j)
		sum += taps[j]
	}
	for j := range taps {
		taps[j] /= sum
	}

	return taps
}

/*------------------------------------------------------------------
 *
 * Name:        iir_lowpass_alpha
 *
 * Purpose:     Coefficient for a one pole low pass filter,
 *		y += alpha * (x - y).
 *
 * Inputs:	fc	- Cutoff frequency, Hz.
 *		fs	- Sample rate, Hz.
 *
 *----------------------------------------------------------------*/

func iir_lowpass_alpha(fc float64, fs float64) float64 {

	Assert(fc > 0 && fc < fs/2)

	var rc = 1.0 / (2.0 * math.Pi * fc)
	var dt = 1.0 / fs
	return dt / (rc + dt)
}
