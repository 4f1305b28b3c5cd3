package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Convert bits to a BPSK waveform for writing to a
 *		.WAV sound file or a sound device.
 *
 * Description:	Direct digital synthesis.  Bit 0 is carrier phase 0
 *		(symbol sign +1), bit 1 is phase 180 (sign -1).  The
 *		phase accumulator runs continuously across the whole
 *		frame; nothing is reset at symbol boundaries, so the
 *		only discontinuity is the deliberate sign flip.
 *
 *		To keep that flip from splattering energy across the
 *		audible band, the first and last ~15% of each symbol
 *		get a half raised cosine amplitude ramp.
 *
 *------------------------------------------------------------------*/

import (
	"math"
)

const GEN_EDGE_FRACTION = 0.15

type wave_gen_s struct {
	phase      float64 // Carrier phase accumulator, radians.
	phase_step float64 // Radians per sample.

	spb      float64 // Samples per symbol, fractional.
	spb_acc  float64 // Fractional sample accumulator.
	edge_len int     // Samples in each half raised cosine ramp.

	amplitude float64
}

func gen_wave_init(c *modem_config_s) *wave_gen_s {

	var g = &wave_gen_s{
		phase_step: 2 * math.Pi * c.CarrierHz / float64(c.SampleRate),
		spb:        c.samples_per_symbol(),
		amplitude:  c.Amplitude,
	}
	g.edge_len = int(math.Floor(g.spb * GEN_EDGE_FRACTION))
	if g.edge_len < 1 {
		g.edge_len = 1
	}
	return g
}

/*------------------------------------------------------------------
 *
 * Name:        gen_put_bit
 *
 * Purpose:     Append the waveform for one bit.
 *
 * Inputs:	bit	- 0 or 1.
 *		out	- Sample buffer to append to.
 *
 * Returns:	The extended buffer.
 *
 * Description:	The symbol span is fractional.  The accumulator
 *		carries the remainder so a long frame stays exactly
 *		on the symbol clock instead of drifting by a sample
 *		every few symbols.
 *
 *----------------------------------------------------------------*/

func (g *wave_gen_s) gen_put_bit(bit byte, out []float64) []float64 {

	var sign = 1.0
	if bit&1 != 0 {
		sign = -1.0
	}

	g.spb_acc += g.spb
	var n = int(g.spb_acc)
	g.spb_acc -= float64(n)

	for j := 0; j < n; j++ {
		var envelope = 1.0
		if j < g.edge_len {
			// Rising half raised cosine.
			envelope = 0.5 * (1 - math.Cos(math.Pi*float64(j)/float64(g.edge_len)))
		} else if j >= n-g.edge_len {
			envelope = 0.5 * (1 - math.Cos(math.Pi*float64(n-1-j)/float64(g.edge_len)))
		}

		out = append(out, sign*envelope*math.Cos(g.phase)*g.amplitude)

		g.phase += g.phase_step
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	}

	return out
}

/*------------------------------------------------------------------
 *
 * Name:        gen_frame_wave
 *
 * Purpose:     Waveform for a whole frame, with a little silence on
 *		both ends so a sound device ramping up doesn't eat
 *		the first preamble bits.
 *
 *----------------------------------------------------------------*/

const GEN_GUARD_MS = 50

func gen_frame_wave(c *modem_config_s, bits []byte) []float64 {

	var g = gen_wave_init(c)
	var guard = c.SampleRate * GEN_GUARD_MS / 1000

	var out = make([]float64, guard, guard+int(float64(len(bits))*g.spb)+2*guard)
	for _, b := range bits {
		out = g.gen_put_bit(b, out)
	}
	out = append(out, make([]float64, guard)...)
	return out
}
