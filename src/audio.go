package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Interface to the "sound card" via PortAudio.
 *
 * Description:	Deliberately thin.  The modem core works on sample
 *		slices and has no idea where they come from; this
 *		file is the only place that touches a real device.
 *		If the device cannot be opened, the core is never
 *		entered at all.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

const AUDIO_BLOCK_SIZE = 512

type audio_s struct {
	in      *portaudio.Stream
	out     *portaudio.Stream
	in_buf  []float32
	out_buf []float32
}

/*------------------------------------------------------------------
 *
 * Name:        audio_open
 *
 * Purpose:     Open the default capture and playback devices.
 *
 * Inputs:	sample_rate	- Samples per second, both directions.
 *
 * Returns:	Handle, or an error if there is no usable device.
 *		Pointless to continue without one.
 *
 *----------------------------------------------------------------*/

func audio_open(sample_rate int) (*audio_s, error) {

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("could not initialize PortAudio: %w", err)
	}

	var a = &audio_s{
		in_buf:  make([]float32, AUDIO_BLOCK_SIZE),
		out_buf: make([]float32, AUDIO_BLOCK_SIZE),
	}

	var err error
	a.in, err = portaudio.OpenDefaultStream(1, 0, float64(sample_rate), len(a.in_buf), a.in_buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("could not open capture device: %w", err)
	}

	a.out, err = portaudio.OpenDefaultStream(0, 1, float64(sample_rate), len(a.out_buf), a.out_buf)
	if err != nil {
		a.in.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("could not open playback device: %w", err)
	}

	return a, nil
}

func (a *audio_s) audio_close() {
	if a.in != nil {
		a.in.Close()
	}
	if a.out != nil {
		a.out.Close()
	}
	portaudio.Terminate()
}

/*------------------------------------------------------------------
 *
 * Name:        audio_read_block
 *
 * Purpose:     Read one block of capture samples into a float64
 *		slice for the DSP code.
 *
 *----------------------------------------------------------------*/

func (a *audio_s) audio_read_block(dst []float64) error {

	Assert(len(dst) == len(a.in_buf))

	if err := a.in.Read(); err != nil {
		return fmt.Errorf("capture read failed: %w", err)
	}

	for i, s := range a.in_buf {
		dst[i] = float64(s)
	}
	return nil
}

func (a *audio_s) audio_start_capture() error {
	return a.in.Start()
}

/*------------------------------------------------------------------
 *
 * Name:        audio_play
 *
 * Purpose:     Play a whole waveform, blocking until done.
 *		Fire and forget from the modem's point of view.
 *
 *----------------------------------------------------------------*/

func (a *audio_s) audio_play(samples []float64) error {

	if err := a.out.Start(); err != nil {
		return fmt.Errorf("could not start playback: %w", err)
	}
	defer a.out.Stop()

	for pos := 0; pos < len(samples); pos += len(a.out_buf) {
		var n = copy(a.out_buf, float64s_to_float32s(samples[pos:]))
		for i := n; i < len(a.out_buf); i++ {
			a.out_buf[i] = 0
		}
		if err := a.out.Write(); err != nil {
			return fmt.Errorf("playback write failed: %w", err)
		}
	}

	return nil
}

func float64s_to_float32s(in []float64) []float32 {
	var n = len(in)
	if n > AUDIO_BLOCK_SIZE {
		n = AUDIO_BLOCK_SIZE
	}
	var out = make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(in[i])
	}
	return out
}
