package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Transmit side.  Text in, waveform out.
 *
 * Description:	Fire and forget: once the sample buffer is handed to
 *		whatever plays it, the encoder is done.  There is no
 *		acknowledgement and no retry at this layer.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
)

/*------------------------------------------------------------------
 *
 * Name:        EncodeText
 *
 * Purpose:     Build the complete waveform for one text message.
 *
 * Inputs:	text	- Up to 255 bytes.
 *
 * Returns:	Audio samples at the configured rate, or an error if
 *		the message can never fit in a frame.  The only
 *		fatal input condition; it is rejected here before
 *		any sound is made.
 *
 *----------------------------------------------------------------*/

func (m *Modem) EncodeText(text string) ([]float64, error) {

	var bits, err = frame_build([]byte(text), m.config.TxPreambleLen, m.config.FECEnabled)
	if err != nil {
		return nil, fmt.Errorf("cannot encode message: %w", err)
	}

	dwlog.Debug("transmit", "bytes", len(text), "bits", len(bits))

	return gen_frame_wave(&m.config, bits), nil
}
