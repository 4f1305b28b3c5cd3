package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Read and write .WAV sound files.
 *
 * Description:	Only the trivial subset anybody actually needs here:
 *		16 bit signed PCM, one channel.  Anything fancier in
 *		a file we are asked to read is an error rather than a
 *		guess.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"os"
)

/*------------------------------------------------------------------
 *
 * Name:        wav_write
 *
 * Purpose:     Write samples in the range -1..1 as 16 bit mono PCM.
 *
 *----------------------------------------------------------------*/

func wav_write(path string, samples []float64, sample_rate int) error {

	var pcm = make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		pcm[i] = int16(s * 32767)
	}

	var data_len = uint32(len(pcm) * 2)

	var f, err = os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	var header = struct {
		RIFF        [4]byte
		FileLen     uint32
		WAVE        [4]byte
		Fmt         [4]byte
		FmtLen      uint32
		Format      uint16
		Channels    uint16
		SampleRate  uint32
		ByteRate    uint32
		BlockAlign  uint16
		BitsPerSamp uint16
		Data        [4]byte
		DataLen     uint32
	}{
		RIFF:        [4]byte{'R', 'I', 'F', 'F'},
		FileLen:     36 + data_len,
		WAVE:        [4]byte{'W', 'A', 'V', 'E'},
		Fmt:         [4]byte{'f', 'm', 't', ' '},
		FmtLen:      16,
		Format:      1, // PCM
		Channels:    1,
		SampleRate:  uint32(sample_rate),
		ByteRate:    uint32(sample_rate * 2),
		BlockAlign:  2,
		BitsPerSamp: 16,
		Data:        [4]byte{'d', 'a', 't', 'a'},
		DataLen:     data_len,
	}

	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("could not write samples: %w", err)
	}

	return nil
}

/*------------------------------------------------------------------
 *
 * Name:        wav_read
 *
 * Purpose:     Read a 16 bit mono PCM .WAV file back into samples
 *		in the range -1..1.
 *
 * Returns:	Samples, sample rate, error.
 *
 *----------------------------------------------------------------*/

func wav_read(path string) ([]float64, int, error) {

	var data, err = os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("could not read %s: %w", path, err)
	}

	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%s is not a WAV file", path)
	}

	// Walk the chunks.  Some writers stick extra chunks before "data".
	var sample_rate int
	var channels, bits int
	var pcm []byte

	var pos = 12
	for pos+8 <= len(data) {
		var id = string(data[pos : pos+4])
		var size = int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		var body_start = pos + 8
		if body_start+size > len(data) {
			size = len(data) - body_start
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("%s has a short fmt chunk", path)
			}
			var format = int(binary.LittleEndian.Uint16(data[body_start:]))
			channels = int(binary.LittleEndian.Uint16(data[body_start+2:]))
			sample_rate = int(binary.LittleEndian.Uint32(data[body_start+4:]))
			bits = int(binary.LittleEndian.Uint16(data[body_start+14:]))
			if format != 1 || channels != 1 || bits != 16 {
				return nil, 0, fmt.Errorf("%s: want 16 bit mono PCM, got format=%d channels=%d bits=%d",
					path, format, channels, bits)
			}
		case "data":
			pcm = data[body_start : body_start+size]
		}

		pos = body_start + size
		if size%2 == 1 {
			pos++ // Chunks are word aligned.
		}
	}

	if sample_rate == 0 || pcm == nil {
		return nil, 0, fmt.Errorf("%s is missing fmt or data chunk", path)
	}

	var samples = make([]float64, len(pcm)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(pcm[i*2:]))) / 32768.0
	}

	return samples, sample_rate, nil
}
