package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Offline receiver.  Runs WAV files through the whole
 *		receive pipeline and prints what comes out.  Mostly
 *		used for regression testing the demodulator against
 *		recorded or generated signals.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func DwrecMain() {

	var carrier = pflag.Float64P("carrier", "F", 0, "Carrier frequency in Hz.")
	var baud = pflag.Float64P("baud", "B", 0, "Symbols per second.")
	var fec = pflag.BoolP("fec", "f", true, "Convolutional FEC on the frame body.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - decode dogwhistle frames from WAV files.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: dwrec [options] file.wav [file.wav...]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || len(pflag.Args()) == 0 {
		pflag.Usage()
		os.Exit(1)
	}

	SetVerbose(*verbose)

	var frames, crc_errors = 0, 0

	for _, path := range pflag.Args() {
		var samples, rate, err = wav_read(path)
		if err != nil {
			dwlog.Fatal("unreadable input", "error", err)
		}

		var config = config_defaults()
		config.SampleRate = rate
		if *carrier != 0 {
			config.CarrierHz = *carrier
		}
		if *baud != 0 {
			config.SymbolRate = *baud
		}
		config.FECEnabled = *fec

		var modem = NewModem(config)

		for pos := 0; pos < len(samples); pos += AUDIO_BLOCK_SIZE {
			var end = pos + AUDIO_BLOCK_SIZE
			if end > len(samples) {
				end = len(samples)
			}
			modem.ProcessBlock(samples[pos:end])

			for {
				select {
				case e := <-modem.Events():
					switch e.etype {
					case EVENT_LOCKED:
						dwlog.Info("carrier lock", "score", fmt.Sprintf("%.2f", e.score),
							"offset_hz", fmt.Sprintf("%+.1f", e.freq_offset))
					case EVENT_FRAME:
						frames++
						fmt.Printf("%s: %s\n", path, e.text)
					case EVENT_CRC_ERROR:
						crc_errors++
						dwlog.Warn("frame failed CRC", "expected", e.expected, "received", e.received)
					case EVENT_NOISE_FLOOR:
						dwlog.Debug("band power", "signal_db", fmt.Sprintf("%.1f", e.signal_db),
							"noise_db", fmt.Sprintf("%.1f", e.noise_db))
					}
				default:
					goto drained
				}
			}
		drained:
		}
	}

	fmt.Printf("%d frames decoded, %d CRC failures.\n", frames, crc_errors)

	if frames == 0 {
		os.Exit(1)
	}
}
