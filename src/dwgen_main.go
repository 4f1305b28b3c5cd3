package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Test message generator.  Encodes text messages into
 *		a .WAV sound file, optionally with simulated channel
 *		impairments, for feeding to dwrec or any receiver.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func DwgenMain() {

	var output = pflag.StringP("output", "o", "dogwhistle.wav", "Output WAV file name.")
	var carrier = pflag.Float64P("carrier", "F", 0, "Carrier frequency in Hz.")
	var baud = pflag.Float64P("baud", "B", 0, "Symbols per second.")
	var fec = pflag.BoolP("fec", "f", true, "Convolutional FEC on the frame body.")
	var snr = pflag.Float64P("snr", "e", 0, "Add white noise for this SNR in dB.  0 means clean.")
	var gain = pflag.Float64P("gain", "g", 1.0, "Scale the signal level, e.g. 0.1 for a weak signal.")
	var skew = pflag.Float64P("skew", "k", 1.0, "Simulated sample clock ratio, e.g. 1.0005 for 500 ppm fast.")
	var count = pflag.IntP("count", "n", 1, "Repeat each message this many times.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - encode text messages into a WAV file.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: dwgen [options] message [message...]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || len(pflag.Args()) == 0 {
		pflag.Usage()
		os.Exit(1)
	}

	SetVerbose(*verbose)

	var config = config_defaults()
	if *carrier != 0 {
		config.CarrierHz = *carrier
	}
	if *baud != 0 {
		config.SymbolRate = *baud
	}
	config.FECEnabled = *fec

	var modem = NewModem(config)

	var samples []float64
	for i := 0; i < *count; i++ {
		for _, text := range pflag.Args() {
			var wave, err = modem.EncodeText(text)
			if err != nil {
				dwlog.Fatal("cannot encode", "message", text, "error", err)
			}
			samples = append(samples, wave...)
		}
	}

	if *skew != 1.0 {
		samples = channel_resample(samples, *skew)
	}
	if *gain != 1.0 {
		channel_gain(samples, *gain)
	}
	if *snr != 0 {
		channel_awgn(samples, *snr, 1)
	}

	if err := wav_write(*output, samples, modem.Config().SampleRate); err != nil {
		dwlog.Fatal("write failed", "error", err)
	}

	dwlog.Info("wrote", "file", *output, "samples", len(samples),
		"seconds", fmt.Sprintf("%.2f", float64(len(samples))/float64(modem.Config().SampleRate)))
}
