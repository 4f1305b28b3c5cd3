package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Main program for the live acoustic modem.
 *
 * Description:	Opens the default sound device, then either transmits
 *		one message and exits, or listens forever, printing
 *		every decoded frame.  The DSP runs in the audio
 *		goroutine; this function is the control context that
 *		consumes events.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

func DogwhistleMain() {

	var configFile = pflag.StringP("config-file", "c", "", "Configuration file name (YAML).")
	var send = pflag.StringP("send", "s", "", "Transmit this message and exit instead of listening.")
	var carrier = pflag.Float64P("carrier", "F", 0, "Carrier frequency in Hz (overrides config).")
	var baud = pflag.Float64P("baud", "B", 0, "Symbols per second (overrides config).")
	var fec = pflag.BoolP("fec", "f", true, "Convolutional FEC on the frame body.")
	var verbose = pflag.BoolP("verbose", "v", false, "Debug logging.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - an ultrasonic 'soundcard' text modem.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nUsage: dogwhistle [options]\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	SetVerbose(*verbose)

	var config = config_defaults()
	if *configFile != "" {
		var loaded, err = config_load(*configFile)
		if err != nil {
			dwlog.Fatal("bad configuration", "error", err)
		}
		config = loaded
	}
	if *carrier != 0 {
		config.CarrierHz = *carrier
	}
	if *baud != 0 {
		config.SymbolRate = *baud
	}
	config.FECEnabled = *fec

	var modem = NewModem(config)

	var audio, err = audio_open(modem.Config().SampleRate)
	if err != nil {
		dwlog.Error("pointless to continue without an audio device", "error", err)
		os.Exit(1)
	}
	defer audio.audio_close()

	if *send != "" {
		var wave, encErr = modem.EncodeText(*send)
		if encErr != nil {
			dwlog.Fatal("cannot send", "error", encErr)
		}
		if playErr := audio.audio_play(wave); playErr != nil {
			dwlog.Fatal("playback failed", "error", playErr)
		}
		dwlog.Info("sent", "bytes", len(*send))
		return
	}

	var mlog, mlogErr = msglog_init(modem.Config().MsgLogDir)
	if mlogErr != nil {
		dwlog.Fatal("message log", "error", mlogErr)
	}
	defer mlog.msglog_close()

	/* Audio context: read blocks, feed the pipeline.  Never blocks
	   on anything but the device itself. */

	go func() {
		if err := audio.audio_start_capture(); err != nil {
			dwlog.Fatal("could not start capture", "error", err)
		}
		var block = make([]float64, AUDIO_BLOCK_SIZE)
		for {
			if err := audio.audio_read_block(block); err != nil {
				dwlog.Error("capture", "error", err)
				return
			}
			modem.ProcessBlock(block)
		}
	}()

	dwlog.Info("listening", "carrier", modem.Config().CarrierHz, "baud", modem.Config().SymbolRate)

	/* Control context: consume events. */

	for e := range modem.Events() {
		switch e.etype {
		case EVENT_LOCKED:
			dwlog.Info("carrier lock", "score", fmt.Sprintf("%.2f", e.score),
				"offset_hz", fmt.Sprintf("%+.1f", e.freq_offset))
		case EVENT_UNLOCKED:
			dwlog.Debug("carrier lost")
		case EVENT_FRAME:
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), e.text)
			if err := mlog.msglog_write(time.Now(), e.text, true); err != nil {
				dwlog.Error("message log", "error", err)
			}
		case EVENT_CRC_ERROR:
			dwlog.Warn("frame failed CRC", "expected", e.expected, "received", e.received)
			if err := mlog.msglog_write(time.Now(), "", false); err != nil {
				dwlog.Error("message log", "error", err)
			}
		case EVENT_INVALID_LENGTH:
			dwlog.Debug("false sync", "length", e.length)
		case EVENT_PLL:
			dwlog.Debug("pll", "offset_hz", fmt.Sprintf("%+.1f", e.freq_offset))
		case EVENT_NOISE_FLOOR:
			dwlog.Debug("band power", "signal_db", fmt.Sprintf("%.1f", e.signal_db),
				"noise_db", fmt.Sprintf("%.1f", e.noise_db))
		case EVENT_DELAY:
			dwlog.Debug("block delay", "seconds", e.delay_sec)
		case EVENT_BITS:
			// Raw bit batches are only interesting to debuggers.
		}
	}
}
