package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Modem configuration.
 *
 * Description:	Everything that used to be a scattering of optional
 *		knobs is one fully enumerated struct.  Each field has
 *		a default and a hard clamp range; a config is always
 *		run through clamp() before use so the DSP code never
 *		has to defend against a 2 Hz carrier.
 *
 *		A config is applied atomically: changing anything
 *		rebuilds the derived demodulator parameters and fully
 *		resets receive state.  There is no in-place tweaking.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type modem_config_s struct {
	SampleRate int `yaml:"sample_rate"` // Audio samples per second.

	CarrierHz  float64 `yaml:"carrier_hz"`  // BPSK carrier frequency.
	SymbolRate float64 `yaml:"symbol_rate"` // Symbols (= bits) per second.

	PreambleLen   int     `yaml:"preamble_len"`   // Correlation window, in bits.
	TxPreambleLen int     `yaml:"tx_preamble_len"` // Warm-up bits actually transmitted.
	LockThreshold float64 `yaml:"lock_threshold"` // Normalized correlation to declare lock.
	LowPassFactor float64 `yaml:"low_pass_factor"` // LPF cutoff = SymbolRate * this.
	HoldoffSymbols int    `yaml:"holdoff_symbols"` // Symbols to skip after lock while the PLL settles.

	FECEnabled bool `yaml:"fec_enabled"` // Convolutional code on the frame body.

	Amplitude float64 `yaml:"amplitude"` // Transmit level, 0..1 of full scale.

	MsgLogDir string `yaml:"msg_log_dir"` // Directory for daily received-message logs.  Empty disables.
}

func config_defaults() modem_config_s {
	return modem_config_s{
		SampleRate:     44100,
		CarrierHz:      18000,
		SymbolRate:     1225,
		PreambleLen:    32,
		TxPreambleLen:  96,
		LockThreshold:  0.7,
		LowPassFactor:  2.0,
		HoldoffSymbols: 8,
		FECEnabled:     true,
		Amplitude:      0.5,
	}
}

/*------------------------------------------------------------------
 *
 * Name:	clamp
 *
 * Purpose:	Force every field into its legal range.
 *
 *------------------------------------------------------------------*/

func (c *modem_config_s) clamp() {
	clamp_int(&c.SampleRate, 8000, 192000)
	clamp_float(&c.CarrierHz, 15000, 21000)
	clamp_float(&c.SymbolRate, 100, 1500)
	clamp_int(&c.PreambleLen, 16, 256)
	c.PreambleLen &^= 1 // Correlation window must be even; see demod_bpsk_symbol.
	clamp_int(&c.TxPreambleLen, c.PreambleLen, 512)
	clamp_float(&c.LockThreshold, 0.1, 0.95)
	clamp_float(&c.LowPassFactor, 0.5, 4.0)
	clamp_int(&c.HoldoffSymbols, 0, 64)
	clamp_float(&c.Amplitude, 0.01, 0.95)

	// The carrier must stay below Nyquist with room for the sidebands.
	if c.CarrierHz > float64(c.SampleRate)/2-2*c.SymbolRate {
		c.CarrierHz = float64(c.SampleRate)/2 - 2*c.SymbolRate
	}
}

func clamp_int(v *int, lo int, hi int) {
	if *v < lo {
		*v = lo
	}
	if *v > hi {
		*v = hi
	}
}

func clamp_float(v *float64, lo float64, hi float64) {
	if *v < lo {
		*v = lo
	}
	if *v > hi {
		*v = hi
	}
}

// Samples per symbol.  Fractional; both ends of the link accumulate
// the fraction instead of rounding it away.
func (c *modem_config_s) samples_per_symbol() float64 {
	return float64(c.SampleRate) / c.SymbolRate
}

/*------------------------------------------------------------------
 *
 * Name:	config_load
 *
 * Purpose:	Read a configuration file, YAML, on top of defaults.
 *		Missing fields keep their default values.
 *
 *------------------------------------------------------------------*/

func config_load(path string) (modem_config_s, error) {

	var c = config_defaults()

	var data, err = os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("could not read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	c.clamp()
	return c, nil
}
