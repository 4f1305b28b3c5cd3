package dogwhistle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_config_defaults_are_legal(t *testing.T) {
	var c = config_defaults()
	var clamped = c
	clamped.clamp()
	assert.Equal(t, c, clamped)
}

func Test_config_clamp(t *testing.T) {
	var c = config_defaults()
	c.CarrierHz = 5000
	c.SymbolRate = 99999
	c.LockThreshold = 2.0
	c.PreambleLen = 17
	c.TxPreambleLen = 1
	c.clamp()

	assert.Equal(t, 15000.0, c.CarrierHz)
	assert.Equal(t, 1500.0, c.SymbolRate)
	assert.Equal(t, 0.95, c.LockThreshold)
	assert.Equal(t, 16, c.PreambleLen) // Rounded down to even.
	assert.Equal(t, c.PreambleLen, c.TxPreambleLen)
}

func Test_config_clamp_nyquist(t *testing.T) {
	var c = config_defaults()
	c.CarrierHz = 30000
	c.clamp()

	// 21000 from the range clamp, then pushed below Nyquist minus the
	// sideband allowance: 22050 - 2*1225.
	assert.Equal(t, 19600.0, c.CarrierHz)
}

func Test_config_samples_per_symbol(t *testing.T) {
	var c = config_defaults()
	assert.Equal(t, 36.0, c.samples_per_symbol())

	c.SymbolRate = 1000
	assert.InDelta(t, 44.1, c.samples_per_symbol(), 1e-9)
}

func Test_config_load(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "modem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"carrier_hz: 17500\n"+
			"fec_enabled: false\n"+
			"lock_threshold: 99\n"), 0o644))

	var c, err = config_load(path)
	require.NoError(t, err)

	assert.Equal(t, 17500.0, c.CarrierHz)
	assert.False(t, c.FECEnabled)
	assert.Equal(t, 0.95, c.LockThreshold) // Clamped.

	// Unmentioned fields keep their defaults.
	assert.Equal(t, 44100, c.SampleRate)
	assert.Equal(t, 1225.0, c.SymbolRate)
}

func Test_config_load_missing_file(t *testing.T) {
	var _, err = config_load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func Test_config_load_bad_yaml(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("carrier_hz: [what"), 0o644))

	var _, err = config_load(path)
	assert.Error(t, err)
}
