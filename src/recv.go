package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:   	Tie the receive pipeline together and own its state.
 *
 * Description:	Two cooperating contexts:
 *
 *		The audio context calls ProcessBlock for every block
 *		of input samples.  It must finish before the next
 *		block arrives, so nothing in that path blocks or
 *		allocates much.
 *
 *		The control context consumes events from Events()
 *		and sends Configure / Reset commands.  Commands go
 *		through a channel and are applied at the next block
 *		boundary, so no state is ever shared between the two
 *		contexts.  A configuration change is a full rebuild
 *		and reset, never an in-place mutation.
 *
 *------------------------------------------------------------------*/

import (
	"time"
)

type modem_command_t int

const (
	COMMAND_CONFIGURE modem_command_t = iota
	COMMAND_RESET
)

type modem_command_s struct {
	ctype  modem_command_t
	config modem_config_s // COMMAND_CONFIGURE
}

type Modem struct {
	config modem_config_s

	demod *demodulator_state_s
	sync  *frame_sync_state_s

	events   chan rx_event_s
	commands chan modem_command_s

	blocks      int64
	noise_every int // Blocks between noise floor estimates.  0 disables.
}

const MODEM_NOISE_EVERY = 32

func NewModem(config modem_config_s) *Modem {

	config.clamp()

	var m = &Modem{
		events:      dlq_init(),
		commands:    make(chan modem_command_s, 4),
		noise_every: MODEM_NOISE_EVERY,
	}
	m.rebuild(config)
	return m
}

func (m *Modem) rebuild(config modem_config_s) {
	m.config = config
	m.demod = demod_bpsk_init(&m.config)
	m.sync = frame_sync_init(m.config.FECEnabled, m.events)

	dwlog.Info("modem configured",
		"carrier", m.config.CarrierHz,
		"baud", m.config.SymbolRate,
		"fec", m.config.FECEnabled)
}

// Events is the one way stream of everything the receive side has
// to say: decoded frames, lock transitions, diagnostics.
func (m *Modem) Events() <-chan rx_event_s {
	return m.events
}

// Config returns the active (clamped) configuration.
func (m *Modem) Config() modem_config_s {
	return m.config
}

// Configure asks the audio context to switch to a new configuration
// at the next block boundary.  All receive state is reset.
func (m *Modem) Configure(config modem_config_s) {
	config.clamp()
	m.commands <- modem_command_s{ctype: COMMAND_CONFIGURE, config: config}
}

// Reset abandons any partially received frame and returns the
// pipeline to the unlocked, unsynced state.
func (m *Modem) Reset() {
	m.commands <- modem_command_s{ctype: COMMAND_RESET}
}

/*------------------------------------------------------------------
 *
 * Name:        ProcessBlock
 *
 * Purpose:     Run one block of audio through the whole receive
 *		chain.  Called from the audio context only.
 *
 *----------------------------------------------------------------*/

func (m *Modem) ProcessBlock(samples []float64) {

	m.drain_commands()

	var started = time.Now()

	var bits = demod_bpsk_process_block(m.demod, samples, m.events)
	if len(bits) > 0 {
		// The batch buffer is reused next block, so hand a copy out.
		var copied = make([]byte, len(bits))
		copy(copied, bits)
		dlq_post(m.events, rx_event_s{etype: EVENT_BITS, bits: copied})

		frame_sync_bits(m.sync, bits)
	}

	m.blocks++

	if m.noise_every > 0 && m.blocks%int64(m.noise_every) == 0 {
		var signal_db, noise_db = band_power_db(samples, float64(m.config.SampleRate),
			m.config.CarrierHz, 2*m.config.SymbolRate)
		dlq_post(m.events, rx_event_s{etype: EVENT_NOISE_FLOOR, signal_db: signal_db, noise_db: noise_db})

		dlq_post(m.events, rx_event_s{etype: EVENT_DELAY, delay_sec: time.Since(started).Seconds()})
	}
}

func (m *Modem) drain_commands() {
	for {
		select {
		case cmd := <-m.commands:
			switch cmd.ctype {
			case COMMAND_CONFIGURE:
				m.rebuild(cmd.config)
			case COMMAND_RESET:
				m.demod.reset()
				m.sync.reset()
				dwlog.Debug("pipeline reset")
			}
		default:
			return
		}
	}
}
