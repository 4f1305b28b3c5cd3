package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Received event queue.
 *
 * Description:	The audio processing context must never block, so
 *		everything it wants to tell the rest of the world -
 *		decoded frames, lock transitions, diagnostics - goes
 *		through this queue as fire-and-forget messages.
 *
 *		The queue is a buffered channel.  If the consumer
 *		falls behind, events are dropped rather than stalling
 *		the sample pipeline; a dropped diagnostic is annoying,
 *		a missed audio block deadline is fatal.
 *
 *------------------------------------------------------------------*/

type event_type_t int

const (
	EVENT_LOCKED event_type_t = iota // Preamble correlation crossed the lock threshold.
	EVENT_UNLOCKED
	EVENT_BITS           // Batch of demodulated hard bits, one per byte.
	EVENT_PLL            // Periodic estimated carrier frequency offset.
	EVENT_DELAY          // Periodic processing delay report.
	EVENT_FRAME          // A frame passed its CRC.
	EVENT_CRC_ERROR      // A complete frame failed its CRC.
	EVENT_INVALID_LENGTH // Decoded length field is implausible; stream resynced.
	EVENT_NOISE_FLOOR    // Periodic band power estimate around the carrier.
)

var event_type_text = map[event_type_t]string{
	EVENT_LOCKED:         "locked",
	EVENT_UNLOCKED:       "unlocked",
	EVENT_BITS:           "bits",
	EVENT_PLL:            "pll",
	EVENT_DELAY:          "delay",
	EVENT_FRAME:          "frame",
	EVENT_CRC_ERROR:      "crc-error",
	EVENT_INVALID_LENGTH: "invalid-length",
	EVENT_NOISE_FLOOR:    "noise-floor",
}

func (t event_type_t) String() string {
	return event_type_text[t]
}

type rx_event_s struct {
	etype event_type_t

	score       float64 // EVENT_LOCKED: normalized preamble correlation.
	freq_offset float64 // EVENT_LOCKED / EVENT_PLL: estimated carrier offset, Hz.
	delay_sec   float64 // EVENT_DELAY.

	bits []byte // EVENT_BITS.

	text     string // EVENT_FRAME: decoded payload text.
	expected uint16 // EVENT_CRC_ERROR.
	received uint16 // EVENT_CRC_ERROR.

	length int // EVENT_INVALID_LENGTH: the bogus value.

	signal_db float64 // EVENT_NOISE_FLOOR.
	noise_db  float64 // EVENT_NOISE_FLOOR.
}

const DLQ_DEPTH = 256

func dlq_init() chan rx_event_s {
	return make(chan rx_event_s, DLQ_DEPTH)
}

/*------------------------------------------------------------------
 *
 * Name:	dlq_post
 *
 * Purpose:	Non-blocking send from the audio context.
 *
 * Returns:	False if the queue was full and the event dropped.
 *
 *------------------------------------------------------------------*/

func dlq_post(q chan rx_event_s, e rx_event_s) bool {
	select {
	case q <- e:
		return true
	default:
		dwlog.Warn("event queue full, dropping", "type", e.etype)
		return false
	}
}
