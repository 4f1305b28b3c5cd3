// Package dogwhistle is a software acoustic modem.  It sends and receives
// short text messages as a BPSK signal centered near 18 kHz, high enough
// that most adults never notice it, using an ordinary speaker and microphone.
package dogwhistle

import (
	"fmt"
	"runtime"
)

const MAJOR_VERSION = 0
const MINOR_VERSION = 4

// Can't be "assert" because of conflicts with stretchr/testify/assert, but otherwise, it's compatible enough
func Assert(t bool) {
	if !t {
		_, file, line, _ := runtime.Caller(1)
		panic(fmt.Sprintf("Assertion failed at %s:%d", file, line))
	}
}
