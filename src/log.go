package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Package logger.
 *
 *------------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

var dwlog = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "dogwhistle",
	ReportTimestamp: true,
})

// SetVerbose turns on debug logging for the whole package.
func SetVerbose(verbose bool) {
	if verbose {
		dwlog.SetLevel(log.DebugLevel)
	} else {
		dwlog.SetLevel(log.InfoLevel)
	}
}
