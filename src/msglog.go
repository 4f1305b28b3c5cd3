package dogwhistle

/*------------------------------------------------------------------
 *
 * Purpose:	Save received messages to a log file.
 *
 * Description: Rather than scrolling away in the terminal, decoded
 *		frames can be appended to a CSV file for later
 *		processing.  Daily file names are generated in the
 *		configured directory, so long running receivers roll
 *		over at midnight without any housekeeping.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

type msglog_s struct {
	dir        string
	fp         *os.File
	writer     *csv.Writer
	open_fname string
	pattern    *strftime.Strftime
}

/*------------------------------------------------------------------
 *
 * Name:	msglog_init
 *
 * Purpose:	Initialization at start of application.
 *
 * Inputs:	dir	- Directory for daily log files.
 *		 	  Empty string disables the feature.
 *
 *------------------------------------------------------------------*/

func msglog_init(dir string) (*msglog_s, error) {

	if dir == "" {
		return nil, nil
	}

	var stat, err = os.Stat(dir)
	if err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("message log location %q is not a directory", dir)
	}

	var pattern, perr = strftime.New("%Y-%m-%d.log")
	if perr != nil {
		return nil, perr
	}

	return &msglog_s{dir: dir, pattern: pattern}, nil
}

/*------------------------------------------------------------------
 *
 * Name:	msglog_write
 *
 * Purpose:	Append one decoded frame, or a CRC failure marker,
 *		to today's log.
 *
 *------------------------------------------------------------------*/

func (l *msglog_s) msglog_write(now time.Time, text string, crc_ok bool) error {

	if l == nil {
		return nil
	}

	var fname = filepath.Join(l.dir, l.pattern.FormatString(now))

	if fname != l.open_fname {
		if l.fp != nil {
			l.writer.Flush()
			l.fp.Close()
			l.fp = nil
		}

		var fp, err = os.OpenFile(fname, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("could not open message log: %w", err)
		}
		l.fp = fp
		l.writer = csv.NewWriter(fp)
		l.open_fname = fname
	}

	var status = "ok"
	if !crc_ok {
		status = "crc-error"
	}

	if err := l.writer.Write([]string{now.Format(time.RFC3339), status, text}); err != nil {
		return err
	}
	l.writer.Flush()
	return l.writer.Error()
}

func (l *msglog_s) msglog_close() {
	if l == nil || l.fp == nil {
		return
	}
	l.writer.Flush()
	l.fp.Close()
	l.fp = nil
}
