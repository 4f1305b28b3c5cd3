package dogwhistle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_msglog_disabled(t *testing.T) {
	var l, err = msglog_init("")
	require.NoError(t, err)
	require.Nil(t, l)

	// A nil logger swallows everything quietly.
	assert.NoError(t, l.msglog_write(time.Now(), "ignored", true))
	l.msglog_close()
}

func Test_msglog_rejects_bad_directory(t *testing.T) {
	var _, err = msglog_init(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func Test_msglog_daily_files(t *testing.T) {
	var dir = t.TempDir()
	var l, err = msglog_init(dir)
	require.NoError(t, err)
	defer l.msglog_close()

	var day1 = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	var day2 = day1.Add(24 * time.Hour)

	require.NoError(t, l.msglog_write(day1, "first message", true))
	require.NoError(t, l.msglog_write(day1, "", false))
	require.NoError(t, l.msglog_write(day2, "next day", true))

	var content1, err1 = os.ReadFile(filepath.Join(dir, "2025-03-14.log"))
	require.NoError(t, err1)
	assert.Contains(t, string(content1), "first message")
	assert.Contains(t, string(content1), "ok")
	assert.Contains(t, string(content1), "crc-error")
	assert.NotContains(t, string(content1), "next day")

	var content2, err2 = os.ReadFile(filepath.Join(dir, "2025-03-15.log"))
	require.NoError(t, err2)
	assert.Contains(t, string(content2), "next day")
}
