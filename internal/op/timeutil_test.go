package op

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTimestamp tests numeric and string timestamp forms
func TestTimestamp(t *testing.T) {
	before := float64(time.Now().UnixNano()) / float64(time.Second)
	ts := Timestamp()
	after := float64(time.Now().UnixNano()) / float64(time.Second)

	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)

	parsed, err := strconv.ParseFloat(TimestampString(), 64)
	require.NoError(t, err)
	assert.InDelta(t, ts, parsed, 5)
}

// TestFileDate tests the YYYYMMDD token
func TestFileDate(t *testing.T) {
	date := FileDate()
	assert.Len(t, date, 8)

	parsed, err := time.ParseInLocation(fileDateLayout, date, time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), parsed.Year())
}

// TestFileDateTime tests the filename-safe date-time token
func TestFileDateTime(t *testing.T) {
	stamp := FileDateTime()
	assert.GreaterOrEqual(t, len(stamp), 15)

	_, err := time.ParseInLocation(fileDateTimeLayout, stamp, time.Local)
	assert.NoError(t, err)
}

// TestWait tests the blocking sleep
func TestWait(t *testing.T) {
	start := time.Now()
	Wait(0.05)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
