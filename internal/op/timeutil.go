package op

import (
	"strconv"
	"time"
)

const (
	fileDateLayout     = "20060102"
	fileDateTimeLayout = "20060102_150405"
)

// Timestamp returns the current time as fractional epoch seconds.
func Timestamp() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// TimestampString returns Timestamp formatted as a string that parses
// back to the numeric value.
func TimestampString() string {
	return strconv.FormatFloat(Timestamp(), 'f', -1, 64)
}

// FileDateTime returns the current local date-time as a fixed-width
// token suitable for filenames (YYYYMMDD_HHMMSS).
func FileDateTime() string {
	return time.Now().Format(fileDateTimeLayout)
}

// FileDate returns the current local date as YYYYMMDD.
func FileDate() string {
	return time.Now().Format(fileDateLayout)
}

// Wait blocks the calling goroutine for approximately the given number
// of seconds. There is no cancellation.
func Wait(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}
