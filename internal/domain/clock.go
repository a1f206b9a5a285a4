package domain

import (
	"fmt"
	"time"
)

// Clock is a validated time of day with minute precision.
type Clock struct {
	hour   int
	minute int
}

// NewClock validates hour (0-23) and minute (0-59).
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("hour %d: %w", hour, ErrOutOfRange)
	}
	if minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("minute %d: %w", minute, ErrOutOfRange)
	}
	return Clock{hour: hour, minute: minute}, nil
}

// ParseClock parses an HH:MM string. Both fields must be exactly two digits.
func ParseClock(s string) (Clock, error) {
	if !fitsShape(s, "99:99") {
		return Clock{}, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return NewClock(atoiDigits(s[0:2]), atoiDigits(s[3:5]))
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{hour: t.Hour(), minute: t.Minute()}
}

func (c Clock) Hour() int   { return c.hour }
func (c Clock) Minute() int { return c.minute }

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.hour*60 + c.minute
}

// Compare orders clocks by hour, then minute, returning -1, 0 or +1.
func (c Clock) Compare(other Clock) int {
	if c.hour != other.hour {
		return cmpInt(c.hour, other.hour)
	}
	return cmpInt(c.minute, other.minute)
}

func (c Clock) Before(other Clock) bool { return c.Compare(other) < 0 }
func (c Clock) After(other Clock) bool  { return c.Compare(other) > 0 }
func (c Clock) Equal(other Clock) bool  { return c == other }

// DurationFrom returns how long after earlier the receiver is. The second
// result is false when earlier is actually later than c; differences never
// wrap around midnight.
func (c Clock) DurationFrom(earlier Clock) (time.Duration, bool) {
	if c.Before(earlier) {
		return 0, false
	}
	return time.Duration(c.Minutes()-earlier.Minutes()) * time.Minute, true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}
