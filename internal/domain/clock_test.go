package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, hour, minute int) Clock {
	t.Helper()
	c, err := NewClock(hour, minute)
	require.NoError(t, err)
	return c
}

func TestNewClock_OutOfRange(t *testing.T) {
	cases := []struct {
		hour, minute int
		valid        bool
	}{
		{0, 0, true},
		{12, 0, true},
		{23, 59, true},
		{24, 0, false},
		{0, 60, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tc := range cases {
		_, err := NewClock(tc.hour, tc.minute)
		if tc.valid {
			assert.NoError(t, err, "%d:%d", tc.hour, tc.minute)
		} else {
			assert.ErrorIs(t, err, ErrOutOfRange, "%d:%d", tc.hour, tc.minute)
		}
	}
}

func TestClock_Compare(t *testing.T) {
	base := mustClock(t, 12, 30)

	cases := []struct {
		other Clock
		want  int
	}{
		{mustClock(t, 11, 0), 1},
		{mustClock(t, 12, 0), 1},
		{mustClock(t, 12, 30), 0},
		{mustClock(t, 12, 59), -1},
		{mustClock(t, 13, 0), -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, base.Compare(tc.other), "vs %s", tc.other)
	}
	assert.True(t, base.After(mustClock(t, 12, 29)))
	assert.True(t, base.Before(mustClock(t, 12, 31)))
	assert.True(t, base.Equal(mustClock(t, 12, 30)))
}

func TestClock_DurationFrom(t *testing.T) {
	base := mustClock(t, 12, 0)

	cases := []struct {
		earlier Clock
		want    time.Duration
		ok      bool
	}{
		{mustClock(t, 10, 0), 2 * time.Hour, true},
		{mustClock(t, 11, 30), 30 * time.Minute, true},
		{mustClock(t, 12, 0), 0, true},
		{mustClock(t, 13, 0), 0, false},
	}
	for _, tc := range cases {
		got, ok := base.DurationFrom(tc.earlier)
		assert.Equal(t, tc.ok, ok, "from %s", tc.earlier)
		assert.Equal(t, tc.want, got, "from %s", tc.earlier)
	}
}

func TestClock_DurationFrom_Earlier(t *testing.T) {
	_, ok := mustClock(t, 10, 0).DurationFrom(mustClock(t, 12, 0))
	assert.False(t, ok, "a forward-only difference must not wrap around midnight")
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Hour())
	assert.Equal(t, 5, c.Minute())
	assert.Equal(t, 425, c.Minutes())
	assert.Equal(t, "07:05", c.String())

	_, err = ParseClock("24:00")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = ParseClock("7:5")
	assert.Error(t, err)
	_, err = ParseClock("noon!")
	assert.Error(t, err)
}

func TestParseClock_RejectsMalformed(t *testing.T) {
	for _, in := range []string{"1:234", "+9:05", "07:5x", "07-05", " 7:05", "07:05 ", "0x:05", ""} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseClock(in)
			assert.Error(t, err)
		})
	}
}
