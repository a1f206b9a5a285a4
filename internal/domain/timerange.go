package domain

import (
	"fmt"
	"time"
)

// Timestamp is any totally ordered point in time. Clock, Date and time.Time
// all satisfy it.
type Timestamp[T any] interface {
	Compare(T) int
}

// Range is a non-empty interval [start, end) between two timestamps. The zero
// value is not a valid range; use NewRange.
type Range[T Timestamp[T]] struct {
	start T
	end   T
}

type (
	TimeRange     = Range[Clock]
	DateRange     = Range[Date]
	DateTimeRange = Range[time.Time]
)

// NewRange validates that start is strictly before end.
func NewRange[T Timestamp[T]](start, end T) (Range[T], error) {
	if err := validateRange(start, end); err != nil {
		return Range[T]{}, err
	}
	return Range[T]{start: start, end: end}, nil
}

func (r Range[T]) Start() T { return r.start }
func (r Range[T]) End() T   { return r.end }

// SetStart moves the start bound. The range is left untouched when the new
// bound would not be strictly before the current end.
func (r *Range[T]) SetStart(start T) error {
	if err := validateRange(start, r.end); err != nil {
		return err
	}
	r.start = start
	return nil
}

// SetEnd moves the end bound. The range is left untouched when the current
// start would not be strictly before the new bound.
func (r *Range[T]) SetEnd(end T) error {
	if err := validateRange(r.start, end); err != nil {
		return err
	}
	r.end = end
	return nil
}

// Includes reports whether t falls in the range. The start is inclusive and
// the end exclusive, so back-to-back ranges never share an instant.
func (r Range[T]) Includes(t T) bool {
	c := t.Compare(r.start)
	return c == 0 || (c > 0 && t.Compare(r.end) < 0)
}

// Overlaps reports whether the two ranges share at least one instant.
func (r Range[T]) Overlaps(other Range[T]) bool {
	return r.start.Compare(other.end) < 0 && other.start.Compare(r.end) < 0
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%v, %v)", r.start, r.end)
}

// RangeDuration returns the length of an absolute date-time range.
func RangeDuration(r DateTimeRange) time.Duration {
	return r.end.Sub(r.start)
}

func validateRange[T Timestamp[T]](start, end T) error {
	c := start.Compare(end)
	if c == 0 {
		return fmt.Errorf("range [%v, %v): %w", start, end, ErrSameEnd)
	}
	if c > 0 {
		return fmt.Errorf("range [%v, %v): %w", start, end, ErrOppositeEnd)
	}
	return nil
}
