package domain

import (
	"fmt"
	"time"
)

var lastDayOfMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a validated calendar date in the proleptic Gregorian calendar.
type Date struct {
	year  int
	month int
	day   int
}

// NewDate validates year, month and day. Months and days are 1-indexed.
func NewDate(year, month, day int) (Date, error) {
	if year < 0 {
		return Date{}, fmt.Errorf("year %d: %w", year, ErrOutOfRange)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d: %w", month, ErrOutOfRange)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day %d of %04d-%02d: %w", day, year, month, ErrOutOfRange)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DaysInMonth returns the number of days in the given month, or 0 when month
// is not in 1..12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	days := lastDayOfMonth[month-1]
	if month == 2 && IsLeapYear(year) {
		days++
	}
	return days
}

// IsLeapYear reports whether year has a 29th of February.
func IsLeapYear(year int) bool {
	return year%4 == 0 && !(year%100 == 0 && year%400 != 0)
}

// ParseDate parses a YYYY-MM-DD string with zero-padded fields.
func ParseDate(s string) (Date, error) {
	if !fitsShape(s, "9999-99-99") {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return NewDate(atoiDigits(s[0:4]), atoiDigits(s[5:7]), atoiDigits(s[8:10]))
}

// fitsShape reports whether s matches shape byte for byte, where '9' in shape
// stands for any ASCII digit.
func fitsShape(s, shape string) bool {
	if len(s) != len(shape) {
		return false
	}
	for i := 0; i < len(shape); i++ {
		if shape[i] == '9' {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		} else if s[i] != shape[i] {
			return false
		}
	}
	return true
}

// atoiDigits converts a string already checked to hold only ASCII digits.
func atoiDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: int(m), day: d}
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// Compare orders dates chronologically, returning -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(d.month, other.month)
	default:
		return cmpInt(d.day, other.day)
	}
}

// At returns the instant at which clock c occurs on d in loc.
func (d Date) At(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, time.Month(d.month), d.day, c.hour, c.minute, 0, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
