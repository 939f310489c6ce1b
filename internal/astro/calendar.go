package astro

import (
	"fmt"
	"math"
	"time"
)

// Date is a proleptic Gregorian calendar date with no time zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month, day. Out-of-range values are
// normalized the way time.Date normalizes them (Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Midnight returns 00:00 UTC on d.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DayOfYear returns the ordinal day, 1 for January 1st.
func (d Date) DayOfYear() int {
	return d.Midnight().YearDay()
}

// JulianDay returns the Julian day at 00:00 UTC on d.
func (d Date) JulianDay() float64 {
	return JulianDay(d.Year, int(d.Month), d.Day, 0)
}

func (d Date) String() string {
	return d.Midnight().Format(time.DateOnly)
}

// Before reports whether d falls on an earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Midnight().Before(o.Midnight())
}

// JulianDay returns the Julian day for a Gregorian calendar date plus a
// fractional hour of day (Meeus ch. 7). January and February count as
// months 13 and 14 of the previous year.
func JulianDay(year, month, day int, hours float64) float64 {
	y := year
	m := month
	if m <= 2 {
		y--
		m += 12
	}
	d := float64(day) + hours/24

	// Integer truncation, not floor, to match the published algorithm.
	a := y / 100
	b := 2 - a + a/4

	i0 := int(365.25 * float64(y+4716))
	i1 := int(30.6001 * float64(m+1))

	return float64(i0) + float64(i1) + d + float64(b) - 1524.5
}

// JulianDayOf returns the Julian day of the instant t.
func JulianDayOf(t time.Time) float64 {
	t = t.UTC()
	hours := float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9
	return JulianDay(t.Year(), int(t.Month()), t.Day(), hours)
}

// JulianCentury returns Julian centuries elapsed since J2000.0.
func JulianCentury(jd float64) float64 {
	return (jd - 2451545.0) / 36525
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 == 0 && year%400 != 0 {
		return false
	}
	return true
}

// RoundToNearestMinute drops the seconds of t, rounding half a minute up.
func RoundToNearestMinute(t time.Time) time.Time {
	seconds := float64(t.Second())
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return base.Add(time.Duration(math.Round(seconds/60)) * time.Minute)
}
