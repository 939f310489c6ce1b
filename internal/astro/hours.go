package astro

import (
	"math"
	"strconv"
	"time"
)

// Hours is a fractional hour offset from 00:00 UTC of some date. It may be
// undefined, which happens when the Sun never reaches the requested altitude
// on that day. Values can fall outside [0, 24).
type Hours struct {
	value float64
	ok    bool
}

// HoursOf wraps v, treating NaN and infinities as undefined.
func HoursOf(v float64) Hours {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Hours{}
	}
	return Hours{value: v, ok: true}
}

// Undefined returns an Hours with no value.
func Undefined() Hours {
	return Hours{}
}

// Value returns the fractional hours and whether they are defined.
func (h Hours) Value() (float64, bool) {
	return h.value, h.ok
}

// Defined reports whether h carries a value.
func (h Hours) Defined() bool {
	return h.ok
}

// Time places h on d. The hour, minute and second are floored
// individually, so the result is truncated to whole seconds.
func (h Hours) Time(d Date) (time.Time, bool) {
	if !h.ok {
		return time.Time{}, false
	}
	hours := math.Floor(h.value)
	minutes := math.Floor((h.value - hours) * 60)
	seconds := math.Floor((h.value - (hours + minutes/60)) * 60 * 60)

	offset := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	return d.Midnight().Add(offset), true
}

func (h Hours) String() string {
	if !h.ok {
		return "undefined"
	}
	return strconv.FormatFloat(h.value, 'f', 6, 64) + "h"
}
