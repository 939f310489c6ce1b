// Package prayer derives the daily Islamic prayer times from solar
// altitudes at a location.
//
// Compute is a pure function of its inputs: it never reads the clock or a
// time zone, and every instant it returns is in UTC. Callers convert to a
// local zone for display.
package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-salat/internal/astro"
)

// ErrUndefined is returned when sunrise, sunset, transit or Asr cannot be
// computed for the date, as happens near the poles.
var ErrUndefined = errors.New("prayer times undefined")

// Times holds one day's prayer times, each rounded to the minute.
type Times struct {
	Date    astro.Date
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// Compute returns the prayer times on date at coords.
func Compute(coords Coordinates, date astro.Date, params Parameters) (Times, error) {
	st := astro.NewSolarTime(date, coords.Observer())

	sunrise, okSunrise := st.Sunrise.Time(date)
	transit, okTransit := st.Transit.Time(date)
	sunset, okSunset := st.Sunset.Time(date)
	asr, okAsr := st.Afternoon(params.Madhab.ShadowLength().Ratio()).Time(date)
	if !okSunrise || !okTransit || !okSunset || !okAsr {
		return Times{}, fmt.Errorf("%w on %v at %v", ErrUndefined, date, coords)
	}

	night := sunrise.AddDate(0, 0, 1).Sub(sunset)

	fajr, ok := st.HourAngle(-params.FajrAngle, false).Time(date)
	if safe := safeFajr(coords, date, params, sunrise, night); !ok || fajr.Before(safe) {
		fajr = safe
	}

	var isha time.Time
	if params.IshaInterval > 0 {
		isha = sunset.Add(time.Duration(params.IshaInterval) * time.Minute)
	} else {
		isha, ok = st.HourAngle(-params.IshaAngle, true).Time(date)
		if safe := safeIsha(coords, date, params, sunset, night); !ok || isha.After(safe) {
			isha = safe
		}
	}

	dhuhrOffset, maghribOffset := methodOffsets(params.Method)
	adj := params.Adjustments

	return Times{
		Date:    date,
		Fajr:    adjust(fajr, adj.Fajr),
		Sunrise: adjust(sunrise, adj.Sunrise),
		Dhuhr:   adjust(transit, adj.Dhuhr+dhuhrOffset),
		Asr:     adjust(asr, adj.Asr),
		Maghrib: adjust(sunset, adj.Maghrib+maghribOffset),
		Isha:    adjust(isha, adj.Isha),
	}, nil
}

// safeFajr is the earliest Fajr allowed by the high latitude rule.
func safeFajr(coords Coordinates, date astro.Date, params Parameters, sunrise time.Time, night time.Duration) time.Time {
	if params.Method == MoonsightingCommittee {
		if math.Abs(coords.Latitude) < 55 {
			minutes := seasonAdjustedMorningTwilight(coords.Latitude, date.DayOfYear(), date.Year)
			return sunrise.Add(-time.Duration(math.Floor(minutes)) * time.Minute)
		}
		return sunrise.Add(-seventhOfNight(night))
	}
	portion, _ := params.NightPortions()
	return sunrise.Add(-nightFraction(portion, night))
}

// safeIsha is the latest Isha allowed by the high latitude rule.
func safeIsha(coords Coordinates, date astro.Date, params Parameters, sunset time.Time, night time.Duration) time.Time {
	if params.Method == MoonsightingCommittee {
		if math.Abs(coords.Latitude) < 55 {
			minutes := seasonAdjustedEveningTwilight(coords.Latitude, date.DayOfYear(), date.Year)
			return sunset.Add(time.Duration(math.Ceil(minutes)) * time.Minute)
		}
		return sunset.Add(seventhOfNight(night))
	}
	_, portion := params.NightPortions()
	return sunset.Add(nightFraction(portion, night))
}

// nightFraction is portion of the night truncated to whole seconds.
func nightFraction(portion float64, night time.Duration) time.Duration {
	return time.Duration(portion*night.Seconds()) * time.Second
}

func seventhOfNight(night time.Duration) time.Duration {
	return night / 7 / time.Second * time.Second
}

// methodOffsets returns the Dhuhr and Maghrib offsets in minutes. Dhuhr
// waits for the Sun to clear the meridian.
func methodOffsets(m Method) (dhuhr, maghrib int) {
	if m == MoonsightingCommittee {
		return 5, 3
	}
	return 1, 0
}

func adjust(t time.Time, minutes int) time.Time {
	return astro.RoundToNearestMinute(t.Add(time.Duration(minutes) * time.Minute))
}
