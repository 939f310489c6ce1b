package prayer

import (
	"math"

	"github.com/litescript/ls-salat/internal/astro"
)

// Seasonal twilight coefficients of the Moonsighting Committee, as minutes
// per 55° of latitude on top of a 75 minute base. The values apply at the
// winter solstice (a), the equinoxes (b), 46 days either side of the summer
// solstice (c) and the summer solstice itself (d).
var (
	fajrSeason = seasonCoefficients{28.65, 19.44, 32.74, 48.10}
	ishaSeason = seasonCoefficients{25.60, 2.050, -9.210, 6.140}
)

type seasonCoefficients struct{ a, b, c, d float64 }

// minutes returns the twilight length in minutes dyy days after the winter
// solstice at the given latitude.
func (k seasonCoefficients) minutes(latitude float64, dyy int) float64 {
	lat := math.Abs(latitude)
	a := 75 + k.a/55.0*lat
	b := 75 + k.b/55.0*lat
	c := 75 + k.c/55.0*lat
	d := 75 + k.d/55.0*lat

	x := float64(dyy)
	switch {
	case dyy < 91:
		return a + (b-a)/91.0*x
	case dyy < 137:
		return b + (c-b)/46.0*(x-91)
	case dyy < 183:
		return c + (d-c)/46.0*(x-137)
	case dyy < 229:
		return d + (c-d)/46.0*(x-183)
	case dyy < 275:
		return c + (b-c)/46.0*(x-229)
	default:
		return b + (a-b)/91.0*(x-275)
	}
}

// seasonAdjustedMorningTwilight returns the Fajr bound in minutes before
// sunrise.
func seasonAdjustedMorningTwilight(latitude float64, dayOfYear, year int) float64 {
	return fajrSeason.minutes(latitude, daysSinceSolstice(dayOfYear, year, latitude))
}

// seasonAdjustedEveningTwilight returns the Isha bound in minutes after
// sunset.
func seasonAdjustedEveningTwilight(latitude float64, dayOfYear, year int) float64 {
	return ishaSeason.minutes(latitude, daysSinceSolstice(dayOfYear, year, latitude))
}

// daysSinceSolstice counts days since the local winter solstice: December 21
// in the northern hemisphere, June 21 in the southern.
func daysSinceSolstice(dayOfYear, year int, latitude float64) int {
	daysInYear := 365
	if astro.IsLeapYear(year) {
		daysInYear = 366
	}

	if latitude >= 0 {
		days := dayOfYear + 10
		if days >= daysInYear {
			days -= daysInYear
		}
		return days
	}

	southern := 172
	if astro.IsLeapYear(year) {
		southern = 173
	}
	days := dayOfYear - southern
	if days < 0 {
		days += daysInYear
	}
	return days
}
