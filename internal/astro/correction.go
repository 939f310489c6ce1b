package astro

import (
	"math"

	"github.com/soniakeys/meeus/v3/interp"
)

// AltitudeOfCelestialBody returns the altitude of a body with declination
// dec seen from latitude lat at local hour angle ha (Meeus eq. 13.6).
func AltitudeOfCelestialBody(lat, dec, ha float64) float64 {
	return asinDeg(sinDeg(lat)*sinDeg(dec) + cosDeg(lat)*cosDeg(dec)*cosDeg(ha))
}

// ApproximateTransit returns the transit as a fraction of the day (Meeus
// eq. 15.2). longitude is east positive.
func ApproximateTransit(longitude, siderealTime, rightAscension float64) float64 {
	// Meeus measures longitude west positive.
	Lw := -longitude
	return NormalizeWithBound((rightAscension+Lw-siderealTime)/360, 1)
}

// CorrectedTransit refines m0 into the transit time in hours from 00:00 UTC
// (Meeus p102). today, previous and next are the solar coordinates at 0h of
// the day and its neighbours.
func CorrectedTransit(m0, longitude float64, today, previous, next SolarCoordinates) Hours {
	Lw := -longitude
	theta := UnwindAngle(today.ApparentSiderealTime + 360.985647*m0)
	alpha := UnwindAngle(InterpolateAngles(
		today.RightAscension, previous.RightAscension, next.RightAscension, m0))
	H := ClosestAngle(theta - Lw - alpha)
	dm := H / -360
	return HoursOf((m0 + dm) * 24)
}

// CorrectedHourAngle returns the time in hours from 00:00 UTC at which the
// Sun reaches altitude h0 before (afterTransit false) or after transit
// (Meeus p102). The result is undefined when the Sun never reaches h0.
func CorrectedHourAngle(m0, h0, lat, longitude float64, afterTransit bool, today, previous, next SolarCoordinates) Hours {
	Lw := -longitude
	cosH0 := (sinDeg(h0) - sinDeg(lat)*sinDeg(today.Declination)) /
		(cosDeg(lat) * cosDeg(today.Declination))
	if cosH0 < -1 || cosH0 > 1 || math.IsNaN(cosH0) {
		return Undefined()
	}
	H0 := acosDeg(cosH0)

	m := m0 - H0/360
	if afterTransit {
		m = m0 + H0/360
	}

	theta := UnwindAngle(today.ApparentSiderealTime + 360.985647*m)
	alpha := UnwindAngle(InterpolateAngles(
		today.RightAscension, previous.RightAscension, next.RightAscension, m))
	delta := Interpolate(today.Declination, previous.Declination, next.Declination, m)
	H := theta - Lw - alpha
	h := AltitudeOfCelestialBody(lat, delta, H)
	dm := (h - h0) / (360 * cosDeg(delta) * cosDeg(lat) * sinDeg(H))
	return HoursOf((m + dm) * 24)
}

// Interpolate performs three-point interpolation around value (Meeus eq.
// 3.3). previous and next are the tabulated neighbours at n = -1 and n = 1.
func Interpolate(value, previous, next, factor float64) float64 {
	tab, err := interp.NewLen3(-1, 1, []float64{previous, value, next})
	if err != nil {
		return math.NaN()
	}
	return tab.InterpolateN(factor)
}

// InterpolateAngles is Interpolate for angles that may cross the 0/360 seam,
// such as right ascension.
func InterpolateAngles(value, previous, next, factor float64) float64 {
	// Unwrap the neighbours so the daily steps stay small across the 0/360 seam.
	a := UnwindAngle(value - previous)
	b := UnwindAngle(next - value)
	return Interpolate(value, value-a, value+b, factor)
}
