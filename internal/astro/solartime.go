package astro

import "math"

// Sunrise and sunset altitude: 34' of refraction plus 16' of solar
// semi-diameter below the geometric horizon.
const sunriseAltitude = -50.0 / 60.0

// SolarTime holds the solar events of one date at one observer. The
// computation uses solar coordinates at 0h of the previous, current and
// following day so intermediate positions can be interpolated.
type SolarTime struct {
	Observer Observer
	Date     Date

	Transit Hours
	Sunrise Hours
	Sunset  Hours

	today    SolarCoordinates
	previous SolarCoordinates
	next     SolarCoordinates

	approxTransit float64
}

// NewSolarTime computes transit, sunrise and sunset for date at obs.
func NewSolarTime(date Date, obs Observer) SolarTime {
	st := SolarTime{
		Observer: obs,
		Date:     date,
		today:    NewSolarCoordinates(date.JulianDay()),
		previous: NewSolarCoordinates(date.AddDays(-1).JulianDay()),
		next:     NewSolarCoordinates(date.AddDays(1).JulianDay()),
	}

	st.approxTransit = ApproximateTransit(obs.LonDeg,
		st.today.ApparentSiderealTime, st.today.RightAscension)

	st.Transit = CorrectedTransit(st.approxTransit, obs.LonDeg, st.today, st.previous, st.next)
	st.Sunrise = st.HourAngle(sunriseAltitude, false)
	st.Sunset = st.HourAngle(sunriseAltitude, true)
	return st
}

// HourAngle returns when the Sun is at altitude degrees, before transit or
// after it. Twilight altitudes are negative.
func (st SolarTime) HourAngle(altitude float64, afterTransit bool) Hours {
	return CorrectedHourAngle(st.approxTransit, altitude, st.Observer.LatDeg,
		st.Observer.LonDeg, afterTransit, st.today, st.previous, st.next)
}

// Afternoon returns when an object's shadow equals shadowLength times its
// height plus its shadow at transit.
func (st SolarTime) Afternoon(shadowLength float64) Hours {
	tangent := math.Abs(st.Observer.LatDeg - st.today.Declination)
	inverse := shadowLength + tanDeg(tangent)
	angle := atanDeg(1.0 / inverse)
	return st.HourAngle(angle, true)
}
