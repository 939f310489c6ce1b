package astro

import (
	"math"
	"time"
)

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Horizontal is a position in the observer's sky.
type Horizontal struct {
	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Geometric altitude in degrees, no refraction
}

// SunHorizontal returns the Sun's azimuth and altitude for obs at t.
func SunHorizontal(obs Observer, t time.Time) Horizontal {
	sun := NewSolarCoordinates(JulianDayOf(t))
	return EquatorialToHorizontal(sun.RightAscension, sun.Declination,
		sun.ApparentSiderealTime, obs)
}

// EquatorialToHorizontal converts a right ascension and declination into
// azimuth and altitude, given the Greenwich apparent sidereal time.
func EquatorialToHorizontal(raDeg, decDeg, siderealDeg float64, obs Observer) Horizontal {
	// Local hour angle; west of the meridian is positive.
	ha := UnwindAngle(siderealDeg + obs.LonDeg - raDeg)

	alt := AltitudeOfCelestialBody(obs.LatDeg, decDeg, ha)

	// Meeus eq. 13.5 measures azimuth from the south; shift to north.
	az := atan2Deg(sinDeg(ha), cosDeg(ha)*sinDeg(obs.LatDeg)-tanDeg(decDeg)*cosDeg(obs.LatDeg))
	az = UnwindAngle(az + 180)

	if math.IsNaN(az) {
		az = 0
	}
	return Horizontal{AzDeg: az, ElDeg: alt}
}
