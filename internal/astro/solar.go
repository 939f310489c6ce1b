// Package astro provides the solar ephemeris and the transit/hour-angle
// corrections used to turn solar altitudes into times of day.
//
// Formulas follow Jean Meeus, Astronomical Algorithms (2nd ed.), chapters
// 7, 12, 13, 15, 22 and 25. All angles are degrees unless noted.
package astro

// SolarCoordinates is the Sun's apparent position at a Julian day.
type SolarCoordinates struct {
	// Declination in degrees.
	Declination float64
	// RightAscension in degrees, [0, 360).
	RightAscension float64
	// ApparentSiderealTime at Greenwich in degrees.
	ApparentSiderealTime float64
}

// NewSolarCoordinates computes the Sun's apparent coordinates for jd.
func NewSolarCoordinates(jd float64) SolarCoordinates {
	T := JulianCentury(jd)
	L0 := meanSolarLongitude(T)
	Lp := meanLunarLongitude(T)
	omega := ascendingLunarNodeLongitude(T)
	lambda := apparentSolarLongitude(T, L0)

	theta0 := meanSiderealTime(T)
	dPsi := nutationInLongitude(L0, Lp, omega)
	dEps := nutationInObliquity(L0, Lp, omega)

	eps0 := meanObliquityOfTheEcliptic(T)
	epsApp := apparentObliquityOfTheEcliptic(T, eps0)

	// Meeus eq. 13.4 and 13.3.
	dec := asinDeg(sinDeg(epsApp) * sinDeg(lambda))
	ra := UnwindAngle(atan2Deg(cosDeg(epsApp)*sinDeg(lambda), cosDeg(lambda)))

	// Meeus p88: nutation in longitude projected onto the equator.
	ast := theta0 + ((dPsi*3600)*cosDeg(eps0+dEps))/3600

	return SolarCoordinates{
		Declination:          dec,
		RightAscension:       ra,
		ApparentSiderealTime: ast,
	}
}

// Geometric mean longitude of the Sun, Meeus eq. 25.2.
func meanSolarLongitude(T float64) float64 {
	return UnwindAngle(280.4664567 + 36000.76983*T + 0.0003032*T*T)
}

// Mean longitude of the Moon, Meeus p144.
func meanLunarLongitude(T float64) float64 {
	return UnwindAngle(218.3165 + 481267.8813*T)
}

// Longitude of the Moon's ascending node, Meeus p144.
func ascendingLunarNodeLongitude(T float64) float64 {
	return UnwindAngle(125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000)
}

// Mean anomaly of the Sun, Meeus eq. 25.3.
func meanSolarAnomaly(T float64) float64 {
	return UnwindAngle(357.52911 + 35999.05029*T - 0.0001537*T*T)
}

// Sun's equation of the center, Meeus p164.
func solarEquationOfTheCenter(T, M float64) float64 {
	return (1.914602-0.004817*T-0.000014*T*T)*sinDeg(M) +
		(0.019993-0.000101*T)*sinDeg(2*M) +
		0.000289*sinDeg(3*M)
}

// Apparent longitude of the Sun, Meeus p164.
func apparentSolarLongitude(T, L0 float64) float64 {
	longitude := L0 + solarEquationOfTheCenter(T, meanSolarAnomaly(T))
	omega := 125.04 - 1934.136*T
	return UnwindAngle(longitude - 0.00569 - 0.00478*sinDeg(omega))
}

// Mean sidereal time at Greenwich, Meeus eq. 12.4. T carries the time of
// day, so this is valid for any instant, not only 0h UT.
func meanSiderealTime(T float64) float64 {
	jd := T*36525 + 2451545.0
	theta := 280.46061837 + 360.98564736629*(jd-2451545) + 0.000387933*T*T - T*T*T/38710000
	return UnwindAngle(theta)
}

// Nutation in longitude, Meeus p144.
func nutationInLongitude(L0, Lp, omega float64) float64 {
	return (-17.2/3600)*sinDeg(omega) -
		(1.32/3600)*sinDeg(2*L0) -
		(0.23/3600)*sinDeg(2*Lp) +
		(0.21/3600)*sinDeg(2*omega)
}

// Nutation in obliquity, Meeus p144.
func nutationInObliquity(L0, Lp, omega float64) float64 {
	return (9.2/3600)*cosDeg(omega) +
		(0.57/3600)*cosDeg(2*L0) +
		(0.10/3600)*cosDeg(2*Lp) -
		(0.09/3600)*cosDeg(2*omega)
}

// Mean obliquity of the ecliptic, Meeus eq. 22.2.
func meanObliquityOfTheEcliptic(T float64) float64 {
	return 23.439291 - 0.013004167*T - 0.0000001639*T*T + 0.0000005036*T*T*T
}

// Apparent obliquity of the ecliptic, Meeus p165.
func apparentObliquityOfTheEcliptic(T, eps0 float64) float64 {
	omega := 125.04 - 1934.136*T
	return eps0 + 0.00256*cosDeg(omega)
}
