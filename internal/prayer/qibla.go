package prayer

import (
	"math"

	"github.com/soniakeys/unit"

	"github.com/litescript/ls-salat/internal/astro"
)

// Makkah is the location of the Kaaba.
var Makkah = Coordinates{Latitude: 21.4225241, Longitude: 39.8261818}

// Qibla returns the initial great-circle bearing from coords to the Kaaba in
// degrees clockwise from true north, in [0, 360).
func Qibla(coords Coordinates) float64 {
	lat := unit.AngleFromDeg(coords.Latitude)
	dLon := unit.AngleFromDeg(Makkah.Longitude - coords.Longitude)
	makkahLat := unit.AngleFromDeg(Makkah.Latitude)

	y := dLon.Sin()
	x := lat.Cos()*makkahLat.Tan() - lat.Sin()*dLon.Cos()
	return astro.UnwindAngle(unit.Angle(math.Atan2(y, x)).Deg())
}
