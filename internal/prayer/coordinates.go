package prayer

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-salat/internal/astro"
)

// ErrInvalidCoordinates is returned for a latitude outside [-90, 90] or a
// longitude outside [-180, 180].
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is a position on Earth in degrees, north and east positive.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// NewCoordinates validates and returns a Coordinates.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	c := Coordinates{Latitude: latitude, Longitude: longitude}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks the latitude and longitude ranges.
func (c Coordinates) Validate() error {
	// Written as negated range checks so NaN fails too.
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidCoordinates, c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return fmt.Errorf("%w: longitude %v not in [-180, 180]", ErrInvalidCoordinates, c.Longitude)
	}
	return nil
}

// Observer returns c as an astro.Observer.
func (c Coordinates) Observer() astro.Observer {
	return astro.Observer{LatDeg: c.Latitude, LonDeg: c.Longitude}
}

func (c Coordinates) String() string {
	ns, ew := "N", "E"
	lat, lon := c.Latitude, c.Longitude
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
}
