package astro

import (
	"math"
	"testing"
)

// Meeus example 15.a: Venus at Boston on 1988 March 20.
var (
	venusPrevious = SolarCoordinates{RightAscension: 40.68021, Declination: 18.04761}
	venusToday    = SolarCoordinates{RightAscension: 41.73129, Declination: 18.44092, ApparentSiderealTime: 177.74208}
	venusNext     = SolarCoordinates{RightAscension: 42.78204, Declination: 18.82742}
)

const (
	bostonLongitude = -71.0833
	bostonLatitude  = 42.3333
	starAltitude    = -0.5667
)

func TestApproximateTransit(t *testing.T) {
	got := ApproximateTransit(bostonLongitude, venusToday.ApparentSiderealTime, venusToday.RightAscension)
	if want := 0.81965; math.Abs(got-want) > 0.00001 {
		t.Errorf("ApproximateTransit = %.6f, want %.6f", got, want)
	}
	if got < 0 || got >= 1 {
		t.Errorf("ApproximateTransit = %v, want a fraction of a day", got)
	}
}

func TestCorrectedTransit(t *testing.T) {
	m0 := ApproximateTransit(bostonLongitude, venusToday.ApparentSiderealTime, venusToday.RightAscension)
	h, ok := CorrectedTransit(m0, bostonLongitude, venusToday, venusPrevious, venusNext).Value()
	if !ok {
		t.Fatal("CorrectedTransit undefined")
	}
	if got, want := h/24, 0.81980; math.Abs(got-want) > 0.00001 {
		t.Errorf("CorrectedTransit = %.6f days, want %.6f", got, want)
	}
}

func TestCorrectedHourAngle(t *testing.T) {
	m0 := ApproximateTransit(bostonLongitude, venusToday.ApparentSiderealTime, venusToday.RightAscension)

	rise, ok := CorrectedHourAngle(m0, starAltitude, bostonLatitude, bostonLongitude, false,
		venusToday, venusPrevious, venusNext).Value()
	if !ok {
		t.Fatal("rising undefined")
	}
	if got, want := rise/24, 0.51766; math.Abs(got-want) > 0.00001 {
		t.Errorf("rising = %.6f days, want %.6f", got, want)
	}

	set, ok := CorrectedHourAngle(m0, starAltitude, bostonLatitude, bostonLongitude, true,
		venusToday, venusPrevious, venusNext).Value()
	if !ok {
		t.Fatal("setting undefined")
	}
	// Setting falls early on the following day; the day is not wrapped.
	if got := set / 24; got <= m0 || got < 1 || got > 1.2 {
		t.Errorf("setting = %.6f days, want shortly after midnight of the next day", got)
	}
}

func TestCorrectedHourAngle_Unreachable(t *testing.T) {
	m0 := ApproximateTransit(bostonLongitude, venusToday.ApparentSiderealTime, venusToday.RightAscension)
	for _, altitude := range []float64{80, -80} {
		h := CorrectedHourAngle(m0, altitude, bostonLatitude, bostonLongitude, true,
			venusToday, venusPrevious, venusNext)
		if h.Defined() {
			t.Errorf("altitude %v: got %v, want undefined", altitude, h)
		}
	}
}

func TestInterpolate(t *testing.T) {
	// Meeus example 3.a.
	got := Interpolate(0.877366, 0.884226, 0.870531, 4.35/24)
	if want := 0.876125; math.Abs(got-want) > 0.000001 {
		t.Errorf("Interpolate = %.6f, want %.6f", got, want)
	}

	if got := Interpolate(1, 0, 2, 0); got != 1 {
		t.Errorf("Interpolate at n=0 = %v, want the middle value", got)
	}
	if got := Interpolate(1, 0, 2, 1); math.Abs(got-2) > 1e-12 {
		t.Errorf("Interpolate at n=1 = %v, want the next value", got)
	}
	if got := Interpolate(1, 0, 2, -1); math.Abs(got) > 1e-12 {
		t.Errorf("Interpolate at n=-1 = %v, want the previous value", got)
	}
}

func TestInterpolateAngles(t *testing.T) {
	tests := []struct {
		name                     string
		value, previous, next, n float64
		want                     float64
	}{
		{"across the seam", 1, 359, 3, 0.6, 2.2},
		{"away from the seam", 41.73129, 40.68021, 42.78204, 0.5, 42.25670},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpolateAngles(tt.value, tt.previous, tt.next, tt.n)
			if math.Abs(got-tt.want) > 0.00001 {
				t.Errorf("InterpolateAngles = %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

func TestAltitudeOfCelestialBody(t *testing.T) {
	tests := []struct {
		lat, dec, ha, want float64
	}{
		{0, 0, 0, 90},
		{45, 0, 0, 45},
		{45, 0, 90, 0},
		{45, 0, 180, -45},
		// Meeus example 13.b: Venus from Washington.
		{38.9213889, -6.7198917, 64.352133, 15.1249},
	}
	for _, tt := range tests {
		got := AltitudeOfCelestialBody(tt.lat, tt.dec, tt.ha)
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("AltitudeOfCelestialBody(%v, %v, %v) = %.5f, want %.5f", tt.lat, tt.dec, tt.ha, got, tt.want)
		}
	}
}
