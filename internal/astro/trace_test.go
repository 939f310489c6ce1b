package astro

import (
	"math"
	"testing"
	"time"
)

func TestComputeSunTrace(t *testing.T) {
	obs := Observer{LatDeg: 35.7750, LonDeg: -78.6336}
	start := time.Date(2015, 12, 1, 5, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	trace := ComputeSunTrace(obs, start, end, 0)

	if len(trace.Samples) != 97 {
		t.Fatalf("sample count = %d, want 97", len(trace.Samples))
	}
	if !trace.Samples[0].Time.Equal(start) || !trace.Samples[96].Time.Equal(end) {
		t.Errorf("trace spans %v..%v, want %v..%v",
			trace.Samples[0].Time, trace.Samples[96].Time, start, end)
	}
	for i := 1; i < len(trace.Samples); i++ {
		if d := trace.Samples[i].Time.Sub(trace.Samples[i-1].Time); d != DefaultTraceStep {
			t.Fatalf("spacing at %d = %v, want %v", i, d, DefaultTraceStep)
		}
	}

	// Local midnight is deep night; transit is close to 17:05 UTC.
	if alt := trace.Samples[0].Altitude; alt > -60 {
		t.Errorf("midnight altitude = %.1f, want below -60", alt)
	}
	high := trace.Max()
	transit := time.Date(2015, 12, 1, 17, 5, 0, 0, time.UTC)
	if d := high.Time.Sub(transit); d < -15*time.Minute || d > 15*time.Minute {
		t.Errorf("highest sample at %v, want within 15m of %v", high.Time, transit)
	}
	if math.Abs(high.Altitude-32.4) > 1 {
		t.Errorf("highest altitude = %.2f, want about 32.4", high.Altitude)
	}
}

func TestAltitudeTrace_Nearest(t *testing.T) {
	obs := Observer{LatDeg: 0, LonDeg: 0}
	start := time.Date(2016, 3, 20, 0, 0, 0, 0, time.UTC)
	trace := ComputeSunTrace(obs, start, start.Add(time.Hour), 10*time.Minute)

	got := trace.Nearest(start.Add(23 * time.Minute))
	if got == nil || !got.Time.Equal(start.Add(20*time.Minute)) {
		t.Errorf("Nearest(+23m) = %+v, want the +20m sample", got)
	}
	got = trace.Nearest(start.Add(-time.Hour))
	if got == nil || !got.Time.Equal(start) {
		t.Errorf("Nearest(before window) = %+v, want the first sample", got)
	}

	var empty *AltitudeTrace
	if empty.Nearest(start) != nil || empty.Max() != nil {
		t.Error("nil trace should have no samples")
	}
	if (&AltitudeTrace{}).Nearest(start) != nil {
		t.Error("empty trace Nearest should be nil")
	}
}
