package astro

import "time"

// AltitudeSample is the Sun's altitude at one instant.
type AltitudeSample struct {
	Time     time.Time
	Altitude float64 // degrees above the horizon
}

// AltitudeTrace is a series of Sun altitudes over a time window.
type AltitudeTrace struct {
	Observer    Observer
	Samples     []AltitudeSample
	WindowStart time.Time
	WindowEnd   time.Time
}

// DefaultTraceStep is the spacing between trace samples.
const DefaultTraceStep = 15 * time.Minute

// ComputeSunTrace samples the Sun's altitude for obs from start to end
// inclusive. A non-positive step uses DefaultTraceStep.
func ComputeSunTrace(obs Observer, start, end time.Time, step time.Duration) *AltitudeTrace {
	if step <= 0 {
		step = DefaultTraceStep
	}
	trace := &AltitudeTrace{Observer: obs, WindowStart: start, WindowEnd: end}
	for t := start; !t.After(end); t = t.Add(step) {
		trace.Samples = append(trace.Samples, AltitudeSample{
			Time:     t,
			Altitude: SunHorizontal(obs, t).ElDeg,
		})
	}
	return trace
}

// Nearest returns the sample closest to t, or nil if the trace is empty.
func (tr *AltitudeTrace) Nearest(t time.Time) *AltitudeSample {
	if tr == nil || len(tr.Samples) == 0 {
		return nil
	}

	var closest *AltitudeSample
	var minDelta time.Duration = 1<<63 - 1

	for i := range tr.Samples {
		delta := tr.Samples[i].Time.Sub(t)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &tr.Samples[i]
		}
	}
	return closest
}

// Max returns the highest sample, or nil if the trace is empty.
func (tr *AltitudeTrace) Max() *AltitudeSample {
	if tr == nil || len(tr.Samples) == 0 {
		return nil
	}
	best := &tr.Samples[0]
	for i := range tr.Samples[1:] {
		if s := &tr.Samples[i+1]; s.Altitude > best.Altitude {
			best = s
		}
	}
	return best
}
