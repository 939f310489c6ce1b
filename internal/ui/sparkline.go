package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-salat/internal/astro"
)

// SparklineWidth is the fixed width of the Sun altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Altitudes mapped onto the sparkline. Below astronomical twilight is
// drawn as the lowest block.
const (
	sparkMinAlt = -18.0
	sparkMaxAlt = 90.0
)

var (
	altColorNight    = [3]uint8{0x1e, 0x1b, 0x4b} // indigo
	altColorTwilight = [3]uint8{0xf4, 0x72, 0xb6} // rose
	altColorDay      = [3]uint8{0xfb, 0xbf, 0x24} // amber
)

// sunTrace samples the Sun over the local day containing date.
func sunTrace(obs astro.Observer, date astro.Date, loc *time.Location) *astro.AltitudeTrace {
	start := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return astro.ComputeSunTrace(obs, start, end, astro.DefaultTraceStep)
}

// renderSunSparkline draws the trace with a marker at now when now falls
// inside the window.
func renderSunSparkline(trace *astro.AltitudeTrace, now time.Time) string {
	samples := resampleAltitude(trace.Samples, SparklineWidth)
	if len(samples) == 0 {
		return dimStyle.Render("No samples")
	}

	nowIdx := -1
	if !now.Before(trace.WindowStart) && now.Before(trace.WindowEnd) {
		span := trace.WindowEnd.Sub(trace.WindowStart)
		nowIdx = int(float64(SparklineWidth) * float64(now.Sub(trace.WindowStart)) / float64(span))
	}

	var sb strings.Builder
	for i, alt := range samples {
		t := (alt - sparkMinAlt) / (sparkMaxAlt - sparkMinAlt)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		blockIdx := int(t * 7.0)
		if blockIdx > 7 {
			blockIdx = 7
		}

		r, g, b := interpolateAltColor(alt)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
		if i == nowIdx {
			style = style.Background(lipgloss.Color("57"))
		}
		sb.WriteString(style.Render(string(sparklineBlocks[blockIdx])))
	}

	if high := trace.Max(); high != nil {
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" peak %.0f°", high.Altitude)))
	}
	return sb.String()
}

// interpolateAltColor blends night to twilight below the horizon and
// twilight to day above it.
func interpolateAltColor(alt float64) (uint8, uint8, uint8) {
	var from, to [3]uint8
	var s float64
	switch {
	case alt <= sparkMinAlt:
		return altColorNight[0], altColorNight[1], altColorNight[2]
	case alt < 0:
		from, to = altColorNight, altColorTwilight
		s = (alt - sparkMinAlt) / -sparkMinAlt
	case alt < 30:
		from, to = altColorTwilight, altColorDay
		s = alt / 30
	default:
		return altColorDay[0], altColorDay[1], altColorDay[2]
	}

	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-s) + float64(b)*s)
	}
	return mix(from[0], to[0]), mix(from[1], to[1]), mix(from[2], to[2])
}

// resampleAltitude averages samples into a fixed number of buckets.
func resampleAltitude(samples []astro.AltitudeSample, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * samplesPerBucket)
		endIdx := int(float64(i+1) * samplesPerBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}
		if startIdx < 0 {
			startIdx = 0
		}

		sum := 0.0
		count := 0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j].Altitude
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}

	return result
}
