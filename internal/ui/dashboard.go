package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/prayer"
	"github.com/litescript/ls-salat/internal/report"
	"github.com/litescript/ls-salat/internal/state"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	nextRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// DashboardModel shows one day's times, the Sun and the Qibla bearing.
type DashboardModel struct {
	width        int
	height       int
	locationName string

	snapshot  state.Snapshot
	dayOffset int
	clock24h  bool

	// Times for the displayed day.
	date    astro.Date
	times   prayer.Times
	timeErr error
	lastErr error

	trace    *astro.AltitudeTrace
	traceKey string
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(locationName string) DashboardModel {
	return DashboardModel{locationName: locationName, clock24h: true}
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data. A non-zero dayOffset shows
// another day relative to the snapshot's date.
func (m DashboardModel) UpdateData(snapshot state.Snapshot, dayOffset int, clock24h bool) DashboardModel {
	m.snapshot = snapshot
	m.dayOffset = dayOffset
	m.clock24h = clock24h
	m.date = snapshot.Date.AddDays(dayOffset)

	switch dayOffset {
	case 0:
		m.times, m.timeErr = snapshot.Today, snapshot.TodayErr
	case 1:
		m.times, m.timeErr = snapshot.Tomorrow, snapshot.TomorrowErr
	default:
		m.times, m.timeErr = prayer.Compute(snapshot.Coordinates, m.date, snapshot.Parameters)
	}

	if !snapshot.Now.IsZero() {
		loc := m.location()
		key := fmt.Sprintf("%s|%s|%s", m.date, snapshot.Coordinates, loc)
		if key != m.traceKey {
			m.trace = sunTrace(snapshot.Coordinates.Observer(), m.date, loc)
			m.traceKey = key
		}
	}
	return m
}

// SetError sets the last error for display.
func (m DashboardModel) SetError(err error) DashboardModel {
	m.lastErr = err
	return m
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.snapshot.Now.IsZero() {
		b.WriteString("Waiting for clock...\n")
		return b.String()
	}

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(m.renderTimesTable())
	b.WriteString("\n")
	b.WriteString(m.renderSky())

	if events := m.snapshot.Events; len(events) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderEvents(events))
	}
	return b.String()
}

func (m DashboardModel) location() *time.Location {
	if m.snapshot.Location != nil {
		return m.snapshot.Location
	}
	return time.UTC
}

func (m DashboardModel) renderTitle() string {
	name := m.locationName
	if name == "" {
		name = m.snapshot.Coordinates.String()
	} else {
		name += " · " + m.snapshot.Coordinates.String()
	}

	day := m.date.Midnight().Format("Monday 2006-01-02")
	switch m.dayOffset {
	case 0:
		day += " (today)"
	case 1:
		day += " (tomorrow)"
	case -1:
		day += " (yesterday)"
	}

	p := m.snapshot.Parameters
	method := fmt.Sprintf("%s · %s · %s · %s", p.Method, p.Madhab, p.HighLatitudeRule, m.location())

	return titleStyle.Render(name) + "\n" + day + "\n" + dimStyle.Render(method)
}

func (m DashboardModel) renderTimesTable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-8s %-9s %s", "Prayer", "Time", "Status")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if m.timeErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  Times undefined for %s", m.date)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  The Sun does not reach the required altitude at this latitude."))
		b.WriteString("\n")
		return b.String()
	}

	layout := report.ClockLayout(m.clock24h)
	loc := m.location()
	live := m.dayOffset == 0

	for _, p := range prayer.Prayers {
		ts := m.times.TimeFor(p)
		status := ""
		style := rowStyle
		if live {
			switch p {
			case m.snapshot.Current:
				status, style = "now", selectedRowStyle
			case m.snapshot.Next:
				if !m.snapshot.NextTomorrow {
					status = "in " + report.FormatCountdown(m.snapshot.Countdown())
					style = nextRowStyle
				}
			}
		}
		if !live && m.dayOffset == 1 && m.snapshot.NextTomorrow && p == prayer.Fajr {
			status, style = "in "+report.FormatCountdown(m.snapshot.Countdown()), nextRowStyle
		}

		row := fmt.Sprintf(" %-8s %-9s %s", p, ts.In(loc).Format(layout), status)
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if live && m.snapshot.NextTomorrow {
		fmt.Fprintf(&b, "\n %s", nextRowStyle.Render(fmt.Sprintf("Fajr tomorrow %s in %s",
			m.snapshot.NextTime.In(loc).Format(layout), report.FormatCountdown(m.snapshot.Countdown()))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m DashboardModel) renderSky() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sky"))
	b.WriteString("\n")

	sun := m.snapshot.Sun
	side := "above horizon"
	if sun.ElDeg < 0 {
		side = "below horizon"
	}
	fmt.Fprintf(&b, "  Sun    alt %6.1f°  az %6.1f° %-3s %s\n",
		sun.ElDeg, sun.AzDeg, compassPoint(sun.AzDeg), dimStyle.Render(side))
	fmt.Fprintf(&b, "  Qibla  %6.1f° %s from true north\n",
		m.snapshot.Qibla, compassPoint(m.snapshot.Qibla))
	if m.trace != nil {
		b.WriteString("  Day    ")
		b.WriteString(renderSunSparkline(m.trace, m.snapshot.Now))
		b.WriteString("\n")
	}
	return b.String()
}

func (m DashboardModel) renderEvents(events []state.Event) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent"))
	b.WriteString("\n")

	maxRows := 5
	if m.height > 0 && m.height < 30 {
		maxRows = 3
	}
	if len(events) > maxRows {
		events = events[len(events)-maxRows:]
	}

	loc := m.location()
	for _, e := range events {
		what := string(e.Type)
		if e.Prayer != "" {
			what += " " + e.Prayer
		}
		fmt.Fprintf(&b, "  %s  %s\n", dimStyle.Render(e.Timestamp.In(loc).Format("15:04")), truncate(what, 40))
	}
	return b.String()
}

var compassPoints = []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}

// compassPoint names the 16-wind direction of a bearing in degrees.
func compassPoint(bearing float64) string {
	i := int(math.Round(astro.UnwindAngle(bearing)/22.5)) % len(compassPoints)
	return compassPoints[i]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
