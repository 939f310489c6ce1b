package ui

import (
	"strings"
	"time"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/prayer"
	"github.com/litescript/ls-salat/internal/report"
	"github.com/litescript/ls-salat/internal/state"
)

// monthKey identifies a rendered timetable so it is rebuilt only when an
// input changes.
type monthKey struct {
	year   int
	month  time.Month
	coords prayer.Coordinates
	params prayer.Parameters
	loc    string
}

// MonthModel shows the timetable for the month of the displayed day.
type MonthModel struct {
	width    int
	height   int
	key      monthKey
	table    []string
	today    astro.Date
	selected astro.Date
}

// NewMonthModel creates a new month model.
func NewMonthModel() MonthModel {
	return MonthModel{}
}

// SetSize updates the viewport size.
func (m MonthModel) SetSize(width, height int) MonthModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData renders the month containing selected.
func (m MonthModel) UpdateData(snapshot state.Snapshot, selected astro.Date) MonthModel {
	m.today = snapshot.Date
	m.selected = selected
	if snapshot.Now.IsZero() {
		return m
	}

	loc := snapshot.Location
	if loc == nil {
		loc = time.UTC
	}
	key := monthKey{
		year:   selected.Year,
		month:  selected.Month,
		coords: snapshot.Coordinates,
		params: snapshot.Parameters,
		loc:    loc.String(),
	}
	if key == m.key && m.table != nil {
		return m
	}

	var b strings.Builder
	report.WriteMonthTable(&b, snapshot.Coordinates, selected.Year, selected.Month, snapshot.Parameters, loc)
	m.key = key
	m.table = strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	return m
}

// View renders the timetable with today and the selected day highlighted.
func (m MonthModel) View() string {
	if m.table == nil {
		return "Waiting for clock...\n"
	}

	var b strings.Builder
	today, selected := m.today.String(), m.selected.String()
	for i, line := range m.table {
		switch {
		case i == 0:
			b.WriteString(titleStyle.Render(line))
		case strings.HasPrefix(line, today):
			b.WriteString(selectedRowStyle.Render(line))
		case strings.HasPrefix(line, selected):
			b.WriteString(nextRowStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
