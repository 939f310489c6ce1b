// Package report renders prayer times as text tables and JSON.
package report

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/prayer"
)

// DayExport is the JSON-serializable representation of one day.
type DayExport struct {
	Date        string             `json:"date"`
	Timezone    string             `json:"timezone"`
	Coordinates prayer.Coordinates `json:"coordinates"`
	Method      string             `json:"method"`
	Madhab      string             `json:"madhab"`
	HighLatRule string             `json:"high_latitude_rule"`
	Qibla       float64            `json:"qibla_deg"`
	Times       []TimeExport       `json:"times,omitempty"`
	Undefined   bool               `json:"undefined,omitempty"`
	Error       string             `json:"error,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// TimeExport is one prayer and its local time.
type TimeExport struct {
	Prayer string    `json:"prayer"`
	Time   time.Time `json:"time"`
}

// MonthExport is a month of DayExports.
type MonthExport struct {
	Year      int         `json:"year"`
	Month     string      `json:"month"`
	Days      []DayExport `json:"days"`
	Undefined int         `json:"undefined_days"`
}

// ExportDay computes the times for date and converts them to an exportable
// format. An undefined day is exported with Undefined set and no times.
func ExportDay(coords prayer.Coordinates, date astro.Date, params prayer.Parameters, loc *time.Location, generatedAt time.Time) *DayExport {
	if loc == nil {
		loc = time.UTC
	}
	export := &DayExport{
		Date:        date.String(),
		Timezone:    loc.String(),
		Coordinates: coords,
		Method:      params.Method.String(),
		Madhab:      params.Madhab.String(),
		HighLatRule: params.HighLatitudeRule.String(),
		Qibla:       prayer.Qibla(coords),
		GeneratedAt: generatedAt,
	}

	times, err := prayer.Compute(coords, date, params)
	if err != nil {
		export.Undefined = errors.Is(err, prayer.ErrUndefined)
		export.Error = err.Error()
		return export
	}
	for _, p := range prayer.Prayers {
		export.Times = append(export.Times, TimeExport{
			Prayer: p.String(),
			Time:   times.TimeFor(p).In(loc),
		})
	}
	return export
}

// ExportMonth exports every day of month.
func ExportMonth(coords prayer.Coordinates, year int, month time.Month, params prayer.Parameters, loc *time.Location, generatedAt time.Time) *MonthExport {
	export := &MonthExport{Year: year, Month: month.String()}
	for _, date := range monthDates(year, month) {
		day := ExportDay(coords, date, params, loc, generatedAt)
		if day.Undefined {
			export.Undefined++
		}
		export.Days = append(export.Days, *day)
	}
	return export
}

// WriteJSON writes the day as JSON to the given writer.
func (d *DayExport) WriteJSON(w io.Writer) error {
	return writeJSON(w, d)
}

// WriteJSON writes the month as JSON to the given writer.
func (m *MonthExport) WriteJSON(w io.Writer) error {
	return writeJSON(w, m)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func monthDates(year int, month time.Month) []astro.Date {
	var dates []astro.Date
	for d := astro.NewDate(year, month, 1); d.Month == month; d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
