package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-salat/internal/prayer"
	"github.com/litescript/ls-salat/internal/state"
)

const (
	undefinedClock = "--:--"
	ruleWidth      = 60
)

// ClockLayout returns the time layout for a 24-hour or 12-hour clock.
func ClockLayout(h24 bool) string {
	if h24 {
		return "15:04"
	}
	return "3:04 PM"
}

// FormatCountdown renders d as h:mm:ss, clamping negatives to zero.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// WriteDayTable writes one day's times in loc. When now is non-zero the
// current and next prayers are marked.
func WriteDayTable(w io.Writer, times prayer.Times, loc *time.Location, now time.Time) {
	if loc == nil {
		loc = time.UTC
	}

	fmt.Fprintf(w, "Prayer times for %s (%s)\n", times.Date, loc)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	current, next := prayer.None, prayer.None
	if !now.IsZero() {
		current, next = times.Current(now), times.Next(now)
	}

	for _, p := range prayer.Prayers {
		mark := ""
		switch p {
		case current:
			mark = "◀ now"
		case next:
			mark = fmt.Sprintf("next in %s", FormatCountdown(times.TimeFor(p).Sub(now)))
		}
		fmt.Fprintf(w, "%-8s %s  %s\n", p, times.TimeFor(p).In(loc).Format("15:04"), mark)
	}
}

// WriteMonthTable writes a timetable for every day of month. Days the
// engine cannot compute are shown with placeholder times.
func WriteMonthTable(w io.Writer, coords prayer.Coordinates, year int, month time.Month, params prayer.Parameters, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	fmt.Fprintf(w, "%s %d @ %s (%s)\n", month, year, coords, loc)
	fmt.Fprintf(w, "Method %s, madhab %s, high latitude rule %s\n",
		params.Method, params.Madhab, params.HighLatitudeRule)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	fmt.Fprintf(w, "%-10s", "Date")
	for _, p := range prayer.Prayers {
		fmt.Fprintf(w, " %-7s", p)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	undefined := 0
	for _, date := range monthDates(year, month) {
		fmt.Fprintf(w, "%-10s", date)
		times, err := prayer.Compute(coords, date, params)
		for _, p := range prayer.Prayers {
			clock := undefinedClock
			if err == nil {
				clock = times.TimeFor(p).In(loc).Format("15:04")
			}
			fmt.Fprintf(w, " %-7s", clock)
		}
		fmt.Fprintln(w)
		if errors.Is(err, prayer.ErrUndefined) {
			undefined++
		}
	}

	if undefined > 0 {
		fmt.Fprintf(w, "\n%d day(s) astronomically undefined\n", undefined)
	}
}

// WriteNow writes a single status line: the current prayer and the
// countdown to the next one.
func WriteNow(w io.Writer, snap state.Snapshot, loc *time.Location) {
	if loc == nil {
		loc = snap.Location
	}
	if loc == nil {
		loc = time.UTC
	}

	stamp := snap.Now.In(loc).Format("2006-01-02 15:04:05")
	if snap.TodayErr != nil && snap.Next == prayer.None {
		fmt.Fprintf(w, "%s  times undefined: %v\n", stamp, snap.TodayErr)
		return
	}

	current := "-"
	if snap.Current != prayer.None {
		current = fmt.Sprintf("%s %s", snap.Current, snap.Today.TimeFor(snap.Current).In(loc).Format("15:04"))
	}
	next := "-"
	if snap.Next != prayer.None {
		day := ""
		if snap.NextTomorrow {
			day = " tomorrow"
		}
		next = fmt.Sprintf("%s%s %s in %s", snap.Next, day,
			snap.NextTime.In(loc).Format("15:04"), FormatCountdown(snap.Countdown()))
	}
	fmt.Fprintf(w, "%s  current: %s  next: %s\n", stamp, current, next)
}
