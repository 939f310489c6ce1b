package state

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/prayer"
)

var raleigh = prayer.Coordinates{Latitude: 35.7750, Longitude: -78.6336}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func raleighManager(t *testing.T) (*Manager, *time.Location) {
	t.Helper()
	loc := newYork(t)
	cfg := DefaultConfig(raleigh)
	cfg.Location = loc
	return NewManager(cfg), loc
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig(raleigh)
	m := NewManager(cfg)

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}

	snap := m.Snapshot()
	if snap.Next != prayer.None || snap.Countdown() != 0 {
		t.Errorf("empty snapshot has next %v countdown %v", snap.Next, snap.Countdown())
	}
}

func TestManager_Update(t *testing.T) {
	m, loc := raleighManager(t)

	now := time.Date(2015, 12, 1, 10, 0, 0, 0, loc)
	m.Update(now)

	if !m.HasData() {
		t.Fatal("HasData should be true after Update")
	}

	snap := m.Snapshot()
	if snap.TodayErr != nil {
		t.Fatalf("TodayErr = %v", snap.TodayErr)
	}
	if snap.Date != astro.NewDate(2015, time.December, 1) {
		t.Errorf("Date = %v", snap.Date)
	}
	if snap.Tomorrow.Date != astro.NewDate(2015, time.December, 2) {
		t.Errorf("Tomorrow.Date = %v", snap.Tomorrow.Date)
	}
	if snap.Current != prayer.Sunrise {
		t.Errorf("Current = %v, want Sunrise", snap.Current)
	}
	if snap.Next != prayer.Dhuhr || snap.NextTomorrow {
		t.Errorf("Next = %v (tomorrow %v), want today's Dhuhr", snap.Next, snap.NextTomorrow)
	}
	if got := snap.Countdown(); got != 2*time.Hour+5*time.Minute {
		t.Errorf("Countdown = %v, want 2h5m0s", got)
	}
	if len(snap.Events) != 0 {
		t.Errorf("first Update produced events: %+v", snap.Events)
	}
	if math.Abs(snap.Qibla-prayer.Qibla(raleigh)) > 1e-12 {
		t.Errorf("Qibla = %v", snap.Qibla)
	}
}

func TestManager_SunAtDhuhr(t *testing.T) {
	m, loc := raleighManager(t)
	m.Update(time.Date(2015, 12, 1, 12, 5, 0, 0, loc))

	sun := m.Snapshot().Sun
	// Dhuhr is transit plus a minute, rounded.
	if math.Abs(sun.AzDeg-180) > 1 {
		t.Errorf("azimuth at Dhuhr = %.3f, want about 180", sun.AzDeg)
	}
	if sun.ElDeg < 25 || sun.ElDeg > 40 {
		t.Errorf("altitude at Dhuhr = %.3f", sun.ElDeg)
	}
}

func TestManager_PrayerStartedEvents(t *testing.T) {
	m, loc := raleighManager(t)
	at := func(h, min int) time.Time { return time.Date(2015, 12, 1, h, min, 0, 0, loc) }

	m.Update(at(10, 0))
	m.Update(at(11, 0))
	if n := len(m.RecentEvents(10)); n != 0 {
		t.Fatalf("events before Dhuhr = %d, want 0", n)
	}

	m.Update(at(12, 30))
	m.Update(at(19, 0))

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Type != EventPrayerStarted || events[0].Prayer != "Dhuhr" {
		t.Errorf("events[0] = %+v, want Dhuhr started", events[0])
	}
	// Asr and Maghrib passed between updates; only the latest is reported.
	if events[1].Type != EventPrayerStarted || events[1].Prayer != "Isha" {
		t.Errorf("events[1] = %+v, want Isha started", events[1])
	}
	if events[1].Date != "2015-12-01" {
		t.Errorf("Date = %q", events[1].Date)
	}
}

func TestManager_NextAfterIshaIsTomorrowFajr(t *testing.T) {
	m, loc := raleighManager(t)
	m.Update(time.Date(2015, 12, 1, 22, 0, 0, 0, loc))

	snap := m.Snapshot()
	if snap.Current != prayer.Isha {
		t.Errorf("Current = %v, want Isha", snap.Current)
	}
	if snap.Next != prayer.Fajr || !snap.NextTomorrow {
		t.Fatalf("Next = %v (tomorrow %v), want tomorrow's Fajr", snap.Next, snap.NextTomorrow)
	}
	if !snap.NextTime.Equal(snap.Tomorrow.Fajr) {
		t.Errorf("NextTime = %v, want %v", snap.NextTime, snap.Tomorrow.Fajr)
	}
	if got := snap.NextTime.In(loc).Format("2006-01-02"); got != "2015-12-02" {
		t.Errorf("NextTime date = %s", got)
	}
	if snap.Countdown() <= 0 || snap.Countdown() > 9*time.Hour {
		t.Errorf("Countdown = %v", snap.Countdown())
	}
}

func TestManager_DayRollover(t *testing.T) {
	m, loc := raleighManager(t)
	m.Update(time.Date(2015, 12, 1, 22, 0, 0, 0, loc))
	before := m.Snapshot()

	m.Update(time.Date(2015, 12, 2, 0, 30, 0, 0, loc))
	snap := m.Snapshot()

	if snap.Date != astro.NewDate(2015, time.December, 2) {
		t.Fatalf("Date = %v, want 2015-12-02", snap.Date)
	}
	if snap.Today != before.Tomorrow {
		t.Errorf("today's times after rollover differ from yesterday's tomorrow")
	}
	if snap.Current != prayer.None {
		t.Errorf("Current = %v, want None before Fajr", snap.Current)
	}
	if snap.Next != prayer.Fajr || snap.NextTomorrow {
		t.Errorf("Next = %v (tomorrow %v), want today's Fajr", snap.Next, snap.NextTomorrow)
	}

	events := snap.Events
	if len(events) != 1 || events[0].Type != EventDayRollover {
		t.Fatalf("events = %+v, want one DAY_ROLLOVER", events)
	}
	if events[0].Date != "2015-12-02" || events[0].Detail != "from 2015-12-01" {
		t.Errorf("rollover event = %+v", events[0])
	}
}

func TestManager_Undefined(t *testing.T) {
	tromso := prayer.Coordinates{Latitude: 69.6492, Longitude: 18.9553}
	m := NewManager(DefaultConfig(tromso))
	m.Update(time.Date(2016, 6, 21, 12, 0, 0, 0, time.UTC))

	snap := m.Snapshot()
	if !errors.Is(snap.TodayErr, prayer.ErrUndefined) {
		t.Errorf("TodayErr = %v, want ErrUndefined", snap.TodayErr)
	}
	if snap.Current != prayer.None || snap.Next != prayer.None {
		t.Errorf("Current/Next = %v/%v, want None/None", snap.Current, snap.Next)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != EventUndefined {
		t.Errorf("events = %+v, want one UNDEFINED", snap.Events)
	}
	if snap.Sun.ElDeg <= 0 {
		t.Errorf("midnight sun altitude at noon = %.2f", snap.Sun.ElDeg)
	}
}

func TestManager_SetParameters(t *testing.T) {
	m, loc := raleighManager(t)
	now := time.Date(2015, 12, 1, 14, 50, 0, 0, loc)
	m.Update(now)
	if got := m.Snapshot().Current; got != prayer.Asr {
		t.Fatalf("Current = %v, want Asr", got)
	}

	hanafi := prayer.MuslimWorldLeague.Parameters()
	hanafi.Madhab = prayer.Hanafi
	m.SetParameters(hanafi)
	if m.Parameters().Madhab != prayer.Hanafi {
		t.Fatal("Parameters not replaced")
	}
	m.Update(now)

	snap := m.Snapshot()
	if snap.Current != prayer.Dhuhr || snap.Next != prayer.Asr {
		t.Errorf("Current/Next = %v/%v, want Dhuhr/Asr under the later Asr", snap.Current, snap.Next)
	}
	if len(snap.Events) != 0 {
		t.Errorf("parameter change produced events: %+v", snap.Events)
	}
}

func TestManager_SetLocation(t *testing.T) {
	m, loc := raleighManager(t)
	now := time.Date(2015, 12, 1, 23, 30, 0, 0, loc)
	m.Update(now)

	// 23:30 in New York is already the next day in UTC.
	m.SetLocation(prayer.Makkah, time.UTC)
	m.Update(now)

	snap := m.Snapshot()
	if snap.Coordinates != prayer.Makkah || snap.Location != time.UTC {
		t.Errorf("location = %v %v, want Makkah UTC", snap.Coordinates, snap.Location)
	}
	if want := astro.NewDate(2015, 12, 2); snap.Date != want {
		t.Errorf("Date = %v, want %v", snap.Date, want)
	}
	if snap.TodayErr != nil {
		t.Errorf("TodayErr = %v", snap.TodayErr)
	}
	if len(snap.Events) != 0 {
		t.Errorf("location change produced events: %+v", snap.Events)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	loc := newYork(t)
	cfg := DefaultConfig(raleigh)
	cfg.Location = loc
	cfg.MaxEvents = 2
	m := NewManager(cfg)

	m.Update(time.Date(2015, 12, 1, 4, 0, 0, 0, loc))
	m.Update(time.Date(2015, 12, 1, 6, 0, 0, 0, loc))  // Fajr
	m.Update(time.Date(2015, 12, 1, 8, 0, 0, 0, loc))  // Sunrise
	m.Update(time.Date(2015, 12, 1, 13, 0, 0, 0, loc)) // Dhuhr

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Prayer != "Sunrise" || events[1].Prayer != "Dhuhr" {
		t.Errorf("events = %s, %s; want Sunrise, Dhuhr", events[0].Prayer, events[1].Prayer)
	}
	if last := m.RecentEvents(1); len(last) != 1 || last[0].Prayer != "Dhuhr" {
		t.Errorf("RecentEvents(1) = %+v", last)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m, loc := raleighManager(t)
	start := time.Date(2015, 12, 1, 0, 0, 0, 0, loc)

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Update(start.Add(time.Duration(i) * 20 * time.Minute))
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.RefreshInterval()
				_ = m.RecentEvents(5)
			}
		}()
	}

	wg.Wait()
}

func TestManager_SetRefreshInterval(t *testing.T) {
	m := NewManager(DefaultConfig(raleigh))

	newInterval := 30 * time.Second
	m.SetRefreshInterval(newInterval)

	if m.RefreshInterval() != newInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), newInterval)
	}
}
