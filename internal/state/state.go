// Package state tracks today's prayer times for a location as the clock
// advances.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/litescript/ls-salat/internal/astro"
	"github.com/litescript/ls-salat/internal/logging"
	"github.com/litescript/ls-salat/internal/prayer"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventPrayerStarted EventType = "PRAYER_STARTED"
	EventDayRollover   EventType = "DAY_ROLLOVER"
	EventUndefined     EventType = "UNDEFINED"
)

// Event is a transition observed by Update.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Prayer    string    `json:"prayer,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager holds the computed times and is safe for concurrent use.
type Manager struct {
	mu sync.RWMutex

	coords prayer.Coordinates
	params prayer.Parameters
	loc    *time.Location
	log    *logging.Logger

	// Current state
	now         time.Time
	date        astro.Date
	today       prayer.Times
	tomorrow    prayer.Times
	todayErr    error
	tomorrowErr error
	current     prayer.Prayer
	hasData     bool
	stale       bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	Coordinates     prayer.Coordinates
	Parameters      prayer.Parameters
	Location        *time.Location
	MaxEvents       int
	RefreshInterval time.Duration
	Logger          *logging.Logger
}

// DefaultConfig returns a configuration for coords using the Muslim World
// League method in UTC.
func DefaultConfig(coords prayer.Coordinates) Config {
	return Config{
		Coordinates:     coords,
		Parameters:      prayer.MuslimWorldLeague.Parameters(),
		Location:        time.UTC,
		MaxEvents:       50,
		RefreshInterval: time.Second,
	}
}

// NewManager creates a new state manager. It has no data until Update.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		coords:          cfg.Coordinates,
		params:          cfg.Parameters,
		loc:             loc,
		log:             log,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// Update advances the manager to now. Times are recomputed when the local
// date changes or the parameters were replaced.
func (m *Manager) Update(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	local := now.In(m.loc)
	date := astro.DateOf(local)

	if !m.hasData || m.stale || date != m.date {
		if m.hasData && !m.stale && date != m.date {
			m.addEvent(Event{
				Type:      EventDayRollover,
				Timestamp: now,
				Date:      date.String(),
				Detail:    "from " + m.date.String(),
			})
		}
		// A fresh computation establishes the current prayer without an event.
		quiet := !m.hasData || m.stale
		m.recompute(date, now)
		if quiet {
			m.current = m.currentAt(now)
		}
	}
	m.now = now

	cur := m.currentAt(now)
	if cur != m.current && cur != prayer.None {
		m.addEvent(Event{
			Type:      EventPrayerStarted,
			Timestamp: now,
			Date:      date.String(),
			Prayer:    cur.String(),
		})
		m.log.Info("%s started at %s", cur, m.today.TimeFor(cur).In(m.loc).Format("15:04"))
	}
	m.current = cur
}

func (m *Manager) recompute(date astro.Date, now time.Time) {
	m.date = date
	m.stale = false
	m.today, m.todayErr = prayer.Compute(m.coords, date, m.params)
	m.tomorrow, m.tomorrowErr = prayer.Compute(m.coords, date.AddDays(1), m.params)

	if m.todayErr != nil {
		m.log.Warn("%v", m.todayErr)
		if errors.Is(m.todayErr, prayer.ErrUndefined) {
			m.addEvent(Event{
				Type:      EventUndefined,
				Timestamp: now,
				Date:      date.String(),
				Detail:    m.todayErr.Error(),
			})
		}
	} else {
		m.log.Debug("computed %s for %s with %s", date, m.coords, m.params.Method)
	}
	m.hasData = true
}

func (m *Manager) currentAt(now time.Time) prayer.Prayer {
	if m.todayErr != nil {
		return prayer.None
	}
	return m.today.Current(now)
}

// SetParameters replaces the calculation parameters. The next Update
// recomputes.
func (m *Manager) SetParameters(p prayer.Parameters) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = p
	m.stale = true
}

// SetLocation replaces the coordinates and display time zone. The next
// Update recomputes.
func (m *Manager) SetLocation(coords prayer.Coordinates, loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coords = coords
	m.loc = loc
	m.stale = true
}

// Parameters returns the calculation parameters in use.
func (m *Manager) Parameters() prayer.Parameters {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot is an immutable view of the manager's state.
type Snapshot struct {
	Coordinates prayer.Coordinates
	Parameters  prayer.Parameters
	Location    *time.Location

	Now         time.Time
	Date        astro.Date
	Today       prayer.Times
	Tomorrow    prayer.Times
	TodayErr    error
	TomorrowErr error

	Current prayer.Prayer
	Next    prayer.Prayer
	// NextTime is the zero time when there is no next prayer.
	NextTime time.Time
	// NextTomorrow is set when Next is tomorrow's Fajr.
	NextTomorrow bool

	Sun   astro.Horizontal
	Qibla float64

	Events []Event
}

// Countdown returns the time until the next prayer, or zero.
func (s Snapshot) Countdown() time.Duration {
	if s.NextTime.IsZero() || s.NextTime.Before(s.Now) {
		return 0
	}
	return s.NextTime.Sub(s.Now)
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Coordinates: m.coords,
		Parameters:  m.params,
		Location:    m.loc,
		Now:         m.now,
		Date:        m.date,
		Today:       m.today,
		Tomorrow:    m.tomorrow,
		TodayErr:    m.todayErr,
		TomorrowErr: m.tomorrowErr,
		Current:     m.current,
		Next:        prayer.None,
		Qibla:       prayer.Qibla(m.coords),
		Events:      m.getEventsOrdered(),
	}
	if !m.hasData {
		return snap
	}

	snap.Sun = astro.SunHorizontal(m.coords.Observer(), m.now)

	if m.todayErr == nil {
		if next := m.today.Next(m.now); next != prayer.None {
			snap.Next, snap.NextTime = next, m.today.TimeFor(next)
			return snap
		}
	}
	if m.tomorrowErr == nil {
		snap.Next, snap.NextTime, snap.NextTomorrow = prayer.Fajr, m.tomorrow.Fajr, true
	}
	return snap
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval. Live views pick it up
// on their next tick.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData reports whether Update has run at least once.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
