// Package state provides thread-safe state management for catalog loads.
package state

import (
	"reflect"
	"sync"
	"time"

	"github.com/litescript/ls-galaxy/internal/catalog"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventCatalogLoaded EventType = "CATALOG_LOADED"
	EventSystemAdded   EventType = "SYSTEM_ADDED"
	EventSystemRemoved EventType = "SYSTEM_REMOVED"
	EventSystemChanged EventType = "SYSTEM_CHANGED"
	EventLoadFailed    EventType = "LOAD_FAILED"
)

// Event represents a change between two catalog loads.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SystemID  string    `json:"system_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Count     int       `json:"count,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager records the last catalog load with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	systems       []catalog.StarSystem
	source        string
	hasData       bool
	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration
	loads         int
	failures      int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       time.Now,
	}
}

// SetSource records where the catalog comes from.
func (m *Manager) SetSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = source
}

// Update records the outcome of one catalog fetch. A failed fetch keeps the
// previous systems.
func (m *Manager) Update(systems []catalog.StarSystem, fetchDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.lastFetch = now
	m.lastError = err
	m.fetchDuration = fetchDuration

	if err != nil {
		m.failures++
		m.addEvent(Event{Type: EventLoadFailed, Timestamp: now, Detail: err.Error()})
		return
	}

	m.loads++
	if !m.hasData {
		m.addEvent(Event{Type: EventCatalogLoaded, Timestamp: now, Count: len(systems)})
	} else {
		m.detectEvents(systems, now)
	}

	m.systems = systems
	m.hasData = true
}

// detectEvents compares new systems with the previous load.
func (m *Manager) detectEvents(next []catalog.StarSystem, now time.Time) {
	prevByID := make(map[string]catalog.StarSystem, len(m.systems))
	for _, s := range m.systems {
		prevByID[s.ID] = s
	}
	nextIDs := make(map[string]bool, len(next))

	for _, s := range next {
		nextIDs[s.ID] = true
		prev, ok := prevByID[s.ID]
		switch {
		case !ok:
			m.addEvent(Event{Type: EventSystemAdded, Timestamp: now, SystemID: s.ID, Name: s.Name})
		case !reflect.DeepEqual(prev, s):
			m.addEvent(Event{Type: EventSystemChanged, Timestamp: now, SystemID: s.ID, Name: s.Name})
		}
	}

	for _, s := range m.systems {
		if !nextIDs[s.ID] {
			m.addEvent(Event{Type: EventSystemRemoved, Timestamp: now, SystemID: s.ID, Name: s.Name})
		}
	}
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

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Source        string
	Systems       []catalog.StarSystem
	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	Loads         int
	Failures      int
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	systems := make([]catalog.StarSystem, len(m.systems))
	copy(systems, m.systems)

	return Snapshot{
		Source:        m.source,
		Systems:       systems,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		Loads:         m.loads,
		Failures:      m.failures,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
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

// LastError returns the error of the most recent fetch, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// HasData returns true if we have received at least one successful fetch.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
