package state

import (
	"fmt"
	"io"
	"strings"
)

// Describe returns a one-line human description of the event.
func (e Event) Describe() string {
	switch e.Type {
	case EventCatalogLoaded:
		return fmt.Sprintf("catalog loaded: %d systems", e.Count)
	case EventSystemAdded:
		return fmt.Sprintf("system added: %s (%s)", e.Name, e.SystemID)
	case EventSystemRemoved:
		return fmt.Sprintf("system removed: %s (%s)", e.Name, e.SystemID)
	case EventSystemChanged:
		return fmt.Sprintf("system changed: %s (%s)", e.Name, e.SystemID)
	case EventLoadFailed:
		return "load failed: " + e.Detail
	default:
		return string(e.Type)
	}
}

// WriteEvents writes the last n events, oldest first.
func WriteEvents(w io.Writer, events []Event, n int) {
	fmt.Fprintln(w, "Recent events")
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-15s %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Describe())
	}
}
