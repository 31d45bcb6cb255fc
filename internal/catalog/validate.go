package catalog

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError describes one malformed record.
type ValidationError struct {
	Index  int    // position in the catalog
	ID     string // record id, may be empty
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("system #%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("system #%d (%s): %s", e.Index, e.ID, e.Reason)
}

// Validate checks the record shapes the renderers rely on. Every problem is
// reported; the returned error is nil only for a clean catalog.
func Validate(systems []StarSystem) error {
	var errs []error
	seen := make(map[string]int, len(systems))

	fail := func(i int, id, format string, args ...any) {
		errs = append(errs, &ValidationError{Index: i, ID: id, Reason: fmt.Sprintf(format, args...)})
	}

	for i, sys := range systems {
		if sys.ID == "" {
			fail(i, "", "missing id")
		} else if prev, dup := seen[sys.ID]; dup {
			fail(i, sys.ID, "duplicate id (first used by system #%d)", prev)
		} else {
			seen[sys.ID] = i
		}

		if _, err := sys.Position.X.Resolve(100); err != nil {
			fail(i, sys.ID, "position.x: %v", err)
		}
		if _, err := sys.Position.Y.Resolve(100); err != nil {
			fail(i, sys.ID, "position.y: %v", err)
		}

		if n := len(sys.Stars); n < 1 || n > 2 {
			fail(i, sys.ID, "star_data has %d entries, want 1 or 2", n)
		}
		for j, star := range sys.Stars {
			if !positive(star.Size) {
				fail(i, sys.ID, "star_data[%d] %q: size must be positive, got %v", j, star.Name, star.Size)
			}
			if !positive(star.Heat) {
				fail(i, sys.ID, "star_data[%d] %q: heat must be positive, got %v", j, star.Name, star.Heat)
			}
		}

		for j, planet := range sys.Planets {
			if !positive(planet.Size) {
				fail(i, sys.ID, "planets[%d] %q: size must be positive, got %v", j, planet.Name, planet.Size)
			}
		}
	}

	return errors.Join(errs...)
}

// positive rejects NaN and infinities along with non-positive values.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
