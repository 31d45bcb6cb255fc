package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	ID       string
	Name     string
	Type     string
	Stars    int
	Planets  int
	Position string
}

// GenerateSummaryRows creates summary rows in catalog order.
func GenerateSummaryRows(systems []StarSystem) []SummaryRow {
	rows := make([]SummaryRow, 0, len(systems))
	for _, s := range systems {
		rows = append(rows, SummaryRow{
			ID:       s.ID,
			Name:     s.Name,
			Type:     s.Type,
			Stars:    len(s.Stars),
			Planets:  len(s.Planets),
			Position: fmt.Sprintf("%s,%s", s.Position.X, s.Position.Y),
		})
	}
	return rows
}

// WriteSummaryTable writes a text table of the catalog to w.
func WriteSummaryTable(w io.Writer, systems []StarSystem, source string, timestamp time.Time) {
	rows := GenerateSummaryRows(systems)

	fmt.Fprintf(w, "Catalog %s @ %s\n", source, timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No systems")
		return
	}

	fmt.Fprintf(w, "%-14s %-18s %-20s %-5s %-7s %-12s\n",
		"ID", "Name", "Type", "Stars", "Planets", "Position")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	planets := 0
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %-18s %-20s %5d %7d %-12s\n",
			truncateStr(r.ID, 14),
			truncateStr(r.Name, 18),
			truncateStr(r.Type, 20),
			r.Stars,
			r.Planets,
			truncateStr(r.Position, 12),
		)
		planets += r.Planets
	}

	fmt.Fprintf(w, "\nTotal: %d systems, %d planets\n", len(rows), planets)
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
