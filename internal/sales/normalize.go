package sales

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/retail-daya/retail-daya/internal/warehouse"
)

// Date layouts seen in the warehouse. The fact loader writes the first form;
// the rest cover older sync batches.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// FromRows converts raw warehouse rows into events. The date is parsed here;
// rows whose date does not parse keep a zero Date and are dropped by
// Normalize. Every column is carried along verbatim as a dimension.
func FromRows(rows []warehouse.Row, dateCol, idCol string) []Event {
	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		e := Event{
			ID:   row[idCol],
			Dims: map[string]string(row),
		}
		if ts, ok := parseDate(row[dateCol]); ok {
			e.Date = ts
		}
		events = append(events, e)
	}
	return events
}

// Normalize drops events whose date failed to parse and fills the derived
// year/month/day fields. It never fails; drops are logged and aggregation
// proceeds with the rest. Running it again on its own output drops nothing.
func Normalize(events []Event, logger *slog.Logger) []Event {
	out := make([]Event, 0, len(events))
	dropped := 0
	for _, e := range events {
		if e.Date.IsZero() {
			dropped++
			continue
		}
		e.Year = e.Date.Format("2006")
		e.Month = e.Date.Format("01")
		e.Day = e.Date.Day()
		out = append(out, e)
	}
	if dropped > 0 && logger != nil {
		logger.Warn("dropped rows with unparseable dates", slog.Int("dropped", dropped), slog.Int("kept", len(out)))
	}
	return out
}

// FilterMonth keeps events matching the zero-padded year and month strings.
// The comparison is string equality on the derived fields, not date-range
// arithmetic, so a window can never straddle a year boundary.
func FilterMonth(events []Event, year, month string) []Event {
	var out []Event
	for _, e := range events {
		if e.Year == year && e.Month == month {
			out = append(out, e)
		}
	}
	return out
}

// FilterDays keeps events whose day falls inside the window bounds.
func FilterDays(events []Event, startDay, endDay int) []Event {
	var out []Event
	for _, e := range events {
		if e.Day >= startDay && e.Day <= endDay {
			out = append(out, e)
		}
	}
	return out
}

// Years returns the distinct years observed, ascending.
func Years(events []Event) []string {
	seen := make(map[string]bool)
	var years []string
	for _, e := range events {
		if !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	sort.Strings(years)
	return years
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
