package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/econcal/econcal/pkg/event"
)

// DateMode selects how the date stage constrains event start times.
type DateMode string

const (
	DateUpcoming DateMode = "upcoming"
	DatePast     DateMode = "past"
	DateAll      DateMode = "all"
	DateCustom   DateMode = "custom"
)

// Criteria is the ephemeral filter state for one view. It is not persisted;
// callers reconstruct it from the request on every change.
type Criteria struct {
	// Sources is the explicit opt-in set of source names. An empty set
	// matches nothing; callers wanting "everything" pass all known names.
	Sources []string
	// Tags are short codes matched case-sensitively as substrings of the
	// summary. An empty set matches everything.
	Tags []string
	// Query is free text, matched case-insensitively with substring and
	// subsequence semantics. Blank matches everything.
	Query string
	// DateMode defaults to DateAll when empty.
	DateMode DateMode
	// From and To bound DateCustom; the zero value leaves a side open.
	// To is extended to the last second of its day.
	From time.Time
	To   time.Time
}

// Apply runs the fixed filter pipeline over events and returns a new,
// sorted slice. It is a pure function: events is never modified, and equal
// inputs always produce equal outputs. now and loc anchor the local-day
// boundary used by the upcoming/past modes.
func Apply(events []event.Event, c Criteria, now time.Time, loc *time.Location) []event.Event {
	if loc == nil {
		loc = time.Local
	}

	selected := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		selected[s] = true
	}

	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if !selected[e.Source] {
			continue
		}
		if !matchesQuery(e, c.Query) {
			continue
		}
		if !matchesTags(e, c.Tags) {
			continue
		}
		if !matchesDate(e, c, now, loc) {
			continue
		}
		out = append(out, e)
	}

	// Stable: events with equal start keep their relative input order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})

	return out
}

// matchesQuery accepts an event when the query is blank, when it is a
// case-insensitive substring of the summary or the description, or when its
// characters appear in order (not necessarily contiguously) in the combined
// summary+description text.
func matchesQuery(e event.Event, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Summary), q) ||
		strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	return isSubsequence(q, strings.ToLower(e.Summary+" "+e.Description))
}

// isSubsequence reports whether every rune of needle occurs in haystack in
// the same relative order.
func isSubsequence(needle, haystack string) bool {
	runes := []rune(needle)
	i := 0
	for _, r := range haystack {
		if i == len(runes) {
			break
		}
		if r == runes[i] {
			i++
		}
	}
	return i == len(runes)
}

// matchesTags requires at least one selected tag to appear verbatim in the
// summary. Tags are capitalized codes embedded in titles ("EBS", "CHE"), so
// the match is case-sensitive and has no word-boundary check.
func matchesTags(e event.Event, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if t != "" && strings.Contains(e.Summary, t) {
			return true
		}
	}
	return false
}

func matchesDate(e event.Event, c Criteria, now time.Time, loc *time.Location) bool {
	switch c.DateMode {
	case DateUpcoming:
		return !e.Start.Before(startOfDay(now, loc))
	case DatePast:
		return e.Start.Before(startOfDay(now, loc))
	case DateCustom:
		if !c.From.IsZero() && e.Start.Before(c.From) {
			return false
		}
		if !c.To.IsZero() && e.Start.After(endOfDay(c.To, loc)) {
			return false
		}
		return true
	default:
		return true
	}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time, loc *time.Location) time.Time {
	d := t.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
}
