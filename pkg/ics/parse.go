package ics

import (
	"errors"
	"strings"
	"time"

	"github.com/econcal/econcal/pkg/event"
	log "github.com/sirupsen/logrus"
)

// Parse converts raw iCalendar text into events attributed to sourceName.
//
// Only BEGIN:VEVENT/END:VEVENT blocks are inspected; timezone definitions,
// alarms, and every other calendar-level component are skipped. Within a
// block the recognized properties are UID, SUMMARY, DESCRIPTION, LOCATION,
// DTSTART and DTEND. Blocks missing SUMMARY or DTSTART are dropped without
// aborting the rest, malformed property lines are skipped, and input that is
// not ICS at all yields an empty slice. Events come out in source order.
//
// Floating date-times and date-only values are interpreted in loc; values
// with a Z suffix are UTC. A TZID parameter is recorded on the event but
// never resolved against a timezone database.
func Parse(text string, sourceName string, loc *time.Location) []event.Event {
	if loc == nil {
		loc = time.Local
	}

	var events []event.Event
	var cur event.Event
	var hasStart bool
	inEvent := false

	for _, line := range unfold(text) {
		switch strings.TrimSpace(line) {
		case "BEGIN:VEVENT":
			cur = event.Event{Source: sourceName}
			hasStart = false
			inEvent = true
			continue
		case "END:VEVENT":
			if inEvent {
				if cur.Summary != "" && hasStart {
					events = append(events, cur)
				} else {
					log.Debugf("ics: dropping VEVENT without SUMMARY or DTSTART in %q", sourceName)
				}
			}
			inEvent = false
			continue
		}
		if !inEvent {
			continue
		}

		name, params, value, ok := splitProperty(line)
		if !ok {
			continue
		}

		switch name {
		case "UID":
			cur.UID = value
		case "SUMMARY":
			cur.Summary = unescapeText(value)
		case "DESCRIPTION":
			cur.Description = unescapeText(value)
		case "LOCATION":
			cur.Location = unescapeText(value)
		case "DTSTART":
			t, allDay, err := parseDateValue(value, params, loc)
			if err != nil {
				continue
			}
			cur.Start = t
			cur.AllDay = allDay
			cur.StartTZ = params["TZID"]
			hasStart = true
		case "DTEND":
			t, _, err := parseDateValue(value, params, loc)
			if err != nil {
				continue
			}
			// Preserved even when it precedes DTSTART; ordering is the
			// source feed's problem, not the parser's.
			cur.End = t
		}
	}

	return events
}

// unfold normalizes line endings and rejoins folded lines: a physical line
// starting with a single space or tab continues the previous logical line,
// with the fold character removed.
func unfold(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(out) > 0 {
			out[len(out)-1] += line[1:]
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitProperty breaks a logical line into its upper-case property name, the
// parameter list between name and colon, and the raw value.
func splitProperty(line string) (name string, params map[string]string, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", nil, "", false
	}
	head := line[:idx]
	value = line[idx+1:]

	parts := strings.Split(head, ";")
	name = parts[0]
	params = make(map[string]string, len(parts)-1)
	for _, p := range parts[1:] {
		if eq := strings.Index(p, "="); eq >= 0 {
			params[strings.ToUpper(p[:eq])] = p[eq+1:]
		}
	}
	return name, params, value, true
}

const (
	layoutDate        = "20060102"
	layoutDateTime    = "20060102T150405"
	layoutDateTimeUTC = "20060102T150405Z"
)

// parseDateValue parses a DTSTART/DTEND value. An 8-digit value, or any
// value carrying VALUE=DATE, is an all-day date at local midnight. A
// compact date-time is UTC when suffixed with Z and local time otherwise.
func parseDateValue(val string, params map[string]string, loc *time.Location) (time.Time, bool, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false, errors.New("empty date value")
	}

	if strings.EqualFold(params["VALUE"], "DATE") || isCompactDate(val) {
		t, err := time.ParseInLocation(layoutDate, val, loc)
		return t, true, err
	}

	if strings.HasSuffix(val, "Z") {
		t, err := time.Parse(layoutDateTimeUTC, val)
		return t, false, err
	}

	t, err := time.ParseInLocation(layoutDateTime, val, loc)
	return t, false, err
}

func isCompactDate(val string) bool {
	if len(val) != 8 {
		return false
	}
	for _, r := range val {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// unescapeText reverses iCalendar text escaping: \n and \N become newlines,
// and escaped commas, semicolons, and backslashes become literal characters.
func unescapeText(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n', 'N':
				b.WriteByte('\n')
				i++
				continue
			case ',', ';', '\\':
				b.WriteByte(s[i+1])
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
