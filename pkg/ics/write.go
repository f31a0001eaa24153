package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/econcal/econcal/pkg/event"
	"github.com/google/uuid"
)

const prodID = "-//econcal//econcal//EN"

// WriteEvent renders a minimal single-event iCalendar document suitable for
// download. Events without a UID get a freshly generated one.
func WriteEvent(e event.Event) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	writeEventBlock(&b, e)
	b.WriteString("END:VCALENDAR\r\n")

	return b.String()
}

// WriteCalendar renders all given events as one named calendar feed.
func WriteCalendar(name string, events []event.Event) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")
	fmt.Fprintf(&b, "X-WR-CALNAME:%s\r\n", escapeText(name))
	for _, e := range events {
		writeEventBlock(&b, e)
	}
	b.WriteString("END:VCALENDAR\r\n")

	return b.String()
}

func writeEventBlock(b *strings.Builder, e event.Event) {
	uid := e.UID
	if uid == "" {
		uid = uuid.NewString() + "@econcal"
	}

	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(b, "UID:%s\r\n", escapeText(uid))
	fmt.Fprintf(b, "DTSTAMP:%s\r\n", time.Now().UTC().Format(layoutDateTimeUTC))

	if e.AllDay {
		fmt.Fprintf(b, "DTSTART;VALUE=DATE:%s\r\n", e.Start.Format(layoutDate))
		if e.HasEnd() {
			fmt.Fprintf(b, "DTEND;VALUE=DATE:%s\r\n", e.End.Format(layoutDate))
		}
	} else {
		fmt.Fprintf(b, "DTSTART:%s\r\n", e.Start.UTC().Format(layoutDateTimeUTC))
		if e.HasEnd() {
			fmt.Fprintf(b, "DTEND:%s\r\n", e.End.UTC().Format(layoutDateTimeUTC))
		}
	}

	fmt.Fprintf(b, "SUMMARY:%s\r\n", escapeText(e.Summary))
	if e.Description != "" {
		fmt.Fprintf(b, "DESCRIPTION:%s\r\n", escapeText(e.Description))
	}
	if e.Location != "" {
		fmt.Fprintf(b, "LOCATION:%s\r\n", escapeText(e.Location))
	}
	b.WriteString("END:VEVENT\r\n")
}

// escapeText applies iCalendar text escaping, mirroring unescapeText.
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
