package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/platform/id"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
}

func sampleMatches(t *testing.T) []schedule.Match {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	start := time.Date(2025, 8, 26, 11, 0, 0, 0, loc)
	return []schedule.Match{
		{
			Title:       "Men's Singles - Round 1",
			Court:       schedule.MultipleCourts,
			Description: "Men's Singles | Round 1 | Day 9\n1. 🇺🇸 A vs 🇫🇷 B  ",
			StartTime:   &start,
		},
		{
			Title:       "Match (TBD)",
			Court:       schedule.UnknownCourt,
			Description: "Match (TBD)",
		},
	}
}

func TestEncoder_Render(t *testing.T) {
	t.Parallel()

	matches := sampleMatches(t)
	out, err := NewEncoder(DefaultMetadata(), WithClock(fixedClock)).Render(matches)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"PRODID:-//Your Org//US Open 2025//EN",
		"X-WR-CALNAME:US Open 2025",
		"X-WR-TIMEZONE:America/New_York",
		"REFRESH-INTERVAL;VALUE=DURATION:PT1H",
		"X-PUBLISHED-TTL:PT1H",
		"SUMMARY:Men's Singles - Round 1",
		"LOCATION:Multiple Courts",
		"DTSTART:20250826T150000Z",
		"DTEND:20250826T170000Z",
		"DTSTAMP:20250820T000000Z",
		"TRANSP:TRANSPARENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in calendar:\n%s", want, doc)
		}
	}

	if got := strings.Count(doc, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 events, got=%d", got)
	}
	if got := strings.Count(doc, "DTSTART"); got != 1 {
		t.Fatalf("undated match must not carry DTSTART, got %d", got)
	}

	uids := id.NewStableGenerator(id.DefaultDomain)
	for _, want := range []string{
		"UID:" + uids.NewID("Men's Singles - Round 1", "Multiple Courts", "2025-08-26T11:00:00-04:00"),
		"UID:" + uids.NewID("Match (TBD)", "Unknown Court", ""),
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in calendar", want)
		}
	}
}

func TestEncoder_IsReproducible(t *testing.T) {
	t.Parallel()

	matches := sampleMatches(t)
	encoder := NewEncoder(DefaultMetadata(), WithClock(fixedClock))

	var first, second bytes.Buffer
	if err := encoder.Encode(&first, matches); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := encoder.Encode(&second, matches); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestEncoder_CustomDurationAndDomain(t *testing.T) {
	t.Parallel()

	meta := DefaultMetadata()
	meta.EventDuration = 90 * time.Minute
	meta.UIDDomain = "tennis.example.org"
	meta.Name = ""

	out, err := NewEncoder(meta, WithClock(fixedClock)).Render(sampleMatches(t)[:1])
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, "DTEND:20250826T163000Z") {
		t.Fatalf("expected 90 minute duration:\n%s", doc)
	}
	if !strings.Contains(doc, "@tennis.example.org") {
		t.Fatalf("expected custom uid domain:\n%s", doc)
	}
	if strings.Contains(doc, "X-WR-CALNAME") {
		t.Fatalf("empty calendar name should be omitted")
	}
}
