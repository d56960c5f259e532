package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

var localDateTimeLayouts = []string{
	"2006-01-02 3:04 PM",
	"2006-01-02 15:04",
	"2006-01-02 3:04PM",
}

var naturalTimeParser = newNaturalTimeParser()

func newNaturalTimeParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}

// ParseLocalDateTime combines a "YYYY-MM-DD" date and a wall-clock label in loc.
// Labels outside the fixed layouts go through the natural-language parser,
// anchored at local midnight; a result that leaves the date is rejected.
func ParseLocalDateTime(date, clock string, loc *time.Location) *time.Time {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	combined := date + " " + clock
	for _, layout := range localDateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, strings.ToUpper(combined), loc); err == nil {
			return &parsed
		}
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil
	}
	result, err := naturalTimeParser.Parse(clock, day)
	if err != nil || result == nil {
		return nil
	}
	parsed := result.Time.In(loc)
	if y, m, d := parsed.Date(); y != day.Year() || m != day.Month() || d != day.Day() {
		return nil
	}
	return &parsed
}

// Placeholders builds TBD entries for one tournament day from the session
// schedule. They keep days without per-court feeds on the calendar.
func Placeholders(slots []SessionSlot, tournDay int, loc *time.Location) []Entry {
	out := make([]Entry, 0)
	for _, slot := range slots {
		if slot.TournDay != tournDay {
			continue
		}
		labels := ClassifyEvents(slot.Events)
		if len(labels) == 0 {
			continue
		}

		day := slot.TournDay
		var startEpoch *int64
		startTime := ParseLocalDateTime(slot.Date, slot.Start, loc)
		if startTime == nil && slot.DayEpoch != nil {
			epoch := *slot.DayEpoch
			converted := EpochTime(epoch, loc)
			startEpoch = &epoch
			startTime = &converted
		}

		note := sessionNote(slot)
		for _, label := range labels {
			out = append(out, Entry{
				EventName:  label,
				TournDay:   &day,
				StartEpoch: startEpoch,
				StartTime:  startTime,
				Team1:      TBDLabel,
				Team2:      TBDLabel,
				Note:       note,
			})
		}
	}
	return out
}

func sessionNote(slot SessionSlot) string {
	parts := make([]string, 0, 5)
	if v := strings.TrimSpace(slot.Draw); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(slot.SessionID); v != "" {
		parts = append(parts, fmt.Sprintf("Session %s", v))
	}
	if v := strings.TrimSpace(slot.Gate); v != "" {
		parts = append(parts, fmt.Sprintf("Gates open: %s", v))
	}
	if v := strings.TrimSpace(slot.Date); v != "" {
		parts = append(parts, fmt.Sprintf("Date: %s", v))
	}
	if v := strings.TrimSpace(slot.Link); v != "" {
		parts = append(parts, fmt.Sprintf("Tickets: %s", v))
	}
	return strings.Join(parts, " | ")
}
