package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennis-calendar/internal/domain/nation"
)

var degeneratePairings = map[string]struct{}{
	"vs": {},
	strings.ToLower(nation.Neutral + " vs " + nation.Neutral): {},
}

type bucketKind int

const (
	bucketTime bucketKind = iota
	bucketDay
	bucketUnknown
)

type groupKey struct {
	kind  bucketKind
	value int64
	event string
}

type matchKey struct {
	title string
	court string
	start string
}

// Group turns normalized entries into calendar matches. With policy.Grouped,
// entries sharing an effective start time and event are folded into one match
// whose description lists every pairing; otherwise each entry becomes a match.
// Matches repeating an earlier (title, court, start) are dropped.
func Group(entries []Entry, policy Policy) []Match {
	if !policy.Grouped {
		return ungrouped(entries)
	}

	order := make([]groupKey, 0, len(entries))
	members := make(map[groupKey][]Entry, len(entries))
	for _, item := range entries {
		key := keyOf(item)
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		members[key] = append(members[key], item)
	}

	out := make([]Match, 0, len(order))
	seen := make(map[matchKey]struct{}, len(order))
	for _, key := range order {
		m := buildGroup(key.event, members[key], policy)
		if !markSeen(seen, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func ungrouped(entries []Entry) []Match {
	out := make([]Match, 0, len(entries))
	seen := make(map[matchKey]struct{}, len(entries))
	for _, item := range entries {
		pair, degenerate := pairing(item)

		title := joinPresent(" - ", item.EventName, item.RoundName)
		if title == "" {
			title = titleMatch
			if degenerate {
				title = titleTBD
			}
		}

		header := joinPresent(" | ", item.EventName, item.RoundName, item.DisplayDate)
		description := pair
		if header != "" {
			description = header + " — " + pair
		}
		if note := strings.TrimSpace(item.Note); note != "" {
			description += " | " + note
		}

		court := strings.TrimSpace(item.Court)
		if court == "" {
			court = UnknownCourt
		}

		m := Match{
			Title:       title,
			Court:       court,
			Description: description,
			StartTime:   item.StartTime,
		}
		if !markSeen(seen, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func buildGroup(event string, items []Entry, policy Policy) Match {
	var start *time.Time
	rounds := newOrderedSet()
	courts := newOrderedSet()
	days := newOrderedSet()
	dates := newOrderedSet()
	notes := newOrderedSet()
	for _, item := range items {
		if start == nil && item.StartTime != nil {
			start = item.StartTime
		}
		rounds.add(item.RoundName)
		courts.add(item.Court)
		dates.add(item.DisplayDate)
		notes.add(item.Note)
		if item.TournDay != nil {
			days.add(fmt.Sprintf("%d", *item.TournDay))
		}
	}

	round, _ := rounds.only()
	court, singleCourt := courts.only()
	if !singleCourt {
		court = MultipleCourts
	}

	lines := make([]string, 0, len(items))
	allDegenerate := true
	for idx, item := range items {
		pair, degenerate := pairing(item)
		allDegenerate = allDegenerate && degenerate
		if policy.CourtSuffix && !singleCourt && strings.TrimSpace(item.Court) != "" {
			pair = fmt.Sprintf("%s (%s)", pair, strings.TrimSpace(item.Court))
		}
		lines = append(lines, fmt.Sprintf("%d. %s  ", idx+1, pair))
	}

	title := joinPresent(" - ", event, round)
	if title == "" {
		title = titleMatchGroup
		if allDegenerate {
			title = titleTBD
		}
	}

	var dayPart string
	if day, ok := days.only(); ok && policy.HeaderDay {
		dayPart = "Day " + day
	}
	if date, ok := dates.only(); ok && policy.HeaderDisplayDate {
		if dayPart != "" {
			dayPart += ": " + date
		} else {
			dayPart = date
		}
	}

	blocks := make([]string, 0, 3)
	if header := joinPresent(" | ", event, round, dayPart); header != "" {
		blocks = append(blocks, header)
	}
	if note, ok := notes.only(); ok {
		blocks = append(blocks, note)
	}
	blocks = append(blocks, strings.Join(lines, "\n"))

	return Match{
		Title:       title,
		Court:       court,
		Description: strings.Join(blocks, "\n"),
		StartTime:   start,
	}
}

// keyOf buckets an entry by effective start: epoch, then parsed start, then tournament day.
func keyOf(item Entry) groupKey {
	event := item.EventName
	switch {
	case item.StartEpoch != nil:
		return groupKey{kind: bucketTime, value: *item.StartEpoch, event: event}
	case item.StartTime != nil:
		return groupKey{kind: bucketTime, value: item.StartTime.Unix(), event: event}
	case item.TournDay != nil:
		return groupKey{kind: bucketDay, value: int64(*item.TournDay), event: event}
	default:
		return groupKey{kind: bucketUnknown, event: event}
	}
}

// pairing renders "<team1> vs <team2>", swapping in a TBD title when neither
// side carries any information.
func pairing(item Entry) (string, bool) {
	pair := strings.TrimSpace(item.Team1 + " vs " + item.Team2)
	if IsDegeneratePairing(pair) {
		return titleTBD, true
	}
	return pair, false
}

// IsDegeneratePairing reports whether a pairing string carries no team data.
func IsDegeneratePairing(pair string) bool {
	_, ok := degeneratePairings[strings.ToLower(strings.TrimSpace(pair))]
	return ok
}

func markSeen(seen map[matchKey]struct{}, m Match) bool {
	key := matchKey{title: m.Title, court: m.Court}
	if m.StartTime != nil {
		key.start = m.StartTime.Format(time.RFC3339)
	}
	if _, ok := seen[key]; ok {
		return false
	}
	seen[key] = struct{}{}
	return true
}

func joinPresent(sep string, parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			present = append(present, part)
		}
	}
	return strings.Join(present, sep)
}

// orderedSet tracks distinct non-empty values.
type orderedSet struct {
	values []string
	index  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := s.index[value]; ok {
		return
	}
	s.index[value] = struct{}{}
	s.values = append(s.values, value)
}

func (s *orderedSet) only() (string, bool) {
	if len(s.values) != 1 {
		return "", false
	}
	return s.values[0], true
}
