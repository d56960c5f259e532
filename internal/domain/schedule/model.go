package schedule

import "time"

const (
	// TBDLabel stands in for a side of a pairing that is not known yet.
	TBDLabel = "🎾 TBD"

	UnknownCourt   = "Unknown Court"
	MultipleCourts = "Multiple Courts"

	titleMatch      = "Match"
	titleMatchGroup = "Match Group"
	titleTBD        = "Match (TBD)"
)

// TeamSlot is one side of a pairing as published by the feed. Doubles teams
// carry the partner in the B fields.
type TeamSlot struct {
	DisplayNameA string
	DisplayNameB string
	NationA      string
	NationB      string
}

// Entry is a single normalized row produced from a day feed or synthesized
// from the session schedule. Entries live for one build only.
type Entry struct {
	EventName   string
	RoundName   string
	Court       string
	DisplayDate string
	TournDay    *int
	StartEpoch  *int64
	StartTime   *time.Time
	Team1       string
	Team2       string
	// Note carries extra context lines, e.g. session and gate times for placeholders.
	Note string
}

// Match is a calendar-ready row.
type Match struct {
	Title       string     `json:"title"`
	Court       string     `json:"court"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime,omitempty"`
}

// SessionSlot is one time block of the published session schedule.
type SessionSlot struct {
	Draw      string
	TournDay  int
	Date      string
	DayEpoch  *int64
	SessionID string
	Link      string
	Gate      string
	Start     string
	Events    []string
}

// Policy controls how entries are turned into matches.
type Policy struct {
	Grouped           bool
	HeaderDay         bool
	HeaderDisplayDate bool
	CourtSuffix       bool
}

func DefaultPolicy() Policy {
	return Policy{
		Grouped:   true,
		HeaderDay: true,
	}
}

// EpochTime converts a unix timestamp into loc.
func EpochTime(epoch int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epoch, 0).In(loc)
}
