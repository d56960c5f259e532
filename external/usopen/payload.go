package usopen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// DayFeed is the per-day schedule of play: courts with their matches.
// Parts of the feed with an unexpected shape decode as empty.
type DayFeed struct {
	DisplayDate looseString          `json:"displayDate"`
	Courts      looseList[courtItem] `json:"courts"`
}

func (d *DayFeed) UnmarshalJSON(data []byte) error {
	type plain DayFeed
	*d = DayFeed(decodeLoose[plain](data))
	return nil
}

type courtItem struct {
	CourtName  looseString          `json:"courtName"`
	StartEpoch flexInt              `json:"startEpoch"`
	Matches    looseList[matchItem] `json:"matches"`
}

type matchItem struct {
	EventName  looseString         `json:"eventName"`
	RoundName  looseString         `json:"roundName"`
	StartEpoch flexInt             `json:"startEpoch"`
	Team1      looseList[teamItem] `json:"team1"`
	Team2      looseList[teamItem] `json:"team2"`
}

type teamItem struct {
	DisplayNameA looseString `json:"displayNameA"`
	DisplayNameB looseString `json:"displayNameB"`
	NationA      looseString `json:"nationA"`
	NationB      looseString `json:"nationB"`
}

// TournamentSchedulePayload is the session schedule published for the whole
// tournament, keyed by draw.
type TournamentSchedulePayload struct {
	TournamentSchedule scheduleRoot `json:"tournament_schedule"`
}

func (p *TournamentSchedulePayload) UnmarshalJSON(data []byte) error {
	type plain TournamentSchedulePayload
	*p = TournamentSchedulePayload(decodeLoose[plain](data))
	return nil
}

type scheduleRoot struct {
	Draws looseMap[drawItem] `json:"draws"`
}

func (r *scheduleRoot) UnmarshalJSON(data []byte) error {
	type plain scheduleRoot
	*r = scheduleRoot(decodeLoose[plain](data))
	return nil
}

type drawItem struct {
	Name  looseString         `json:"name"`
	Dates looseList[drawDate] `json:"dates"`
}

type drawDate struct {
	TournDay flexInt                `json:"tournDay"`
	Date     looseString            `json:"date"`
	Epoch    flexInt                `json:"epoch"`
	Session  looseList[sessionItem] `json:"session"`
}

type sessionItem struct {
	SessionID looseString         `json:"session_id"`
	Link      sessionLink         `json:"link"`
	Times     looseList[timeItem] `json:"times"`
}

type sessionLink struct {
	URL string
}

// UnmarshalJSON accepts either {"url": "..."} or a bare URL string.
func (l *sessionLink) UnmarshalJSON(data []byte) error {
	*l = sessionLink{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var direct string
		if err := sonic.Unmarshal(trimmed, &direct); err != nil {
			return err
		}
		l.URL = strings.TrimSpace(direct)
		return nil
	}

	var wrapped struct {
		URL string `json:"url"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return nil
	}
	l.URL = strings.TrimSpace(wrapped.URL)
	return nil
}

type timeItem struct {
	Start  looseString       `json:"start"`
	Gate   looseString       `json:"gate"`
	Events looseList[string] `json:"events"`
}

// flexInt accepts a JSON number or a numeric string. Anything else decodes to
// an unset value instead of failing the whole payload.
type flexInt struct {
	Value int64
	Valid bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt{}
	raw := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if raw == "" || raw == "null" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*f = flexInt{Value: v, Valid: true}
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*f = flexInt{Value: int64(v), Valid: true}
	}
	return nil
}

// nonZero reports the value when it is set and not zero; feeds use 0 for "unknown".
func (f flexInt) nonZero() (int64, bool) {
	if !f.Valid || f.Value == 0 {
		return 0, false
	}
	return f.Value, true
}

// looseString accepts a JSON string or number. Any other value decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = ""
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch c := trimmed[0]; {
	case c == '"':
		var v string
		if err := sonic.Unmarshal(trimmed, &v); err == nil {
			*s = looseString(strings.TrimSpace(v))
		}
	case c == '-' || (c >= '0' && c <= '9'):
		*s = looseString(trimmed)
	}
	return nil
}

// looseList decodes a JSON array one element at a time. Null elements and
// elements that do not fit T are dropped; a non-array value yields an empty list.
type looseList[T any] []T

func (l *looseList[T]) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make(looseList[T], 0, len(raw))
	for _, item := range raw {
		if isNull(item) {
			continue
		}
		var v T
		if err := sonic.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// looseMap is the object counterpart of looseList.
type looseMap[T any] map[string]T

func (m *looseMap[T]) UnmarshalJSON(data []byte) error {
	*m = nil
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make(looseMap[T], len(raw))
	for key, item := range raw {
		if isNull(item) {
			continue
		}
		var v T
		if err := sonic.Unmarshal(item, &v); err != nil {
			continue
		}
		out[key] = v
	}
	*m = out
	return nil
}

// decodeLoose decodes an object, returning the zero value when data is not one.
func decodeLoose[T any](data []byte) T {
	var v T
	if err := sonic.Unmarshal(data, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
