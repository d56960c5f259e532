package usopen

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
)

const tournamentSchedule = `{
  "tournament_schedule": {
    "draws": {
      "qualifying": {
        "name": "Qualifying",
        "dates": [
          {"tournDay": 2, "date": "2025-08-19", "session": [{"times": [{"start": "11:00 AM", "events": ["Men's Singles"]}]}]}
        ]
      },
      "main": {
        "dates": [
          {
            "tournDay": "10",
            "date": "2025-08-27",
            "epoch": 1756267200,
            "session": [
              {
                "session_id": 19,
                "link": {"url": "https://tickets.test/19"},
                "times": [
                  {"start": "11:00 AM", "gate": "10:00 AM", "events": ["Wheelchair Quad Doubles", "Men's and Women's Singles"]},
                  {"start": "7:00 PM", "events": ["Mixed Doubles"]}
                ]
              }
            ]
          },
          {"date": "2025-08-28", "session": [{"times": [{"start": "noon", "events": ["Men's Singles"]}]}]}
        ]
      }
    }
  }
}`

func TestFlattenSessions(t *testing.T) {
	t.Parallel()

	var payload TournamentSchedulePayload
	if err := sonic.Unmarshal([]byte(tournamentSchedule), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	epoch := int64(1756267200)
	want := []schedule.SessionSlot{
		{
			Draw: "main", TournDay: 10, Date: "2025-08-27", DayEpoch: &epoch,
			SessionID: "19", Link: "https://tickets.test/19", Gate: "10:00 AM", Start: "11:00 AM",
			Events: []string{"Wheelchair Quad Doubles", "Men's and Women's Singles"},
		},
		{
			Draw: "main", TournDay: 10, Date: "2025-08-27", DayEpoch: &epoch,
			SessionID: "19", Link: "https://tickets.test/19", Start: "7:00 PM",
			Events: []string{"Mixed Doubles"},
		},
		{
			Draw: "Qualifying", TournDay: 2, Date: "2025-08-19", Start: "11:00 AM",
			Events: []string{"Men's Singles"},
		},
	}

	got := FlattenSessions(payload)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenSessions_FeedsPlaceholders(t *testing.T) {
	t.Parallel()

	var payload TournamentSchedulePayload
	if err := sonic.Unmarshal([]byte(tournamentSchedule), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	loc := newYork(t)
	entries := schedule.Placeholders(FlattenSessions(payload), 10, loc)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.EventName)
	}
	want := []string{"Men's and Women's Singles", "Double and Mixed Double"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("placeholder events mismatch (-want +got):\n%s", diff)
	}
	if entries[0].Note != "main | Session 19 | Gates open: 10:00 AM | Date: 2025-08-27 | Tickets: https://tickets.test/19" {
		t.Fatalf("unexpected note: %q", entries[0].Note)
	}
	if entries[1].StartTime == nil || entries[1].StartTime.Hour() != 19 {
		t.Fatalf("unexpected evening start: %v", entries[1].StartTime)
	}
}

func TestSessionLink_AcceptsBareString(t *testing.T) {
	t.Parallel()

	var item sessionItem
	if err := sonic.Unmarshal([]byte(`{"session_id": "S3", "link": "https://tickets.test/s3", "times": []}`), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.Link.URL != "https://tickets.test/s3" || item.SessionID != "S3" {
		t.Fatalf("unexpected session: %+v", item)
	}
}

func TestFlattenSessions_SkipsMalformedElements(t *testing.T) {
	t.Parallel()

	var payload TournamentSchedulePayload
	raw := `{"tournament_schedule": {"draws": {"main": {"dates": [
	  {"tournDay": 4, "date": "2025-08-21", "session": [{"session_id": 7, "times": [
	    {"start": "11:00 AM", "events": ["Men's Singles", null, 5, "Women's Singles"]},
	    {"start": "7:00 PM", "events": "Mixed Doubles"}
	  ]}]}
	]}}}}`
	if err := sonic.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []schedule.SessionSlot{
		{Draw: "main", TournDay: 4, Date: "2025-08-21", SessionID: "7", Start: "11:00 AM", Events: []string{"Men's Singles", "Women's Singles"}},
		{Draw: "main", TournDay: 4, Date: "2025-08-21", SessionID: "7", Start: "7:00 PM", Events: []string{}},
	}
	if diff := cmp.Diff(want, FlattenSessions(payload)); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestTournamentSchedulePayload_UnexpectedRoot(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`[]`, `{"tournament_schedule": []}`, `{"tournament_schedule": {"draws": [1, 2]}}`} {
		var payload TournamentSchedulePayload
		if err := sonic.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if got := FlattenSessions(payload); len(got) != 0 {
			t.Fatalf("expected no slots for %s, got=%d", raw, len(got))
		}
	}
}
