package usopen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/tennis-calendar/internal/platform/resilience"
	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

func newTestClient(t *testing.T, srv *httptest.Server, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		DaysURL:        srv.URL + "/days.json",
		ScheduleURL:    srv.URL + "/tournament_schedule.json",
		MaxRetries:     retries,
		RetryBackoff:   time.Millisecond,
		Location:       time.UTC,
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchDaysAndEntries(t *testing.T) {
	t.Parallel()

	var userAgent atomic.Value
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/days.json", func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"eventDays": [{"tournDay": 9, "feedUrl": "` + srv.URL + `/day9.json"}, {"tournDay": 10}]}`))
	})
	mux.HandleFunc("/day9.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(singleMatchDay))
	})

	client := newTestClient(t, srv, 0, resilience.CircuitBreakerConfig{})
	days, err := client.FetchDays(context.Background())
	if err != nil {
		t.Fatalf("fetch days: %v", err)
	}
	if len(days) != 2 || days[0].FeedURL != srv.URL+"/day9.json" || days[1].FeedURL != "" {
		t.Fatalf("unexpected days: %+v", days)
	}
	if got, _ := userAgent.Load().(string); got != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %q", got)
	}

	entries, err := client.FetchDayEntries(context.Background(), days[0])
	if err != nil {
		t.Fatalf("fetch day entries: %v", err)
	}
	if len(entries) != 1 || entries[0].TournDay == nil || *entries[0].TournDay != 9 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	if _, err := client.FetchDayEntries(context.Background(), days[1]); !crerr.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for feedless day, got %v", err)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(tournamentSchedule))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 3, resilience.CircuitBreakerConfig{})
	slots, err := client.FetchSessionSlots(context.Background())
	if err != nil {
		t.Fatalf("fetch session slots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got=%d", len(slots))
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got=%d", got)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 3, resilience.CircuitBreakerConfig{})
	if _, err := client.FetchDays(context.Background()); err == nil {
		t.Fatalf("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single attempt, got=%d", got)
	}
}

func TestClient_CircuitBreakerOpensOnTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.FetchDays(context.Background()); err == nil {
			t.Fatalf("expected failure on attempt %d", i+1)
		}
	}
	_, err := client.FetchDays(context.Background())
	if !crerr.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected open circuit to short-circuit requests, got %d calls", got)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"courts": [`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0, resilience.CircuitBreakerConfig{})
	if _, err := client.FetchDayEntries(context.Background(), usecase.ExternalDay{FeedURL: srv.URL}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_UnexpectedShapesDoNotFailFeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "courts object", body: `{"courts": {"courtName": "Court 5"}}`, want: 0},
		{name: "top level array", body: `[]`, want: 0},
		{name: "team object", body: `{"courts": [{"courtName": "Court 5", "matches": [{"eventName": "Men's Singles", "team1": {"displayNameA": "A"}, "team2": []}]}]}`, want: 1},
		{name: "numeric event name", body: `{"courts": [{"courtName": "Court 5", "matches": [{"eventName": 5}]}]}`, want: 1},
		{name: "court and match not objects", body: `{"courts": ["Court 5", {"matches": [7, null]}]}`, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv, 0, resilience.CircuitBreakerConfig{})
			entries, err := client.FetchDayEntries(context.Background(), usecase.ExternalDay{FeedURL: srv.URL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(entries) != tc.want {
				t.Fatalf("expected %d entries, got=%d", tc.want, len(entries))
			}
		})
	}
}

func TestClient_SessionSlotsSkipMalformedParts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tournament_schedule": {"draws": {
		  "main": {"dates": [
		    {"tournDay": 10, "session": [{"times": [
		      {"start": "11:00 AM", "events": ["Men's Singles", null, 5]},
		      "7:00 PM"
		    ]}]},
		    42
		  ]},
		  "broken": "not a draw"
		}}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv, 0, resilience.CircuitBreakerConfig{})
	slots, err := client.FetchSessionSlots(context.Background())
	if err != nil {
		t.Fatalf("fetch session slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected one slot, got=%d", len(slots))
	}
	if len(slots[0].Events) != 1 || slots[0].Events[0] != "Men's Singles" {
		t.Fatalf("unexpected events: %v", slots[0].Events)
	}
}
