package observability

import (
	"testing"

	otellog "go.opentelemetry.io/otel/log"
)

func TestIsHealthCheckLog(t *testing.T) {
	if !isHealthCheckLog("http_request", []any{"http_path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if isHealthCheckLog("http_request", []any{"http_path", "/calendar.ics"}) {
		t.Fatalf("did not expect calendar request to be skipped")
	}
	if isHealthCheckLog("calendar built", []any{"http_path", "/healthz"}) {
		t.Fatalf("did not expect non-access log to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	day := 9
	attrs := logAttributes([]any{"feed_url", "https://f/9.json", "tourn_day", &day, "matches", 12, "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "feed_url" || attrs[0].Value.AsString() != "https://f/9.json" {
		t.Fatalf("unexpected feed_url attribute")
	}
	if attrs[1].Value.AsInt64() != 9 || attrs[2].Value.AsInt64() != 12 {
		t.Fatalf("unexpected numeric attributes")
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute")
	}
}

func TestLogValue_Map(t *testing.T) {
	v := logValue(map[string]any{"draw": "main", "slots": 3}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 || items[0].Key != "draw" {
		t.Fatalf("unexpected map items: %v", items)
	}
}
