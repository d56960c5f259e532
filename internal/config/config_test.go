package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MinTournDay != 7 {
		t.Fatalf("unexpected MinTournDay: %d", cfg.MinTournDay)
	}
	if cfg.EventDuration != 2*time.Hour {
		t.Fatalf("unexpected EventDuration: %s", cfg.EventDuration)
	}
	if !cfg.GroupByTimeEvent || !cfg.PlaceholdersEnabled {
		t.Fatalf("expected grouping and placeholders on by default")
	}
	if cfg.FeedMaxRetries != 3 || cfg.FeedTimeout != 20*time.Second {
		t.Fatalf("unexpected feed defaults: retries=%d timeout=%s", cfg.FeedMaxRetries, cfg.FeedTimeout)
	}
	if cfg.Location == nil || cfg.Location.String() != DefaultTimezone {
		t.Fatalf("unexpected Location: %v", cfg.Location)
	}
	if cfg.CalendarUIDDomain != "github-pages" {
		t.Fatalf("unexpected CalendarUIDDomain: %q", cfg.CalendarUIDDomain)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative min day", key: "MIN_TOURN_DAY", value: "-1"},
		{name: "non numeric retries", key: "FEED_MAX_RETRIES", value: "three"},
		{name: "zero workers", key: "FEED_FETCH_WORKERS", value: "0"},
		{name: "bad duration", key: "EVENT_DURATION", value: "two hours"},
		{name: "bad bool", key: "GROUP_BY_TIME_EVENT", value: "maybe"},
		{name: "unknown timezone", key: "TOURNAMENT_TIMEZONE", value: "Mars/Olympus"},
		{name: "relative days url", key: "FEED_DAYS_URL", value: "/days.json"},
		{name: "refresh not iso duration", key: "CALENDAR_REFRESH_INTERVAL", value: "1h"},
		{name: "pyroscope without address", key: "PYROSCOPE_ENABLED", value: "true"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_AppliesProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wimbledon.yaml")
	profile := `
name: Wimbledon 2026
timezone: Europe/London
days_url: https://feeds.example.org/days.json
min_tourn_day: 1
event_duration: 90m
`
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CALENDAR_PROFILE", path)
	t.Setenv("CALENDAR_NAME", "ignored by profile")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CalendarName != "Wimbledon 2026" {
		t.Fatalf("unexpected CalendarName: %q", cfg.CalendarName)
	}
	if cfg.Location.String() != "Europe/London" {
		t.Fatalf("unexpected Location: %s", cfg.Location)
	}
	if cfg.FeedDaysURL != "https://feeds.example.org/days.json" {
		t.Fatalf("unexpected FeedDaysURL: %q", cfg.FeedDaysURL)
	}
	if cfg.MinTournDay != 1 || cfg.EventDuration != 90*time.Minute {
		t.Fatalf("unexpected profile overlay: min=%d duration=%s", cfg.MinTournDay, cfg.EventDuration)
	}
	if cfg.FeedScheduleURL != DefaultScheduleURL {
		t.Fatalf("empty profile field must keep env value, got %q", cfg.FeedScheduleURL)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CALENDAR_PROFILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing profile")
	}
}
