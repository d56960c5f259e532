package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
)

const (
	DefaultDaysURL     = "https://www.usopen.org/en_US/scores/feeds/2025/schedule/scheduleDays.json"
	DefaultScheduleURL = "https://www.usopen.org/en_US/cms/feeds/tournament_schedule.json"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	DefaultTimezone    = "America/New_York"
)

// Config stores runtime configuration for the calendar builder and server.
type Config struct {
	AppEnv            string `validate:"oneof=dev stage prod"`
	ServiceName       string `validate:"required"`
	ServiceVersion    string
	LogLevel          logging.Level
	LogFile           string
	LogFileMaxSizeMB  int `validate:"gte=1"`
	LogFileMaxAgeDays int `validate:"gte=0"`

	FeedDaysURL               string        `validate:"required,url"`
	FeedScheduleURL           string        `validate:"omitempty,url"`
	FeedUserAgent             string        `validate:"required"`
	FeedTimeout               time.Duration `validate:"gt=0"`
	FeedMaxRetries            int           `validate:"gte=0,lte=10"`
	FeedFetchWorkers          int           `validate:"gte=1,lte=64"`
	FeedCircuitEnabled        bool
	FeedCircuitFailureCount   int           `validate:"gte=1"`
	FeedCircuitOpenTimeout    time.Duration `validate:"gt=0"`
	FeedCircuitHalfOpenMaxReq int           `validate:"gte=1"`

	TournamentTimezone  string `validate:"required"`
	Location            *time.Location
	MinTournDay         int `validate:"gte=0"`
	GroupByTimeEvent    bool
	HeaderDisplayDate   bool
	CourtSuffix         bool
	PlaceholdersEnabled bool
	EventDuration       time.Duration `validate:"gt=0"`

	CalendarName            string
	CalendarProdID          string `validate:"required"`
	CalendarRefreshInterval string `validate:"omitempty,startswith=P"`
	CalendarPublishedTTL    string `validate:"omitempty,startswith=P"`
	CalendarUIDDomain       string `validate:"required,hostname_rfc1123|fqdn"`

	OutputPath         string        `validate:"required"`
	HTTPAddr           string        `validate:"required"`
	ReadTimeout        time.Duration `validate:"gt=0"`
	WriteTimeout       time.Duration `validate:"gt=0"`
	CalendarCacheTTL   time.Duration `validate:"gte=0"`
	CORSAllowedOrigins []string
	ProfilePath        string

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "tennis-calendar"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		LogLevel:                logging.ParseLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:                 strings.TrimSpace(getEnv("LOG_FILE", "")),
		FeedDaysURL:             strings.TrimSpace(getEnv("FEED_DAYS_URL", DefaultDaysURL)),
		FeedScheduleURL:         strings.TrimSpace(getEnv("FEED_SCHEDULE_URL", DefaultScheduleURL)),
		FeedUserAgent:           getEnv("FEED_USER_AGENT", DefaultUserAgent),
		TournamentTimezone:      strings.TrimSpace(getEnv("TOURNAMENT_TIMEZONE", DefaultTimezone)),
		CalendarName:            getEnv("CALENDAR_NAME", "US Open 2025"),
		CalendarProdID:          getEnv("CALENDAR_PRODID", "-//Your Org//US Open 2025//EN"),
		CalendarRefreshInterval: strings.TrimSpace(getEnv("CALENDAR_REFRESH_INTERVAL", "PT1H")),
		CalendarPublishedTTL:    strings.TrimSpace(getEnv("CALENDAR_PUBLISHED_TTL", "PT1H")),
		CalendarUIDDomain:       strings.TrimSpace(getEnv("CALENDAR_UID_DOMAIN", "github-pages")),
		OutputPath:              strings.TrimSpace(getEnv("OUTPUT_PATH", "usopen_2025_schedule.ics")),
		HTTPAddr:                strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ProfilePath:             strings.TrimSpace(getEnv("CALENDAR_PROFILE", "")),
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PyroscopeServerAddress:  strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:      getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:  getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")

	if cfg.LogFileMaxSizeMB, err = getEnvAsInt("LOG_FILE_MAX_SIZE_MB", 50); err != nil {
		return Config{}, fmt.Errorf("parse LOG_FILE_MAX_SIZE_MB: %w", err)
	}
	if cfg.LogFileMaxAgeDays, err = getEnvAsInt("LOG_FILE_MAX_AGE_DAYS", 7); err != nil {
		return Config{}, fmt.Errorf("parse LOG_FILE_MAX_AGE_DAYS: %w", err)
	}

	if cfg.FeedTimeout, err = getEnvAsDuration("FEED_TIMEOUT", "20s"); err != nil {
		return Config{}, fmt.Errorf("parse FEED_TIMEOUT: %w", err)
	}
	if cfg.FeedMaxRetries, err = getEnvAsInt("FEED_MAX_RETRIES", 3); err != nil {
		return Config{}, fmt.Errorf("parse FEED_MAX_RETRIES: %w", err)
	}
	if cfg.FeedFetchWorkers, err = getEnvAsInt("FEED_FETCH_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse FEED_FETCH_WORKERS: %w", err)
	}
	if cfg.FeedCircuitEnabled, err = getEnvAsBool("FEED_CIRCUIT_ENABLED", "true"); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_ENABLED: %w", err)
	}
	if cfg.FeedCircuitFailureCount, err = getEnvAsInt("FEED_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cfg.FeedCircuitOpenTimeout, err = getEnvAsDuration("FEED_CIRCUIT_OPEN_TIMEOUT", "15s"); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cfg.FeedCircuitHalfOpenMaxReq, err = getEnvAsInt("FEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2); err != nil {
		return Config{}, fmt.Errorf("parse FEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	if cfg.MinTournDay, err = getEnvAsInt("MIN_TOURN_DAY", 7); err != nil {
		return Config{}, fmt.Errorf("parse MIN_TOURN_DAY: %w", err)
	}
	if cfg.GroupByTimeEvent, err = getEnvAsBool("GROUP_BY_TIME_EVENT", "true"); err != nil {
		return Config{}, fmt.Errorf("parse GROUP_BY_TIME_EVENT: %w", err)
	}
	if cfg.HeaderDisplayDate, err = getEnvAsBool("HEADER_DISPLAY_DATE", "false"); err != nil {
		return Config{}, fmt.Errorf("parse HEADER_DISPLAY_DATE: %w", err)
	}
	if cfg.CourtSuffix, err = getEnvAsBool("COURT_SUFFIX", "false"); err != nil {
		return Config{}, fmt.Errorf("parse COURT_SUFFIX: %w", err)
	}
	if cfg.PlaceholdersEnabled, err = getEnvAsBool("PLACEHOLDERS_ENABLED", "true"); err != nil {
		return Config{}, fmt.Errorf("parse PLACEHOLDERS_ENABLED: %w", err)
	}
	if cfg.EventDuration, err = getEnvAsDuration("EVENT_DURATION", "2h"); err != nil {
		return Config{}, fmt.Errorf("parse EVENT_DURATION: %w", err)
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("HTTP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("HTTP_WRITE_TIMEOUT", "30s"); err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	if cfg.CalendarCacheTTL, err = getEnvAsDuration("CALENDAR_CACHE_TTL", "15m"); err != nil {
		return Config{}, fmt.Errorf("parse CALENDAR_CACHE_TTL: %w", err)
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", "false"); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}

	if cfg.ProfilePath != "" {
		profile, err := LoadProfile(cfg.ProfilePath)
		if err != nil {
			return Config{}, err
		}
		if err := cfg.ApplyProfile(profile); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints and resolves Location from
// TournamentTimezone. Call it again after overriding fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if c.UptraceEnabled && c.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if c.PyroscopeEnabled && c.PyroscopeUploadRate <= 0 {
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	loc, err := time.LoadLocation(c.TournamentTimezone)
	if err != nil {
		return fmt.Errorf("load TOURNAMENT_TIMEZONE %q: %w", c.TournamentTimezone, err)
	}
	c.Location = loc
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key, fallback string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	return time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
