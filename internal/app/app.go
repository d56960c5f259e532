package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/tennis-calendar/external/usopen"
	"github.com/riskibarqy/tennis-calendar/internal/config"
	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/infrastructure/ics"
	"github.com/riskibarqy/tennis-calendar/internal/interfaces/httpapi"
	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
	"github.com/riskibarqy/tennis-calendar/internal/platform/resilience"
	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

func NewLogger(cfg config.Config) *logging.Logger {
	var opts []logging.Option
	if cfg.LogFile != "" {
		opts = append(opts, logging.WithFile(logging.FileConfig{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogFileMaxSizeMB,
			MaxAgeDays: cfg.LogFileMaxAgeDays,
		}))
	}
	return logging.NewJSON(cfg.LogLevel, opts...).With("service", cfg.ServiceName, "env", cfg.AppEnv)
}

func NewScheduleClient(cfg config.Config, logger *logging.Logger) *usopen.Client {
	return usopen.NewClient(usopen.ClientConfig{
		DaysURL:     cfg.FeedDaysURL,
		ScheduleURL: cfg.FeedScheduleURL,
		UserAgent:   cfg.FeedUserAgent,
		Timeout:     cfg.FeedTimeout,
		MaxRetries:  cfg.FeedMaxRetries,
		Location:    cfg.Location,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
}

func NewCalendarService(cfg config.Config, provider usecase.ScheduleProvider, logger *logging.Logger) *usecase.CalendarService {
	return usecase.NewCalendarService(provider, usecase.CalendarServiceConfig{
		Workers:  cfg.FeedFetchWorkers,
		Location: cfg.Location,
		Logger:   logger,
	})
}

func NewEncoder(cfg config.Config) *ics.Encoder {
	return ics.NewEncoder(ics.Metadata{
		Name:            cfg.CalendarName,
		Timezone:        cfg.TournamentTimezone,
		ProdID:          cfg.CalendarProdID,
		RefreshInterval: cfg.CalendarRefreshInterval,
		PublishedTTL:    cfg.CalendarPublishedTTL,
		UIDDomain:       cfg.CalendarUIDDomain,
		EventDuration:   cfg.EventDuration,
	})
}

func BuildInput(cfg config.Config) usecase.BuildInput {
	policy := schedule.DefaultPolicy()
	policy.Grouped = cfg.GroupByTimeEvent
	policy.HeaderDisplayDate = cfg.HeaderDisplayDate
	policy.CourtSuffix = cfg.CourtSuffix
	return usecase.BuildInput{
		MinTournDay:  cfg.MinTournDay,
		Policy:       policy,
		Placeholders: cfg.PlaceholdersEnabled,
	}
}

// BuildCalendar runs one build and writes the serialized calendar to w.
func BuildCalendar(ctx context.Context, cfg config.Config, provider usecase.ScheduleProvider, logger *logging.Logger, w io.Writer) (usecase.BuildResult, error) {
	svc := NewCalendarService(cfg, provider, logger)
	result, err := svc.Build(ctx, BuildInput(cfg))
	if err != nil {
		return usecase.BuildResult{}, err
	}
	if err := NewEncoder(cfg).Encode(w, result.Matches); err != nil {
		return usecase.BuildResult{}, err
	}
	return result, nil
}

func NewHTTPServer(cfg config.Config, provider usecase.ScheduleProvider, logger *logging.Logger) (*fasthttp.Server, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		NewCalendarService(cfg, provider, logger),
		NewEncoder(cfg),
		httpapi.HandlerConfig{
			Input:    BuildInput(cfg),
			CacheTTL: cfg.CalendarCacheTTL,
			Logger:   logger,
		},
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)
	return httpapi.NewServer(router, httpapi.ServerConfig{
		Name:         cfg.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}), nil
}
