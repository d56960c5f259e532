package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/platform/cache"
	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
)

const sessionSlotsKey = "tournament_schedule"

// ExternalDay is one entry of the day index. Days without a FeedURL are
// candidates for placeholder synthesis.
type ExternalDay struct {
	TournDay *int
	FeedURL  string
}

// ScheduleProvider is the fetch collaborator behind a calendar build.
type ScheduleProvider interface {
	FetchDays(ctx context.Context) ([]ExternalDay, error)
	FetchDayEntries(ctx context.Context, day ExternalDay) ([]schedule.Entry, error)
	FetchSessionSlots(ctx context.Context) ([]schedule.SessionSlot, error)
}

type BuildInput struct {
	MinTournDay  int
	Policy       schedule.Policy
	Placeholders bool
}

type BuildResult struct {
	Matches         []schedule.Match `json:"matches"`
	DayCount        int              `json:"day_count"`
	SkippedDays     int              `json:"skipped_days"`
	PlaceholderDays int              `json:"placeholder_days"`
	EntryCount      int              `json:"entry_count"`
}

type CalendarServiceConfig struct {
	Workers  int
	Location *time.Location
	Logger   *logging.Logger
}

type CalendarService struct {
	provider ScheduleProvider
	workers  int
	loc      *time.Location
	logger   *logging.Logger
}

func NewCalendarService(provider ScheduleProvider, cfg CalendarServiceConfig) *CalendarService {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{
		provider: provider,
		workers:  workers,
		loc:      loc,
		logger:   logger,
	}
}

type dayTask struct {
	index int
	day   ExternalDay
}

type dayOutcome struct {
	entries     []schedule.Entry
	placeholder bool
}

// Build fetches every included day, fills feedless days with placeholders,
// then groups and sorts the result. A required day feed failure aborts the
// build; a session schedule failure only drops placeholders.
func (s *CalendarService) Build(ctx context.Context, in BuildInput) (result BuildResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.Build",
		attribute.Int("min_tourn_day", in.MinTournDay),
		attribute.Bool("grouped", in.Policy.Grouped),
		attribute.Int("workers", s.workers),
	)
	defer func() { endUsecaseSpan(span, err) }()

	if in.MinTournDay < 0 {
		return BuildResult{}, crerr.Wrapf(ErrInvalidInput, "min tournament day must be >= 0, got %d", in.MinTournDay)
	}

	days, err := s.provider.FetchDays(ctx)
	if err != nil {
		return BuildResult{}, crerr.Mark(crerr.Wrap(err, "fetch day index"), ErrFeedUnavailable)
	}

	tasks := make([]dayTask, 0, len(days))
	for _, day := range days {
		if day.TournDay != nil && *day.TournDay < in.MinTournDay {
			result.SkippedDays++
			continue
		}
		if day.FeedURL == "" && (!in.Placeholders || day.TournDay == nil) {
			result.SkippedDays++
			continue
		}
		tasks = append(tasks, dayTask{index: len(tasks), day: day})
	}
	result.DayCount = len(tasks)

	outcomes, err := s.runDays(ctx, tasks)
	if err != nil {
		return BuildResult{}, err
	}

	entries := make([]schedule.Entry, 0, len(outcomes)*16)
	for _, outcome := range outcomes {
		if outcome.placeholder && len(outcome.entries) > 0 {
			result.PlaceholderDays++
		}
		entries = append(entries, outcome.entries...)
	}
	result.EntryCount = len(entries)
	result.Matches = schedule.Sort(schedule.Group(entries, in.Policy))

	s.logger.InfoContext(ctx, "calendar built",
		"days", result.DayCount,
		"skipped_days", result.SkippedDays,
		"placeholder_days", result.PlaceholderDays,
		"entries", result.EntryCount,
		"matches", len(result.Matches),
	)
	return result, nil
}

// runDays fans tasks out over the worker pool and returns outcomes in task order.
func (s *CalendarService) runDays(ctx context.Context, tasks []dayTask) ([]dayOutcome, error) {
	outcomes := make([]dayOutcome, len(tasks))
	if len(tasks) == 0 {
		return outcomes, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Scoped to this build so the session schedule is fetched at most once per run.
	sessions := cache.NewStore[[]schedule.SessionSlot](0)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}
			outcome, err := s.runDay(ctx, sessions, task.day)
			if err != nil {
				fail(err)
				return
			}
			outcomes[task.index] = outcome
		}); err != nil {
			workers.Done()
			fail(crerr.Wrap(err, "submit day task"))
			break
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *CalendarService) runDay(ctx context.Context, sessions *cache.Store[[]schedule.SessionSlot], day ExternalDay) (dayOutcome, error) {
	if day.FeedURL != "" {
		entries, err := s.provider.FetchDayEntries(ctx, day)
		if err != nil {
			return dayOutcome{}, crerr.Mark(crerr.Wrapf(err, "fetch day feed tourn_day=%s", formatDay(day.TournDay)), ErrFeedUnavailable)
		}
		return dayOutcome{entries: entries}, nil
	}

	slots, _ := sessions.GetOrLoad(ctx, sessionSlotsKey, func(ctx context.Context) ([]schedule.SessionSlot, error) {
		slots, err := s.provider.FetchSessionSlots(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "session schedule unavailable, skipping placeholders", "error", err)
			return []schedule.SessionSlot{}, nil
		}
		return slots, nil
	})
	return dayOutcome{
		entries:     schedule.Placeholders(slots, *day.TournDay, s.loc),
		placeholder: true,
	}, nil
}

func formatDay(day *int) string {
	if day == nil {
		return "unknown"
	}
	return strconv.Itoa(*day)
}
