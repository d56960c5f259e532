package httpapi

import (
	"context"
	"encoding/hex"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/infrastructure/ics"
	"github.com/riskibarqy/tennis-calendar/internal/platform/cache"
	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

const (
	snapshotKey         = "calendar"
	defaultBuildTimeout = 2 * time.Minute
)

// CalendarBuilder runs one calendar build.
type CalendarBuilder interface {
	Build(ctx context.Context, in usecase.BuildInput) (usecase.BuildResult, error)
}

// CalendarRenderer serializes matches into an iCalendar document.
type CalendarRenderer interface {
	Render(matches []schedule.Match) ([]byte, error)
}

type HandlerConfig struct {
	Input        usecase.BuildInput
	CacheTTL     time.Duration
	BuildTimeout time.Duration
	Logger       *logging.Logger
}

type snapshot struct {
	ics     []byte
	etag    string
	result  usecase.BuildResult
	builtAt time.Time
}

type Handler struct {
	builder      CalendarBuilder
	renderer     CalendarRenderer
	input        usecase.BuildInput
	buildTimeout time.Duration
	snapshots    *cache.Store[snapshot]
	validator    *validator.Validate
	logger       *logging.Logger
	now          func() time.Time
}

func NewHandler(builder CalendarBuilder, renderer CalendarRenderer, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.BuildTimeout
	if timeout <= 0 {
		timeout = defaultBuildTimeout
	}
	return &Handler{
		builder:      builder,
		renderer:     renderer,
		input:        cfg.Input,
		buildTimeout: timeout,
		snapshots:    cache.NewStore[snapshot](cfg.CacheTTL),
		validator:    validator.New(),
		logger:       logger,
		now:          time.Now,
	}
}

func (h *Handler) Healthz(rc *fasthttp.RequestCtx) {
	ctx, span := startSpan(requestContext(rc), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, rc, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

// Calendar serves the subscription feed. Clients revalidate with If-None-Match.
func (h *Handler) Calendar(rc *fasthttp.RequestCtx) {
	ctx, span := startSpan(requestContext(rc), "httpapi.Handler.Calendar")
	defer span.End()

	snap, err := h.snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "calendar build failed", "error", err)
		writeError(ctx, rc, err)
		return
	}

	rc.Response.Header.Set("ETag", snap.etag)
	rc.Response.Header.Set("Last-Modified", snap.builtAt.UTC().Format(time.RFC1123))
	rc.Response.Header.Set("Content-Disposition", `inline; filename="calendar.ics"`)
	if string(rc.Request.Header.Peek("If-None-Match")) == snap.etag {
		rc.SetStatusCode(fasthttp.StatusNotModified)
		return
	}

	rc.SetStatusCode(fasthttp.StatusOK)
	rc.SetContentType(ics.ContentType)
	if rc.IsHead() {
		rc.Response.Header.SetContentLength(len(snap.ics))
		return
	}
	rc.SetBody(snap.ics)
}

type matchesQuery struct {
	Court string `validate:"omitempty,max=120"`
	Limit int    `validate:"gte=0,lte=5000"`
}

type matchesDTO struct {
	GeneratedAt     time.Time        `json:"generatedAt"`
	DayCount        int              `json:"dayCount"`
	SkippedDays     int              `json:"skippedDays"`
	PlaceholderDays int              `json:"placeholderDays"`
	EntryCount      int              `json:"entryCount"`
	Total           int              `json:"total"`
	Matches         []schedule.Match `json:"matches"`
}

// Matches returns the grouped matches as JSON, optionally filtered by a
// case-insensitive court substring and truncated to limit.
func (h *Handler) Matches(rc *fasthttp.RequestCtx) {
	ctx, span := startSpan(requestContext(rc), "httpapi.Handler.Matches")
	defer span.End()

	query, err := h.parseMatchesQuery(ctx, rc)
	if err != nil {
		writeError(ctx, rc, err)
		return
	}

	snap, err := h.snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "calendar build failed", "error", err)
		writeError(ctx, rc, err)
		return
	}

	matches := filterMatches(snap.result.Matches, query)
	writeSuccess(ctx, rc, fasthttp.StatusOK, matchesDTO{
		GeneratedAt:     snap.builtAt.UTC(),
		DayCount:        snap.result.DayCount,
		SkippedDays:     snap.result.SkippedDays,
		PlaceholderDays: snap.result.PlaceholderDays,
		EntryCount:      snap.result.EntryCount,
		Total:           len(snap.result.Matches),
		Matches:         matches,
	})
}

func (h *Handler) parseMatchesQuery(ctx context.Context, rc *fasthttp.RequestCtx) (matchesQuery, error) {
	args := rc.QueryArgs()
	query := matchesQuery{Court: strings.TrimSpace(string(args.Peek("court")))}
	if raw := strings.TrimSpace(string(args.Peek("limit"))); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return matchesQuery{}, crerr.Wrapf(usecase.ErrInvalidInput, "limit %q is not a number", raw)
		}
		query.Limit = limit
	}
	if err := h.validator.StructCtx(ctx, query); err != nil {
		return matchesQuery{}, crerr.Wrapf(usecase.ErrInvalidInput, "query: %v", err)
	}
	return query, nil
}

func filterMatches(matches []schedule.Match, q matchesQuery) []schedule.Match {
	out := make([]schedule.Match, 0, len(matches))
	court := strings.ToLower(q.Court)
	for _, m := range matches {
		if court != "" && !strings.Contains(strings.ToLower(m.Court), court) {
			continue
		}
		out = append(out, m)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

// snapshot returns the cached build, rebuilding at most once for concurrent
// requests after the TTL lapses.
func (h *Handler) snapshot(ctx context.Context) (snapshot, error) {
	return h.snapshots.GetOrLoad(ctx, snapshotKey, func(ctx context.Context) (snapshot, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.buildTimeout)
		defer cancel()

		result, err := h.builder.Build(buildCtx, h.input)
		if err != nil {
			return snapshot{}, err
		}
		body, err := h.renderer.Render(result.Matches)
		if err != nil {
			return snapshot{}, crerr.Wrap(err, "render calendar")
		}

		sum := fnv.New64a()
		_, _ = sum.Write(body)
		h.logger.InfoContext(ctx, "calendar snapshot refreshed", "matches", len(result.Matches), "bytes", len(body))
		return snapshot{
			ics:     body,
			etag:    `"` + hex.EncodeToString(sum.Sum(nil)) + `"`,
			result:  result,
			builtAt: h.now(),
		}, nil
	})
}
