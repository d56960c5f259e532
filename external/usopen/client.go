package usopen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/tennis-calendar/internal/domain/schedule"
	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
	"github.com/riskibarqy/tennis-calendar/internal/platform/resilience"
	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

const (
	DefaultDaysURL     = "https://www.usopen.org/en_US/scores/feeds/2025/schedule/scheduleDays.json"
	DefaultScheduleURL = "https://www.usopen.org/en_US/cms/feeds/tournament_schedule.json"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 3
	maxBodyBytes      = 6 << 20
)

var errFeedTransient = crerr.New("usopen feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	DaysURL        string
	ScheduleURL    string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Location       *time.Location
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the published schedule feeds and hands back normalized data.
type Client struct {
	httpClient   *http.Client
	daysURL      string
	scheduleURL  string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	loc          *time.Location
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("usopen circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:   httpClient,
		daysURL:      firstNonEmpty(cfg.DaysURL, DefaultDaysURL),
		scheduleURL:  firstNonEmpty(cfg.ScheduleURL, DefaultScheduleURL),
		userAgent:    firstNonEmpty(cfg.UserAgent, DefaultUserAgent),
		maxRetries:   maxRetries,
		retryBackoff: backoff,
		loc:          loc,
		logger:       logger,
		breaker:      breaker,
	}
}

// FetchDays loads the day index and resolves whichever layout it uses.
func (c *Client) FetchDays(ctx context.Context) ([]usecase.ExternalDay, error) {
	var raw any
	if err := c.doJSON(ctx, c.daysURL, &raw); err != nil {
		return nil, crerr.Wrapf(err, "fetch day index url=%s", c.daysURL)
	}

	days, shape := ResolveDayFeeds(raw)
	c.logger.DebugContext(ctx, "resolved day index", "shape", shape.String(), "days", len(days))
	return days, nil
}

// FetchDayEntries loads one per-court day feed and normalizes it.
func (c *Client) FetchDayEntries(ctx context.Context, day usecase.ExternalDay) ([]schedule.Entry, error) {
	if strings.TrimSpace(day.FeedURL) == "" {
		return nil, crerr.Wrap(usecase.ErrInvalidInput, "day has no feed url")
	}

	var payload DayFeed
	if err := c.doJSON(ctx, day.FeedURL, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch day feed url=%s", day.FeedURL)
	}
	return NormalizeDay(payload, day.TournDay, c.loc), nil
}

// FetchSessionSlots loads the tournament session schedule.
func (c *Client) FetchSessionSlots(ctx context.Context) ([]schedule.SessionSlot, error) {
	var payload TournamentSchedulePayload
	if err := c.doJSON(ctx, c.scheduleURL, &payload); err != nil {
		return nil, crerr.Wrapf(err, "fetch tournament schedule url=%s", c.scheduleURL)
	}
	return FlattenSessions(payload), nil
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		return raw, err
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "usopen circuit breaker rejected request", "state", c.breaker.State())
		return crerr.Wrap(usecase.ErrDependencyUnavailable, "schedule feed is temporarily unavailable")
	}
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if !sonic.Valid(raw) {
		return crerr.New("decode feed payload: invalid json")
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode feed payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errFeedTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errFeedTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errFeedTransient)
			default:
				return nil, crerr.Newf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("feed request failed")
	}
	c.logger.WarnContext(ctx, "usopen request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isTransient(err error) bool {
	return crerr.Is(err, errFeedTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
