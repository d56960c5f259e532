package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	_ "time/tzdata"

	crerr "github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/tennis-calendar/internal/app"
	"github.com/riskibarqy/tennis-calendar/internal/config"
	"github.com/riskibarqy/tennis-calendar/internal/interfaces/httpapi"
	"github.com/riskibarqy/tennis-calendar/internal/observability"
	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
)

func main() {
	cliApp := &cli.App{
		Name:  "calendar",
		Usage: "turn the US Open schedule feeds into an iCalendar subscription",
		Commands: []*cli.Command{
			newBuildCommand(),
			newServeCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "calendar:", err)
		os.Exit(1)
	}
}

func overrideFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "profile", Usage: "YAML tournament profile"},
		&cli.StringFlag{Name: "days-url", Usage: "day index feed URL"},
		&cli.StringFlag{Name: "schedule-url", Usage: "tournament session schedule URL"},
		&cli.IntFlag{Name: "min-day", Usage: "skip tournament days below this number"},
		&cli.DurationFlag{Name: "duration", Usage: "event length"},
		&cli.IntFlag{Name: "workers", Usage: "concurrent day feed fetches"},
		&cli.BoolFlag{Name: "ungrouped", Usage: "one event per match instead of per time slot"},
		&cli.BoolFlag{Name: "no-placeholders", Usage: "skip days without a published feed"},
	}
}

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "fetch the feeds once and write the .ics file",
		Flags: append(overrideFlags(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: `output path, "-" for stdout`},
		),
		Action: runBuild,
	}
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve /calendar.ics and /matches.json until interrupted",
		Flags: append(overrideFlags(),
			&cli.StringFlag{Name: "addr", Usage: "listen address"},
		),
		Action: runServe,
	}
}

// loadConfig reads the environment, then applies --profile and flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if path := c.String("profile"); path != "" {
		profile, err := config.LoadProfile(path)
		if err != nil {
			return config.Config{}, err
		}
		if err := cfg.ApplyProfile(profile); err != nil {
			return config.Config{}, err
		}
	}

	if c.IsSet("days-url") {
		cfg.FeedDaysURL = c.String("days-url")
	}
	if c.IsSet("schedule-url") {
		cfg.FeedScheduleURL = c.String("schedule-url")
	}
	if c.IsSet("min-day") {
		cfg.MinTournDay = c.Int("min-day")
	}
	if c.IsSet("duration") {
		cfg.EventDuration = c.Duration("duration")
	}
	if c.IsSet("workers") {
		cfg.FeedFetchWorkers = c.Int("workers")
	}
	if c.Bool("ungrouped") {
		cfg.GroupByTimeEvent = false
	}
	if c.Bool("no-placeholders") {
		cfg.PlaceholdersEnabled = false
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("addr") {
		cfg.HTTPAddr = c.String("addr")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func setup(c *cli.Context) (config.Config, *logging.Logger, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger := app.NewLogger(cfg)
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return config.Config{}, nil, nil, crerr.Wrap(err, "init uptrace")
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
		_ = logger.Sync()
	}
	return cfg, logger, cleanup, nil
}

func runBuild(c *cli.Context) error {
	cfg, logger, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider := app.NewScheduleClient(cfg, logger)
	write := func(w io.Writer) (int, error) {
		result, err := app.BuildCalendar(ctx, cfg, provider, logger, w)
		return len(result.Matches), err
	}

	var count int
	if cfg.OutputPath == "-" {
		count, err = write(os.Stdout)
	} else {
		count, err = writeFileAtomic(cfg.OutputPath, write)
	}
	if err != nil {
		logger.Error("calendar build failed", "error", err)
		return err
	}

	logger.Info("calendar written", "events", count, "output", cfg.OutputPath)
	return nil
}

// writeFileAtomic renders into a temp file next to path and renames it, so a
// failed build never leaves a truncated calendar behind.
func writeFileAtomic(path string, write func(io.Writer) (int, error)) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, crerr.Wrap(err, "create temp output")
	}
	defer os.Remove(tmp.Name())

	count, err := write(tmp)
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, crerr.Wrap(err, "close temp output")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, crerr.Wrap(err, "chmod output")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, crerr.Wrapf(err, "rename output to %s", path)
	}
	return count, nil
}

func runServe(c *cli.Context) error {
	cfg, logger, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "init pyroscope")
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	srv, err := app.NewHTTPServer(cfg, app.NewScheduleClient(cfg, logger), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return httpapi.ListenAndServe(ctx, srv, cfg.HTTPAddr, logger)
}
