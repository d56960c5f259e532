package httpapi

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
	"github.com/riskibarqy/tennis-calendar/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) fasthttp.RequestHandler {
	if logger == nil {
		logger = logging.Default()
	}

	routes := map[string]fasthttp.RequestHandler{
		"/healthz":      handler.Healthz,
		"/calendar.ics": handler.Calendar,
		"/matches.json": handler.Matches,
	}
	mux := func(rc *fasthttp.RequestCtx) {
		route, ok := routes[string(rc.Path())]
		if !ok {
			writeError(requestContext(rc), rc, crerr.Wrapf(usecase.ErrNotFound, "route %s", rc.Path()))
			return
		}
		if !rc.IsGet() && !rc.IsHead() {
			rc.Response.Header.Set("Allow", "GET, HEAD")
			rc.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}
		route(rc)
	}

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

type ServerConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewServer(router fasthttp.RequestHandler, cfg ServerConfig) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:               router,
		Name:                  cfg.Name,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		NoDefaultServerHeader: cfg.Name == "",
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, srv *fasthttp.Server, addr string, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return crerr.Wrapf(err, "listen on %s", addr)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return crerr.Wrap(err, "graceful shutdown")
	}
	logger.Info("http server stopped")
	return nil
}
