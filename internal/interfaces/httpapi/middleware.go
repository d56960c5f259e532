package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/tennis-calendar/internal/platform/logging"
)

// headerCarrier adapts fasthttp request headers for trace propagation.
type headerCarrier struct {
	h *fasthttp.RequestHeader
}

func (c headerCarrier) Get(key string) string {
	return string(c.h.Peek(key))
}

func (c headerCarrier) Set(key, value string) {
	c.h.Set(key, value)
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, c.h.Len())
	c.h.VisitAll(func(key, _ []byte) {
		keys = append(keys, string(key))
	})
	return keys
}

func RequestTracing(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(rc *fasthttp.RequestCtx) {
		path := string(rc.Path())
		if !shouldTraceRequest(path) {
			next(rc)
			return
		}

		method := string(rc.Method())
		parent := otel.GetTextMapPropagator().Extract(context.Background(), headerCarrier{h: &rc.Request.Header})
		ctx, span := apiTracer.Start(parent, method+" "+path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", method),
				attribute.String("url.path", path),
			),
		)
		defer span.End()

		withRequestContext(rc, ctx)
		next(rc)

		status := rc.Response.StatusCode()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= fasthttp.StatusInternalServerError {
			span.SetStatus(codes.Error, fasthttp.StatusMessage(status))
		}
	}
}

func shouldTraceRequest(path string) bool {
	normalized := strings.ToLower(strings.TrimSpace(path))
	switch normalized {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

func RequestLogging(logger *logging.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(rc *fasthttp.RequestCtx) {
		started := time.Now()
		next(rc)

		logger.InfoContext(requestContext(rc), "http_request",
			"http_method", string(rc.Method()),
			"http_path", string(rc.Path()),
			"http_status", rc.Response.StatusCode(),
			"remote_addr", rc.RemoteAddr().String(),
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}

// CORS lets browser pages read /matches.json. "*" allows any origin.
func CORS(allowedOrigins []string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return func(rc *fasthttp.RequestCtx) {
		origin := strings.TrimSpace(string(rc.Request.Header.Peek("Origin")))
		if origin == "" {
			next(rc)
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				rc.Response.Header.Set("Access-Control-Allow-Origin", "*")
			} else {
				rc.Response.Header.Set("Access-Control-Allow-Origin", origin)
				rc.Response.Header.Add("Vary", "Origin")
			}
			rc.Response.Header.Set("Access-Control-Allow-Methods", "GET,HEAD,OPTIONS")
			rc.Response.Header.Set("Access-Control-Allow-Headers", "Accept,If-None-Match")
			rc.Response.Header.Set("Access-Control-Max-Age", "600")
		}

		if rc.IsOptions() {
			rc.SetStatusCode(fasthttp.StatusNoContent)
			return
		}
		next(rc)
	}
}

func recoverPanic(logger *logging.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(rc *fasthttp.RequestCtx) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := requestContext(rc)
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_path", string(rc.Path()))
				writeInternalError(ctx, rc)
			}
		}()
		next(rc)
	}
}
