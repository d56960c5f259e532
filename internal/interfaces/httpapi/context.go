package httpapi

import (
	"context"

	"github.com/valyala/fasthttp"
)

const requestContextKey = "request_context"

// requestContext returns the context carried through the middleware chain.
// fasthttp reuses RequestCtx, so spans travel as a user value instead.
func requestContext(rc *fasthttp.RequestCtx) context.Context {
	if ctx, ok := rc.UserValue(requestContextKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

func withRequestContext(rc *fasthttp.RequestCtx, ctx context.Context) {
	rc.SetUserValue(requestContextKey, ctx)
}
