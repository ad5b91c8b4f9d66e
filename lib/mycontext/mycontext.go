package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context this (used by mylog)
type CtxTraceContext struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	return WithTrace(r.Context(), traceFromHeader(r.Header.Get("X-Cloud-Trace-Context")))
}

// WithTrace attaches a Cloud Trace resource name to the context
func WithTrace(c context.Context, trace string) context.Context {
	return context.WithValue(c, CtxTraceContext{}, trace)
}

// TraceFromContext returns the trace attached to the context or "" when there is none
func TraceFromContext(c context.Context) string {
	trace, _ := c.Value(CtxTraceContext{}).(string)
	return trace
}

func traceFromHeader(traceContext string) string {
	traceParts := strings.Split(traceContext, "/")
	if len(traceParts) == 0 || len(traceParts[0]) == 0 {
		return ""
	}

	return fmt.Sprintf("projects/%s/traces/%s", os.Getenv("GOOGLE_CLOUD_PROJECT"), traceParts[0])
}
