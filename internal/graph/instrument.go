package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/pauljones0/fb-page-extractor/internal/graph"

type pathContextKey struct{}

// instrument attaches request logging and tracing hooks to client. Once resty
// has built the final URL it carries the access token, so the hooks log the
// path captured before that happens.
func instrument(client *resty.Client) {
	tracer := otel.Tracer(tracerName)
	client.OnBeforeRequest(onBeforeRequest(tracer))
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func requestPath(ctx context.Context) string {
	path, _ := ctx.Value(pathContextKey{}).(string)
	return path
}

func onBeforeRequest(tracer trace.Tracer) resty.RequestMiddleware {
	return func(_ *resty.Client, req *resty.Request) error {
		ctx, span := tracer.Start(req.Context(), fmt.Sprintf("graph %s", req.Method))
		span.SetAttributes(attribute.String("graph.path", req.URL))
		ctx = context.WithValue(ctx, pathContextKey{}, req.URL)
		slog.DebugContext(ctx, "Graph API request", "method", req.Method, "path", req.URL)
		req.SetContext(ctx)
		return nil
	}
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
	}
	slog.DebugContext(
		ctx, "Graph API response",
		"method", res.Request.Method,
		"path", requestPath(ctx),
		"status", res.StatusCode(),
		"duration", res.Time(),
	)
	return nil
}

func onError(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// err embeds the final URL and with it the access token.
	msg := redact(requestPath(ctx), err)
	span.RecordError(errors.New(msg))
	span.SetStatus(codes.Error, "request failed")
	slog.DebugContext(ctx, "Graph API request failed", "method", req.Method, "path", requestPath(ctx), "error", msg)
}
