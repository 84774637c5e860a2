package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danudoro/supplyvault/internal/pkg/config"
	"github.com/danudoro/supplyvault/internal/pkg/instrument"
	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// bodyLogLimit caps how much of a request or response body ends up in logs.
const bodyLogLimit = 32 * 1024

// captureWriter wraps the ResponseWriter to record status, size, a bounded
// copy of the body, and any handler error surfaced through SetError.
type captureWriter struct {
	http.ResponseWriter
	status  int
	written int
	body    *bytes.Buffer
	capped  bool
	err     error
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if w.body != nil && !w.capped && len(p) > 0 {
		room := bodyLogLimit - w.body.Len()
		switch {
		case room <= 0:
			w.capped = true
		case len(p) > room:
			w.body.Write(p[:room])
			w.capped = true
		default:
			w.body.Write(p)
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

func (w *captureWriter) SetError(err error) { w.err = err }

func (w *captureWriter) statusOrOK() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *captureWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

//nolint:err113 // it use dynamic error
func (w *captureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

func (w *captureWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := w.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

// matchedRoutePath returns the registered route pattern when available so
// that metrics and traces do not explode in cardinality on path params.
func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

func redactHeaders(headers http.Header, maskKeys map[string]struct{}) http.Header {
	if len(maskKeys) == 0 {
		return headers
	}

	out := headers.Clone()
	for key := range out {
		if _, found := maskKeys[strings.ToLower(key)]; found {
			out.Set(key, "***")
		}
	}
	return out
}

func redactValue(v any, maskKeys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, inner := range val {
			if _, found := maskKeys[strings.ToLower(k)]; found {
				masked[k] = "***"
			} else {
				masked[k] = redactValue(inner, maskKeys)
			}
		}
		return masked
	case []any:
		masked := make([]any, len(val))
		for i, inner := range val {
			masked[i] = redactValue(inner, maskKeys)
		}
		return masked
	default:
		return v
	}
}

// loggableBody renders a body for logging. JSON and form payloads are parsed
// so sensitive fields can be masked; anything else is logged as text when it
// is valid UTF-8.
func loggableBody(contentType string, body []byte, maskKeys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return redactValue(parsed, maskKeys)
	}

	if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil {
			masked := make(map[string]any, len(values))
			for k, v := range values {
				if _, found := maskKeys[strings.ToLower(k)]; found {
					masked[k] = "***"
					continue
				}
				if len(v) == 1 {
					masked[k] = v[0]
				} else {
					masked[k] = v
				}
			}
			return masked
		}
	}

	if !utf8.Valid(body) {
		return "<binary body omitted>"
	}
	if len(body) > bodyLogLimit {
		return string(body[:bodyLogLimit]) + "...(truncated)"
	}
	return string(body)
}

func configuredMaskKeys(cfg config.Config) map[string]struct{} {
	maskKeys := make(map[string]struct{})
	if cfg == nil {
		return maskKeys
	}

	for _, field := range cfg.GetArray("instrument.log_mask_fields") {
		field = strings.TrimSpace(strings.ToLower(field))
		if field != "" {
			maskKeys[field] = struct{}{}
		}
	}
	return maskKeys
}

// peekRequestBody reads up to bodyLogLimit bytes from the request body and
// splices what was read back in front so the handler still sees everything.
func peekRequestBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}

	limited := io.LimitReader(r.Body, bodyLogLimit+1)
	//nolint:errcheck // best effort for logging only
	peeked, _ := io.ReadAll(limited)
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(peeked), r.Body))
	if len(peeked) > bodyLogLimit {
		return peeked[:bodyLogLimit]
	}
	return peeked
}

func logIncoming(ctx context.Context, r *http.Request, route string, body []byte, maskKeys map[string]struct{}) {
	slog.InfoContext(
		ctx,
		"request received",
		"method", r.Method,
		"path", route,
		"uri", r.RequestURI,
		"headers", redactHeaders(r.Header, maskKeys),
		"body", loggableBody(r.Header.Get("Content-Type"), body, maskKeys),
	)
}

func capturedResponseBody(rec *captureWriter, maskKeys map[string]struct{}) any {
	if rec.body == nil {
		return nil
	}

	var respBody any
	var parsed any
	switch {
	case json.Unmarshal(rec.body.Bytes(), &parsed) == nil:
		respBody = redactValue(parsed, maskKeys)
	case utf8.Valid(rec.body.Bytes()):
		respBody = rec.body.String()
	case rec.body.Len() > 0:
		respBody = "<binary body omitted>"
	}

	if rec.capped {
		respBody = map[string]any{"body": respBody, "truncated": true}
	}
	return respBody
}

// middlewareObservability emits a span, request metrics, and a masked
// request/response log line for every handled request.
func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	maskKeys := configuredMaskKeys(cfg)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.duration", metric.WithDescription("HTTP request duration in milliseconds"))
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(
				r.Context(),
				r.Method+" "+route,
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			logIncoming(ctx, r, route, peekRequestBody(r), maskKeys)

			rec := &captureWriter{ResponseWriter: w, body: &bytes.Buffer{}}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusOrOK()
			elapsedMs := float64(time.Since(start).Milliseconds())

			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if rec.err != nil {
				span.RecordError(rec.err)
			}

			switch {
			case status >= 500 && rec.err != nil:
				span.SetStatus(codes.Error, rec.err.Error())
			case status >= 500:
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(attrs...)
			span.SetAttributes(
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
				attribute.Int("http.response_content_length", rec.written),
			)

			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, elapsedMs, metric.WithAttributes(attrs...))
			}

			slog.InfoContext(
				ctx,
				"response sent",
				"method", r.Method,
				"path", route,
				"uri", r.RequestURI,
				"status", status,
				"bytes", rec.written,
				"latency_ms", time.Since(start).Milliseconds(),
				"body", capturedResponseBody(rec, maskKeys),
			)
		})
	}
}
