package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/reaich/cabreaich-common/pkg/telemetry"
)

// loggingTransport wraps an http.RoundTripper to add:
// - Request logging with sanitized URLs
// - User-Agent header injection
// - Duration tracking
type loggingTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    *slog.Logger
}

// newLoggingTransport creates a new logging transport that wraps the base transport.
func newLoggingTransport(base http.RoundTripper, userAgent string, logger *slog.Logger) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{
		base:      base,
		userAgent: userAgent,
		logger:    logger,
	}
}

// RoundTrip implements http.RoundTripper.
// Failures are logged at debug level only; the client pipeline logs them
// once at error level with service context.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	logger := t.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		"method", req.Method,
		"url", sanitizeURL(req.URL),
		"duration_ms", duration,
	}
	if id := telemetry.FromContextOrEmpty(req.Context()); id != "" {
		attrs = append(attrs, "correlation_id", id.String())
	}

	if err != nil {
		attrs = append(attrs, "error", err.Error())
		logger.DebugContext(req.Context(), "http request failed", attrs...)
	} else {
		attrs = append(attrs, "status", resp.StatusCode)
		logger.DebugContext(req.Context(), "http request", attrs...)
	}

	return resp, err
}
