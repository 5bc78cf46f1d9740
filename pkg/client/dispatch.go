package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/httpclient"
)

const tracerName = "github.com/reaich/cabreaich-common/pkg/client"

// Request describes one call relative to the client's base URL.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string

	// Path is joined to the base URL. Callers escape dynamic segments.
	Path string

	// Body is JSON-encoded when non-nil. A json.RawMessage or []byte is
	// sent as is.
	Body any

	// Header holds extra request headers.
	Header http.Header

	// Timeout overrides the client's default timeout when > 0.
	Timeout time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// Dispatch sends req and reads the whole response body. A response with any
// status code is returned without error; every network failure, including
// context cancellation, deadline expiry and a closed pool, is returned as
// a *errors.TransportError. Body encoding failures are *errors.ValidationError
// and happen before any I/O.
func (b *Base) Dispatch(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := b.resolve(req.Path)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "client.dispatch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cabreaich.service", b.name),
			attribute.String("http.request.method", method),
			attribute.String("url.full", target),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := b.dispatch(ctx, method, target, req)
	requestDuration.WithLabelValues(b.name, method).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		recordOutcome(b.name, method, err)
		b.logFailure(ctx, method, target, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (b *Base) dispatch(ctx context.Context, method, target string, req Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	timeout := b.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &cerrors.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("cannot build request for %s: %v", target, err),
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	httpResp, err := b.pool.Do(httpReq)
	if err != nil {
		return nil, translateTransportError(ctx, target, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, translateTransportError(ctx, target, err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
		URL:        target,
	}, nil
}

func (b *Base) resolve(path string) string {
	if path == "" {
		return b.baseURL.String()
	}
	u := b.baseURL.JoinPath(path)
	return u.String()
}

func encodeBody(v any) (io.Reader, error) {
	switch body := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(body), nil
	case []byte:
		return bytes.NewReader(body), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &cerrors.ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("request body cannot be encoded as JSON: %v", err),
		}
	}
	return bytes.NewReader(data), nil
}

// translateTransportError maps a failure from the pool or the body read
// to a TransportError.
func translateTransportError(ctx context.Context, target string, err error) *cerrors.TransportError {
	te := &cerrors.TransportError{
		URL:     target,
		Message: err.Error(),
		Cause:   err,
	}

	switch {
	case errors.Is(err, httpclient.ErrPoolClosed):
		te.Message = "connection pool is closed"
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		te.Cancelled = true
		te.Message = "request cancelled"
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		te.Timeout = true
		te.Message = "request timed out"
	case isTimeout(err):
		te.Timeout = true
	}
	return te
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}
