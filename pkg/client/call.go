package client

import (
	"context"
	"log/slog"
	"net/http"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// Call dispatches req and decodes the response leniently. A failure is
// logged once at error level and returned unchanged.
func (b *Base) Call(ctx context.Context, req Request) (Result, error) {
	resp, err := b.Dispatch(ctx, req)
	if err != nil {
		return Result{}, err
	}
	res, err := Decode(resp)
	b.finish(ctx, req, resp, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// CallAs dispatches req on b and decodes the response strictly into T.
// A failure is logged once at error level and returned unchanged.
func CallAs[T any](ctx context.Context, b *Base, req Request) (T, error) {
	var zero T
	resp, err := b.Dispatch(ctx, req)
	if err != nil {
		return zero, err
	}
	out, err := DecodeAs[T](resp)
	b.finish(ctx, req, resp, err)
	if err != nil {
		return zero, err
	}
	return out, nil
}

func (b *Base) finish(ctx context.Context, req Request, resp *Response, err error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	recordOutcome(b.name, method, err)
	if err != nil {
		b.logFailure(ctx, method, resp.URL, err)
	}
}

// logFailure is the single place a request failure is logged.
func (b *Base) logFailure(ctx context.Context, method, target string, err error) {
	attrs := []any{
		slog.String("method", method),
		slog.String("url", target),
		slog.String("kind", string(cerrors.KindOf(err))),
		slog.String("error", err.Error()),
	}

	var statusErr *cerrors.StatusError
	var decodeErr *cerrors.DecodeError
	var transportErr *cerrors.TransportError
	switch {
	case cerrors.As(err, &statusErr):
		attrs = append(attrs,
			slog.Int("status_code", statusErr.Code),
			slog.String("detail", statusErr.Detail),
		)
	case cerrors.As(err, &decodeErr):
		attrs = append(attrs, slog.Int("status_code", decodeErr.StatusCode))
	case cerrors.As(err, &transportErr):
		attrs = append(attrs,
			slog.Bool("timeout", transportErr.Timeout),
			slog.Bool("cancelled", transportErr.Cancelled),
		)
	}

	b.logger.ErrorContext(ctx, "request failed", attrs...)
}

// Reject logs a failure found before dispatch, such as invalid caller input,
// and returns it unchanged. No request is sent.
func (b *Base) Reject(ctx context.Context, method, path string, err error) error {
	recordOutcome(b.name, method, err)
	b.logFailure(ctx, method, b.resolve(path), err)
	return err
}
