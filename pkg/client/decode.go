package client

import (
	"encoding/json"
	"fmt"
	"net/http"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/textutil"
)

// MaxDetailRunes bounds the response body excerpt carried by a StatusError.
const MaxDetailRunes = 200

// Validator is implemented by response types that check their own
// invariants after JSON decoding.
type Validator interface {
	Validate() error
}

// Result is an untyped decoded body: parsed JSON when the body was JSON,
// the raw text otherwise.
type Result struct {
	JSON   any
	Text   string
	isJSON bool
}

// JSONResult wraps an already parsed JSON value.
func JSONResult(v any) Result {
	return Result{JSON: v, isJSON: true}
}

// TextResult wraps a raw, non-JSON body.
func TextResult(s string) Result {
	return Result{Text: s}
}

// IsJSON reports whether the body parsed as JSON.
func (r Result) IsJSON() bool { return r.isJSON }

// Map returns the JSON value as an object, if it is one.
func (r Result) Map() (map[string]any, bool) {
	if !r.isJSON {
		return nil, false
	}
	m, ok := r.JSON.(map[string]any)
	return m, ok
}

// Value returns the parsed JSON, or the raw text for a non-JSON body.
func (r Result) Value() any {
	if r.isJSON {
		return r.JSON
	}
	return r.Text
}

// CheckStatus returns a *errors.StatusError when resp has status >= 400.
// The error detail is the first MaxDetailRunes characters of the body.
func CheckStatus(resp *Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	return &cerrors.StatusError{
		URL:    resp.URL,
		Code:   resp.StatusCode,
		Reason: http.StatusText(resp.StatusCode),
		Detail: textutil.Truncate(string(resp.Body), MaxDetailRunes),
	}
}

// Decode checks the status and then decodes the body leniently: JSON is
// parsed, anything else (including an empty body) comes back as text.
func Decode(resp *Response) (Result, error) {
	if err := CheckStatus(resp); err != nil {
		return Result{}, err
	}
	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return TextResult(string(resp.Body)), nil
	}
	return JSONResult(v), nil
}

// DecodeAs checks the status and then decodes the body strictly into T.
// A body that is not JSON, does not fit T, or fails T's Validate method
// yields a *errors.DecodeError. A panic raised while decoding is recovered
// and reported the same way.
func DecodeAs[T any](resp *Response) (out T, err error) {
	if err := CheckStatus(resp); err != nil {
		return out, err
	}

	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = &cerrors.DecodeError{
				URL:        resp.URL,
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("unexpected failure decoding %T: %v", zero, r),
			}
		}
	}()

	if err := json.Unmarshal(resp.Body, &out); err != nil {
		var zero T
		return zero, &cerrors.DecodeError{
			URL:        resp.URL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response is not valid JSON for %T", zero),
			Cause:      err,
		}
	}

	if err := validate(&out); err != nil {
		var zero T
		return zero, &cerrors.DecodeError{
			URL:        resp.URL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response failed validation for %T: %v", zero, err),
			Cause:      err,
		}
	}
	return out, nil
}

func validate[T any](v *T) error {
	if val, ok := any(v).(Validator); ok {
		return val.Validate()
	}
	if val, ok := any(*v).(Validator); ok {
		return val.Validate()
	}
	return nil
}
