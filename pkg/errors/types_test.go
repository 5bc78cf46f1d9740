// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *cerrors.ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &cerrors.ValidationError{Field: "action", Message: `must be "pause" or "resume"`},
			wantMsg: `validation failed on action: must be "pause" or "resume"`,
		},
		{
			name:    "without field",
			err:     &cerrors.ValidationError{Message: "invalid format"},
			wantMsg: "validation failed: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestStatusError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *cerrors.StatusError
		want    []string
		notWant []string
	}{
		{
			name: "full error",
			err: &cerrors.StatusError{
				URL:    "http://qlogic:8000/qlogic/route_turn",
				Code:   503,
				Reason: "Service Unavailable",
				Detail: "overloaded",
			},
			want: []string{"HTTP 503", "Service Unavailable", "qlogic/route_turn", "overloaded"},
		},
		{
			name:    "code only",
			err:     &cerrors.StatusError{Code: 404},
			want:    []string{"HTTP 404"},
			notWant: []string{"from", ": "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("StatusError.Error() = %q, want it to contain %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("StatusError.Error() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *cerrors.TransportError
		want string
	}{
		{
			name: "connection refused",
			err:  &cerrors.TransportError{URL: "http://speech", Message: "connection refused"},
			want: "transport error calling http://speech: connection refused",
		},
		{
			name: "timeout",
			err:  &cerrors.TransportError{Message: "deadline exceeded", Timeout: true},
			want: "transport error (timeout): deadline exceeded",
		},
		{
			name: "cancelled",
			err:  &cerrors.TransportError{Message: "context canceled", Cancelled: true},
			want: "transport error (cancelled): context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("TransportError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     cerrors.Kind
	}{
		{"validation", &cerrors.ValidationError{Message: "x"}, cerrors.ErrValidation, cerrors.KindValidation},
		{"transport", &cerrors.TransportError{Message: "x"}, cerrors.ErrTransport, cerrors.KindTransport},
		{"status", &cerrors.StatusError{Code: 500}, cerrors.ErrStatus, cerrors.KindStatus},
		{"decode", &cerrors.DecodeError{Message: "x"}, cerrors.ErrDecode, cerrors.KindDecode},
		{"config", &cerrors.ConfigError{Reason: "x"}, cerrors.ErrConfig, cerrors.KindConfig},
	}

	all := []error{cerrors.ErrValidation, cerrors.ErrTransport, cerrors.ErrStatus, cerrors.ErrDecode, cerrors.ErrConfig}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("calling service: %w", tt.err)
			for _, s := range all {
				if got := errors.Is(wrapped, s); got != (s == tt.sentinel) {
					t.Errorf("errors.Is(%v, %v) = %v", wrapped, s, got)
				}
			}
			if got := cerrors.KindOf(wrapped); got != tt.kind {
				t.Errorf("KindOf() = %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestTransportError_UnwrapsCause(t *testing.T) {
	err := &cerrors.TransportError{Message: "deadline", Timeout: true, Cause: context.DeadlineExceeded}

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected TransportError to unwrap to context.DeadlineExceeded")
	}
	if !errors.Is(err, cerrors.ErrTransport) {
		t.Error("expected TransportError to match ErrTransport")
	}
}

func TestKindOf_NonDomainError(t *testing.T) {
	if got := cerrors.KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if got := cerrors.KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestWithFallback(t *testing.T) {
	statusErr := &cerrors.StatusError{Code: 503}
	err := cerrors.WithFallback(fmt.Errorf("route turn: %w", statusErr), "Let's try that again in a moment.")

	if got := cerrors.FallbackMessage(err); got != "Let's try that again in a moment." {
		t.Errorf("FallbackMessage() = %q", got)
	}
	if statusErr.UserMessage() != "Let's try that again in a moment." {
		t.Errorf("UserMessage() = %q", statusErr.UserMessage())
	}
	if !statusErr.IsUserVisible() {
		t.Error("expected error with fallback to be user visible")
	}

	plain := errors.New("plain")
	if got := cerrors.WithFallback(plain, "ignored"); got != plain {
		t.Error("WithFallback should return non-domain errors unchanged")
	}
	if got := cerrors.FallbackMessage(plain); got != "" {
		t.Errorf("FallbackMessage(plain) = %q, want empty", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  cerrors.ErrorClassifier
		want bool
	}{
		{"validation", &cerrors.ValidationError{}, false},
		{"decode", &cerrors.DecodeError{}, false},
		{"timeout", &cerrors.TransportError{Timeout: true}, true},
		{"cancelled", &cerrors.TransportError{Cancelled: true}, false},
		{"503", &cerrors.StatusError{Code: 503}, true},
		{"429", &cerrors.StatusError{Code: 429}, true},
		{"404", &cerrors.StatusError{Code: 404}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsRetryable(); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if cerrors.Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	base := &cerrors.DecodeError{Message: "bad json"}
	err := cerrors.Wrapf(base, "route turn for session %s", "abc")
	if !strings.HasPrefix(err.Error(), "route turn for session abc: ") {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	var decodeErr *cerrors.DecodeError
	if !cerrors.As(err, &decodeErr) {
		t.Error("expected As to find DecodeError")
	}
}
