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

package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which branch of the error taxonomy an error belongs to.
type Kind string

const (
	// KindValidation marks caller-supplied arguments that violate a precondition.
	KindValidation Kind = "validation"

	// KindTransport marks network-level failures: timeouts, refused connections,
	// DNS or TLS failures, and cancellation.
	KindTransport Kind = "transport"

	// KindStatus marks responses whose HTTP status is 400 or above.
	KindStatus Kind = "status"

	// KindDecode marks response bodies that could not be parsed or failed schema validation.
	KindDecode Kind = "decode"

	// KindConfig marks settings that could not be loaded or validated.
	KindConfig Kind = "config"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrTransport  = errors.New("transport error")
	ErrStatus     = errors.New("status error")
	ErrDecode     = errors.New("decode error")
	ErrConfig     = errors.New("config error")
)

// DomainError is implemented by every error in the client taxonomy.
type DomainError interface {
	error

	// Kind returns the taxonomy branch of the error.
	Kind() Kind

	// FallbackMessage returns the optional human-readable message intended
	// for user-facing narration. Empty when none was attached.
	FallbackMessage() string
}

// ValidationError represents user input validation failures.
// Raised before any network attempt and never retried.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string

	// Fallback is spoken to the end user when this error surfaces
	Fallback string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Kind implements DomainError.
func (e *ValidationError) Kind() Kind { return KindValidation }

// FallbackMessage implements DomainError.
func (e *ValidationError) FallbackMessage() string { return e.Fallback }

// TransportError represents a network-level failure while dispatching a request.
type TransportError struct {
	// URL is the target of the failed request
	URL string

	// Message describes the failure; derived from the underlying error
	Message string

	// Timeout is true when the request deadline elapsed
	Timeout bool

	// Cancelled is true when the caller cancelled the request context
	Cancelled bool

	// Cause is the underlying error
	Cause error

	// Fallback is spoken to the end user when this error surfaces
	Fallback string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := "transport error"
	switch {
	case e.Cancelled:
		msg = "transport error (cancelled)"
	case e.Timeout:
		msg = "transport error (timeout)"
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s calling %s", msg, e.URL)
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error { return e.Cause }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Kind implements DomainError.
func (e *TransportError) Kind() Kind { return KindTransport }

// FallbackMessage implements DomainError.
func (e *TransportError) FallbackMessage() string { return e.Fallback }

// StatusError represents a remote service answering with an HTTP status >= 400.
type StatusError struct {
	// URL is the target of the failed request
	URL string

	// Code is the HTTP status code returned by the service
	Code int

	// Reason is the status text for Code (e.g. "Service Unavailable")
	Reason string

	// Detail is the response body truncated for diagnostics
	Detail string

	// Fallback is spoken to the end user when this error surfaces
	Fallback string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("status error [HTTP %d", e.Code)
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	msg += "]"
	if e.URL != "" {
		msg += " from " + e.URL
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is matches ErrStatus.
func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// Kind implements DomainError.
func (e *StatusError) Kind() Kind { return KindStatus }

// FallbackMessage implements DomainError.
func (e *StatusError) FallbackMessage() string { return e.Fallback }

// DecodeError represents a response body that could not be decoded into
// the requested shape.
type DecodeError struct {
	// URL is the target of the request whose response failed to decode
	URL string

	// StatusCode is the HTTP status of the response
	StatusCode int

	// Message describes the decoding failure
	Message string

	// Cause is the underlying error
	Cause error

	// Fallback is spoken to the end user when this error surfaces
	Fallback string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	if e.URL != "" {
		msg += " from " + e.URL
	}
	return fmt.Sprintf("%s: %s", msg, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *DecodeError) Unwrap() error { return e.Cause }

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Kind implements DomainError.
func (e *DecodeError) Kind() Kind { return KindDecode }

// FallbackMessage implements DomainError.
func (e *DecodeError) FallbackMessage() string { return e.Fallback }

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "QLOGIC_ROUTE_URL")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is matches ErrConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// Kind implements DomainError.
func (e *ConfigError) Kind() Kind { return KindConfig }

// FallbackMessage implements DomainError.
func (e *ConfigError) FallbackMessage() string { return "" }
