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

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
//
// Usage:
//
//	if errors.Is(err, errors.ErrStatus) {
//	    // the service answered with a 4xx/5xx
//	}
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target type.
//
// Usage:
//
//	var statusErr *errors.StatusError
//	if errors.As(err, &statusErr) {
//	    log.Printf("service answered %d", statusErr.Code)
//	}
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// KindOf returns the taxonomy kind of the first DomainError in err's tree,
// or the empty Kind when err is not part of the taxonomy.
func KindOf(err error) Kind {
	var de DomainError
	if errors.As(err, &de) {
		return de.Kind()
	}
	return ""
}

// FallbackMessage returns the fallback narration attached to the first
// DomainError in err's tree, or the empty string.
func FallbackMessage(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.FallbackMessage()
	}
	return ""
}

// WithFallback attaches a user-facing fallback message to the first
// DomainError in err's tree and returns err unchanged otherwise.
func WithFallback(err error, message string) error {
	var (
		validationErr *ValidationError
		transportErr  *TransportError
		statusErr     *StatusError
		decodeErr     *DecodeError
	)
	switch {
	case errors.As(err, &validationErr):
		validationErr.Fallback = message
	case errors.As(err, &transportErr):
		transportErr.Fallback = message
	case errors.As(err, &statusErr):
		statusErr.Fallback = message
	case errors.As(err, &decodeErr):
		decodeErr.Fallback = message
	}
	return err
}
