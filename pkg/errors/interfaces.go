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

// UserVisibleError defines errors that carry a message suitable for the
// end user, e.g. a sentence the speech container narrates when a downstream
// call fails.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	IsUserVisible() bool

	// UserMessage returns a user-friendly error message.
	UserMessage() string

	// Suggestion returns actionable guidance for resolving the error.
	// Returns empty string if no suggestion is available.
	Suggestion() string
}

// ErrorClassifier defines methods for programmatic error handling.
// IsRetryable is informational only: nothing in this module retries.
type ErrorClassifier interface {
	error

	// ErrorType returns a string identifying the error category.
	ErrorType() string

	// IsRetryable returns true if repeating the operation might succeed.
	IsRetryable() bool
}

var (
	_ DomainError = (*ValidationError)(nil)
	_ DomainError = (*TransportError)(nil)
	_ DomainError = (*StatusError)(nil)
	_ DomainError = (*DecodeError)(nil)
	_ DomainError = (*ConfigError)(nil)

	_ ErrorClassifier = (*ValidationError)(nil)
	_ ErrorClassifier = (*TransportError)(nil)
	_ ErrorClassifier = (*StatusError)(nil)
	_ ErrorClassifier = (*DecodeError)(nil)

	_ UserVisibleError = (*TransportError)(nil)
	_ UserVisibleError = (*StatusError)(nil)
	_ UserVisibleError = (*DecodeError)(nil)
)
