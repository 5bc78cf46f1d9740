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

import "net/http"

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return string(KindValidation) }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// ErrorType implements ErrorClassifier.
func (e *TransportError) ErrorType() string { return string(KindTransport) }

// IsRetryable reports true for timeouts and connection failures, false when
// the caller cancelled the request.
func (e *TransportError) IsRetryable() bool { return !e.Cancelled }

// IsUserVisible implements UserVisibleError.
func (e *TransportError) IsUserVisible() bool { return e.Fallback != "" }

// UserMessage implements UserVisibleError.
func (e *TransportError) UserMessage() string { return userMessage(e.Fallback, e.Error()) }

// Suggestion implements UserVisibleError.
func (e *TransportError) Suggestion() string {
	if e.Timeout {
		return "The service did not answer in time; check that it is running and reachable"
	}
	return "Check that the service URL is correct and the service is reachable"
}

// ErrorType implements ErrorClassifier.
func (e *StatusError) ErrorType() string { return string(KindStatus) }

// IsRetryable reports true for 408, 429 and 5xx responses.
func (e *StatusError) IsRetryable() bool {
	return e.Code == http.StatusRequestTimeout || e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// IsUserVisible implements UserVisibleError.
func (e *StatusError) IsUserVisible() bool { return e.Fallback != "" }

// UserMessage implements UserVisibleError.
func (e *StatusError) UserMessage() string { return userMessage(e.Fallback, e.Error()) }

// Suggestion implements UserVisibleError.
func (e *StatusError) Suggestion() string {
	switch {
	case e.Code == http.StatusNotFound:
		return "The endpoint does not exist; check the configured base URL"
	case e.Code == http.StatusUnprocessableEntity || e.Code == http.StatusBadRequest:
		return "The service rejected the request payload; check the DTO fields"
	case e.Code >= 500:
		return "The service failed internally; check its logs"
	default:
		return ""
	}
}

// ErrorType implements ErrorClassifier.
func (e *DecodeError) ErrorType() string { return string(KindDecode) }

// IsRetryable implements ErrorClassifier.
func (e *DecodeError) IsRetryable() bool { return false }

// IsUserVisible implements UserVisibleError.
func (e *DecodeError) IsUserVisible() bool { return e.Fallback != "" }

// UserMessage implements UserVisibleError.
func (e *DecodeError) UserMessage() string { return userMessage(e.Fallback, e.Error()) }

// Suggestion implements UserVisibleError.
func (e *DecodeError) Suggestion() string {
	return "The service answered with an unexpected payload; check that client and service versions match"
}

func userMessage(fallback, msg string) string {
	if fallback != "" {
		return fallback
	}
	return msg
}
