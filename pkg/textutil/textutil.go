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

// Package textutil holds small helpers shared by every container: ID
// generation, transcript cleanup and timestamp formatting.
package textutil

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// GenerateUUID returns a new random (version 4) UUID.
func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// CleanText normalizes s to NFC, trims surrounding whitespace and collapses
// every run of whitespace into a single space. Punctuation is kept.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return whitespaceRun.ReplaceAllString(s, " ")
}

// ISOLayout is the wire format for timestamps: UTC, millisecond precision, Z suffix.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// FormatISO formats t in UTC with millisecond precision and a Z suffix.
// The zero time formats the current time.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(ISOLayout)
}

// Truncate returns at most n runes of s. Multi-byte characters are never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
