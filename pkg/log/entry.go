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

package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Entry is the shape of one JSON log record. It is used to check log
// output against the fields other containers rely on.
type Entry struct {
	Time       time.Time
	Level      string
	Message    string
	LoggerName string
	SessionID  string
	Fields     map[string]any
}

// ParseEntry decodes one line written by a FormatJSON logger.
func ParseEntry(line []byte) (Entry, error) {
	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return Entry{}, fmt.Errorf("parse log entry: %w", err)
	}

	var e Entry
	if v, ok := raw[slog.TimeKey].(string); ok {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return Entry{}, fmt.Errorf("parse log entry time: %w", err)
		}
		e.Time = t
	}
	e.Level, _ = raw[slog.LevelKey].(string)
	e.Message, _ = raw[slog.MessageKey].(string)
	e.LoggerName, _ = raw[LoggerKey].(string)
	e.SessionID, _ = raw[SessionIDKey].(string)

	for _, k := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey, LoggerKey, SessionIDKey} {
		delete(raw, k)
	}
	if len(raw) > 0 {
		e.Fields = raw
	}

	if e.Level == "" || e.Message == "" {
		return Entry{}, fmt.Errorf("parse log entry: level and msg are required")
	}
	return e, nil
}

// LogStructured logs msg at the named level with key/value args. Unknown
// level names log at info. Nothing is formatted when the level is disabled.
func LogStructured(ctx context.Context, logger *slog.Logger, level, msg string, args ...any) {
	l := ParseLevel(level)
	if !logger.Enabled(ctx, l) {
		return
	}
	logger.Log(ctx, l, msg, args...)
}

// Levels lists the accepted level names, from most to least verbose.
var Levels = []string{"trace", "debug", "info", "warning", "error", "critical"}
