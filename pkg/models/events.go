package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// VADEventType is a voice activity event emitted by the speech container.
type VADEventType string

const (
	VADSpeechStart VADEventType = "vad_speech_start"
	VADSpeechEnd   VADEventType = "vad_speech_end"
)

// ParseVADEventType accepts the wire value or the short forms "start" and "end".
func ParseVADEventType(s string) (VADEventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start", string(VADSpeechStart):
		return VADSpeechStart, nil
	case "end", string(VADSpeechEnd):
		return VADSpeechEnd, nil
	}
	return "", &cerrors.ValidationError{
		Field:      "event_type",
		Message:    fmt.Sprintf("unknown VAD event type %q", s),
		Suggestion: "use start or end",
	}
}

// VADEventData is sent from the speech container to the integration container.
type VADEventData struct {
	EventType VADEventType `json:"event_type"`
	SessionID uuid.UUID    `json:"session_id"`
	Timestamp Timestamp    `json:"timestamp"`
}

// NewVADEvent returns an event stamped with the current time.
func NewVADEvent(eventType VADEventType, sessionID uuid.UUID) *VADEventData {
	return &VADEventData{EventType: eventType, SessionID: sessionID, Timestamp: Now()}
}

// Validate checks the event type and session ID.
func (e *VADEventData) Validate() error {
	if e == nil {
		return &cerrors.ValidationError{Field: "event", Message: "VAD event is required"}
	}
	if e.EventType != VADSpeechStart && e.EventType != VADSpeechEnd {
		return &cerrors.ValidationError{
			Field:   "event_type",
			Message: fmt.Sprintf("unknown VAD event type %q", e.EventType),
		}
	}
	if e.SessionID == uuid.Nil {
		return &cerrors.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	return nil
}

// VADTimingFlagsData carries VAD timing flags, e.g. false_start or syllable_gap.
type VADTimingFlagsData struct {
	SessionID uuid.UUID `json:"session_id"`
	Flags     []string  `json:"flags"`
	Timestamp Timestamp `json:"timestamp"`
}

// NewVADTimingFlags returns a flags record stamped with the current time.
func NewVADTimingFlags(sessionID uuid.UUID, flags ...VADFlag) *VADTimingFlagsData {
	values := make([]string, 0, len(flags))
	for _, f := range flags {
		values = append(values, string(f))
	}
	return &VADTimingFlagsData{SessionID: sessionID, Flags: values, Timestamp: Now()}
}

// Validate checks the session ID and that flags is present.
func (d *VADTimingFlagsData) Validate() error {
	if d == nil {
		return &cerrors.ValidationError{Field: "flags", Message: "timing flags are required"}
	}
	if d.SessionID == uuid.Nil {
		return &cerrors.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	if d.Flags == nil {
		return &cerrors.ValidationError{Field: "flags", Message: "flags are required"}
	}
	return nil
}

// GuardianInput is input captured from a child's guardian.
type GuardianInput struct {
	ChildID      uuid.UUID      `json:"child_id"`
	SourceID     string         `json:"source_id"`
	GuardianName string         `json:"guardian_name"`
	Notes        string         `json:"notes"`
	Timestamp    Timestamp      `json:"timestamp"`
	Details      map[string]any `json:"details"`
}

// NewGuardianInput returns guardian input stamped with the current time.
func NewGuardianInput(childID uuid.UUID, sourceID, guardianName string) *GuardianInput {
	return &GuardianInput{
		ChildID:      childID,
		SourceID:     sourceID,
		GuardianName: guardianName,
		Timestamp:    Now(),
		Details:      map[string]any{},
	}
}

// Validate checks the required fields.
func (g *GuardianInput) Validate() error {
	switch {
	case g == nil:
		return &cerrors.ValidationError{Field: "guardian_input", Message: "guardian input is required"}
	case g.ChildID == uuid.Nil:
		return &cerrors.ValidationError{Field: "child_id", Message: "child ID is required"}
	case strings.TrimSpace(g.SourceID) == "":
		return &cerrors.ValidationError{Field: "source_id", Message: "source ID is required"}
	case strings.TrimSpace(g.GuardianName) == "":
		return &cerrors.ValidationError{Field: "guardian_name", Message: "guardian name is required"}
	}
	return nil
}
