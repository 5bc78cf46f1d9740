package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// QLogicTurnInput is sent from the speech container to QLogic to route a turn.
type QLogicTurnInput struct {
	ChildID        uuid.UUID                    `json:"child_id"`
	SessionID      uuid.UUID                    `json:"session_id"`
	TargetPhrase   *string                      `json:"target_phrase,omitempty"`
	STTText        *string                      `json:"stt_text,omitempty"`
	AnalysisResult *PronunciationAnalysisResult `json:"analysis_result,omitempty"`
	ModuleContext  string                       `json:"module_context"`
	Timestamp      Timestamp                    `json:"timestamp"`
}

// NewQLogicTurnInput returns a turn input for the child and session with
// the default module context and the current time.
func NewQLogicTurnInput(childID, sessionID uuid.UUID) *QLogicTurnInput {
	return &QLogicTurnInput{
		ChildID:       childID,
		SessionID:     sessionID,
		ModuleContext: DefaultModuleContext,
		Timestamp:     Now(),
	}
}

// ApplyDefaults fills the module context and timestamp when unset.
func (in *QLogicTurnInput) ApplyDefaults() {
	if in.ModuleContext == "" {
		in.ModuleContext = DefaultModuleContext
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = Now()
	}
}

// Validate checks the identifiers and the analysis result.
func (in *QLogicTurnInput) Validate() error {
	if in == nil {
		return &cerrors.ValidationError{Field: "input", Message: "turn input is required"}
	}
	if in.ChildID == uuid.Nil {
		return &cerrors.ValidationError{Field: "child_id", Message: "child ID is required"}
	}
	if in.SessionID == uuid.Nil {
		return &cerrors.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	if in.AnalysisResult != nil {
		return in.AnalysisResult.Validate()
	}
	return nil
}

// RoutingResponse is QLogic's routing decision. Fields other than type and
// payload are kept in Extra.
type RoutingResponse struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
	Extra   map[string]any `json:"-"`
}

// UnmarshalJSON decodes a routing response. The type field is required and
// must be a string, possibly empty. Payload defaults to an empty object when
// absent; when present it must be an object, not null.
func (r *RoutingResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("routing response must be a JSON object")
	}

	rawType, ok := raw["type"]
	if !ok {
		return fmt.Errorf("routing response is missing required field %q", "type")
	}
	var typ string
	if isNull(rawType) {
		return fmt.Errorf("routing response field %q must be a string, got null", "type")
	}
	if err := json.Unmarshal(rawType, &typ); err != nil {
		return fmt.Errorf("routing response field %q must be a string: %w", "type", err)
	}

	payload := map[string]any{}
	if rawPayload, ok := raw["payload"]; ok {
		if isNull(rawPayload) {
			return fmt.Errorf("routing response field %q must be an object, got null", "payload")
		}
		if err := json.Unmarshal(rawPayload, &payload); err != nil {
			return fmt.Errorf("routing response field %q must be an object: %w", "payload", err)
		}
	}

	var extra map[string]any
	for k, v := range raw {
		if k == "type" || k == "payload" {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if extra == nil {
			extra = map[string]any{}
		}
		extra[k] = val
	}

	*r = RoutingResponse{Type: typ, Payload: payload, Extra: extra}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// MarshalJSON writes type, payload and any extra fields.
func (r RoutingResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["type"] = r.Type
	payload := r.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	out["payload"] = payload
	return json.Marshal(out)
}

// Validate rejects a missing response. An empty type is a valid decision
// label; presence of the field is enforced by UnmarshalJSON.
func (r *RoutingResponse) Validate() error {
	if r == nil {
		return &cerrors.ValidationError{Field: "type", Message: "routing response is required"}
	}
	return nil
}
