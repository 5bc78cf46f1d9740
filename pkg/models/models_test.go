package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

func TestRoutingResponse_Unmarshal(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantType    string
		wantPayload map[string]any
		wantExtra   map[string]any
		wantErr     bool
	}{
		{
			name:        "prompt with payload",
			input:       `{"type":"prompt","payload":{"text":"hi"}}`,
			wantType:    "prompt",
			wantPayload: map[string]any{"text": "hi"},
		},
		{
			name:        "missing payload defaults to empty",
			input:       `{"type":"game"}`,
			wantType:    "game",
			wantPayload: map[string]any{},
		},
		{
			name:        "empty type accepted",
			input:       `{"type":"","payload":{"a":1}}`,
			wantType:    "",
			wantPayload: map[string]any{"a": float64(1)},
		},
		{
			name:        "extra fields kept",
			input:       `{"type":"feedback","payload":{},"confidence":0.5}`,
			wantType:    "feedback",
			wantPayload: map[string]any{},
			wantExtra:   map[string]any{"confidence": 0.5},
		},
		{name: "missing type", input: `{"payload":{}}`, wantErr: true},
		{name: "numeric type", input: `{"type":3}`, wantErr: true},
		{name: "null type", input: `{"type":null}`, wantErr: true},
		{name: "null payload", input: `{"type":"game","payload":null}`, wantErr: true},
		{name: "payload not object", input: `{"type":"prompt","payload":[1]}`, wantErr: true},
		{name: "array body", input: `[1,2]`, wantErr: true},
		{name: "null body", input: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RoutingResponse
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantPayload, r.Payload)
			assert.Equal(t, tt.wantExtra, r.Extra)
		})
	}
}

func TestRoutingResponse_MarshalKeepsExtra(t *testing.T) {
	r := RoutingResponse{Type: "prompt", Extra: map[string]any{"trace": "abc"}}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"prompt","payload":{},"trace":"abc"}`, string(data))
}

func TestRoutingResponse_Validate(t *testing.T) {
	assert.NoError(t, (&RoutingResponse{Type: "prompt"}).Validate())
	assert.NoError(t, (&RoutingResponse{}).Validate())

	var missing *RoutingResponse
	err := missing.Validate()
	var ve *cerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)
}

func TestQLogicTurnInput_JSON(t *testing.T) {
	child := uuid.MustParse("11111111-1111-4111-8111-111111111111")
	session := uuid.MustParse("22222222-2222-4222-8222-222222222222")
	stt := "red balloon"

	in := NewQLogicTurnInput(child, session)
	in.STTText = &stt
	in.Timestamp = NewTimestamp(time.Date(2025, 3, 1, 12, 4, 5, 123000000, time.UTC))

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"child_id": "11111111-1111-4111-8111-111111111111",
		"session_id": "22222222-2222-4222-8222-222222222222",
		"stt_text": "red balloon",
		"module_context": "speech_handler",
		"timestamp": "2025-03-01T12:04:05.123Z"
	}`, string(data))

	var back QLogicTurnInput
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, in.ChildID, back.ChildID)
	assert.True(t, in.Timestamp.Equal(back.Timestamp.Time))
}

func TestQLogicTurnInput_Validate(t *testing.T) {
	child, session := uuid.New(), uuid.New()
	badScore := &PronunciationAnalysisResult{OverallScore: 120}

	tests := []struct {
		name      string
		input     *QLogicTurnInput
		wantField string
	}{
		{name: "valid", input: NewQLogicTurnInput(child, session)},
		{name: "nil", input: nil, wantField: "input"},
		{name: "missing child", input: &QLogicTurnInput{SessionID: session}, wantField: "child_id"},
		{name: "missing session", input: &QLogicTurnInput{ChildID: child}, wantField: "session_id"},
		{
			name:      "score out of range",
			input:     &QLogicTurnInput{ChildID: child, SessionID: session, AnalysisResult: badScore},
			wantField: "analysis_result.overall_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *cerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestQLogicTurnInput_ApplyDefaults(t *testing.T) {
	in := &QLogicTurnInput{ChildID: uuid.New(), SessionID: uuid.New()}
	in.ApplyDefaults()

	assert.Equal(t, DefaultModuleContext, in.ModuleContext)
	assert.False(t, in.Timestamp.IsZero())

	in.ModuleContext = "game"
	in.ApplyDefaults()
	assert.Equal(t, "game", in.ModuleContext)
}

func TestPronunciationAnalysisResult_Validate(t *testing.T) {
	valid := &PronunciationAnalysisResult{
		OverallScore: 88,
		Words: []WordAssessment{{
			Word:      "red",
			Accuracy:  90,
			ErrorType: ErrorTypeNone,
			Phonemes:  []PhonemeData{{Phoneme: "r", Score: 100}, {Phoneme: "eh", Score: 0}},
		}},
	}
	assert.NoError(t, valid.Validate())

	valid.Words[0].Phonemes[1].Score = -1
	err := valid.Validate()
	var ve *cerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "analysis_result.words[0].phonemes[1].score", ve.Field)
}

func TestVADEvents(t *testing.T) {
	session := uuid.New()

	ev := NewVADEvent(VADSpeechStart, session)
	require.NoError(t, ev.Validate())

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "vad_speech_start", m["event_type"])
	assert.Equal(t, session.String(), m["session_id"])

	assert.Error(t, (&VADEventData{EventType: "vad_speech_pause", SessionID: session}).Validate())
	assert.Error(t, (&VADEventData{EventType: VADSpeechEnd}).Validate())

	flags := NewVADTimingFlags(session, VADFlagFalseStart, VADFlagSyllableGap)
	require.NoError(t, flags.Validate())
	assert.Equal(t, []string{"false_start", "syllable_gap"}, flags.Flags)

	empty := NewVADTimingFlags(session)
	require.NoError(t, empty.Validate())
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"flags":[]`)

	assert.Error(t, (&VADTimingFlagsData{SessionID: session}).Validate())
}

func TestParseVADEventType(t *testing.T) {
	tests := []struct {
		input   string
		want    VADEventType
		wantErr bool
	}{
		{input: "start", want: VADSpeechStart},
		{input: "END", want: VADSpeechEnd},
		{input: "vad_speech_end", want: VADSpeechEnd},
		{input: "pause", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVADEventType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, cerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGuardianInput_Validate(t *testing.T) {
	g := NewGuardianInput(uuid.New(), "app", "Sam")
	require.NoError(t, g.Validate())
	assert.NotNil(t, g.Details)

	g.GuardianName = " "
	assert.ErrorIs(t, g.Validate(), cerrors.ErrValidation)
}

func TestTimestamp(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T07:04:05.5-05:00"`), &ts))
	assert.Equal(t, "2025-03-01T12:04:05.500Z", ts.String())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))

	data, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFlagsAndModes(t *testing.T) {
	assert.True(t, KnownFlag("false_start"))
	assert.True(t, KnownFlag("frustrated"))
	assert.False(t, KnownFlag("sleepy"))

	assert.True(t, PromptModeChat.Valid())
	assert.False(t, PromptMode("quiz").Valid())
}
