// Package models defines the data transfer objects exchanged between the
// cabreaich containers, together with the shared flags and constants.
//
// All DTOs serialize to snake_case JSON. Optional fields are omitted when
// unset and timestamps are written in UTC with millisecond precision.
package models

import "time"

// Pronunciation scoring.
const (
	// PhonemeScoreKey is the field carrying phoneme accuracy in Azure output.
	PhonemeScoreKey = "AccuracyScore"

	MinValidScore = 0.0
	MaxValidScore = 100.0
)

// DefaultAudioRingBufferChunks caps the number of audio chunks held by a ring buffer.
const DefaultAudioRingBufferChunks = 100

// Log output.
const (
	FallbackLogPathDefault    = "/app/logs/speech_sdk.log"
	AllowedLogRotationBytes   = 2_000_000
	AllowedLogBackups         = 3
	LogTypeTurn               = "turn"
	LogTypeError              = "error"
	FallbackResponsesPath     = "/app/fallback_responses.json"
	DefaultTemplatesPath      = "/app/prompt_templates.json"
	DefaultModuleContext      = "speech_handler"
)

// Speech timing thresholds.
const (
	MinSpeechDuration  = 300 * time.Millisecond
	MaxSilenceDuration = 2000 * time.Millisecond
	GapThreshold       = 150 * time.Millisecond

	// EBDSilenceThresholdDB is the dBFS level treated as silence by
	// energy-based detection.
	EBDSilenceThresholdDB = -40.0
	EBDMaxSilentFrames    = 20
)

// Audio queue and pull stream tuning.
const (
	PrebufferMaxFrames  = 20
	QueuePutTimeout     = time.Second
	QueueGetTimeout     = time.Second
	InitialDataWaitTime = 2 * time.Second
)

// PromptMode selects how a prompt is presented and scored.
type PromptMode string

const (
	PromptModeScored PromptMode = "scored"
	PromptModeOpen   PromptMode = "open"
	PromptModeChat   PromptMode = "chat"
	PromptModeAuto   PromptMode = "auto"
)

// PromptModes lists every prompt mode.
var PromptModes = []PromptMode{PromptModeScored, PromptModeOpen, PromptModeChat, PromptModeAuto}

// Valid reports whether m is a known prompt mode.
func (m PromptMode) Valid() bool {
	for _, known := range PromptModes {
		if m == known {
			return true
		}
	}
	return false
}
