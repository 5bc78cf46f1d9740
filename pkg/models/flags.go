package models

// VADFlag marks speech timing problems found by voice activity detection.
type VADFlag string

const (
	// VADFlagFalseStart means speech started but was too short.
	VADFlagFalseStart VADFlag = "false_start"
	// VADFlagSyllableGap means a disruptive pause inside speech.
	VADFlagSyllableGap VADFlag = "syllable_gap"
)

// EngagementFlag describes the child's engagement level.
type EngagementFlag string

const EngagementFlagLow EngagementFlag = "low_engagement"

// QualityFlag describes the quality of the speech input.
type QualityFlag string

const (
	QualityFlagLowConfidenceSTT QualityFlag = "low_confidence_stt"
	QualityFlagBackgroundNoise  QualityFlag = "background_noise"
)

// EmotionFlag is a detected emotion.
type EmotionFlag string

const (
	EmotionFlagFrustrated EmotionFlag = "frustrated"
	EmotionFlagHappy      EmotionFlag = "happy"
	EmotionFlagNeutral    EmotionFlag = "neutral"
)

// KnownFlag reports whether s is one of the shared flag values.
func KnownFlag(s string) bool {
	switch s {
	case string(VADFlagFalseStart), string(VADFlagSyllableGap),
		string(EngagementFlagLow),
		string(QualityFlagLowConfidenceSTT), string(QualityFlagBackgroundNoise),
		string(EmotionFlagFrustrated), string(EmotionFlagHappy), string(EmotionFlagNeutral):
		return true
	}
	return false
}
