package models

import (
	"fmt"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// PhonemeData is the assessment of one phoneme.
type PhonemeData struct {
	Phoneme string  `json:"phoneme"`
	Score   float64 `json:"score"`
}

// WordAssessment is the pronunciation assessment of one word.
type WordAssessment struct {
	Word      string        `json:"word"`
	Accuracy  float64       `json:"accuracy"`
	ErrorType string        `json:"error_type"`
	Phonemes  []PhonemeData `json:"phonemes"`
}

// ErrorTypeNone marks a word assessed without errors.
const ErrorTypeNone = "None"

// PronunciationAnalysisResult is the structured result of pronunciation analysis.
type PronunciationAnalysisResult struct {
	RecognizedText     string           `json:"recognized_text"`
	OverallScore       float64          `json:"overall_score"`
	PronunciationScore float64          `json:"pronunciation_score"`
	CompletenessScore  float64          `json:"completeness_score"`
	FluencyScore       float64          `json:"fluency_score"`
	Words              []WordAssessment `json:"words"`
	Error              *string          `json:"error,omitempty"`
}

// Validate checks that every score lies in [MinValidScore, MaxValidScore].
func (r *PronunciationAnalysisResult) Validate() error {
	scores := []struct {
		field string
		value float64
	}{
		{"analysis_result.overall_score", r.OverallScore},
		{"analysis_result.pronunciation_score", r.PronunciationScore},
		{"analysis_result.completeness_score", r.CompletenessScore},
		{"analysis_result.fluency_score", r.FluencyScore},
	}
	for _, s := range scores {
		if err := checkScore(s.field, s.value); err != nil {
			return err
		}
	}

	for i, w := range r.Words {
		if err := checkScore(fmt.Sprintf("analysis_result.words[%d].accuracy", i), w.Accuracy); err != nil {
			return err
		}
		for j, p := range w.Phonemes {
			field := fmt.Sprintf("analysis_result.words[%d].phonemes[%d].score", i, j)
			if err := checkScore(field, p.Score); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkScore(field string, v float64) error {
	if v < MinValidScore || v > MaxValidScore {
		return &cerrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("score %g is outside [%g, %g]", v, MinValidScore, MaxValidScore),
		}
	}
	return nil
}
