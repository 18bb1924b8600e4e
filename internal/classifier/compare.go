package classifier

import (
	"github.com/maruv/hatespeech-detector-go/internal/constants"
	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/internal/util"
)

// Compare evaluates two verdicts for the same text. Pure: no fetching, no
// scoring. The recommended model is the more confident of the two; ties go
// to the softmax variant.
func Compare(linear, transformer domain.ClassificationResult) domain.ModelComparison {
	diff := linear.Confidence - transformer.Confidence
	if diff < 0 {
		diff = -diff
	}

	recommended := ModelDistilBERT
	if linear.Confidence > transformer.Confidence {
		recommended = ModelLogisticRegression
	}

	cutoff := constants.Classification.ConfidentCutoff
	return domain.ModelComparison{
		Agreement:        linear.IsToxic == transformer.IsToxic,
		ConfidenceDiff:   util.Round2(diff),
		BothConfident:    linear.Confidence > cutoff && transformer.Confidence > cutoff,
		RecommendedModel: recommended,
	}
}
