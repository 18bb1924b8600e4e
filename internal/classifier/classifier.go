// Package classifier provides the hate-speech scoring capability: a common
// Classifier contract with two concrete variants, a threshold-scored linear
// model and a softmax-scored sequence model, both loaded from serialized
// artifacts at startup.
package classifier

import (
	"context"

	"github.com/maruv/hatespeech-detector-go/internal/domain"
)

// Model names as exposed through the API and comparison results.
const (
	ModelLogisticRegression = "logistic_regression"
	ModelDistilBERT         = "distilbert"
)

// Classifier scores comment texts. ScoreBatch must produce, for every text,
// the exact confidence ScoreOne would produce for that text alone.
type Classifier interface {
	ScoreOne(ctx context.Context, text string) (domain.ClassificationResult, error)
	ScoreBatch(ctx context.Context, texts []string) ([]domain.ClassificationResult, error)
	Info() domain.ModelInfo
}
