package classifier

import (
	"context"
	"fmt"
	"math"

	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
)

// LinearClassifier is the threshold variant: TF-IDF features scored by a
// logistic regression, labeled toxic when the positive-class probability
// reaches the tuned threshold (0.3 by default, chosen to favor recall).
type LinearClassifier struct {
	model      *linearModel
	vectorizer *TFIDFVectorizer
	threshold  float64
	logger     *zap.Logger
}

// NewLinearClassifier loads both artifacts and fails loudly if either is
// missing or unreadable. An artifact-carried threshold overrides the
// configured one.
func NewLinearClassifier(modelPath, vectorizerPath string, threshold float64, logger *zap.Logger) (*LinearClassifier, error) {
	model, artifactThreshold, err := loadLinearModel(modelPath)
	if err != nil {
		return nil, err
	}

	vectorizer, err := LoadTFIDFVectorizer(vectorizerPath)
	if err != nil {
		return nil, err
	}

	// A mismatched model/vectorizer pair would load fine and score garbage.
	if len(model.Coefficients) != vectorizer.FeatureCount() {
		return nil, fmt.Errorf("model %s has %d coefficients but vectorizer %s produces %d features",
			modelPath, len(model.Coefficients), vectorizerPath, vectorizer.FeatureCount())
	}

	if artifactThreshold != nil {
		threshold = *artifactThreshold
	}

	logger.Info("Linear classifier loaded",
		zap.String("model", modelPath),
		zap.String("vectorizer", vectorizerPath),
		zap.Int("vocab_size", vectorizer.VocabSize()),
		zap.Float64("threshold", threshold))

	return &LinearClassifier{
		model:      model,
		vectorizer: vectorizer,
		threshold:  threshold,
		logger:     logger,
	}, nil
}

func (c *LinearClassifier) ready() bool {
	return c != nil && c.model != nil && c.vectorizer != nil
}

func (c *LinearClassifier) ScoreOne(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if !c.ready() {
		return domain.ClassificationResult{}, errors.NewClassifierUnavailable(ModelLogisticRegression)
	}
	return c.score(text), nil
}

func (c *LinearClassifier) ScoreBatch(ctx context.Context, texts []string) ([]domain.ClassificationResult, error) {
	if !c.ready() {
		return nil, errors.NewClassifierUnavailable(ModelLogisticRegression)
	}

	results := make([]domain.ClassificationResult, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = c.score(text)
	}
	return results, nil
}

// score is the single deterministic decision rule: proba >= threshold.
// Both entry points route through it so batch and single confidences are
// identical by construction. Features arrive sorted by index, keeping the
// accumulation order, and therefore the probability, bit-identical across
// calls.
func (c *LinearClassifier) score(text string) domain.ClassificationResult {
	z := c.model.Intercept
	for _, f := range c.vectorizer.Transform(text) {
		z += c.model.Coefficients[f.Index] * f.Weight
	}
	proba := sigmoid(z)
	isToxic := proba >= c.threshold

	label := domain.LabelNormal
	if isToxic {
		label = domain.LabelHateSpeech
	}

	return domain.ClassificationResult{
		Text:          text,
		Label:         label,
		Confidence:    proba,
		IsToxic:       isToxic,
		DecisionBasis: domain.BasisThreshold,
	}
}

func (c *LinearClassifier) Info() domain.ModelInfo {
	info := domain.ModelInfo{
		ModelType:      "Logistic Regression",
		Threshold:      c.threshold,
		VectorizerType: "TF-IDF",
	}
	if c.vectorizer != nil {
		info.VocabSize = c.vectorizer.VocabSize()
		info.VectorizerLoaded = true
	}
	info.ModelLoaded = c.model != nil
	return info
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
