package classifier

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
)

// toxicClass is the positive class index in the two-class output.
const toxicClass = 1

var tokenRe = regexp.MustCompile(`[a-z0-9']+`)

// TransformerClassifier is the softmax variant: texts are tokenized to ids
// with truncation, pooled through the embedding table and scored by a dense
// two-class head. The label follows argmax, an implicit 0.5 threshold.
type TransformerClassifier struct {
	tokenizer *tokenizerArtifact
	model     *sequenceModelArtifact
	logger    *zap.Logger
}

func NewTransformerClassifier(tokenizerPath, modelPath string, logger *zap.Logger) (*TransformerClassifier, error) {
	tokenizer, err := loadTokenizer(tokenizerPath)
	if err != nil {
		return nil, err
	}

	model, err := loadSequenceModel(modelPath)
	if err != nil {
		return nil, err
	}

	// Out-of-range ids are remapped to UnkID at scoring time, so a bad UnkID
	// would panic on the first request instead of failing here.
	if tokenizer.UnkID < 0 || tokenizer.UnkID >= len(model.Embeddings) {
		return nil, fmt.Errorf("tokenizer %s unk_id %d outside embedding table of %s (%d rows)",
			tokenizerPath, tokenizer.UnkID, modelPath, len(model.Embeddings))
	}

	logger.Info("Transformer classifier loaded",
		zap.String("tokenizer", tokenizerPath),
		zap.String("model", modelPath),
		zap.Int("vocab_size", len(tokenizer.Vocab)),
		zap.Int("max_length", tokenizer.MaxLength))

	return &TransformerClassifier{
		tokenizer: tokenizer,
		model:     model,
		logger:    logger,
	}, nil
}

func (c *TransformerClassifier) ready() bool {
	return c != nil && c.tokenizer != nil && c.model != nil
}

func (c *TransformerClassifier) ScoreOne(ctx context.Context, text string) (domain.ClassificationResult, error) {
	if !c.ready() {
		return domain.ClassificationResult{}, errors.NewClassifierUnavailable(ModelDistilBERT)
	}
	return c.score(text), nil
}

func (c *TransformerClassifier) ScoreBatch(ctx context.Context, texts []string) ([]domain.ClassificationResult, error) {
	if !c.ready() {
		return nil, errors.NewClassifierUnavailable(ModelDistilBERT)
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

// tokenize maps text to vocabulary ids, truncated at MaxLength. Unknown
// tokens map to UnkID. Padding is never materialized: per-text mean pooling
// makes batch composition irrelevant to the probabilities.
func (c *TransformerClassifier) tokenize(text string) []int {
	words := tokenRe.FindAllString(strings.ToLower(text), -1)
	if len(words) > c.tokenizer.MaxLength {
		words = words[:c.tokenizer.MaxLength]
	}

	ids := make([]int, 0, len(words))
	for _, w := range words {
		id, ok := c.tokenizer.Vocab[w]
		if !ok {
			id = c.tokenizer.UnkID
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *TransformerClassifier) score(text string) domain.ClassificationResult {
	ids := c.tokenize(text)
	dim := len(c.model.Weights[0])

	pooled := make([]float64, dim)
	if len(ids) > 0 {
		for _, id := range ids {
			if id < 0 || id >= len(c.model.Embeddings) {
				id = c.tokenizer.UnkID
			}
			emb := c.model.Embeddings[id]
			for d := 0; d < dim && d < len(emb); d++ {
				pooled[d] += emb[d]
			}
		}
		for d := range pooled {
			pooled[d] /= float64(len(ids))
		}
	}

	var logits [2]float64
	for class := 0; class < 2; class++ {
		z := c.model.Bias[class]
		for d := 0; d < dim; d++ {
			z += c.model.Weights[class][d] * pooled[d]
		}
		logits[class] = z
	}
	probs := softmax2(logits)

	isToxic := probs[toxicClass] > probs[1-toxicClass]
	label := domain.LabelNormal
	confidence := probs[1-toxicClass]
	if isToxic {
		label = domain.LabelHateSpeech
		confidence = probs[toxicClass]
	}

	return domain.ClassificationResult{
		Text:          text,
		Label:         label,
		Confidence:    confidence,
		IsToxic:       isToxic,
		DecisionBasis: domain.BasisSoftmax,
	}
}

func (c *TransformerClassifier) Info() domain.ModelInfo {
	info := domain.ModelInfo{
		ModelType:      "DistilBERT",
		Threshold:      0.5, // implicit argmax threshold
		VectorizerType: "WordPiece tokenizer",
	}
	if c.tokenizer != nil {
		info.VocabSize = len(c.tokenizer.Vocab)
		info.VectorizerLoaded = true
	}
	info.ModelLoaded = c.model != nil
	return info
}

// softmax2 is a numerically stable two-class softmax.
func softmax2(logits [2]float64) [2]float64 {
	m := math.Max(logits[0], logits[1])
	e0 := math.Exp(logits[0] - m)
	e1 := math.Exp(logits[1] - m)
	sum := e0 + e1
	return [2]float64{e0 / sum, e1 / sum}
}
