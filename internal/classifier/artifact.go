package classifier

import (
	"encoding/json"
	"fmt"
	"os"
)

// linearModel is the canonical in-memory form of the logistic regression
// artifact: one coefficient per vectorizer feature plus an intercept.
type linearModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// linearArtifact is the on-disk union of the historic save formats:
// a bare model, a wrapper carrying the tuned threshold, or a dictionary
// with a "model" key. loadLinearModel normalizes all three so nothing
// outside this file ever sees the format variation.
type linearArtifact struct {
	Coefficients []float64    `json:"coefficients"`
	Intercept    float64      `json:"intercept"`
	Model        *linearModel `json:"model"`
	Threshold    *float64     `json:"threshold"`
}

// loadLinearModel reads the logistic regression artifact. The returned
// threshold is nil when the artifact does not carry one.
func loadLinearModel(path string) (*linearModel, *float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading linear model artifact %s: %w", path, err)
	}

	var artifact linearArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, nil, fmt.Errorf("parsing linear model artifact %s: %w", path, err)
	}

	model := artifact.Model
	if model == nil {
		// Bare save format: coefficients at the top level.
		model = &linearModel{
			Coefficients: artifact.Coefficients,
			Intercept:    artifact.Intercept,
		}
	}

	if len(model.Coefficients) == 0 {
		return nil, nil, fmt.Errorf("linear model artifact %s has no coefficients", path)
	}

	return model, artifact.Threshold, nil
}

// tokenizerArtifact maps tokens to ids for the sequence classifier.
type tokenizerArtifact struct {
	Vocab     map[string]int `json:"vocab"`
	UnkID     int            `json:"unk_id"`
	MaxLength int            `json:"max_length"`
}

// sequenceModelArtifact is the serialized two-class sequence classifier:
// token embeddings, a dense layer and its bias.
type sequenceModelArtifact struct {
	Embeddings [][]float64 `json:"embeddings"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

func loadTokenizer(path string) (*tokenizerArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tokenizer artifact %s: %w", path, err)
	}

	var tok tokenizerArtifact
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parsing tokenizer artifact %s: %w", path, err)
	}
	if len(tok.Vocab) == 0 {
		return nil, fmt.Errorf("tokenizer artifact %s has an empty vocabulary", path)
	}
	if tok.MaxLength <= 0 {
		return nil, fmt.Errorf("tokenizer artifact %s has invalid max_length %d", path, tok.MaxLength)
	}

	return &tok, nil
}

func loadSequenceModel(path string) (*sequenceModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sequence model artifact %s: %w", path, err)
	}

	var model sequenceModelArtifact
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing sequence model artifact %s: %w", path, err)
	}
	if len(model.Embeddings) == 0 {
		return nil, fmt.Errorf("sequence model artifact %s has no embeddings", path)
	}
	if len(model.Weights) != 2 || len(model.Bias) != 2 {
		return nil, fmt.Errorf("sequence model artifact %s is not a two-class classifier", path)
	}

	return &model, nil
}
