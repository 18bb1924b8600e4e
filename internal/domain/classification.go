package domain

// Label is the predicted class of a comment.
type Label string

const (
	LabelNormal     Label = "normal"
	LabelHateSpeech Label = "hate_speech"
)

// DecisionBasis records which decision rule produced a classification.
type DecisionBasis string

const (
	BasisThreshold DecisionBasis = "threshold"
	BasisSoftmax   DecisionBasis = "softmax"
)

// ClassificationResult is one classifier verdict for one input text.
// Invariant: IsToxic == (Label == LabelHateSpeech).
type ClassificationResult struct {
	Text          string        `json:"text"`
	Label         Label         `json:"prediction"`
	Confidence    float64       `json:"confidence"`
	IsToxic       bool          `json:"is_toxic"`
	DecisionBasis DecisionBasis `json:"decision_basis"`
}

// ModelInfo describes a loaded classifier for the info endpoint.
type ModelInfo struct {
	ModelType        string  `json:"model_type"`
	Threshold        float64 `json:"threshold"`
	VectorizerType   string  `json:"vectorizer_type"`
	VocabSize        int     `json:"vocab_size"`
	ModelLoaded      bool    `json:"model_loaded"`
	VectorizerLoaded bool    `json:"vectorizer_loaded"`
}

// ModelComparison is the pure comparison of two classifier verdicts for the
// same text.
type ModelComparison struct {
	Agreement        bool    `json:"agreement"`
	ConfidenceDiff   float64 `json:"confidence_diff"`
	BothConfident    bool    `json:"both_confident"`
	RecommendedModel string  `json:"recommended_model"`
}
