package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/maruv/hatespeech-detector-go/internal/textproc"
)

// Feature is one non-zero component of a TF-IDF vector.
type Feature struct {
	Index  int
	Weight float64
}

// TFIDFVectorizer converts normalized text into a sparse TF-IDF feature
// vector, replaying the transform of the fitted vectorizer artifact.
type TFIDFVectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

func LoadTFIDFVectorizer(path string) (*TFIDFVectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vectorizer artifact %s: %w", path, err)
	}

	var artifact vectorizerArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing vectorizer artifact %s: %w", path, err)
	}
	if len(artifact.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer artifact %s has an empty vocabulary", path)
	}
	for term, idx := range artifact.Vocabulary {
		if idx < 0 || idx >= len(artifact.IDF) {
			return nil, fmt.Errorf("vectorizer artifact %s: term %q index %d outside idf table", path, term, idx)
		}
	}

	return &TFIDFVectorizer{
		vocabulary: artifact.Vocabulary,
		idf:        artifact.IDF,
	}, nil
}

// VocabSize returns the number of vocabulary terms.
func (v *TFIDFVectorizer) VocabSize() int {
	return len(v.vocabulary)
}

// FeatureCount returns the width of the produced feature vectors.
func (v *TFIDFVectorizer) FeatureCount() int {
	return len(v.idf)
}

// Transform normalizes raw text and maps it to an L2-normalized sparse
// feature vector sorted by index. Out-of-vocabulary tokens are dropped,
// matching the fitted transform.
//
// The fixed index order matters: float addition is not associative, and
// downstream summations must produce bit-identical confidences for the
// same text on every call.
func (v *TFIDFVectorizer) Transform(text string) []Feature {
	counts := make(map[int]int)
	for _, token := range textproc.Tokens(textproc.Clean(text)) {
		if idx, ok := v.vocabulary[token]; ok {
			counts[idx]++
		}
	}

	features := make([]Feature, 0, len(counts))
	for idx, count := range counts {
		features = append(features, Feature{Index: idx, Weight: float64(count) * v.idf[idx]})
	}
	sort.Slice(features, func(a, b int) bool {
		return features[a].Index < features[b].Index
	})

	var sumSquares float64
	for _, f := range features {
		sumSquares += f.Weight * f.Weight
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range features {
			features[i].Weight /= norm
		}
	}

	return features
}
