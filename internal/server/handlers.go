package server

import (
	"net/http"

	"github.com/maruv/hatespeech-detector-go/internal/classifier"
	"github.com/maruv/hatespeech-detector-go/internal/constants"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
)

type textInput struct {
	Text string `json:"text"`
}

type batchInput struct {
	Texts []string `json:"texts"`
}

type analyzeInput struct {
	URL         string `json:"url"`
	MaxComments int    `json:"max_comments"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "YouTube Hate Speech Detector API",
		"version": "1.0.0",
		"models":  []string{classifier.ModelLogisticRegression, classifier.ModelDistilBERT},
		"endpoints": map[string]string{
			"health":              "/health",
			"stats":               "/stats",
			"model_info":          "/model/info",
			"predict":             "/predict",
			"predict_transformer": "/predict/transformer",
			"predict_batch":       "/predict/batch",
			"predict_compare":     "/predict/compare",
			"analyze_video":       "/analyze/video",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	linearInfo := s.linear.Info()
	transformerInfo := s.transformer.Info()

	status := "healthy"
	if !linearInfo.ModelLoaded || !transformerInfo.ModelLoaded || !s.source.Available() {
		status = "degraded"
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":             status,
		"service":            "hate-speech-detector",
		"model_loaded":       linearInfo.ModelLoaded,
		"transformer_loaded": transformerInfo.ModelLoaded,
		"source_available":   s.source.Available(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	used, remaining, reset := s.source.QuotaStatus()
	payload := s.stats.snapshot()
	payload["quota"] = map[string]any{
		"used":      used,
		"remaining": remaining,
		"reset_at":  reset,
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.linear.Info())
}

func (s *Server) handleModelInfoTransformer(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.transformer.Info())
}

func (s *Server) validateText(w http.ResponseWriter, r *http.Request, text string) bool {
	if len(text) > constants.ServerConfig.MaxTextLength {
		s.writeError(w, r, errors.NewValidation("text exceeds maximum length", "text", len(text)))
		return false
	}
	return true
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	s.predictWith(w, r, s.linear, "predict")
}

func (s *Server) handlePredictTransformer(w http.ResponseWriter, r *http.Request) {
	s.predictWith(w, r, s.transformer, "predict_transformer")
}

func (s *Server) predictWith(w http.ResponseWriter, r *http.Request, clf classifier.Classifier, op string) {
	var input textInput
	if !s.decode(w, r, &input) {
		return
	}
	if !s.validateText(w, r, input.Text) {
		return
	}

	result, err := clf.ScoreOne(r.Context(), input.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.stats.record(op)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePredictBatch(w http.ResponseWriter, r *http.Request) {
	var input batchInput
	if !s.decode(w, r, &input) {
		return
	}
	if len(input.Texts) == 0 {
		s.writeError(w, r, errors.NewValidation("texts must not be empty", "texts", 0))
		return
	}
	if len(input.Texts) > constants.ServerConfig.MaxBatchTexts {
		s.writeError(w, r, errors.NewValidation("too many texts in batch", "texts", len(input.Texts)))
		return
	}
	for _, text := range input.Texts {
		if !s.validateText(w, r, text) {
			return
		}
	}

	results, err := s.linear.ScoreBatch(r.Context(), input.Texts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.stats.record("predict_batch")
	s.writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handlePredictCompare(w http.ResponseWriter, r *http.Request) {
	var input textInput
	if !s.decode(w, r, &input) {
		return
	}
	if !s.validateText(w, r, input.Text) {
		return
	}

	linearResult, err := s.linear.ScoreOne(r.Context(), input.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	transformerResult, err := s.transformer.ScoreOne(r.Context(), input.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.stats.record("predict_compare")
	s.writeJSON(w, http.StatusOK, map[string]any{
		classifier.ModelLogisticRegression: linearResult,
		classifier.ModelDistilBERT:         transformerResult,
		"comparison":                       classifier.Compare(linearResult, transformerResult),
	})
}

func (s *Server) handleAnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	var input analyzeInput
	if !s.decode(w, r, &input) {
		return
	}
	if input.MaxComments == 0 {
		input.MaxComments = 50
	}

	report, err := s.analyzer.Analyze(r.Context(), input.URL, input.MaxComments)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.stats.record("analyze_video")
	s.writeJSON(w, http.StatusOK, report)
}
