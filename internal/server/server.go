// Package server is the REST binding over the analysis core. It maps the
// error taxonomy to transport status codes and keeps process-lifetime usage
// counters; everything stateful lives below it.
package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/maruv/hatespeech-detector-go/internal/analyzer"
	"github.com/maruv/hatespeech-detector-go/internal/classifier"
	"github.com/maruv/hatespeech-detector-go/internal/service/youtube"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
)

type Server struct {
	linear      classifier.Classifier
	transformer classifier.Classifier
	analyzer    *analyzer.Analyzer
	source      *youtube.Client
	stats       *usageStats
	logger      *zap.Logger
	mux         *http.ServeMux
}

func New(linear, transformer classifier.Classifier, a *analyzer.Analyzer, source *youtube.Client, logger *zap.Logger) *Server {
	s := &Server{
		linear:      linear,
		transformer: transformer,
		analyzer:    a,
		source:      source,
		stats:       newUsageStats(),
		logger:      logger,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /stats", s.handleStats)
	s.mux.HandleFunc("GET /model/info", s.handleModelInfo)
	s.mux.HandleFunc("GET /model/info/transformer", s.handleModelInfoTransformer)
	s.mux.HandleFunc("POST /predict", s.handlePredict)
	s.mux.HandleFunc("POST /predict/transformer", s.handlePredictTransformer)
	s.mux.HandleFunc("POST /predict/batch", s.handlePredictBatch)
	s.mux.HandleFunc("POST /predict/compare", s.handlePredictCompare)
	s.mux.HandleFunc("POST /analyze/video", s.handleAnalyzeVideo)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps the error taxonomy onto transport status codes. Callers
// can always distinguish "nothing to analyze" (a 200 zero-statistics report)
// from "could not analyze" (4xx/5xx with a stable code).
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status := errors.StatusOf(err)

	if status >= 500 {
		s.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", code),
			zap.Error(err))
	} else {
		s.logger.Warn("Request rejected",
			zap.String("path", r.URL.Path),
			zap.String("code", code))
	}

	var appErr *errors.AppError
	message := "internal server error"
	var errCtx map[string]any
	if stderrors.As(err, &appErr) {
		message = appErr.Message
		errCtx = appErr.Context
	}

	s.writeJSON(w, status, map[string]any{
		"error":   message,
		"code":    code,
		"context": errCtx,
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "invalid JSON body",
			"code":  errors.CodeValidation,
		})
		return false
	}
	return true
}
