// Package analyzer drives one video analysis end to end: reference
// validation, comment retrieval, batch classification and report assembly.
package analyzer

import (
	"context"

	"github.com/maruv/hatespeech-detector-go/internal/classifier"
	"github.com/maruv/hatespeech-detector-go/internal/constants"
	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/internal/report"
	"github.com/maruv/hatespeech-detector-go/internal/service/youtube"
	"github.com/maruv/hatespeech-detector-go/internal/util"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Bounds on a single analysis request.
const (
	MinComments = 1
	MaxComments = 200
)

// CommentSource is the slice of the YouTube client the analyzer depends on.
type CommentSource interface {
	FetchTitle(ctx context.Context, videoID string) string
	FetchComments(ctx context.Context, videoID string, maxCount int) ([]domain.Comment, error)
}

// Analyzer is stateless between calls; one instance serves concurrent
// requests. Reports are never persisted or replayed: every call fetches and
// classifies fresh, and AnalyzedAt is always this request's build time.
type Analyzer struct {
	source     CommentSource
	classifier classifier.Classifier
	logger     *zap.Logger
}

func New(source CommentSource, clf classifier.Classifier, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		source:     source,
		classifier: clf,
		logger:     logger,
	}
}

// Analyze runs the full pipeline for one video reference.
func (a *Analyzer) Analyze(ctx context.Context, reference string, maxComments int) (*domain.AnalysisReport, error) {
	if maxComments < MinComments || maxComments > MaxComments {
		return nil, errors.NewValidation("max_comments out of range [1, 200]", "max_comments", maxComments)
	}

	// Both checks run before any I/O. The second is defensive: validation
	// passing implies extraction succeeds, but the invariant is cheap to
	// hold independently.
	if !youtube.ValidateReference(reference) {
		return nil, errors.NewInvalidReference(reference)
	}
	videoID, ok := youtube.ExtractVideoID(reference)
	if !ok {
		return nil, errors.NewInvalidReference(reference)
	}

	title := a.source.FetchTitle(ctx, videoID)

	comments, err := a.source.FetchComments(ctx, videoID, maxComments)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		a.logger.Info("No comments to analyze", zap.String("video_id", videoID))
		return domain.EmptyReport(videoID, domain.TitleNoComments), nil
	}

	// Comments with empty text carry no signal for the classifier.
	analyzable := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		if !util.IsBlank(c.Text) {
			analyzable = append(analyzable, c)
		}
	}
	if len(analyzable) == 0 {
		a.logger.Info("All comments empty after filtering", zap.String("video_id", videoID))
		return domain.EmptyReport(videoID, domain.TitleNoAnalyzable), nil
	}

	texts := make([]string, len(analyzable))
	for i, c := range analyzable {
		texts[i] = c.Text
	}
	a.logger.Debug("Classifying comments",
		zap.Int("count", len(texts)),
		zap.String("first", util.TruncateString(texts[0], 80)))

	results, err := a.classifyChunked(ctx, texts)
	if err != nil {
		return nil, err
	}

	rep, err := report.Build(videoID, title, analyzable, results)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Analysis complete",
		zap.String("video_id", videoID),
		zap.Int("total", rep.TotalAnalyzed),
		zap.Int("toxic", rep.ToxicCount),
		zap.Float64("toxicity_pct", rep.ToxicityPercentage))

	return rep, nil
}

// classifyChunked splits the batch at the classifier's size limit and
// concatenates results in input order. Chunks are scored concurrently;
// ordering is preserved by writing each chunk into its own slice segment.
func (a *Analyzer) classifyChunked(ctx context.Context, texts []string) ([]domain.ClassificationResult, error) {
	chunkSize := constants.Classification.MaxBatchSize
	if len(texts) <= chunkSize {
		return a.classifier.ScoreBatch(ctx, texts)
	}

	// Chunks write into disjoint segments, so no locking is needed.
	results := make([]domain.ClassificationResult, len(texts))

	p := pool.New().WithMaxGoroutines(4).WithErrors()
	for start := 0; start < len(texts); start += chunkSize {
		start := start
		end := util.Min(start+chunkSize, len(texts))
		p.Go(func() error {
			chunk, err := a.classifier.ScoreBatch(ctx, texts[start:end])
			if err != nil {
				return err
			}
			copy(results[start:end], chunk)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
