// Package report assembles per-comment classifications into the final
// toxicity report: counts, percentage, and the stable top-K ranking.
package report

import (
	"sort"
	"time"

	"github.com/maruv/hatespeech-detector-go/internal/constants"
	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/internal/util"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
)

// Build joins comments with their classifications by position and computes
// the report statistics. A length mismatch is a pipeline defect, not a
// user-facing condition.
//
// The toxic ranking is sorted by confidence descending with a stable sort:
// ties keep original fetch order. Callers rely on reproducible output for
// identical input.
func Build(videoID, title string, comments []domain.Comment, results []domain.ClassificationResult) (*domain.AnalysisReport, error) {
	if len(comments) != len(results) {
		return nil, errors.NewBatchMismatch(len(comments), len(results))
	}

	toxic := make([]domain.AnalyzedComment, 0)
	toxicCount := 0
	for i, result := range results {
		if result.IsToxic {
			toxicCount++
			toxic = append(toxic, domain.AnalyzedComment{
				Comment:        comments[i],
				Classification: result,
			})
		}
	}

	sort.SliceStable(toxic, func(a, b int) bool {
		return toxic[a].Classification.Confidence > toxic[b].Classification.Confidence
	})
	if len(toxic) > constants.Classification.TopToxicLimit {
		toxic = toxic[:constants.Classification.TopToxicLimit]
	}

	total := len(comments)
	percentage := 0.0
	if total > 0 {
		percentage = util.Round2(100 * float64(toxicCount) / float64(total))
	}

	return &domain.AnalysisReport{
		VideoID:            videoID,
		Title:              title,
		TotalAnalyzed:      total,
		ToxicCount:         toxicCount,
		NormalCount:        total - toxicCount,
		ToxicityPercentage: percentage,
		TopToxic:           toxic,
		AnalyzedAt:         time.Now().UTC(),
	}, nil
}
