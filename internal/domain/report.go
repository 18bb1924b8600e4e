package domain

import "time"

// Placeholder titles for zero-statistics reports.
const (
	TitleNoComments   = "No comments available"
	TitleNoAnalyzable = "No analyzable comments"
)

// AnalyzedComment joins a fetched comment with its classification.
type AnalyzedComment struct {
	Comment        Comment              `json:"comment"`
	Classification ClassificationResult `json:"classification"`
}

// AnalysisReport is the final outcome of one video analysis. Built once,
// never mutated, never persisted.
type AnalysisReport struct {
	VideoID            string            `json:"video_id"`
	Title              string            `json:"title"`
	TotalAnalyzed      int               `json:"total_analyzed"`
	ToxicCount         int               `json:"toxic_count"`
	NormalCount        int               `json:"normal_count"`
	ToxicityPercentage float64           `json:"toxicity_percentage"`
	TopToxic           []AnalyzedComment `json:"top_toxic"`
	AnalyzedAt         time.Time         `json:"analyzed_at"`
}

// EmptyReport returns a zero-statistics report for videos with nothing to
// analyze. Distinguishable from errors: this is a valid terminal state.
func EmptyReport(videoID, title string) *AnalysisReport {
	return &AnalysisReport{
		VideoID:            videoID,
		Title:              title,
		TotalAnalyzed:      0,
		ToxicCount:         0,
		NormalCount:        0,
		ToxicityPercentage: 0.0,
		TopToxic:           []AnalyzedComment{},
		AnalyzedAt:         time.Now().UTC(),
	}
}
