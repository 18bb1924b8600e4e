package report

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/pkg/errors"
)

func comment(id, text string) domain.Comment {
	return domain.Comment{ID: id, Author: "user-" + id, Text: text, PublishedAt: "2024-01-01T00:00:00Z"}
}

func verdict(text string, toxic bool, confidence float64) domain.ClassificationResult {
	label := domain.LabelNormal
	if toxic {
		label = domain.LabelHateSpeech
	}
	return domain.ClassificationResult{
		Text:          text,
		Label:         label,
		Confidence:    confidence,
		IsToxic:       toxic,
		DecisionBasis: domain.BasisThreshold,
	}
}

func TestBuildLengthMismatchIsFault(t *testing.T) {
	_, err := Build("vid", "title", []domain.Comment{comment("1", "a")}, nil)
	if !errors.IsCode(err, errors.CodeBatchMismatch) {
		t.Errorf("expected BATCH_MISMATCH, got %v", err)
	}
}

func TestBuildStatistics(t *testing.T) {
	comments := []domain.Comment{
		comment("1", "fine"),
		comment("2", "awful"),
		comment("3", "fine too"),
	}
	results := []domain.ClassificationResult{
		verdict("fine", false, 0.1),
		verdict("awful", true, 0.9),
		verdict("fine too", false, 0.2),
	}

	rep, err := Build("vid", "My Video", comments, results)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if rep.TotalAnalyzed != 3 || rep.ToxicCount != 1 || rep.NormalCount != 2 {
		t.Errorf("unexpected counts: total=%d toxic=%d normal=%d",
			rep.TotalAnalyzed, rep.ToxicCount, rep.NormalCount)
	}
	if rep.ToxicCount+rep.NormalCount != rep.TotalAnalyzed {
		t.Error("counts must sum to total")
	}
	if rep.ToxicityPercentage != 33.33 {
		t.Errorf("expected 33.33, got %v", rep.ToxicityPercentage)
	}
	if rep.AnalyzedAt.IsZero() {
		t.Error("expected analysis timestamp")
	}
}

func TestBuildZeroTotal(t *testing.T) {
	rep, err := Build("vid", "Empty", nil, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rep.ToxicityPercentage != 0.0 {
		t.Errorf("expected 0.0 percentage on empty input, got %v", rep.ToxicityPercentage)
	}
	if len(rep.TopToxic) != 0 {
		t.Errorf("expected empty top_toxic, got %d entries", len(rep.TopToxic))
	}
}

func TestBuildRankingStableOnTies(t *testing.T) {
	var comments []domain.Comment
	var results []domain.ClassificationResult
	// Three tied at 0.8 interleaved with higher and lower confidences.
	confidences := []float64{0.8, 0.95, 0.8, 0.5, 0.8}
	for i, conf := range confidences {
		id := fmt.Sprintf("%d", i)
		comments = append(comments, comment(id, "text "+id))
		results = append(results, verdict("text "+id, true, conf))
	}

	rep, err := Build("vid", "title", comments, results)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	gotOrder := make([]string, len(rep.TopToxic))
	for i, ac := range rep.TopToxic {
		gotOrder[i] = ac.Comment.ID
	}
	// 0.95 first, then the tied 0.8s in original fetch order, then 0.5.
	wantOrder := []string{"1", "0", "2", "4", "3"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("expected order %v, got %v", wantOrder, gotOrder)
	}
}

func TestBuildRankingReproducible(t *testing.T) {
	comments := []domain.Comment{comment("a", "x"), comment("b", "y"), comment("c", "z")}
	results := []domain.ClassificationResult{
		verdict("x", true, 0.7),
		verdict("y", true, 0.7),
		verdict("z", true, 0.7),
	}

	first, err := Build("vid", "title", comments, results)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Build("vid", "title", comments, results)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		for j := range first.TopToxic {
			if first.TopToxic[j].Comment.ID != again.TopToxic[j].Comment.ID {
				t.Fatalf("ranking not reproducible on run %d", i)
			}
		}
	}
}

func TestBuildTruncatesToTen(t *testing.T) {
	var comments []domain.Comment
	var results []domain.ClassificationResult
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("%d", i)
		comments = append(comments, comment(id, "toxic "+id))
		results = append(results, verdict("toxic "+id, true, float64(i)/25.0))
	}

	rep, err := Build("vid", "title", comments, results)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(rep.TopToxic) != 10 {
		t.Errorf("expected top_toxic capped at 10, got %d", len(rep.TopToxic))
	}
	if rep.ToxicCount != 25 {
		t.Errorf("toxic count must reflect all toxic comments, got %d", rep.ToxicCount)
	}
	// Highest confidence first.
	if rep.TopToxic[0].Comment.ID != "24" {
		t.Errorf("expected most confident first, got id %s", rep.TopToxic[0].Comment.ID)
	}
}

func TestBuildPercentageFormula(t *testing.T) {
	tests := []struct {
		toxic, total int
		want         float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 7, 14.29},
		{3, 3, 100.0},
		{0, 5, 0.0},
	}

	for _, tt := range tests {
		var comments []domain.Comment
		var results []domain.ClassificationResult
		for i := 0; i < tt.total; i++ {
			id := fmt.Sprintf("%d", i)
			comments = append(comments, comment(id, "t"))
			results = append(results, verdict("t", i < tt.toxic, 0.9))
		}

		rep, err := Build("vid", "title", comments, results)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if rep.ToxicityPercentage != tt.want {
			t.Errorf("%d/%d: expected %v, got %v", tt.toxic, tt.total, tt.want, rep.ToxicityPercentage)
		}
	}
}
