package youtube

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	youtubeapi "google.golang.org/api/youtube/v3"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		wantID string
		wantOK bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch with extra params", "https://www.youtube.com/watch?v=abc12345678&t=42s", "abc12345678", true},
		{"no scheme", "youtube.com/watch?v=abc12345678", "abc12345678", true},
		{"not youtube", "https://example.com/watch?v=abc12345678", "", false},
		{"id too short", "https://www.youtube.com/watch?v=short", "", false},
		{"empty", "", "", false},
		{"bare id", "dQw4w9WgXcQ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.ref, id, tt.wantID)
			}
		})
	}
}

func TestExtractVideoIDPriorityOrder(t *testing.T) {
	// A reference matching multiple shapes resolves via the first pattern.
	ref := "https://www.youtube.com/watch?v=aaaaaaaaaaa https://youtu.be/bbbbbbbbbbb"
	id, ok := ExtractVideoID(ref)
	if !ok || id != "aaaaaaaaaaa" {
		t.Errorf("expected watch pattern to win, got %q (ok=%v)", id, ok)
	}
}

func TestValidateReference(t *testing.T) {
	if !ValidateReference("https://youtu.be/dQw4w9WgXcQ") {
		t.Error("expected valid reference")
	}
	if ValidateReference("https://vimeo.com/12345") {
		t.Error("expected invalid reference")
	}
}

func testClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		logger: zap.NewNop(),
		quota:  newQuotaLedger(zap.NewNop()),
	}
}

func apiError(code int, reason string) *googleapi.Error {
	return &googleapi.Error{
		Code: code,
		Errors: []googleapi.ErrorItem{
			{Reason: reason, Message: reason},
		},
	}
}

func TestClassifyError(t *testing.T) {
	c := testClient(t)

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"video not found", apiError(404, "videoNotFound"), apperrors.CodeNotFound},
		{"forbidden", apiError(403, "forbidden"), apperrors.CodeForbidden},
		{"quota exceeded", apiError(403, "quotaExceeded"), apperrors.CodeTransientSource},
		{"backend error", apiError(500, "backendError"), apperrors.CodeTransientSource},
		{"plain transport error", errors.New("connection reset"), apperrors.CodeTransientSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.classifyError(tt.err, "abc12345678")
			if !apperrors.IsCode(got, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, got)
			}
		})
	}
}

func TestClassifyErrorDisabledIsSentinel(t *testing.T) {
	c := testClient(t)
	got := c.classifyError(apiError(403, "commentsDisabled"), "abc12345678")
	if !errors.Is(got, errCommentsDisabled) {
		t.Errorf("expected comments-disabled sentinel, got %v", got)
	}
}

func TestClassifyErrorCarriesRawReason(t *testing.T) {
	c := testClient(t)
	got := c.classifyError(apiError(500, "internalError"), "abc12345678")

	var appErr *apperrors.AppError
	if !errors.As(got, &appErr) {
		t.Fatalf("expected AppError, got %T", got)
	}
	if appErr.Context["reason"] != "internalError" {
		t.Errorf("expected raw reason in context, got %v", appErr.Context["reason"])
	}
}

func TestFetchCommentsWithoutKey(t *testing.T) {
	client, err := NewClient(context.Background(), "", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient without key must not fail: %v", err)
	}
	if client.Available() {
		t.Error("client without key must report unavailable")
	}

	_, err = client.FetchComments(context.Background(), "abc12345678", 50)
	if !apperrors.IsCode(err, apperrors.CodeSourceUnavailable) {
		t.Errorf("expected SOURCE_UNAVAILABLE, got %v", err)
	}
}

func TestFetchTitleFallbackWithoutKey(t *testing.T) {
	client, err := NewClient(context.Background(), "", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient without key must not fail: %v", err)
	}

	title := client.FetchTitle(context.Background(), "abc12345678")
	if title != "Video abc12345678" {
		t.Errorf("expected deterministic fallback title, got %q", title)
	}
}

func TestCommentFromThread(t *testing.T) {
	item := &youtubeapi.CommentThread{
		Snippet: &youtubeapi.CommentThreadSnippet{
			TopLevelComment: &youtubeapi.Comment{
				Id: "c1",
				Snippet: &youtubeapi.CommentSnippet{
					AuthorDisplayName: "alice",
					TextDisplay:       "great video",
					PublishedAt:       "2024-05-01T10:00:00Z",
				},
			},
		},
	}

	comment, ok := commentFromThread(item)
	if !ok {
		t.Fatal("expected comment extraction to succeed")
	}
	if comment.ID != "c1" || comment.Author != "alice" || comment.Text != "great video" {
		t.Errorf("unexpected comment: %+v", comment)
	}

	if _, ok := commentFromThread(nil); ok {
		t.Error("nil thread must not produce a comment")
	}
	if _, ok := commentFromThread(&youtubeapi.CommentThread{}); ok {
		t.Error("thread without snippet must not produce a comment")
	}
}

func TestCommentFromThreadAnonymousAuthor(t *testing.T) {
	item := &youtubeapi.CommentThread{
		Snippet: &youtubeapi.CommentThreadSnippet{
			TopLevelComment: &youtubeapi.Comment{
				Id:      "c2",
				Snippet: &youtubeapi.CommentSnippet{TextDisplay: "hi"},
			},
		},
	}

	comment, ok := commentFromThread(item)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if comment.Author != "Unknown" {
		t.Errorf("expected Unknown author fallback, got %q", comment.Author)
	}
}

func TestQuotaLedger(t *testing.T) {
	q := newQuotaLedger(zap.NewNop())

	if err := q.check(1); err != nil {
		t.Fatalf("fresh ledger must allow small costs: %v", err)
	}

	// Exhaust usable quota; the safety margin must be refused, not the API.
	used, remaining, _ := q.Status()
	if used != 0 {
		t.Errorf("expected zero usage, got %d", used)
	}
	q.consume(remaining - 100)

	if err := q.check(1000); err == nil {
		t.Error("expected refusal when cost would eat the safety margin")
	} else if !apperrors.IsCode(err, apperrors.CodeTransientSource) {
		t.Errorf("expected TRANSIENT_SOURCE_ERROR, got %v", err)
	}
}
