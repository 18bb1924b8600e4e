package constants

import "time"

var YouTubeAPI = struct {
	MaxCommentsPerPage int64
	MaxCommentsPerRun  int
	CommentOrder       string
	TextFormat         string
	DailyQuotaLimit    int
	CommentsQuotaCost  int
	VideosQuotaCost    int
	QuotaSafetyMargin  int
}{
	MaxCommentsPerPage: 100, // commentThreads.list hard cap
	MaxCommentsPerRun:  200,
	CommentOrder:       "relevance",
	TextFormat:         "plainText",
	DailyQuotaLimit:    10000,
	CommentsQuotaCost:  1, // commentThreads.list cost
	VideosQuotaCost:    1, // videos.list cost
	QuotaSafetyMargin:  500,
}

var CacheTTL = struct {
	VideoTitle time.Duration
}{
	VideoTitle: 2 * time.Hour,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var Classification = struct {
	DefaultThreshold  float64 // favors recall over the usual 0.5
	ConfidentCutoff   float64 // both-confident bar for model comparison
	MaxBatchSize      int
	MaxSequenceLength int
	TopToxicLimit     int
}{
	DefaultThreshold:  0.3,
	ConfidentCutoff:   0.7,
	MaxBatchSize:      64,
	MaxSequenceLength: 128,
	TopToxicLimit:     10,
}

var ServerConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxTextLength   int
	MaxBatchTexts   int
}{
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxTextLength:   5000,
	MaxBatchTexts:   100,
}
