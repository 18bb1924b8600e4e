// Package youtube implements the comment source client: video reference
// validation, ID extraction, best-effort title lookup, and bounded paginated
// comment retrieval over the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/maruv/hatespeech-detector-go/internal/constants"
	"github.com/maruv/hatespeech-detector-go/internal/domain"
	"github.com/maruv/hatespeech-detector-go/internal/service/cache"
	"github.com/maruv/hatespeech-detector-go/internal/util"
	apperrors "github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

// Known URL shapes, tried in priority order. IDs are always 11 characters.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID returns the first video ID matched by the known URL shapes.
// Pure, no I/O.
func ExtractVideoID(reference string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(reference); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ValidateReference reports whether the reference is a recognizable video URL.
func ValidateReference(reference string) bool {
	_, ok := ExtractVideoID(reference)
	return ok
}

// Client talks to the YouTube Data API. A client constructed without an API
// key stays usable for validation and extraction but reports the source as
// unavailable on any fetch.
type Client struct {
	service *youtubeapi.Service
	cache   *cache.CacheService
	logger  *zap.Logger
	quota   *quotaLedger
}

// NewClient builds the API client. A missing key is not a constructor error;
// the degraded state is surfaced per-fetch so the HTTP layer can report
// service-degraded status instead of refusing to start.
func NewClient(ctx context.Context, apiKey string, cacheSvc *cache.CacheService, logger *zap.Logger) (*Client, error) {
	c := &Client{
		cache:  cacheSvc,
		logger: logger,
		quota:  newQuotaLedger(logger),
	}

	if apiKey == "" {
		logger.Warn("YOUTUBE_API_KEY not configured, comment retrieval disabled")
		return c, nil
	}

	service, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	c.service = service

	logger.Info("YouTube Data API client initialized")
	return c, nil
}

// Available reports whether the client holds a usable API handle.
func (c *Client) Available() bool {
	return c.service != nil
}

// FetchTitle resolves the video's display title. Best-effort: every failure
// path returns the deterministic fallback, a title must never block analysis.
func (c *Client) FetchTitle(ctx context.Context, videoID string) string {
	fallback := "Video " + videoID

	if c.service == nil {
		return fallback
	}

	if c.cache != nil {
		if title := c.cache.GetTitle(ctx, videoID); title != "" {
			return title
		}
	}

	if err := c.quota.check(constants.YouTubeAPI.VideosQuotaCost); err != nil {
		c.logger.Warn("Skipping title lookup, quota low", zap.String("video_id", videoID))
		return fallback
	}

	call := c.service.Videos.List([]string{"snippet"}).Id(videoID)
	response, err := call.Context(ctx).Do()
	if err != nil {
		c.logger.Warn("Title lookup failed",
			zap.String("video_id", videoID),
			zap.Error(err))
		return fallback
	}
	c.quota.consume(constants.YouTubeAPI.VideosQuotaCost)

	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		c.logger.Warn("No video metadata found", zap.String("video_id", videoID))
		return fallback
	}

	title := response.Items[0].Snippet.Title
	if c.cache != nil {
		c.cache.SetTitle(ctx, videoID, title)
	}
	return title
}

// errCommentsDisabled is internal to the fetch loop; callers observe an
// empty slice, not an error. Disabled comments are a valid terminal state.
var errCommentsDisabled = errors.New("comments disabled")

// FetchComments retrieves up to maxCount top-level comments ordered by
// relevance, paging sequentially through the API. Each page asks for
// min(remaining, page cap) items; the loop stops at maxCount or when the
// source reports no further page.
func (c *Client) FetchComments(ctx context.Context, videoID string, maxCount int) ([]domain.Comment, error) {
	if c.service == nil {
		return nil, apperrors.NewSourceUnavailable("YOUTUBE_API_KEY not configured")
	}

	c.logger.Info("Fetching comments",
		zap.String("video_id", videoID),
		zap.Int("max_count", maxCount))

	comments := make([]domain.Comment, 0, maxCount)
	pageToken := ""

	for len(comments) < maxCount {
		if err := c.quota.check(constants.YouTubeAPI.CommentsQuotaCost); err != nil {
			return nil, err
		}

		remaining := maxCount - len(comments)
		pageSize := int64(util.Min(remaining, int(constants.YouTubeAPI.MaxCommentsPerPage)))

		call := c.service.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			MaxResults(pageSize).
			Order(constants.YouTubeAPI.CommentOrder).
			TextFormat(constants.YouTubeAPI.TextFormat)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Context(ctx).Do()
		if err != nil {
			classified := c.classifyError(err, videoID)
			if errors.Is(classified, errCommentsDisabled) {
				c.logger.Warn("Comments disabled for video", zap.String("video_id", videoID))
				return []domain.Comment{}, nil
			}
			return nil, classified
		}
		c.quota.consume(constants.YouTubeAPI.CommentsQuotaCost)

		for _, item := range response.Items {
			if len(comments) >= maxCount {
				break
			}
			comment, ok := commentFromThread(item)
			if !ok {
				continue
			}
			comments = append(comments, comment)
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	c.logger.Info("Comments fetched",
		zap.String("video_id", videoID),
		zap.Int("count", len(comments)))

	return comments, nil
}

func commentFromThread(item *youtubeapi.CommentThread) (domain.Comment, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil {
		return domain.Comment{}, false
	}
	top := item.Snippet.TopLevelComment
	if top.Snippet == nil {
		return domain.Comment{}, false
	}

	author := top.Snippet.AuthorDisplayName
	if author == "" {
		author = "Unknown"
	}

	return domain.Comment{
		ID:          top.Id,
		Author:      author,
		Text:        top.Snippet.TextDisplay,
		PublishedAt: top.Snippet.PublishedAt,
	}, true
}

// classifyError maps a YouTube API failure onto the error taxonomy. The
// reason strings come from the API's error details; anything unrecognized
// becomes a transient source error carrying the raw reason.
func (c *Client) classifyError(err error, videoID string) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return apperrors.NewTransientSource("transport", videoID, err)
	}

	reason := ""
	if len(apiErr.Errors) > 0 {
		reason = apiErr.Errors[0].Reason
	}

	switch reason {
	case "videoNotFound":
		return apperrors.NewNotFound(videoID)
	case "commentsDisabled":
		return errCommentsDisabled
	case "forbidden":
		return apperrors.NewForbidden(videoID)
	default:
		if reason == "" {
			reason = fmt.Sprintf("http_%d", apiErr.Code)
		}
		c.logger.Error("YouTube API error",
			zap.String("video_id", videoID),
			zap.String("reason", reason),
			zap.Int("status", apiErr.Code))
		return apperrors.NewTransientSource(reason, videoID, err)
	}
}
