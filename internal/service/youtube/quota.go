package youtube

import (
	"sync"
	"time"

	"github.com/maruv/hatespeech-detector-go/internal/constants"
	apperrors "github.com/maruv/hatespeech-detector-go/pkg/errors"
	"go.uber.org/zap"
)

// quotaLedger tracks daily API unit usage. YouTube resets quota at midnight
// Pacific; the ledger refuses new calls once usage would eat into the safety
// margin rather than letting the API start returning 403s mid-pagination.
type quotaLedger struct {
	mu     sync.Mutex
	used   int
	reset  time.Time
	logger *zap.Logger
}

func newQuotaLedger(logger *zap.Logger) *quotaLedger {
	return &quotaLedger{
		reset:  nextQuotaReset(),
		logger: logger,
	}
}

func nextQuotaReset() time.Time {
	pt, _ := time.LoadLocation("America/Los_Angeles")
	now := time.Now().In(pt)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, pt)
}

func (q *quotaLedger) check(cost int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if time.Now().After(q.reset) {
		q.used = 0
		q.reset = nextQuotaReset()
		q.logger.Info("YouTube API quota auto-reset", zap.Time("next_reset", q.reset))
	}

	limit := constants.YouTubeAPI.DailyQuotaLimit - constants.YouTubeAPI.QuotaSafetyMargin
	if q.used+cost > limit {
		return apperrors.NewTransientSource("quotaExceeded", "", nil)
	}
	return nil
}

func (q *quotaLedger) consume(cost int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.used += cost
	remaining := constants.YouTubeAPI.DailyQuotaLimit - q.used

	q.logger.Debug("YouTube API quota consumed",
		zap.Int("cost", cost),
		zap.Int("used", q.used),
		zap.Int("remaining", remaining))

	if remaining < constants.YouTubeAPI.QuotaSafetyMargin {
		q.logger.Warn("YouTube API quota running low",
			zap.Int("remaining", remaining),
			zap.Time("reset", q.reset))
	}
}

// Status returns current usage for the stats endpoint.
func (q *quotaLedger) Status() (used, remaining int, reset time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if time.Now().After(q.reset) {
		return 0, constants.YouTubeAPI.DailyQuotaLimit, nextQuotaReset()
	}
	return q.used, constants.YouTubeAPI.DailyQuotaLimit - q.used, q.reset
}

// QuotaStatus exposes the ledger state on the client.
func (c *Client) QuotaStatus() (used, remaining int, reset time.Time) {
	return c.quota.Status()
}
