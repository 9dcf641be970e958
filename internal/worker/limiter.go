package worker

import (
	"math"

	"golang.org/x/time/rate"
)

// ProgressThrottle limits how often shape progress is reported. The last
// step of a file always passes so a consumer sees every file reach 100%.
type ProgressThrottle struct {
	limiter *rate.Limiter
}

// NewProgressThrottle allows perSecond updates with the given burst. A
// non-positive rate disables throttling.
func NewProgressThrottle(perSecond float64, burst int) *ProgressThrottle {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Limit(perSecond)
	if perSecond <= 0 || math.IsInf(perSecond, 1) {
		limit = rate.Inf
	}

	return &ProgressThrottle{
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Allow reports whether the update for done of total should be published
func (t *ProgressThrottle) Allow(done, total int) bool {
	if done >= total {
		return true
	}
	return t.limiter.Allow()
}
