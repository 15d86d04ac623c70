package tavus

import (
	"time"

	"golang.org/x/time/rate"
)

// NewRateLimiter returns a limiter that allows up to perMinute conversation
// creations per minute, all of which may be used at once.
//
// Limiters are not enforced by default. Pass one to [WithRateLimiter] to make
// a client wait before sending.
//
// # Example
//
//	client := tavus.NewClient(apiKey, tavus.WithRateLimiter(tavus.NewRateLimiter(10)))
func NewRateLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}
