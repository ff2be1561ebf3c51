package email

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/mmynk/lunchpoll/internal/models"
)

// RateLimitedSender throttles outbound mail with a token bucket.
type RateLimitedSender struct {
	next    Sender
	limiter *rate.Limiter
}

// NewRateLimitedSender wraps next so that at most perSecond messages are sent
// per second, with bursts of up to burst messages.
func NewRateLimitedSender(next Sender, perSecond float64, burst int) *RateLimitedSender {
	return &RateLimitedSender{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Send waits for a token, then delivers. Cancelling ctx while waiting
// returns the context error.
func (s *RateLimitedSender) Send(ctx context.Context, inv models.Invitation) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("email rate limit: %w", err)
	}
	return s.next.Send(ctx, inv)
}
