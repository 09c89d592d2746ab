package provider

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// Limited throttles a Fetcher with a token bucket shared by all callers,
// keeping a batch of concurrent probes under the upstream plan's request rate.
type Limited struct {
	next    Fetcher
	limiter *rate.Limiter
}

// NewLimited wraps next. A non-positive rps returns next unchanged.
func NewLimited(next Fetcher, rps float64, burst int) Fetcher {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *Limited) Name() domain.ProviderID { return l.next.Name() }

func (l *Limited) Configured() bool { return l.next.Configured() }

func (l *Limited) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if !l.next.Configured() {
		return l.next.Fetch(ctx, targetURL)
	}

	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{
			Provider: l.next.Name(),
			URL:      targetURL,
			Kind:     KindTimeout,
			Elapsed:  time.Since(start),
			Err:      err,
		}
	}
	return l.next.Fetch(ctx, targetURL)
}
