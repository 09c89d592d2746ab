package probe

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/freenight/internal/booking"
	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/metrics"
)

// ProbeDateRange probes every date and returns one result per date, in input order.
//
// Dates run concurrently in chunks of the configured batch size; a chunk
// finishes before the next one starts, which bounds the load on the paid
// providers. The only error is ErrNoRenderer, returned before any fetch.
// Once ctx is done the remaining dates are filled in as indeterminate.
func (p *Prober) ProbeDateRange(ctx context.Context, hotelCode, groupCode string, dates []time.Time) ([]domain.DateResult, error) {
	if !p.HasRenderer() {
		return nil, ErrNoRenderer
	}

	start := time.Now()
	results := make([]domain.DateResult, len(dates))

	for lo := 0; lo < len(dates); lo += p.batchSize {
		hi := min(lo+p.batchSize, len(dates))

		if ctx.Err() != nil {
			for i := lo; i < len(dates); i++ {
				results[i] = p.skipped(hotelCode, dates[i], groupCode)
			}
			break
		}

		var g errgroup.Group
		for i := lo; i < hi; i++ {
			g.Go(func() error {
				results[i] = p.ProbeDate(ctx, hotelCode, dates[i], groupCode)
				return nil
			})
		}
		_ = g.Wait()
	}

	elapsed := time.Since(start)
	metrics.ObserveBatch(elapsed)
	p.log.Info("date range probed",
		logger.String("hotel", hotelCode),
		logger.Int("dates", len(dates)),
		logger.Int("available", countStatus(results, domain.StatusAvailable)),
		logger.Duration("elapsed", elapsed),
	)

	return results, nil
}

func (p *Prober) skipped(hotelCode string, date time.Time, groupCode string) domain.DateResult {
	return domain.FailedResult(date, booking.BuildURL(hotelCode, date, groupCode))
}

func countStatus(results []domain.DateResult, status domain.Status) int {
	n := 0
	for _, r := range results {
		if r.Signal.Status == status {
			n++
		}
	}
	return n
}
