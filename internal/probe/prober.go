// Package probe checks voucher availability for one date or a range of dates.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/booking"
	"github.com/MrSnakeDoc/freenight/internal/classify"
	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/metrics"
	"github.com/MrSnakeDoc/freenight/internal/provider"
)

const DefaultBatchSize = 10

var (
	// ErrNoRenderer is returned before any fetch when neither JS renderer has credentials.
	ErrNoRenderer   = errors.New("no JS rendering provider configured")
	ErrInvalidRange = errors.New("invalid date range")
	ErrTooManyDates = errors.New("too many dates requested")
)

// Providers are tried in field order. Any of them may be nil.
type Providers struct {
	Lightweight provider.Fetcher
	PrimaryJS   provider.Fetcher
	SecondaryJS provider.Fetcher
}

// Prober runs the fetch-and-classify fallback chain. It holds no mutable
// state, so one Prober serves any number of concurrent probes.
type Prober struct {
	providers  Providers
	classifier *classify.Classifier
	log        logger.Logger
	batchSize  int
}

func New(providers Providers, classifier *classify.Classifier, log logger.Logger, batchSize int) *Prober {
	if classifier == nil {
		classifier = classify.Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Prober{
		providers:  providers,
		classifier: classifier,
		log:        log,
		batchSize:  batchSize,
	}
}

// HasRenderer reports whether at least one JS renderer can be used.
func (p *Prober) HasRenderer() bool {
	return configured(p.providers.PrimaryJS) || configured(p.providers.SecondaryJS)
}

// ProviderStatus reports which providers have credentials, keyed by provider id.
func (p *Prober) ProviderStatus() map[domain.ProviderID]bool {
	return map[domain.ProviderID]bool{
		domain.ProviderLightweight: configured(p.providers.Lightweight),
		domain.ProviderPrimaryJS:   configured(p.providers.PrimaryJS),
		domain.ProviderSecondaryJS: configured(p.providers.SecondaryJS),
	}
}

// ProbeDate checks a single arrival date. It never fails: when no provider
// returns a page the result is indeterminate with provider "none".
//
// Order: the lightweight fetch answers alone only when it sees the voucher
// rate. Otherwise the primary renderer decides, and the secondary renderer is
// used when the primary fails. If both renderers fail the date is
// indeterminate, even when the lightweight page loaded.
func (p *Prober) ProbeDate(ctx context.Context, hotelCode string, date time.Time, groupCode string) (res domain.DateResult) {
	bookingURL := booking.BuildURL(hotelCode, date, groupCode)
	log := p.log.With(
		logger.String("hotel", hotelCode),
		logger.Date("date", date),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("probe panicked", logger.Error(fmt.Errorf("%v", r)))
			res = domain.FailedResult(date, bookingURL)
		}
	}()

	// The lightweight fetch cannot see rendered rates, so only a positive
	// answer from it settles the date.
	if sig, ok := p.attempt(ctx, p.providers.Lightweight, bookingURL, log); ok && sig.IsAvailable() {
		metrics.RecordFastPath()
		log.Debug("fast path hit", logger.String("matched", sig.Matched))
		return p.result(date, bookingURL, domain.ProviderLightweight, sig)
	}

	for _, f := range []provider.Fetcher{p.providers.PrimaryJS, p.providers.SecondaryJS} {
		sig, ok := p.attempt(ctx, f, bookingURL, log)
		if !ok {
			continue
		}
		return p.result(date, bookingURL, f.Name(), sig)
	}

	log.Warn("all providers failed")
	return domain.FailedResult(date, bookingURL)
}

// attempt fetches and classifies with one provider. ok is false when the
// provider is absent or the fetch failed.
func (p *Prober) attempt(ctx context.Context, f provider.Fetcher, bookingURL string, log logger.Logger) (domain.Signal, bool) {
	if !configured(f) {
		return domain.Signal{}, false
	}
	name := string(f.Name())

	page, err := f.Fetch(ctx, bookingURL)
	if err != nil {
		outcome, elapsed := string(provider.KindNetwork), time.Duration(0)
		var fe *provider.FetchError
		if errors.As(err, &fe) {
			outcome, elapsed = string(fe.Kind), fe.Elapsed
		}
		metrics.RecordFetch(name, outcome, elapsed)
		log.Info("fetch failed, falling back",
			logger.String("provider", name),
			logger.String("kind", outcome),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
		return domain.Signal{}, false
	}

	metrics.RecordFetch(name, "ok", page.Elapsed)
	log.Debug("fetched",
		logger.String("provider", name),
		logger.Int("status", page.Status),
		logger.Duration("elapsed", page.Elapsed),
		logger.Int("size", page.Size()),
	)

	sig := p.classifier.Classify(page.Body)
	metrics.RecordClassification(name, string(sig.Status))
	if !sig.Conclusive() {
		log.Debug("page matched no phrase set",
			logger.String("provider", name),
			logger.Int("size", page.Size()),
		)
	}
	return sig, true
}

func (p *Prober) result(date time.Time, bookingURL string, id domain.ProviderID, sig domain.Signal) domain.DateResult {
	return domain.DateResult{
		Date:       date,
		Signal:     sig,
		BookingURL: bookingURL,
		Provider:   id,
	}
}

func configured(f provider.Fetcher) bool {
	return f != nil && f.Configured()
}
