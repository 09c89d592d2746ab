package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/metrics"
	"github.com/MrSnakeDoc/freenight/internal/provider"
	"github.com/MrSnakeDoc/freenight/internal/sources/catalog"
)

// ErrNoCatalogSource is returned by Refresh when neither a seed file nor a landing page is configured.
var ErrNoCatalogSource = errors.New("no catalog source configured")

// CatalogOptions selects the catalog sources. Both are optional.
type CatalogOptions struct {
	SeedFile   string             // hotels.yaml, empty = no seed
	LandingURL string             // program landing page
	Fetchers   []provider.Fetcher // tried in order for the landing page, empty = no scraping
	Interval   time.Duration
}

// CatalogRefresher periodically rebuilds the hotel catalog from its sources
type CatalogRefresher struct {
	seed          *catalog.Loader
	landingURL    string
	fetchers      []provider.Fetcher
	store         HotelStore
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	mu            sync.Mutex // one refresh at a time
}

// NewCatalogRefresher creates a new catalog refresher. store may be nil.
func NewCatalogRefresher(
	opts CatalogOptions,
	store HotelStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	manualTrigger chan struct{},
) *CatalogRefresher {
	var seed *catalog.Loader
	if opts.SeedFile != "" {
		seed = catalog.NewLoader(opts.SeedFile)
	}
	var fetchers []provider.Fetcher
	if opts.LandingURL != "" {
		fetchers = opts.Fetchers
	}
	if opts.Interval <= 0 {
		opts.Interval = 24 * time.Hour
	}

	return &CatalogRefresher{
		seed:          seed,
		landingURL:    opts.LandingURL,
		fetchers:      fetchers,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      opts.Interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Enabled reports whether any source is configured
func (cr *CatalogRefresher) Enabled() bool {
	return cr.seed != nil || len(cr.fetchers) > 0
}

// Start refreshes once, then keeps refreshing on the interval and on manual triggers.
// A failed first refresh is logged, not returned: probing does not need the catalog.
func (cr *CatalogRefresher) Start(ctx context.Context) error {
	if !cr.Enabled() {
		cr.logger.Info("no catalog source configured, hotel catalog disabled")
		return nil
	}

	if err := cr.Refresh(ctx); err != nil {
		cr.logger.Warn("initial catalog refresh failed",
			logger.Int("hotels_in_index", cr.index.Count()),
			logger.Error(err))
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cr.refreshLogged(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog refresh triggered")
				cr.refreshLogged(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (cr *CatalogRefresher) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

func (cr *CatalogRefresher) refreshLogged(ctx context.Context) {
	if err := cr.Refresh(ctx); err != nil {
		cr.logger.Error("failed to refresh catalog", logger.Error(err))
	}
}

// Refresh loads every source, merges them and updates index + store.
//
// Hotels missing from every source that answered are marked disabled so the
// garbage collector can drop them later. Hotels known through a source that
// failed this round are left untouched.
func (cr *CatalogRefresher) Refresh(ctx context.Context) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.Enabled() {
		return ErrNoCatalogSource
	}

	failed := make(map[string]bool)
	var landing, seed []*domain.Hotel
	var errs []error

	if len(cr.fetchers) > 0 {
		hotels, err := catalog.FetchLandingPage(ctx, cr.landingURL, cr.fetchers...)
		if err != nil {
			failed[catalog.SourceLanding] = true
			errs = append(errs, fmt.Errorf("landing page: %w", err))
		} else {
			landing = hotels
			cr.logger.Info("loaded hotels from landing page", logger.Int("count", len(hotels)))
		}
	}

	if cr.seed != nil {
		config, err := cr.seed.Load()
		if err == nil {
			seed, err = catalog.MapSeed(config)
		}
		if err != nil {
			failed[catalog.SourceSeed] = true
			errs = append(errs, fmt.Errorf("seed file: %w", err))
		} else {
			cr.logger.Info("loaded hotels from seed file", logger.Int("count", len(seed)))
		}
	}

	if len(landing) == 0 && len(seed) == 0 {
		return fmt.Errorf("all catalog sources failed: %w", errors.Join(errs...))
	}
	if len(errs) > 0 {
		sources := make([]string, 0, len(failed))
		for src := range failed {
			sources = append(sources, src)
		}
		slices.Sort(sources)
		cr.logger.Warn("catalog source failed, keeping its hotels",
			logger.Strings("sources", sources),
			logger.Error(errors.Join(errs...)))
	}

	hotels := cr.reconcile(catalog.Merge(landing, seed), failed, time.Now())

	cr.index.UpdateHotels(hotels)
	metrics.SetCatalogHotels(cr.index.EnabledCount())

	// Update Redis store (best effort)
	if cr.store != nil {
		if err := cr.store.SaveHotelsMany(ctx, hotels); err != nil {
			cr.logger.Warn("failed to save hotels to redis", logger.Error(err))
		} else {
			cr.logger.Debug("hotels saved to redis")
		}
	}

	return nil
}

// reconcile merges the fresh list with the current index state.
func (cr *CatalogRefresher) reconcile(fresh []*domain.Hotel, failed map[string]bool, now time.Time) []*domain.Hotel {
	existing := make(map[string]*domain.Hotel)
	for _, h := range cr.index.GetAllHotels() {
		existing[h.Code] = h
	}

	out := make([]*domain.Hotel, 0, len(fresh)+len(existing))
	seen := make(map[string]bool, len(fresh))

	for _, h := range fresh {
		seen[h.Code] = true
		h.LastSeenAt = now
		if prev, ok := existing[h.Code]; ok && !prev.Disabled && prev.Name == h.Name && prev.Destination == h.Destination {
			h.UpdatedAt = prev.UpdatedAt
		} else {
			h.UpdatedAt = now
		}
		out = append(out, h)
	}

	disabled := 0
	for code, h := range existing {
		if seen[code] {
			continue
		}
		if !h.Disabled && !fromFailedSource(h, failed) {
			h.Disabled = true
			h.UpdatedAt = now
			disabled++
		}
		out = append(out, h)
	}

	if disabled > 0 {
		cr.logger.Info("marking removed hotels as disabled", logger.Int("count", disabled))
	}
	return out
}

func fromFailedSource(h *domain.Hotel, failed map[string]bool) bool {
	for _, s := range h.Sources {
		if failed[s] {
			return true
		}
	}
	return false
}
