package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
)

const (
	// DefaultGCThreshold is the duration after which disabled hotels are deleted
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector deletes hotels that stayed disabled for longer than the threshold
type GarbageCollector struct {
	store     HotelStore
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	store HotelStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	gc.Collect(ctx)

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect(ctx)
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
}

// Collect removes hotels disabled for longer than the threshold and returns how many went.
func (gc *GarbageCollector) Collect(ctx context.Context) int {
	now := time.Now()
	deleted := 0

	for _, hotel := range gc.index.GetAllHotels() {
		if !hotel.Disabled || hotel.UpdatedAt.IsZero() {
			continue
		}

		disabledFor := now.Sub(hotel.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		gc.index.DeleteHotel(hotel.Code)

		// Delete from Redis store (best effort)
		if gc.store != nil {
			if err := gc.store.DeleteHotel(ctx, hotel.Code); err != nil {
				gc.logger.Warn("failed to delete hotel from redis",
					logger.String("code", hotel.Code),
					logger.Error(err))
			}
		}

		gc.logger.Info("garbage collected disabled hotel",
			logger.String("code", hotel.Code),
			logger.String("name", hotel.Name),
			logger.Duration("disabled_for", disabledFor))

		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed", logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no hotels to garbage collect")
	}
	return deleted
}
