package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/metrics"
)

const warmStartTimeout = 10 * time.Second

// RedisSyncer warms the memory index from the last persisted catalog, so the
// resolver answers before the first refresh completes.
type RedisSyncer struct {
	store  HotelStore
	index  *index.MemoryIndex
	logger logger.Logger
}

func NewRedisSyncer(store HotelStore, idx *index.MemoryIndex, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync replaces the index with the stored catalog. Entries without a code or
// name are skipped. An empty snapshot leaves the index untouched.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, warmStartTimeout)
	defer cancel()

	stored, err := rs.store.GetAllHotels(ctx)
	if err != nil {
		return err
	}

	hotels := make([]*domain.Hotel, 0, len(stored))
	disabled := 0
	for _, h := range stored {
		if h == nil || strings.TrimSpace(h.Code) == "" || strings.TrimSpace(h.Name) == "" {
			continue
		}
		if h.Disabled {
			disabled++
		}
		hotels = append(hotels, h)
	}

	if len(hotels) == 0 {
		rs.logger.Info("no persisted catalog, waiting for first refresh")
		return nil
	}

	rs.index.UpdateHotels(hotels)
	metrics.SetCatalogHotels(rs.index.EnabledCount())

	rs.logger.Info("catalog restored from redis",
		logger.Int("hotels", len(hotels)),
		logger.Int("disabled", disabled),
		logger.Int("skipped", len(stored)-len(hotels)))
	return nil
}
