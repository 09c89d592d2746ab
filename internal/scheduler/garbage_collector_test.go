package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
)

func TestGarbageCollectorCollect(t *testing.T) {
	log := logger.New("error", false)
	memIndex := index.NewMemoryIndex()

	now := time.Now()
	memIndex.UpdateHotels([]*domain.Hotel{
		{
			Code:      "SINGI",
			Name:      "Hilton Singapore Orchard",
			Disabled:  false,
			UpdatedAt: now.Add(-60 * 24 * time.Hour),
		},
		{
			Code:      "SINDT",
			Name:      "DoubleTree by Hilton Singapore",
			Disabled:  true,
			UpdatedAt: now.Add(-10 * 24 * time.Hour), // 10 days ago
		},
		{
			Code:      "TYOCI",
			Name:      "Conrad Tokyo",
			Disabled:  true,
			UpdatedAt: now.Add(-35 * 24 * time.Hour), // 35 days ago
		},
	})

	gc := NewGarbageCollector(nil, memIndex, log, 24*time.Hour, 30*24*time.Hour)

	if deleted := gc.Collect(context.Background()); deleted != 1 {
		t.Errorf("Collect() deleted %d hotels, want 1", deleted)
	}

	if got := memIndex.Count(); got != 2 {
		t.Errorf("Expected 2 hotels after GC, got %d", got)
	}

	if _, ok := memIndex.GetHotel("TYOCI"); ok {
		t.Error("Old disabled hotel was not removed")
	}
	if _, ok := memIndex.GetHotel("SINGI"); !ok {
		t.Error("Enabled hotel was removed")
	}
}

func TestGarbageCollectorDeletesFromStore(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	memIndex.AddHotel(&domain.Hotel{
		Code:      "TYOCI",
		Disabled:  true,
		UpdatedAt: time.Now().Add(-40 * 24 * time.Hour),
	})

	store := newMemStore()
	store.hotels["TYOCI"] = &domain.Hotel{Code: "TYOCI"}

	gc := NewGarbageCollector(store, memIndex, logger.Nop(), 0, 0)
	gc.Collect(context.Background())

	if _, ok := store.hotels["TYOCI"]; ok {
		t.Error("Collect() did not delete the hotel from the store")
	}
}
