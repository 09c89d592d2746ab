package index

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// MemoryIndex is the serving copy of the hotel catalog.
// Redis mirrors it; reads never go to Redis.
//
// Hotels are stored and returned by value copy, so callers can modify what
// they get without racing other readers.
type MemoryIndex struct {
	mu         sync.RWMutex
	hotels     map[string]domain.Hotel // upper-cased code -> hotel
	lastReload time.Time
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		hotels: make(map[string]domain.Hotel),
	}
}

func key(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

func clone(h domain.Hotel) *domain.Hotel {
	h.Sources = append([]string(nil), h.Sources...)
	return &h
}

// UpdateHotels replaces all hotels in the index
func (idx *MemoryIndex) UpdateHotels(hotels []*domain.Hotel) {
	next := make(map[string]domain.Hotel, len(hotels))
	for _, h := range hotels {
		next[key(h.Code)] = *clone(*h)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.hotels = next
	idx.lastReload = time.Now()
}

// GetHotel retrieves a hotel by code, case-insensitively
func (idx *MemoryIndex) GetHotel(code string) (*domain.Hotel, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	h, ok := idx.hotels[key(code)]
	if !ok {
		return nil, false
	}
	return clone(h), true
}

// GetAllHotels returns all hotels, disabled ones included, sorted by code
func (idx *MemoryIndex) GetAllHotels() []*domain.Hotel {
	idx.mu.RLock()
	hotels := make([]*domain.Hotel, 0, len(idx.hotels))
	for _, h := range idx.hotels {
		hotels = append(hotels, clone(h))
	}
	idx.mu.RUnlock()

	sort.Slice(hotels, func(i, j int) bool { return hotels[i].Code < hotels[j].Code })
	return hotels
}

// AddHotel adds or updates a single hotel
func (idx *MemoryIndex) AddHotel(hotel *domain.Hotel) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.hotels[key(hotel.Code)] = *clone(*hotel)
}

// DeleteHotel removes a hotel from the index
func (idx *MemoryIndex) DeleteHotel(code string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.hotels, key(code))
}

// Count returns the number of hotels in the index
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.hotels)
}

// EnabledCount returns the number of hotels that are not disabled
func (idx *MemoryIndex) EnabledCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, h := range idx.hotels {
		if !h.Disabled {
			n++
		}
	}
	return n
}

// GetLastReload returns the timestamp of the last full catalog update
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
