package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// DefaultHotelTTL is refreshed on every catalog reload, so only abandoned entries expire.
const DefaultHotelTTL = 7 * 24 * time.Hour

// GetAllHotels retrieves every hotel listed in the catalog set.
// Codes whose entry expired are dropped from the set on the way.
func (s *Store) GetAllHotels(ctx context.Context) ([]*domain.Hotel, error) {
	codes, err := s.client.SMembers(ctx, AllHotelsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel codes: %w", err)
	}
	if len(codes) == 0 {
		return []*domain.Hotel{}, nil
	}

	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = HotelKey(code)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hotels: %w", err)
	}

	hotels := make([]*domain.Hotel, 0, len(values))
	var stale []interface{}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, codes[i])
			continue
		}
		var hotel domain.Hotel
		if err := json.Unmarshal([]byte(raw), &hotel); err != nil {
			continue
		}
		hotels = append(hotels, &hotel)
	}

	if len(stale) > 0 {
		_ = s.client.SRem(ctx, AllHotelsKey(), stale...).Err()
	}
	return hotels, nil
}

// DeleteHotel removes a hotel from Redis
func (s *Store) DeleteHotel(ctx context.Context, code string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, HotelKey(code))
	pipe.SRem(ctx, AllHotelsKey(), code)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	return nil
}

// SaveHotelsMany stores multiple hotels in Redis (bulk operation)
func (s *Store) SaveHotelsMany(ctx context.Context, hotels []*domain.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, hotel := range hotels {
		data, err := json.Marshal(hotel)
		if err != nil {
			return fmt.Errorf("failed to marshal hotel %s: %w", hotel.Code, err)
		}
		pipe.Set(ctx, HotelKey(hotel.Code), data, DefaultHotelTTL)
		pipe.SAdd(ctx, AllHotelsKey(), hotel.Code)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save hotels: %w", err)
	}
	return nil
}
