package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// GetResults looks up cached results for dates. The map is keyed by the
// position in dates; misses and undecodable entries are simply absent.
func (s *Store) GetResults(ctx context.Context, hotelCode, groupCode string, dates []time.Time) (map[int]domain.DateResult, error) {
	found := make(map[int]domain.DateResult)
	if len(dates) == 0 {
		return found, nil
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = ResultKey(hotelCode, groupCode, d)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cached results: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var r domain.DateResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			continue
		}
		found[i] = r
	}
	return found, nil
}

// SaveResults caches conclusive results. Indeterminate ones are skipped so
// that the next request probes them again.
func (s *Store) SaveResults(ctx context.Context, hotelCode, groupCode string, results []domain.DateResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	queued := 0
	for _, r := range results {
		if !r.Signal.Conclusive() {
			continue
		}
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal result %s: %w", r.Date.Format(domain.DateLayout), err)
		}
		pipe.Set(ctx, ResultKey(hotelCode, groupCode, r.Date), data, ttl)
		queued++
	}
	if queued == 0 {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache results: %w", err)
	}
	return nil
}

// FlushResults removes all cached results
func (s *Store) FlushResults(ctx context.Context) (int, error) {
	deleted := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixResult+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete result key: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to flush results: %w", err)
	}
	return deleted, nil
}
