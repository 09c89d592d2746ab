// Package lookup answers availability requests, serving conclusive results
// from the result cache and probing only the dates it does not know.
package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/metrics"
)

// ErrMissingCode is returned when the hotel or group code is blank.
var ErrMissingCode = errors.New("hotel code and group code are required")

// ResultCache stores conclusive results per (hotel, group, date).
type ResultCache interface {
	GetResults(ctx context.Context, hotelCode, groupCode string, dates []time.Time) (map[int]domain.DateResult, error)
	SaveResults(ctx context.Context, hotelCode, groupCode string, results []domain.DateResult, ttl time.Duration) error
}

// Prober probes a list of dates, one result per date in input order.
type Prober interface {
	ProbeDateRange(ctx context.Context, hotelCode, groupCode string, dates []time.Time) ([]domain.DateResult, error)
}

// Request is one availability lookup.
type Request struct {
	HotelCode string
	GroupCode string
	Dates     []time.Time
}

// Summary counts results by status.
type Summary struct {
	Total         int `json:"total"`
	Available     int `json:"available"`
	Unavailable   int `json:"unavailable"`
	Indeterminate int `json:"indeterminate"`
}

// Response is the outcome of a lookup. Results follow the request's date order.
type Response struct {
	RunID     string              `json:"runId"`
	HotelCode string              `json:"hotelCode"`
	GroupCode string              `json:"groupCode"`
	Summary   Summary             `json:"summary"`
	Results   []domain.DateResult `json:"results"`
	Cached    int                 `json:"cached"`
}

type Service struct {
	prober Prober
	cache  ResultCache
	ttl    time.Duration
	log    logger.Logger
}

// NewService creates a lookup service. cache may be nil, which disables caching.
func NewService(prober Prober, cache ResultCache, ttl time.Duration, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if ttl <= 0 {
		cache = nil
	}
	return &Service{prober: prober, cache: cache, ttl: ttl, log: log}
}

// Lookup returns one result per requested date.
// Probing errors (no renderer configured) are returned as is; cache errors are not.
func (s *Service) Lookup(ctx context.Context, req Request) (*Response, error) {
	hotel := strings.TrimSpace(req.HotelCode)
	group := strings.TrimSpace(req.GroupCode)
	if hotel == "" || group == "" {
		return nil, ErrMissingCode
	}

	runID := uuid.NewString()
	log := s.log.With(logger.String("run_id", runID), logger.String("hotel", hotel))

	results := make([]domain.DateResult, len(req.Dates))
	cached := s.cached(ctx, log, hotel, group, req.Dates)

	var missing []time.Time
	var slots []int
	for i, d := range req.Dates {
		if r, ok := cached[i]; ok {
			results[i] = r
			continue
		}
		missing = append(missing, d)
		slots = append(slots, i)
	}

	if len(missing) > 0 {
		probed, err := s.prober.ProbeDateRange(ctx, hotel, group, missing)
		if err != nil {
			return nil, err
		}
		for j, r := range probed {
			results[slots[j]] = r
		}
		s.store(ctx, log, hotel, group, probed)
	}

	resp := &Response{
		RunID:     runID,
		HotelCode: hotel,
		GroupCode: group,
		Summary:   Summarize(results),
		Results:   results,
		Cached:    len(cached),
	}

	fields := []logger.Field{
		logger.Int("dates", resp.Summary.Total),
		logger.Int("cached", resp.Cached),
		logger.Int("available", resp.Summary.Available),
		logger.Int("indeterminate", resp.Summary.Indeterminate),
	}
	if n := len(req.Dates); n > 0 {
		fields = append(fields, logger.Date("first", req.Dates[0]), logger.Date("last", req.Dates[n-1]))
	}
	log.Info("lookup completed", fields...)

	return resp, nil
}

func (s *Service) cached(ctx context.Context, log logger.Logger, hotel, group string, dates []time.Time) map[int]domain.DateResult {
	if s.cache == nil || len(dates) == 0 {
		return nil
	}

	hits, err := s.cache.GetResults(ctx, hotel, group, dates)
	if err != nil {
		metrics.RecordCacheLookup("error", len(dates))
		log.Warn("result cache unavailable, probing every date", logger.Error(err))
		return nil
	}

	metrics.RecordCacheLookup("hit", len(hits))
	metrics.RecordCacheLookup("miss", len(dates)-len(hits))
	return hits
}

func (s *Service) store(ctx context.Context, log logger.Logger, hotel, group string, results []domain.DateResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveResults(ctx, hotel, group, results, s.ttl); err != nil {
		log.Warn("failed to cache results", logger.Error(err))
	}
}

// Summarize counts results by status.
func Summarize(results []domain.DateResult) Summary {
	sum := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Signal.Status {
		case domain.StatusAvailable:
			sum.Available++
		case domain.StatusUnavailable:
			sum.Unavailable++
		default:
			sum.Indeterminate++
		}
	}
	return sum
}
