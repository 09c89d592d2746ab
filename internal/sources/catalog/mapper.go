package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

const (
	// SourceSeed marks hotels listed in the seed file
	SourceSeed = "seed"
	// SourceLanding marks hotels scraped from the program landing page
	SourceLanding = "landing"
)

// MapSeed converts a SeedConfig to domain hotels. Codes are upper-cased and
// the first occurrence of a duplicated code wins.
func MapSeed(config SeedConfig) ([]*domain.Hotel, error) {
	now := time.Now()
	seen := make(map[string]bool)
	var hotels []*domain.Hotel

	for _, group := range config {
		for destination, entries := range group {
			for _, entry := range entries {
				for code, name := range entry {
					code = strings.ToUpper(strings.TrimSpace(code))
					name = strings.TrimSpace(name)
					if code == "" || seen[code] {
						continue
					}
					if name == "" {
						name = code
					}
					seen[code] = true

					hotels = append(hotels, &domain.Hotel{
						Code:        code,
						Name:        name,
						Destination: strings.TrimSpace(destination),
						Sources:     []string{SourceSeed},
						UpdatedAt:   now,
						LastSeenAt:  now,
					})
				}
			}
		}
	}

	if len(hotels) == 0 {
		return nil, fmt.Errorf("no valid hotels found in seed file")
	}
	return hotels, nil
}

// Merge combines hotel lists from several sources into one entry per code.
// Name and destination come from the first list that has them; sources are unioned.
func Merge(lists ...[]*domain.Hotel) []*domain.Hotel {
	byCode := make(map[string]*domain.Hotel)
	var order []string

	for _, list := range lists {
		for _, h := range list {
			code := strings.ToUpper(h.Code)
			existing, ok := byCode[code]
			if !ok {
				cp := *h
				cp.Code = code
				cp.Sources = append([]string(nil), h.Sources...)
				byCode[code] = &cp
				order = append(order, code)
				continue
			}
			if existing.Name == "" || existing.Name == existing.Code {
				existing.Name = h.Name
			}
			if existing.Destination == "" {
				existing.Destination = h.Destination
			}
			for _, s := range h.Sources {
				if !existing.HasSource(s) {
					existing.Sources = append(existing.Sources, s)
				}
			}
		}
	}

	out := make([]*domain.Hotel, 0, len(order))
	for _, code := range order {
		out = append(out, byCode[code])
	}
	return out
}
