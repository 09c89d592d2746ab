package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
)

const (
	defaultResolveLimit = 5
	maxResolveLimit     = 50
)

type hotelsResponse struct {
	Count        int                       `json:"count"`
	LastRefresh  string                    `json:"last_refresh"`
	Destinations []domain.DestinationGroup `json:"destinations"`
}

// Hotels lists the enabled catalog hotels grouped by destination.
func Hotels(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := domain.GroupByDestination(d.MemoryIndex.GetAllHotels())

		lastRefresh := "never"
		if t := d.MemoryIndex.GetLastReload(); !t.IsZero() {
			lastRefresh = t.UTC().Format(time.RFC3339)
		}

		writeJSON(w, http.StatusOK, hotelsResponse{
			Count:        d.MemoryIndex.EnabledCount(),
			LastRefresh:  lastRefresh,
			Destinations: groups,
		})
	}
}

type resolveResponse struct {
	Query      string              `json:"query"`
	Candidates []*domain.Candidate `json:"candidates"`
}

// ResolveHotel ranks catalog hotels against ?q= (name fragments or a hotel code).
func ResolveHotel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			writeError(w, http.StatusBadRequest, "q is required")
			return
		}

		limit := defaultResolveLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxResolveLimit)
		}

		candidates := domain.RankHotels(domain.ParseQuery(q), d.MemoryIndex.GetAllHotels())
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}

		writeJSON(w, http.StatusOK, resolveResponse{Query: q, Candidates: candidates})
	}
}
