package domain

import (
	"sort"
	"strings"
	"time"
)

// Hotel is a participating property of the voucher program.
//
// A Hotel is uniquely identified by its booking-system Code (ctyhocn),
// e.g. SINGI. All sources (seed file, scraped landing page, Redis) are
// merged into this structure.
type Hotel struct {
	// Code is the opaque hotel code used in booking URLs.
	Code string `json:"code"`

	// Name is the display name, e.g. "Hilton Singapore Orchard".
	Name string `json:"name"`

	// Destination is the country or region the program groups the hotel under.
	Destination string `json:"destination"`

	// Sources lists where this hotel was discovered from.
	// Example: seed, landing
	Sources []string `json:"sources,omitempty"`

	// Disabled is set when the hotel disappeared from every source.
	// Disabled hotels are kept until garbage collected.
	Disabled bool `json:"disabled,omitempty"`

	// UpdatedAt is the last time the hotel changed state (added, disabled).
	UpdatedAt time.Time `json:"updated_at"`

	// LastSeenAt is the last time a source listed the hotel.
	LastSeenAt time.Time `json:"last_seen_at"`
}

// HasSource reports whether the hotel was listed by the given source.
func (h *Hotel) HasSource(source string) bool {
	for _, s := range h.Sources {
		if s == source {
			return true
		}
	}
	return false
}

// DestinationGroup holds the enabled hotels of one destination.
type DestinationGroup struct {
	Name   string   `json:"name"`
	Hotels []*Hotel `json:"hotels"`
}

// GroupByDestination returns enabled hotels grouped by destination,
// destinations and hotels both sorted by name.
func GroupByDestination(hotels []*Hotel) []DestinationGroup {
	byDest := make(map[string][]*Hotel)
	for _, h := range hotels {
		if h.Disabled {
			continue
		}
		dest := strings.TrimSpace(h.Destination)
		if dest == "" {
			dest = "Other"
		}
		byDest[dest] = append(byDest[dest], h)
	}

	groups := make([]DestinationGroup, 0, len(byDest))
	for name, hs := range byDest {
		sort.Slice(hs, func(i, j int) bool { return hs[i].Name < hs[j].Name })
		groups = append(groups, DestinationGroup{Name: name, Hotels: hs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
