package catalog

import (
	"testing"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

func TestMapSeed(t *testing.T) {
	config := SeedConfig{
		{
			"Singapore": []map[string]string{
				{"singi": "Hilton Singapore Orchard"},
				{"SINDT": "  DoubleTree by Hilton Singapore "},
				{"SINGI": "Duplicate"},
			},
		},
		{
			"Japan": []map[string]string{
				{"TYOCI": ""},
				{"": "No code"},
			},
		},
	}

	hotels, err := MapSeed(config)
	if err != nil {
		t.Fatalf("MapSeed() error = %v", err)
	}
	if len(hotels) != 3 {
		t.Fatalf("MapSeed() returned %d hotels, want 3", len(hotels))
	}

	byCode := map[string]*domain.Hotel{}
	for _, h := range hotels {
		byCode[h.Code] = h
	}

	if h := byCode["SINGI"]; h == nil || h.Name != "Hilton Singapore Orchard" || h.Destination != "Singapore" {
		t.Errorf("SINGI = %+v", h)
	}
	if h := byCode["SINDT"]; h == nil || h.Name != "DoubleTree by Hilton Singapore" {
		t.Errorf("SINDT = %+v", h)
	}
	if h := byCode["TYOCI"]; h == nil || h.Name != "TYOCI" || !h.HasSource(SourceSeed) {
		t.Errorf("TYOCI = %+v", h)
	}
}

func TestMapSeedEmpty(t *testing.T) {
	if _, err := MapSeed(SeedConfig{}); err == nil {
		t.Error("MapSeed() expected error for empty config")
	}
}

func TestMerge(t *testing.T) {
	landing := []*domain.Hotel{
		{Code: "SINGI", Name: "Hilton Singapore Orchard", Destination: "Singapore", Sources: []string{SourceLanding}},
		{Code: "KULHI", Name: "Hilton Kuala Lumpur", Destination: "Malaysia", Sources: []string{SourceLanding}},
	}
	seed := []*domain.Hotel{
		{Code: "singi", Name: "SINGI", Sources: []string{SourceSeed}},
		{Code: "TYOCI", Name: "Conrad Tokyo", Destination: "Japan", Sources: []string{SourceSeed}},
	}

	merged := Merge(landing, seed)
	if len(merged) != 3 {
		t.Fatalf("Merge() returned %d hotels, want 3", len(merged))
	}

	first := merged[0]
	if first.Code != "SINGI" || first.Name != "Hilton Singapore Orchard" {
		t.Errorf("Merge() first = %+v", first)
	}
	if !first.HasSource(SourceLanding) || !first.HasSource(SourceSeed) {
		t.Errorf("Merge() sources = %v, want landing and seed", first.Sources)
	}
	if len(landing[0].Sources) != 1 {
		t.Error("Merge() modified its input")
	}
}
