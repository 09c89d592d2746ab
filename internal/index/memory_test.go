package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if hotels := index.GetAllHotels(); len(hotels) != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v", len(hotels))
	}
	if !index.GetLastReload().IsZero() {
		t.Error("NewMemoryIndex() should have no reload time")
	}
}

func TestUpdateHotelsOverwrites(t *testing.T) {
	index := NewMemoryIndex()

	index.UpdateHotels([]*domain.Hotel{
		{Code: "SINGI", Name: "Hilton Singapore Orchard"},
	})
	index.UpdateHotels([]*domain.Hotel{
		{Code: "SINDT", Name: "DoubleTree by Hilton Singapore"},
		{Code: "TYOCI", Name: "Conrad Tokyo", Disabled: true},
	})

	if index.Count() != 2 {
		t.Errorf("UpdateHotels() should overwrite, got %v hotels want 2", index.Count())
	}
	if index.EnabledCount() != 1 {
		t.Errorf("EnabledCount() = %v, want 1", index.EnabledCount())
	}
	if _, ok := index.GetHotel("SINGI"); ok {
		t.Error("UpdateHotels() kept a hotel from the previous set")
	}
	if index.GetLastReload().IsZero() {
		t.Error("UpdateHotels() should set the reload time")
	}
}

func TestGetHotelCaseInsensitive(t *testing.T) {
	index := NewMemoryIndex()
	index.AddHotel(&domain.Hotel{Code: "SINGI", Name: "Hilton Singapore Orchard"})

	for _, code := range []string{"SINGI", "singi", " SinGi "} {
		h, ok := index.GetHotel(code)
		if !ok || h.Code != "SINGI" {
			t.Errorf("GetHotel(%q) = %v, %v", code, h, ok)
		}
	}

	index.DeleteHotel("singi")
	if _, ok := index.GetHotel("SINGI"); ok {
		t.Error("DeleteHotel() did not remove the hotel")
	}
}

func TestGetAllHotelsSortedCopies(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateHotels([]*domain.Hotel{
		{Code: "TYOCI", Name: "Conrad Tokyo", Sources: []string{"seed"}},
		{Code: "SINGI", Name: "Hilton Singapore Orchard", Sources: []string{"seed"}},
	})

	first := index.GetAllHotels()
	if first[0].Code != "SINGI" || first[1].Code != "TYOCI" {
		t.Fatalf("GetAllHotels() not sorted: %s, %s", first[0].Code, first[1].Code)
	}

	first[0].Disabled = true
	first[0].Sources[0] = "mutated"

	again, _ := index.GetHotel("SINGI")
	if again.Disabled || again.Sources[0] != "seed" {
		t.Error("GetAllHotels() returned shared state")
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateHotels([]*domain.Hotel{
		{Code: "SINGI", Name: "Hilton Singapore Orchard"},
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = index.GetAllHotels()
			_, _ = index.GetHotel("SINGI")
		}()
		go func() {
			defer wg.Done()
			index.AddHotel(&domain.Hotel{Code: "SINDT", Name: "DoubleTree by Hilton Singapore"})
			_ = index.EnabledCount()
		}()
	}
	wg.Wait()

	if index.Count() != 2 {
		t.Errorf("Count() = %v, want 2", index.Count())
	}
}
