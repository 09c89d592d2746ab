package redis

import (
	"testing"
	"time"
)

func TestHotelKey(t *testing.T) {
	if got := HotelKey("singi"); got != "freenight:hotel:SINGI" {
		t.Errorf("HotelKey() = %q", got)
	}
	if HotelKey("SINGI") != HotelKey("singi") {
		t.Error("HotelKey() should ignore code case")
	}
	if AllHotelsKey() != "freenight:hotels:all" {
		t.Errorf("AllHotelsKey() = %q", AllHotelsKey())
	}
}

func TestResultKey(t *testing.T) {
	d := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	got := ResultKey("singi", "zkfa25", d)
	if got != "freenight:result:SINGI:ZKFA25:2025-11-12" {
		t.Errorf("ResultKey() = %q", got)
	}
	if ResultKey("SINGI", "ZKFA25", d) != got {
		t.Error("ResultKey() should ignore code case")
	}
}
