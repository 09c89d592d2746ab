package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNextDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-11-12", "2025-11-13"},
		{"2025-01-31", "2025-02-01"},
		{"2024-02-28", "2024-02-29"},
		{"2023-02-28", "2023-03-01"},
		{"2025-12-31", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got := NextDay(d).Format(DateLayout); got != tt.want {
				t.Errorf("NextDay(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "2025-13-01", "2025-02-30", "12/11/2025"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}

func TestSignalInvariants(t *testing.T) {
	if s := AvailableSignal(0, true, "voucher rates"); s.RoomCount != nil {
		t.Errorf("available with count 0 should drop the count, got %d", *s.RoomCount)
	}
	if s := AvailableSignal(3, true, "voucher rates"); s.RoomCount == nil || *s.RoomCount != 3 {
		t.Errorf("available count = %v, want 3", s.RoomCount)
	}
	if s := UnavailableSignal("sold out"); s.RoomCount == nil || *s.RoomCount != 0 {
		t.Errorf("unavailable count = %v, want 0", s.RoomCount)
	}
	if s := IndeterminateSignal(); s.Available() != nil || s.Conclusive() {
		t.Errorf("indeterminate should be nil and not conclusive")
	}
}

func TestDateResultJSON(t *testing.T) {
	d, _ := ParseDate("2025-11-12")

	indeterminate, err := json.Marshal(FailedResult(d, "https://example.test"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(indeterminate), `"available":null`) ||
		!strings.Contains(string(indeterminate), `"status":"indeterminate"`) ||
		!strings.Contains(string(indeterminate), `"provider":"none"`) {
		t.Errorf("indeterminate JSON = %s", indeterminate)
	}

	in := DateResult{
		Date:       d,
		Signal:     AvailableSignal(2, true, "voucher rates"),
		BookingURL: "https://example.test",
		Provider:   ProviderPrimaryJS,
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out DateResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !out.Date.Equal(in.Date) || out.Provider != in.Provider || out.Signal.Status != StatusAvailable ||
		out.Signal.RoomCount == nil || *out.Signal.RoomCount != 2 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
