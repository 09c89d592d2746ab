package booking

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", s, err)
	}
	return d
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("SINGI", mustDate(t, "2025-11-12"), "ZKFA25")
	want := "https://www.hilton.com/en/book/reservation/rooms/?ctyhocn=SINGI&arrivalDate=2025-11-12" +
		"&departureDate=2025-11-13&groupCode=ZKFA25&room1NumAdults=1" +
		"&cid=OH,MB,APACAMEXKrisFlyerComplimentaryNight,MULTIBR,OfferCTA,Offer,Book"

	if got != want {
		t.Errorf("BuildURL() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildURLDeterministic(t *testing.T) {
	d := mustDate(t, "2026-03-01")
	first := BuildURL("TYOCI", d, "ZKFA25")
	for i := 0; i < 10; i++ {
		if got := BuildURL("TYOCI", d, "ZKFA25"); got != first {
			t.Fatalf("BuildURL() not deterministic: %s != %s", got, first)
		}
	}
}

func TestBuildURLDepartureRollover(t *testing.T) {
	tests := []struct {
		arrival   string
		departure string
	}{
		{"2025-01-31", "2025-02-01"},
		{"2024-02-28", "2024-02-29"},
		{"2024-02-29", "2024-03-01"},
		{"2025-02-28", "2025-03-01"},
		{"2025-12-31", "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.arrival, func(t *testing.T) {
			u, err := url.Parse(BuildURL("SINGI", mustDate(t, tt.arrival), "ZKFA25"))
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}
			q := u.Query()
			if q.Get("arrivalDate") != tt.arrival {
				t.Errorf("arrivalDate = %s, want %s", q.Get("arrivalDate"), tt.arrival)
			}
			if q.Get("departureDate") != tt.departure {
				t.Errorf("departureDate = %s, want %s", q.Get("departureDate"), tt.departure)
			}
		})
	}
}

func TestBuildURLKeepsCalendarDateInLocation(t *testing.T) {
	// 07:30 on the 13th in Singapore is still the 12th in UTC; the caller's location wins.
	loc := time.FixedZone("SGT", 8*60*60)
	arrival := time.Date(2025, 11, 13, 7, 30, 0, 0, loc)

	got := BuildURL("SINGI", arrival, "ZKFA25")
	if !strings.Contains(got, "arrivalDate=2025-11-13&departureDate=2025-11-14") {
		t.Errorf("BuildURL() shifted the calendar date: %s", got)
	}
}

func TestBuildURLPassesCodesThrough(t *testing.T) {
	got := BuildURL("sin gi", mustDate(t, "2025-11-12"), "")
	if !strings.Contains(got, "ctyhocn=sin gi&") || !strings.Contains(got, "groupCode=&") {
		t.Errorf("BuildURL() altered the codes: %s", got)
	}
}
