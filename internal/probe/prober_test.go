package probe

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/provider"
)

// stubFetcher returns a fixed body or a fixed error kind.
type stubFetcher struct {
	id         domain.ProviderID
	body       string
	failKind   provider.ErrorKind
	panics     bool
	configured bool
	calls      atomic.Int32
}

func okFetcher(id domain.ProviderID, body string) *stubFetcher {
	return &stubFetcher{id: id, body: body, configured: true}
}

func failing(id domain.ProviderID, kind provider.ErrorKind) *stubFetcher {
	return &stubFetcher{id: id, failKind: kind, configured: true}
}

func (s *stubFetcher) Name() domain.ProviderID { return s.id }
func (s *stubFetcher) Configured() bool        { return s.configured }

func (s *stubFetcher) Fetch(ctx context.Context, u string) (*provider.Page, error) {
	s.calls.Add(1)
	if s.panics {
		panic("renderer exploded")
	}
	if s.failKind != "" {
		return nil, &provider.FetchError{Provider: s.id, URL: u, Kind: s.failKind, Err: errors.New("stub failure")}
	}
	return &provider.Page{Provider: s.id, URL: u, Status: 200, Body: s.body, Elapsed: time.Millisecond}, nil
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", s, err)
	}
	return d
}

const (
	availableTwoRooms = "We're showing Amex Krisflyer Ascend Voucher rates. 2 rooms found."
	unavailablePage   = "Your selected rates are unavailable."
)

func TestProbeDateFallbackEscalation(t *testing.T) {
	light := failing(domain.ProviderLightweight, provider.KindTimeout)
	primary := okFetcher(domain.ProviderPrimaryJS, availableTwoRooms)
	secondary := okFetcher(domain.ProviderSecondaryJS, unavailablePage)

	p := New(Providers{Lightweight: light, PrimaryJS: primary, SecondaryJS: secondary}, nil, nil, 0)
	got := p.ProbeDate(context.Background(), "SINGI", mustDate(t, "2025-11-12"), "ZKFA25")

	if !got.Signal.IsAvailable() {
		t.Fatalf("ProbeDate() status = %s, want available", got.Signal.Status)
	}
	if got.Signal.RoomCount == nil || *got.Signal.RoomCount != 2 {
		t.Errorf("ProbeDate() roomCount = %v, want 2", got.Signal.RoomCount)
	}
	if got.Provider != domain.ProviderPrimaryJS {
		t.Errorf("ProbeDate() provider = %s, want %s", got.Provider, domain.ProviderPrimaryJS)
	}
	if secondary.calls.Load() != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls.Load())
	}
}

func TestProbeDateProviderOrder(t *testing.T) {
	tests := []struct {
		name         string
		providers    func() Providers
		wantStatus   domain.Status
		wantProvider domain.ProviderID
	}{
		{
			name: "fast path on lightweight available",
			providers: func() Providers {
				return Providers{
					Lightweight: okFetcher(domain.ProviderLightweight, "complimentary night"),
					PrimaryJS:   okFetcher(domain.ProviderPrimaryJS, unavailablePage),
				}
			},
			wantStatus:   domain.StatusAvailable,
			wantProvider: domain.ProviderLightweight,
		},
		{
			name: "lightweight unavailable escalates to primary",
			providers: func() Providers {
				return Providers{
					Lightweight: okFetcher(domain.ProviderLightweight, unavailablePage),
					PrimaryJS:   okFetcher(domain.ProviderPrimaryJS, availableTwoRooms),
				}
			},
			wantStatus:   domain.StatusAvailable,
			wantProvider: domain.ProviderPrimaryJS,
		},
		{
			name: "primary indeterminate is final",
			providers: func() Providers {
				return Providers{
					PrimaryJS:   okFetcher(domain.ProviderPrimaryJS, "Access denied"),
					SecondaryJS: okFetcher(domain.ProviderSecondaryJS, availableTwoRooms),
				}
			},
			wantStatus:   domain.StatusIndeterminate,
			wantProvider: domain.ProviderPrimaryJS,
		},
		{
			name: "primary error uses secondary",
			providers: func() Providers {
				return Providers{
					Lightweight: failing(domain.ProviderLightweight, provider.KindStatus),
					PrimaryJS:   failing(domain.ProviderPrimaryJS, provider.KindNetwork),
					SecondaryJS: okFetcher(domain.ProviderSecondaryJS, unavailablePage),
				}
			},
			wantStatus:   domain.StatusUnavailable,
			wantProvider: domain.ProviderSecondaryJS,
		},
		{
			name: "primary not configured uses secondary",
			providers: func() Providers {
				return Providers{
					PrimaryJS:   &stubFetcher{id: domain.ProviderPrimaryJS},
					SecondaryJS: okFetcher(domain.ProviderSecondaryJS, availableTwoRooms),
				}
			},
			wantStatus:   domain.StatusAvailable,
			wantProvider: domain.ProviderSecondaryJS,
		},
		{
			name: "renderers failed, lightweight negative discarded",
			providers: func() Providers {
				return Providers{
					Lightweight: okFetcher(domain.ProviderLightweight, unavailablePage),
					PrimaryJS:   failing(domain.ProviderPrimaryJS, provider.KindTimeout),
					SecondaryJS: failing(domain.ProviderSecondaryJS, provider.KindTimeout),
				}
			},
			wantStatus:   domain.StatusIndeterminate,
			wantProvider: domain.ProviderNone,
		},
		{
			name: "renderers failed, js shell from lightweight",
			providers: func() Providers {
				return Providers{
					Lightweight: okFetcher(domain.ProviderLightweight, `<div id="app">Rates unavailable without JavaScript. No rooms available.</div>`),
					PrimaryJS:   failing(domain.ProviderPrimaryJS, provider.KindStatus),
				}
			},
			wantStatus:   domain.StatusIndeterminate,
			wantProvider: domain.ProviderNone,
		},
		{
			name: "everything failed",
			providers: func() Providers {
				return Providers{
					Lightweight: failing(domain.ProviderLightweight, provider.KindTimeout),
					PrimaryJS:   failing(domain.ProviderPrimaryJS, provider.KindStatus),
					SecondaryJS: failing(domain.ProviderSecondaryJS, provider.KindNetwork),
				}
			},
			wantStatus:   domain.StatusIndeterminate,
			wantProvider: domain.ProviderNone,
		},
		{
			name: "panicking provider",
			providers: func() Providers {
				return Providers{
					PrimaryJS: &stubFetcher{id: domain.ProviderPrimaryJS, panics: true, configured: true},
				}
			},
			wantStatus:   domain.StatusIndeterminate,
			wantProvider: domain.ProviderNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.providers(), nil, nil, 0)
			got := p.ProbeDate(context.Background(), "SINGI", mustDate(t, "2025-11-12"), "ZKFA25")

			if got.Signal.Status != tt.wantStatus {
				t.Errorf("ProbeDate() status = %s, want %s", got.Signal.Status, tt.wantStatus)
			}
			if got.Provider != tt.wantProvider {
				t.Errorf("ProbeDate() provider = %s, want %s", got.Provider, tt.wantProvider)
			}
			if got.BookingURL == "" {
				t.Error("ProbeDate() bookingUrl is empty")
			}
		})
	}
}

func TestProbeDateIdempotent(t *testing.T) {
	p := New(Providers{
		Lightweight: okFetcher(domain.ProviderLightweight, unavailablePage),
		PrimaryJS:   okFetcher(domain.ProviderPrimaryJS, availableTwoRooms),
	}, nil, nil, 0)

	d := mustDate(t, "2025-11-12")
	first := p.ProbeDate(context.Background(), "SINGI", d, "ZKFA25")
	second := p.ProbeDate(context.Background(), "SINGI", d, "ZKFA25")

	a, err := first.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	b, err := second.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("ProbeDate() not idempotent:\n%s\n%s", a, b)
	}
}

func TestProbeDateEndToEnd(t *testing.T) {
	p := New(Providers{
		PrimaryJS: okFetcher(domain.ProviderPrimaryJS, "<html><body><p>"+availableTwoRooms+"</p></body></html>"),
	}, nil, nil, 0)

	got := p.ProbeDate(context.Background(), "SINGI", mustDate(t, "2025-11-12"), "ZKFA25")

	avail := got.Signal.Available()
	if avail == nil || !*avail {
		t.Fatalf("ProbeDate() available = %v, want true", avail)
	}
	if got.Signal.RoomCount == nil || *got.Signal.RoomCount != 2 {
		t.Errorf("ProbeDate() roomCount = %v, want 2", got.Signal.RoomCount)
	}
	for _, part := range []string{
		"ctyhocn=SINGI",
		"arrivalDate=2025-11-12&departureDate=2025-11-13&groupCode=ZKFA25",
	} {
		if !strings.Contains(got.BookingURL, part) {
			t.Errorf("ProbeDate() bookingUrl %s missing %s", got.BookingURL, part)
		}
	}
}
