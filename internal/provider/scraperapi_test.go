package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

const bookingURL = "https://www.hilton.com/en/book/reservation/rooms/?ctyhocn=SINGI&arrivalDate=2025-11-12"

func TestScraperAPIFetch(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>2 rooms found</body></html>"))
	}))
	defer server.Close()

	s := NewScraperAPI(ScraperAPIConfig{
		Key:     "secret",
		BaseURL: server.URL + "/",
		Country: "sg",
		Premium: true,
		Timeout: 2 * time.Second,
	}, server.Client())

	page, err := s.Fetch(context.Background(), bookingURL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if page.Provider != domain.ProviderLightweight {
		t.Errorf("Fetch() provider = %s, want %s", page.Provider, domain.ProviderLightweight)
	}
	if page.Status != http.StatusOK || page.Size() == 0 {
		t.Errorf("Fetch() status=%d size=%d", page.Status, page.Size())
	}

	want := map[string]string{
		"api_key":      "secret",
		"url":          bookingURL,
		"render":       "false",
		"country_code": "sg",
		"premium":      "true",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want browser UA", gotUA)
	}
}

func TestScraperAPIErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		key      string
		wantKind ErrorKind
	}{
		{
			name:     "not configured",
			handler:  func(w http.ResponseWriter, r *http.Request) {},
			key:      "",
			wantKind: KindNotConfigured,
		},
		{
			name: "upstream status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			key:      "secret",
			wantKind: KindStatus,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			key:      "secret",
			wantKind: KindTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			s := NewScraperAPI(ScraperAPIConfig{
				Key:     tt.key,
				BaseURL: server.URL + "/",
				Timeout: 50 * time.Millisecond,
			}, server.Client())

			_, err := s.Fetch(context.Background(), bookingURL)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Fetch() error = %v, want *FetchError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("Fetch() kind = %s, want %s", fe.Kind, tt.wantKind)
			}
			if fe.Provider != domain.ProviderLightweight {
				t.Errorf("Fetch() provider = %s", fe.Provider)
			}
			if strings.Contains(err.Error(), "secret") {
				t.Errorf("Fetch() error leaks api key: %v", err)
			}
		})
	}
}

func TestScraperAPINotConfiguredIsSentinel(t *testing.T) {
	_, err := NewScraperAPI(ScraperAPIConfig{}, nil).Fetch(context.Background(), bookingURL)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Fetch() error = %v, want ErrNotConfigured", err)
	}
}

func TestScraperAPINetworkErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL + "/"
	server.Close()

	s := NewScraperAPI(ScraperAPIConfig{Key: "secret", BaseURL: base, Timeout: time.Second}, nil)
	_, err := s.Fetch(context.Background(), bookingURL)

	var fe *FetchError
	if !errors.As(err, &fe) || fe.Kind != KindNetwork {
		t.Fatalf("Fetch() error = %v, want network FetchError", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("Fetch() error leaks api key: %v", err)
	}
}
