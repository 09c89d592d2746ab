package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/provider"
)

const landingHTML = `<html><body>
<form>
  <select id="amex_dest_select" name="amex_dest_select">
    <option value="">Select a destination</option>
    <option value="Singapore">Singapore</option>
    <option value="JP">Japan</option>
  </select>
  <select id="amex_select" name="amex_select">
    <option value="">Please select a hotel</option>
    <option value="--">--</option>
    <option value="SINGI" data-dest="Singapore">Hilton Singapore
        Orchard</option>
    <option value="sindt" data-dest="Singapore">DoubleTree by Hilton Singapore</option>
    <option value="TYOCI" data-dest="JP">Conrad Tokyo</option>
    <option value="SINGI" data-dest="Singapore">Hilton Singapore Orchard</option>
  </select>
</form>
</body></html>`

func TestParseLandingPage(t *testing.T) {
	hotels, err := ParseLandingPage(strings.NewReader(landingHTML))
	if err != nil {
		t.Fatalf("ParseLandingPage() error = %v", err)
	}

	want := []struct{ code, name, dest string }{
		{"SINGI", "Hilton Singapore Orchard", "Singapore"},
		{"SINDT", "DoubleTree by Hilton Singapore", "Singapore"},
		{"TYOCI", "Conrad Tokyo", "Japan"},
	}
	if len(hotels) != len(want) {
		t.Fatalf("ParseLandingPage() returned %d hotels, want %d", len(hotels), len(want))
	}
	for i, w := range want {
		h := hotels[i]
		if h.Code != w.code || h.Name != w.name || h.Destination != w.dest {
			t.Errorf("hotel %d = %s/%s/%s, want %s/%s/%s", i, h.Code, h.Name, h.Destination, w.code, w.name, w.dest)
		}
		if !h.HasSource(SourceLanding) {
			t.Errorf("hotel %d sources = %v", i, h.Sources)
		}
	}
}

func TestParseLandingPageByName(t *testing.T) {
	html := `<select name="amex_select"><option value="SYDCI" data-dest="Australia">Conrad Sydney</option></select>`

	hotels, err := ParseLandingPage(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseLandingPage() error = %v", err)
	}
	if len(hotels) != 1 || hotels[0].Destination != "Australia" {
		t.Errorf("ParseLandingPage() = %+v", hotels)
	}
}

func TestParseLandingPageBotWall(t *testing.T) {
	_, err := ParseLandingPage(strings.NewReader("<html><body>Access Denied</body></html>"))
	if !errors.Is(err, ErrNoHotels) {
		t.Fatalf("ParseLandingPage() error = %v, want ErrNoHotels", err)
	}
}

type pageFetcher struct {
	id   domain.ProviderID
	body string
	err  error
}

func (p pageFetcher) Name() domain.ProviderID { return p.id }
func (p pageFetcher) Configured() bool        { return true }
func (p pageFetcher) Fetch(_ context.Context, u string) (*provider.Page, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &provider.Page{Provider: p.id, URL: u, Body: p.body}, nil
}

func TestFetchLandingPageFallsThrough(t *testing.T) {
	blocked := pageFetcher{id: domain.ProviderPrimaryJS, body: "<html>captcha</html>"}
	failing := pageFetcher{id: domain.ProviderSecondaryJS, err: errors.New("boom")}
	working := pageFetcher{id: domain.ProviderLightweight, body: landingHTML}

	hotels, err := FetchLandingPage(context.Background(), "https://apac.hilton.com/amexkrisflyer", blocked, failing, working)
	if err != nil {
		t.Fatalf("FetchLandingPage() error = %v", err)
	}
	if len(hotels) != 3 {
		t.Errorf("FetchLandingPage() returned %d hotels, want 3", len(hotels))
	}
}

func TestFetchLandingPageErrors(t *testing.T) {
	if _, err := FetchLandingPage(context.Background(), "https://example.com", nil); !errors.Is(err, provider.ErrNotConfigured) {
		t.Errorf("FetchLandingPage() error = %v, want ErrNotConfigured", err)
	}

	blocked := pageFetcher{id: domain.ProviderPrimaryJS, body: "<html>captcha</html>"}
	if _, err := FetchLandingPage(context.Background(), "https://example.com", blocked); !errors.Is(err, ErrNoHotels) {
		t.Errorf("FetchLandingPage() error = %v, want ErrNoHotels", err)
	}
}
