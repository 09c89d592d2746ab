package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/provider"
)

const (
	destinationSelect = "select#amex_dest_select, select[name=amex_dest_select]"
	hotelSelect       = "select#amex_select, select[name=amex_select]"
)

// ErrNoHotels is returned when the landing page has no hotel options, typically a bot wall.
var ErrNoHotels = errors.New("no hotels found on landing page")

// ParseLandingPage extracts hotels from the program landing page's two
// drop-downs: destinations, then hotels whose value is the hotel code and
// whose data-dest names the destination.
func ParseLandingPage(r io.Reader) ([]*domain.Hotel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	destinations := make(map[string]string)
	doc.Find(destinationSelect).First().Find("option").Each(func(_ int, opt *goquery.Selection) {
		label := cleanText(opt.Text())
		if isPlaceholder(label) {
			return
		}
		value, ok := opt.Attr("value")
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			value = label
		}
		destinations[value] = label
	})

	now := time.Now()
	seen := make(map[string]bool)
	var hotels []*domain.Hotel

	doc.Find(hotelSelect).First().Find("option").Each(func(_ int, opt *goquery.Selection) {
		name := cleanText(opt.Text())
		code, _ := opt.Attr("value")
		code = strings.ToUpper(strings.TrimSpace(code))
		if isPlaceholder(name) || code == "" || seen[code] {
			return
		}
		seen[code] = true

		dest, _ := opt.Attr("data-dest")
		dest = strings.TrimSpace(dest)
		if label, ok := destinations[dest]; ok {
			dest = label
		}

		hotels = append(hotels, &domain.Hotel{
			Code:        code,
			Name:        name,
			Destination: dest,
			Sources:     []string{SourceLanding},
			UpdatedAt:   now,
			LastSeenAt:  now,
		})
	})

	if len(hotels) == 0 {
		return nil, ErrNoHotels
	}
	return hotels, nil
}

// FetchLandingPage downloads and parses the landing page, trying each
// fetcher in turn until one yields hotels.
func FetchLandingPage(ctx context.Context, pageURL string, fetchers ...provider.Fetcher) ([]*domain.Hotel, error) {
	var errs []error
	for _, f := range fetchers {
		if f == nil || !f.Configured() {
			continue
		}
		page, err := f.Fetch(ctx, pageURL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		hotels, err := ParseLandingPage(strings.NewReader(page.Body))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
			continue
		}
		return hotels, nil
	}

	if len(errs) == 0 {
		return nil, provider.ErrNotConfigured
	}
	return nil, errors.Join(errs...)
}

// isPlaceholder reports option labels like "Select a hotel" or "--".
func isPlaceholder(label string) bool {
	l := strings.ToLower(label)
	return l == "" ||
		strings.HasPrefix(l, "select") ||
		strings.Contains(l, "choose") ||
		strings.Contains(l, "please select") ||
		l == "..." ||
		l == "--"
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
