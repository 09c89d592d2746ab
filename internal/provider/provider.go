// Package provider fetches booking pages through third-party scraping and rendering services.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

const (
	// UserAgent is sent by every provider; the booking site serves a bot wall to obvious clients.
	UserAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	AcceptLanguage = "en-US,en;q=0.9"

	// maxBodyBytes caps a single payload. Rendered booking pages are well under 5 MiB.
	maxBodyBytes = 8 << 20
)

// ErrNotConfigured is wrapped by FetchError when a provider has no credentials.
var ErrNotConfigured = errors.New("provider not configured")

// Fetcher retrieves the content of a URL.
type Fetcher interface {
	Name() domain.ProviderID
	// Configured reports whether the provider has the credentials it needs.
	Configured() bool
	Fetch(ctx context.Context, targetURL string) (*Page, error)
}

// Page is one successful fetch attempt.
type Page struct {
	Provider domain.ProviderID
	URL      string
	// Status is the upstream HTTP status, 0 when the provider does not expose one.
	Status  int
	Body    string
	Elapsed time.Duration
}

func (p *Page) Size() int { return len(p.Body) }

type ErrorKind string

const (
	KindNetwork       ErrorKind = "network"
	KindStatus        ErrorKind = "status"
	KindTimeout       ErrorKind = "timeout"
	KindNotConfigured ErrorKind = "not_configured"
)

// FetchError is the only error type returned by Fetch.
type FetchError struct {
	Provider domain.ProviderID
	URL      string
	Kind     ErrorKind
	Status   int
	Elapsed  time.Duration
	Err      error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s fetch %s: upstream status %d", e.Provider, e.URL, e.Status)
	}
	return fmt.Sprintf("%s fetch %s: %s: %v", e.Provider, e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the attempt ran out of time.
func (e *FetchError) Timeout() bool { return e.Kind == KindTimeout }

func notConfigured(id domain.ProviderID, targetURL string) *FetchError {
	return &FetchError{Provider: id, URL: targetURL, Kind: KindNotConfigured, Err: ErrNotConfigured}
}

// transportError wraps a failed round trip, telling deadlines apart from other network failures.
func transportError(id domain.ProviderID, targetURL string, start time.Time, err error) *FetchError {
	kind := KindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &FetchError{
		Provider: id,
		URL:      targetURL,
		Kind:     kind,
		Elapsed:  time.Since(start),
		Err:      redact(err),
	}
}

// redact strips the query string from *url.Error so API keys never reach logs.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		ue.URL = u.String()
	}
	return err
}

// readPage drains resp into a Page or a status FetchError.
func readPage(id domain.ProviderID, targetURL string, start time.Time, resp *http.Response) (*Page, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(id, targetURL, start, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Provider: id,
			URL:      targetURL,
			Kind:     KindStatus,
			Status:   resp.StatusCode,
			Elapsed:  time.Since(start),
			Err:      fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return &Page{
		Provider: id,
		URL:      targetURL,
		Status:   resp.StatusCode,
		Body:     string(body),
		Elapsed:  time.Since(start),
	}, nil
}
