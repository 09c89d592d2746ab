package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/utils"
)

// ScraperAPIConfig holds the lightweight provider settings.
type ScraperAPIConfig struct {
	Key     string
	BaseURL string // https://api.scraperapi.com/
	Country string // geo-targeting hint, e.g. "sg"
	Premium bool   // residential proxy pool
	Timeout time.Duration
}

// ScraperAPI fetches raw HTML through a proxying API without JavaScript rendering.
// It is cheap and quick, and sometimes enough to see the voucher banner.
type ScraperAPI struct {
	cfg    ScraperAPIConfig
	client *http.Client
}

func NewScraperAPI(cfg ScraperAPIConfig, client *http.Client) *ScraperAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.scraperapi.com/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{}
	}
	return &ScraperAPI{cfg: cfg, client: client}
}

func (s *ScraperAPI) Name() domain.ProviderID { return domain.ProviderLightweight }

func (s *ScraperAPI) Configured() bool { return strings.TrimSpace(s.cfg.Key) != "" }

func (s *ScraperAPI) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if !s.Configured() {
		return nil, notConfigured(s.Name(), targetURL)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(targetURL), nil)
	if err != nil {
		return nil, transportError(s.Name(), targetURL, start, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", AcceptLanguage)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError(s.Name(), targetURL, start, err)
	}
	defer utils.Close(resp.Body)

	return readPage(s.Name(), targetURL, start, resp)
}

func (s *ScraperAPI) requestURL(targetURL string) string {
	q := url.Values{}
	q.Set("api_key", s.cfg.Key)
	q.Set("url", targetURL)
	q.Set("render", "false")
	if s.cfg.Country != "" {
		q.Set("country_code", s.cfg.Country)
	}
	if s.cfg.Premium {
		q.Set("premium", "true")
	}

	sep := "?"
	if strings.Contains(s.cfg.BaseURL, "?") {
		sep = "&"
	}
	return s.cfg.BaseURL + sep + q.Encode()
}
