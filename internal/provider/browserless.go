package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/utils"
)

// BrowserlessConfig holds the primary renderer settings.
type BrowserlessConfig struct {
	Token   string
	BaseURL string // https://production-sfo.browserless.io
	Timeout time.Duration
	// Settle is how long the page is left alone after network idle so client-side rates can load.
	Settle time.Duration
}

// Browserless renders pages in a hosted headless Chrome through its /content REST endpoint.
type Browserless struct {
	cfg    BrowserlessConfig
	client *http.Client
}

func NewBrowserless(cfg BrowserlessConfig, client *http.Client) *Browserless {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://production-sfo.browserless.io"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Settle < 0 {
		cfg.Settle = 0
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Browserless{cfg: cfg, client: client}
}

type gotoOptions struct {
	WaitUntil string `json:"waitUntil"`
	Timeout   int64  `json:"timeout"`
}

type contentRequest struct {
	URL                 string            `json:"url"`
	GotoOptions         gotoOptions       `json:"gotoOptions"`
	WaitForTimeout      int64             `json:"waitForTimeout,omitempty"`
	SetExtraHTTPHeaders map[string]string `json:"setExtraHTTPHeaders"`
}

func (b *Browserless) Name() domain.ProviderID { return domain.ProviderPrimaryJS }

func (b *Browserless) Configured() bool { return strings.TrimSpace(b.cfg.Token) != "" }

func (b *Browserless) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if !b.Configured() {
		return nil, notConfigured(b.Name(), targetURL)
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	start := time.Now()
	payload, err := json.Marshal(b.contentRequest(targetURL))
	if err != nil {
		return nil, transportError(b.Name(), targetURL, start, fmt.Errorf("encoding request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, transportError(b.Name(), targetURL, start, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, transportError(b.Name(), targetURL, start, err)
	}
	defer utils.Close(resp.Body)

	return readPage(b.Name(), targetURL, start, resp)
}

func (b *Browserless) contentRequest(targetURL string) contentRequest {
	// Navigation gets whatever budget the settle delay leaves.
	navTimeout := b.cfg.Timeout - b.cfg.Settle
	if navTimeout <= 0 {
		navTimeout = b.cfg.Timeout
	}
	return contentRequest{
		URL: targetURL,
		GotoOptions: gotoOptions{
			WaitUntil: "networkidle2",
			Timeout:   navTimeout.Milliseconds(),
		},
		WaitForTimeout: b.cfg.Settle.Milliseconds(),
		SetExtraHTTPHeaders: map[string]string{
			"Accept-Language": AcceptLanguage,
			"User-Agent":      UserAgent,
		},
	}
}

func (b *Browserless) endpoint() string {
	q := url.Values{}
	q.Set("token", b.cfg.Token)
	return strings.TrimRight(b.cfg.BaseURL, "/") + "/content?" + q.Encode()
}
