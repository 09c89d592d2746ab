package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// CDPConfig holds the secondary renderer settings.
type CDPConfig struct {
	// WSURL is the DevTools websocket endpoint, e.g. wss://production-sfo.browserless.io
	WSURL   string
	Token   string
	Timeout time.Duration
	Settle  time.Duration
}

// CDP drives a remote Chrome over the DevTools protocol. It takes a different
// path through the rendering service than Browserless, so it still works when
// the REST endpoint is throttled or failing.
type CDP struct {
	cfg CDPConfig
}

func NewCDP(cfg CDPConfig) *CDP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Settle < 0 {
		cfg.Settle = 0
	}
	return &CDP{cfg: cfg}
}

func (c *CDP) Name() domain.ProviderID { return domain.ProviderSecondaryJS }

func (c *CDP) Configured() bool { return strings.TrimSpace(c.cfg.WSURL) != "" }

func (c *CDP) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if !c.Configured() {
		return nil, notConfigured(c.Name(), targetURL)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, &FetchError{Provider: c.Name(), URL: targetURL, Kind: KindNotConfigured, Err: err}
	}

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, endpoint, chromedp.NoModifyURL)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var html string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		emulation.SetUserAgentOverride(UserAgent).WithAcceptLanguage(AcceptLanguage),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": AcceptLanguage}),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.cfg.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ctx.Err(), err)
		}
		return nil, transportError(c.Name(), targetURL, start, err)
	}

	return &Page{
		Provider: c.Name(),
		URL:      targetURL,
		Body:     html,
		Elapsed:  time.Since(start),
	}, nil
}

// endpoint appends the token and stealth flags to the websocket URL.
func (c *CDP) endpoint() (string, error) {
	u, err := url.Parse(c.cfg.WSURL)
	if err != nil {
		return "", fmt.Errorf("invalid websocket url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("invalid websocket url scheme %q", u.Scheme)
	}

	q := u.Query()
	if c.cfg.Token != "" {
		q.Set("token", c.cfg.Token)
	}
	q.Set("stealth", "true")
	q.Set("blockAds", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
