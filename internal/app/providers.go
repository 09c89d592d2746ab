package app

import (
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/freenight/internal/classify"
	"github.com/MrSnakeDoc/freenight/internal/config"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/probe"
	"github.com/MrSnakeDoc/freenight/internal/provider"
)

// NewProviders builds the three fetchers from config, each behind its own rate limiter.
// Fetchers without credentials are still returned and report Configured() == false.
func NewProviders(cfg *config.Config) probe.Providers {
	client := &http.Client{}

	light := provider.NewScraperAPI(provider.ScraperAPIConfig{
		Key:     cfg.ScraperAPIKey,
		BaseURL: cfg.ScraperAPIURL,
		Country: cfg.ScraperAPICountry,
		Premium: cfg.ScraperAPIPremium,
		Timeout: cfg.LightTimeout,
	}, client)

	primary := provider.NewBrowserless(provider.BrowserlessConfig{
		Token:   cfg.BrowserlessKey,
		BaseURL: cfg.BrowserlessURL,
		Timeout: cfg.RenderTimeout,
		Settle:  cfg.RenderSettle,
	}, client)

	secondary := provider.NewCDP(provider.CDPConfig{
		WSURL:   cfg.BrowserlessWSURL,
		Token:   cfg.BrowserlessKey,
		Timeout: cfg.RenderTimeout,
		Settle:  cfg.RenderSettle,
	})

	return probe.Providers{
		Lightweight: provider.NewLimited(light, cfg.ProviderRPS, cfg.ProviderBurst),
		PrimaryJS:   provider.NewLimited(primary, cfg.ProviderRPS, cfg.ProviderBurst),
		SecondaryJS: provider.NewLimited(secondary, cfg.ProviderRPS, cfg.ProviderBurst),
	}
}

// NewClassifier returns the default classifier, or one built from the phrases file when set.
func NewClassifier(cfg *config.Config) (*classify.Classifier, error) {
	if cfg.PhrasesFile == "" {
		return classify.Default(), nil
	}
	phrases, err := classify.NewPhrasesLoader(cfg.PhrasesFile).Load()
	if err != nil {
		return nil, err
	}
	c, err := classify.New(phrases)
	if err != nil {
		return nil, fmt.Errorf("invalid phrases file %s: %w", cfg.PhrasesFile, err)
	}
	return c, nil
}

// NewProber wires providers and classifier into a prober.
func NewProber(cfg *config.Config, log logger.Logger) (*probe.Prober, probe.Providers, error) {
	classifier, err := NewClassifier(cfg)
	if err != nil {
		return nil, probe.Providers{}, err
	}
	providers := NewProviders(cfg)
	return probe.New(providers, classifier, log, cfg.BatchSize), providers, nil
}
