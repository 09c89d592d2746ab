package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget on the HTTP API, must fit a whole batch

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Lightweight provider (ScraperAPI)
	ScraperAPIKey     string        // optional, empty = lightweight fast path disabled
	ScraperAPIURL     string        // ex: "https://api.scraperapi.com/"
	ScraperAPICountry string        // geo-targeting hint (ex: "sg")
	ScraperAPIPremium bool          // use the residential proxy pool
	LightTimeout      time.Duration // lightweight fetch timeout (default: 10s)

	// JS renderers (Browserless REST + CDP websocket)
	BrowserlessKey   string        // token shared by both renderers
	BrowserlessURL   string        // REST base (ex: "https://production-sfo.browserless.io")
	BrowserlessWSURL string        // websocket endpoint, defaults to the REST host when a key is set
	RenderTimeout    time.Duration // renderer timeout (default: 60s)
	RenderSettle     time.Duration // wait after network idle (default: 12s)
	ProviderRPS      float64       // outbound requests per second per provider (0 = unlimited)
	ProviderBurst    int           // outbound burst per provider

	// Probing
	BatchSize      int           // dates probed concurrently (default: 10)
	MaxDates       int           // max dates per request (default: 62)
	PhrasesFile    string        // optional YAML overriding classifier phrases
	ResultCacheTTL time.Duration // TTL of conclusive results in Redis (0 = cache disabled)

	// Hotel catalog
	HotelsFile      string        // optional YAML seed of hotels
	CatalogURL      string        // program landing page listing participating hotels
	CatalogScrape   bool          // scrape CatalogURL through the primary renderer on refresh
	CatalogInterval time.Duration // interval to refresh the catalog (default: 24h)
	GCInterval      time.Duration // interval to run garbage collection (default: 24h)

	// Redis (optional, empty address = no cache and no catalog persistence)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	RateBurst    int      // availability requests a client may burst
	RatePerMin   int      // availability requests refilled per client per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FREENIGHT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("FREENIGHT_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("FREENIGHT_REQUEST_TIMEOUT", 10*time.Minute),

		// Logging
		LogLevel:  getenv("FREENIGHT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FREENIGHT_PRETTY_LOG", true),

		// Providers
		ScraperAPIKey:     getenv("FREENIGHT_SCRAPERAPI_KEY", ""),
		ScraperAPIURL:     getenv("FREENIGHT_SCRAPERAPI_URL", "https://api.scraperapi.com/"),
		ScraperAPICountry: getenv("FREENIGHT_SCRAPERAPI_COUNTRY", "sg"),
		ScraperAPIPremium: mustBool("FREENIGHT_SCRAPERAPI_PREMIUM", false),
		LightTimeout:      mustDuration("FREENIGHT_LIGHT_TIMEOUT", 10*time.Second),
		BrowserlessKey:    getenv("FREENIGHT_BROWSERLESS_KEY", ""),
		BrowserlessURL:    getenv("FREENIGHT_BROWSERLESS_URL", "https://production-sfo.browserless.io"),
		BrowserlessWSURL:  getenv("FREENIGHT_BROWSERLESS_WS_URL", ""),
		RenderTimeout:     mustDuration("FREENIGHT_RENDER_TIMEOUT", 60*time.Second),
		RenderSettle:      mustDuration("FREENIGHT_RENDER_SETTLE", 12*time.Second),
		ProviderRPS:       getenvFloat("FREENIGHT_PROVIDER_RPS", 0),
		ProviderBurst:     getenvInt("FREENIGHT_PROVIDER_BURST", 5),

		// Probing
		BatchSize:      getenvInt("FREENIGHT_BATCH_SIZE", 10),
		MaxDates:       getenvInt("FREENIGHT_MAX_DATES", 62),
		PhrasesFile:    getenv("FREENIGHT_PHRASES_FILE", ""),
		ResultCacheTTL: mustDuration("FREENIGHT_RESULT_CACHE_TTL", 6*time.Hour),

		// Catalog
		HotelsFile:      getenv("FREENIGHT_HOTELS_FILE", ""),
		CatalogURL:      getenv("FREENIGHT_CATALOG_URL", "https://apac.hilton.com/amexkrisflyer"),
		CatalogScrape:   mustBool("FREENIGHT_CATALOG_SCRAPE", false),
		CatalogInterval: mustDuration("FREENIGHT_CATALOG_INTERVAL", 24*time.Hour),
		GCInterval:      mustDuration("FREENIGHT_GC_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:             getenv("FREENIGHT_REDIS_ADDR", ""),
		RedisUser:             getenv("FREENIGHT_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("FREENIGHT_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("FREENIGHT_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("FREENIGHT_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("FREENIGHT_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("FREENIGHT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("FREENIGHT_TRUST_PROXY", true),
		RateBurst:    getenvInt("FREENIGHT_RATE_BURST", 5),
		RatePerMin:   getenvInt("FREENIGHT_RATE_PER_MIN", 10),
	}

	if cfg.BrowserlessWSURL == "" && cfg.BrowserlessKey != "" {
		cfg.BrowserlessWSURL = websocketURL(cfg.BrowserlessURL)
	}

	if cfg.BatchSize < 1 {
		panic(fmt.Sprintf("❌ FATAL: FREENIGHT_BATCH_SIZE must be at least 1, got %d", cfg.BatchSize))
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: FREENIGHT_REDIS_PASSWORD is required when FREENIGHT_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// MustHaveRenderer panics unless at least one JS renderer can be built.
// Without one, every date would come back indeterminate.
func (c *Config) MustHaveRenderer() {
	if c.BrowserlessKey == "" && c.BrowserlessWSURL == "" {
		panic("❌ FATAL: FREENIGHT_BROWSERLESS_KEY or FREENIGHT_BROWSERLESS_WS_URL must be set")
	}
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	const mask = "***REDACTED***"
	if cp.RedisPassword != "" {
		cp.RedisPassword = mask
	}
	if cp.RedisUser != "" {
		cp.RedisUser = mask
	}
	if cp.ScraperAPIKey != "" {
		cp.ScraperAPIKey = mask
	}
	if cp.BrowserlessKey != "" {
		cp.BrowserlessKey = mask
	}
	return cp
}

// websocketURL turns the REST base into its websocket twin: https://host -> wss://host
func websocketURL(restURL string) string {
	switch {
	case strings.HasPrefix(restURL, "https://"):
		return "wss://" + strings.TrimPrefix(restURL, "https://")
	case strings.HasPrefix(restURL, "http://"):
		return "ws://" + strings.TrimPrefix(restURL, "http://")
	default:
		return restURL
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
