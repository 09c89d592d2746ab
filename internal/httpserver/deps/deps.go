package deps

import (
	"time"

	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/lookup"
	"github.com/MrSnakeDoc/freenight/internal/probe"
	redisstore "github.com/MrSnakeDoc/freenight/internal/store/redis"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time   // for testing, defaults to time.Now
	AllowedHosts   []string           // Host headers allowed to access the operational routes
	AllowedCIDRS   []string           // IPs allowed to access healthz/readyz/infra/metrics
	TrustProxy     bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store          *redisstore.Store  // nil when Redis is disabled
	MemoryIndex    *index.MemoryIndex // in-memory hotel catalog
	Prober         *probe.Prober      // provider chain, used for status reporting
	Lookup         *lookup.Service    // cache-aware availability lookups
	RefreshTrigger chan struct{}      // manual catalog refresh (nil if the catalog is disabled)
	MaxDates       int                // max dates per availability request
	RateBurst      int                // availability requests a client may burst
	RatePerMin     int                // availability requests refilled per client per minute
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
