package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	HotelsLoaded *int   `json:"hotels_loaded,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	ProbingMode string                     `json:"probing_mode"`
	Components  map[string]componentStatus `json:"components"`
	Providers   map[domain.ProviderID]bool `json:"providers"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hotelsCount := d.MemoryIndex.EnabledCount()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		providers := map[domain.ProviderID]bool{}
		if d.Prober != nil {
			providers = d.Prober.ProviderStatus()
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:           hotelsCount > 0,
				HotelsLoaded: &hotelsCount,
				LastReload:   lastReloadStr,
			},
			"redis":    checkRedis(r.Context(), d),
			"renderer": checkRenderer(providers),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ProbingMode: determineProbingMode(components, providers),
			Components:  components,
			Providers:   providers,
		})
	}
}

func determineProbingMode(components map[string]componentStatus, providers map[domain.ProviderID]bool) string {
	if renderer, ok := components["renderer"]; ok && !renderer.OK {
		return "critical" // every date would come back indeterminate
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded" // no result cache, every date is probed
	}
	if !providers[domain.ProviderLightweight] {
		return "render-only"
	}
	return "full"
}

func checkRenderer(providers map[domain.ProviderID]bool) componentStatus {
	switch {
	case providers[domain.ProviderPrimaryJS] && providers[domain.ProviderSecondaryJS]:
		return componentStatus{OK: true, Mode: "primary+secondary"}
	case providers[domain.ProviderPrimaryJS]:
		return componentStatus{OK: true, Mode: "primary-only"}
	case providers[domain.ProviderSecondaryJS]:
		return componentStatus{OK: true, Mode: "secondary-only"}
	default:
		return componentStatus{OK: false, Impact: "probing-disabled", Error: "no renderer configured"}
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "result-cache-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "result-cache-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "result-cache-enabled",
	}
}
