package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/mw"
)

func init() { Register(Public, registerAvailability) }

func registerAvailability(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Post("/api/availability", handlers.Availability(d))
}
