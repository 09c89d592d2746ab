package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/handlers"
)

func init() { Register(Public, registerHotels) }

func registerHotels(r chi.Router, d deps.Deps) {
	r.Get("/api/hotels", handlers.Hotels(d))
	r.Get("/api/hotels/resolve", handlers.ResolveHotel(d))
}
