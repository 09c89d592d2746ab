package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/handlers"
)

func init() { Register(Operator, registerRefresh) }

func registerRefresh(r chi.Router, d deps.Deps) {
	r.Post("/api/hotels/refresh", handlers.RefreshCatalog(d))
}
