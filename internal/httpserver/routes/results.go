package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/handlers"
)

func init() { Register(Operator, registerResults) }

func registerResults(r chi.Router, d deps.Deps) {
	r.Delete("/api/results", handlers.FlushResults(d))
}
