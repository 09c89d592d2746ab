package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once a JS renderer is configured; the catalog and Redis are optional.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Prober == nil || !d.Prober.HasRenderer() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "no rendering provider configured"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
