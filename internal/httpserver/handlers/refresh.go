package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/logger"
)

type refreshResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// RefreshCatalog triggers a manual catalog refresh
func RefreshCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RefreshTrigger == nil {
			writeJSON(w, http.StatusServiceUnavailable, refreshResponse{Message: "hotel catalog disabled"})
			return
		}

		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual catalog refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, refreshResponse{Triggered: true, Message: "refresh triggered"})
		default:
			d.Logger.Warn("catalog refresh already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, refreshResponse{Message: "refresh already pending"})
		}
	}
}
