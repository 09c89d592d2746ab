package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/logger"
)

type flushResponse struct {
	Deleted int `json:"deleted"`
}

// FlushResults drops every cached probe result, e.g. after the booking site changed its wording.
func FlushResults(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "result cache disabled")
			return
		}

		deleted, err := d.Store.FlushResults(r.Context())
		if err != nil {
			d.Logger.Error("failed to flush cached results",
				logger.Int("deleted", deleted),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "flush failed")
			return
		}

		d.Logger.Info("cached results flushed via endpoint",
			logger.Int("deleted", deleted),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, flushResponse{Deleted: deleted})
	}
}
