package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Backend string `json:"backend"`
}

// Readyz reports ready once the card store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Slot.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Backend: d.Slot.Name()})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Backend: d.Slot.Name()})
	}
}
