package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Backend    string `json:"backend,omitempty"`
	CardsShown *int   `json:"cards_shown,omitempty"`
	Pending    *int   `json:"pending,omitempty"`
	LastSync   string `json:"last_sync,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shown := d.Projection.Count()
		lastSync := d.Projection.LastSync()
		lastSyncStr := "never"
		if !lastSync.IsZero() {
			lastSyncStr = lastSync.Format("2006-01-02 15:04:05")
		}
		pending := d.Affordances.Len()

		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"views": {
				OK:         !lastSync.IsZero(),
				CardsShown: &shown,
				LastSync:   lastSyncStr,
			},
			"affordances": {
				OK:      true,
				Pending: &pending,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Store down = every gesture fails
	if s, ok := components["store"]; ok && !s.OK {
		return "critical"
	}
	// Views never synced = sidebar may be stale
	if v, ok := components["views"]; ok && !v.OK {
		return "degraded"
	}
	return "operational"
}

func checkStore(parent context.Context, d deps.Deps) componentStatus {
	if d.Slot == nil {
		return componentStatus{OK: false, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Slot.Ping(ctx); err != nil {
		return componentStatus{OK: false, Backend: d.Slot.Name(), Error: "unreachable"}
	}
	return componentStatus{OK: true, Backend: d.Slot.Name()}
}
