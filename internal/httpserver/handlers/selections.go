package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
)

type offerResponse struct {
	Offered bool   `json:"offered"`
	ID      string `json:"id,omitempty"`
	TTLMs   int64  `json:"ttl_ms,omitempty"`
}

// OfferSelection records a fresh text selection so the client can show the
// capture affordance. The affordance goes stale after the configured dwell.
func OfferSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req captureRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid selection payload")
			return
		}

		p, ok := d.Affordances.Offer(req.Text, req.URL, req.Title)
		if !ok {
			writeJSON(w, http.StatusOK, offerResponse{Offered: false})
			return
		}
		writeJSON(w, http.StatusCreated, offerResponse{
			Offered: true,
			ID:      p.ID,
			TTLMs:   d.Affordances.Dwell().Milliseconds(),
		})
	}
}

// CaptureSelection activates a pending affordance and captures its candidate.
func CaptureSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := d.Affordances.Take(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "selection expired")
			return
		}
		writeCapture(w, r, d, p.Card.Text, p.Card.URL, p.Card.SiteTitle)
	}
}
