package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/httpserver/handlers"
)

func init() { Register("selections", registerSelections) }

func registerSelections(r chi.Router, d deps.Deps) {
	r.Post("/api/selections", handlers.OfferSelection(d))
	r.Post("/api/selections/{id}/capture", handlers.CaptureSelection(d))
}
