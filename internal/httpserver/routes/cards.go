package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/httpserver/handlers"
)

func init() { Register("cards", registerCards) }

func registerCards(r chi.Router, d deps.Deps) {
	r.Route("/api/cards", func(r chi.Router) {
		r.Get("/", handlers.ListCards(d))
		r.Post("/", handlers.CaptureCard(d))
		r.Delete("/", handlers.RemoveAllCards(d))
		r.Post("/remove-selected", handlers.RemoveSelected(d))
		r.Post("/{id}/click", handlers.ClickCard(d))
	})
}
