package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/controller"
	"github.com/MrSnakeDoc/notary/internal/domain"
	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/view"
)

// captureRequest carries the ambient page inputs read at gesture time.
type captureRequest struct {
	Text  string `json:"text"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type clickRequest struct {
	Target string `json:"target"`
}

type cardsResponse struct {
	Cards []view.CardView `json:"cards"`
	Count int             `json:"count"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
}

// ListCards returns the rendered views in order.
func ListCards(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views := d.Controller.Views()
		writeJSON(w, http.StatusOK, cardsResponse{Cards: views, Count: len(views)})
	}
}

// CaptureCard stores the selection in the body as a new card.
// Empty and duplicate selections answer 200 with created=false.
func CaptureCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req captureRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid capture payload")
			return
		}
		writeCapture(w, r, d, req.Text, req.URL, req.Title)
	}
}

func writeCapture(w http.ResponseWriter, r *http.Request, d deps.Deps, text, url, title string) {
	res, err := d.Controller.Capture(r.Context(), text, url, title)
	if err != nil {
		writeStoreError(w, r, d, "capture", err)
		return
	}
	if !res.Created {
		d.Logger.Debug("capture ignored", logger.String("reason", res.Reason))
		writeJSON(w, http.StatusOK, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ClickCard toggles the selection of a rendered card.
func ClickCard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clickRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid click payload")
			return
		}
		target, err := domain.ParseClickTarget(req.Target)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		v, err := d.Controller.Click(r.Context(), chi.URLParam(r, "id"), target)
		switch {
		case errors.Is(err, controller.ErrViewNotFound):
			writeError(w, http.StatusNotFound, "card not found")
		case err != nil:
			writeStoreError(w, r, d, "click", err)
		default:
			writeJSON(w, http.StatusOK, v)
		}
	}
}

// RemoveSelected removes the selected card. Without a selection it is a no-op.
func RemoveSelected(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := d.Controller.RemoveSelected(r.Context())
		if err != nil {
			writeStoreError(w, r, d, "remove", err)
			return
		}
		writeJSON(w, http.StatusOK, removeResponse{Removed: removed})
	}
}

// RemoveAllCards clears the store and every view.
func RemoveAllCards(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Controller.RemoveAll(r.Context()); err != nil {
			writeStoreError(w, r, d, "clear", err)
			return
		}
		d.Logger.Info("all cards removed via endpoint",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusNoContent)
	}
}
