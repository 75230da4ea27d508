package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/logger"
)

// maxBodyBytes caps gesture payloads; a selection is never that large.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError reports a backend failure. Details stay in the logs.
func writeStoreError(w http.ResponseWriter, r *http.Request, d deps.Deps, op string, err error) {
	d.Logger.Error("card store unavailable",
		logger.String("op", op),
		logger.String("path", r.URL.Path),
		logger.Error(err))
	writeError(w, http.StatusServiceUnavailable, "card store unavailable")
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
