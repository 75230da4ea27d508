package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type group struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var groups []group

// Register adds a named route group with optional group-wide middlewares.
// Route files call it from init().
func Register(name string, reg Registrar, mws ...Middleware) {
	groups = append(groups, group{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every group on r. Called once by the server.
func RegisterAll(r chi.Router, d deps.Deps) {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		if len(g.mws) == 0 {
			g.reg(r, d)
		} else {
			g.reg(r.With(g.mws...), d)
		}
		names = append(names, g.name)
	}
	d.Logger.Debug("routes registered", logger.String("groups", strings.Join(names, ",")))
}
