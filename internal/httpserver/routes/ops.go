package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/notary/internal/httpserver/mw"
)

func init() { Register("ops", registerOps) }

// registerOps mounts the operator endpoints behind the CIDR allow-list.
// /healthz stays open for liveness probes.
func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	ops := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	ops.Get("/readyz", handlers.Readyz(d))
	ops.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/infra", handlers.Infra(d))
	ops.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
