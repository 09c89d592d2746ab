package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/mw"
)

type Registrar func(r chi.Router, d deps.Deps)

// Access selects the guard middlewares a route group is mounted behind.
type Access int

const (
	// Public routes are open to any caller.
	Public Access = iota
	// Internal routes sit behind the CIDR allow-list.
	Internal
	// Operator routes sit behind the CIDR allow-list and Host enforcement.
	Operator
)

func (a Access) middlewares(d deps.Deps) []func(http.Handler) http.Handler {
	switch a {
	case Internal:
		return []func(http.Handler) http.Handler{
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		}
	case Operator:
		return []func(http.Handler) http.Handler{
			mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
			mw.EnforceHost(d.AllowedHosts, d.Logger),
		}
	default:
		return nil
	}
}

type entry struct {
	reg    Registrar
	access Access
}

var registry []entry

// Register adds a route group. Call it from init().
func Register(access Access, reg Registrar) {
	registry = append(registry, entry{reg: reg, access: access})
}

// RegisterAll mounts every registered group. Called once from NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		guards := e.access.middlewares(d)
		if len(guards) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(guards...), d)
	}
}
