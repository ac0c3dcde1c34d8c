// Package router maps application paths to surfaces and runs route guards
// before activating them. Patterns use chi syntax ("/employees/{id}/edit").
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"sync"

	"github.com/dmitrijs2005/staffkeeper/internal/client/guards"
	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
)

// MaxRedirects bounds guard redirect chains.
const MaxRedirects = 8

var (
	ErrNoRoute        = errors.New("no route")
	ErrRedirectLoop   = errors.New("too many redirects")
	ErrDuplicateRoute = errors.New("duplicate route")
)

// Route is one navigable surface.
type Route struct {
	Pattern string
	Name    string
	Guards  []guards.Guard
	Meta    map[string]string
	// OnEnter runs after the route is activated.
	OnEnter func(ctx context.Context, loc Location)
}

// Location is an activated route.
type Location struct {
	Path    string
	Pattern string
	Name    string
	Params  map[string]string
}

// SessionSource supplies the session guards are evaluated against.
type SessionSource interface {
	Current() models.Session
}

type Router struct {
	mux      *chi.Mux
	routes   map[string]*Route
	session  SessionSource
	fallback string
	logger   logging.Logger

	mu      sync.RWMutex
	current Location
}

// New builds a router. Paths matching no route are sent to fallback.
func New(session SessionSource, fallback string, logger logging.Logger, routes ...Route) (*Router, error) {
	r := &Router{
		mux:      chi.NewRouter(),
		routes:   make(map[string]*Route, len(routes)),
		session:  session,
		fallback: fallback,
		logger:   logger.With("module", "router"),
	}

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := range routes {
		rt := routes[i]
		if _, ok := r.routes[rt.Pattern]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, rt.Pattern)
		}
		r.routes[rt.Pattern] = &rt
		r.mux.Get(rt.Pattern, noop)
	}

	if _, _, ok := r.match(fallback); !ok {
		return nil, fmt.Errorf("%w: fallback %q", ErrNoRoute, fallback)
	}
	return r, nil
}

// Current returns the active location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Router) match(p string) (*Route, Location, bool) {
	p = normalize(p)

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, p) {
		return nil, Location{}, false
	}
	rt, ok := r.routes[rctx.RoutePattern()]
	if !ok {
		return nil, Location{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return rt, Location{Path: p, Pattern: rt.Pattern, Name: rt.Name, Params: params}, true
}

// Navigate activates the route for target. Guards run in order; the first
// denial restarts navigation at its redirect. Unknown paths go to the
// fallback. The session is re-read on every hop.
func (r *Router) Navigate(ctx context.Context, target string) error {
	requested := target

	for hop := 0; hop <= MaxRedirects; hop++ {
		rt, loc, ok := r.match(target)
		if !ok {
			r.logger.Debug(ctx, "no route, using fallback", "path", target)
			target = r.fallback
			continue
		}

		if redirect, denied := r.check(rt); denied {
			r.logger.Debug(ctx, "navigation denied", "path", loc.Path, "redirect", redirect)
			target = redirect
			continue
		}

		r.mu.Lock()
		r.current = loc
		r.mu.Unlock()

		if loc.Path != normalize(requested) {
			r.logger.Info(ctx, "redirected", "requested", requested, "path", loc.Path)
		}
		if rt.OnEnter != nil {
			rt.OnEnter(ctx, loc)
		}
		return nil
	}

	return fmt.Errorf("%w navigating to %q", ErrRedirectLoop, requested)
}

func (r *Router) check(rt *Route) (string, bool) {
	s := r.session.Current()
	for _, g := range rt.Guards {
		d := g(s, rt.Meta)
		if d.Allow {
			continue
		}
		if d.Redirect == "" {
			return r.fallback, true
		}
		return d.Redirect, true
	}
	return "", false
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
