package handlers

import (
	"context"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/MrSnakeDoc/planopro/internal/domain"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/session"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

// render writes an HTML page. The client may have gone away, so write
// errors are only worth a debug line.
func render(w http.ResponseWriter, r *http.Request, d deps.Deps, status int, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := page.Render(w); err != nil {
		d.Logger.Debug("render failed",
			logger.String("path", r.URL.Path),
			logger.Error(err))
	}
}

// loadState returns the session id and sidebar state of the request. A
// store failure is logged and returned along with the initial state, so
// pages can still render while writers know not to overwrite.
func loadState(ctx context.Context, d deps.Deps) (string, domain.SidebarState, error) {
	id, ok := session.FromContext(ctx)
	if !ok {
		return "", domain.SidebarState{}, nil
	}

	state, err := d.Store.Get(ctx, id)
	if err != nil {
		d.Logger.Warn("sidebar state unavailable, using defaults", logger.Error(err))
		return id, domain.SidebarState{}, err
	}
	return id, state, nil
}

// safeTarget returns target when it is the landing page or a menu link,
// and the default dashboard route otherwise.
func safeTarget(d deps.Deps, target string) string {
	if target == ui.HomePath {
		return target
	}
	if _, ok := d.Menu.Lookup(target); ok {
		return target
	}
	return ui.DefaultPath
}
