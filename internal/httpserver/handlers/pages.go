package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

// Landing serves the public landing page. Leaving the dashboard discards
// its sidebar state, so the session's state and cookie are dropped here.
func Landing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := d.Sessions.Read(r); ok {
			if err := d.Store.Delete(r.Context(), id); err != nil {
				d.Logger.Warn("failed to discard sidebar state", logger.Error(err))
			}
			d.Sessions.Clear(w)
		}

		d.Metrics.PageRendered(ui.HomePath)
		render(w, r, d, http.StatusOK, ui.LandingPage(ui.LandingProps{AppName: d.AppName}))
	}
}

// Dashboard serves one dashboard route inside the sidebar shell. The
// request path is the current route used for the active link.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		item, ok := d.Menu.Lookup(path)
		if !ok {
			http.NotFound(w, r)
			return
		}

		_, state, _ := loadState(r.Context(), d)

		d.Metrics.PageRendered(item.Href)
		render(w, r, d, http.StatusOK, ui.DashboardPage(ui.DashboardPageProps{
			ShellProps: ui.ShellProps{
				AppName:     d.AppName,
				Menu:        d.Menu,
				CurrentPath: path,
				State:       state,
			},
		}))
	}
}
