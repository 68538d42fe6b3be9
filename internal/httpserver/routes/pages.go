package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/mw"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

func init() { Register("pages", registerPages) }

// reserved paths are owned by other routes and never served as pages.
var reserved = map[string]bool{
	ui.HomePath:         true,
	ui.CollapsePath:     true,
	ui.MenuOpenPath:     true,
	ui.MenuClosePath:    true,
	ui.MenuNavigatePath: true,
	ui.LogoPath:         true,
	ui.LogoIconPath:     true,
	ui.StylePath:        true,
}

func registerPages(r chi.Router, d deps.Deps) {
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host).Get(ui.HomePath, handlers.Landing(d))

	pages := r.With(host, d.Sessions.Middleware(d.Logger))
	dashboard := handlers.Dashboard(d)
	for _, link := range d.Menu.Links() {
		if reserved[link.Href] {
			d.Logger.Warn("menu link shadows a built-in route, not served",
				logger.String("href", link.Href))
			continue
		}
		pages.Get(link.Href, dashboard)
	}
}
