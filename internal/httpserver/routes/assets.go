package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/ui"
)

func init() { Register("assets", registerAssets) }

func registerAssets(r chi.Router, d deps.Deps) {
	r.Get(ui.LogoPath, d.Assets.Handler(d.Assets.Logo))
	r.Get(ui.LogoIconPath, d.Assets.Handler(d.Assets.Icon))
	r.Get(ui.StylePath, d.Assets.Handler(d.Assets.Style))
}
