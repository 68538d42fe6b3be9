package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/mw"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/ui"
	"github.com/MrSnakeDoc/planopro/internal/utils"
)

func init() { Register("sidebar", registerSidebar) }

func registerSidebar(r chi.Router, d deps.Deps) {
	actions := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateBurst,
			PerMinute:  d.RatePerMin,
			MaxEntries: 10000,
			IdleTTL:    15 * time.Minute,
			Key:        mw.SessionOrIP(d.Sessions, d.TrustProxy),
			OnLimited: func(r *http.Request, key string) {
				d.Metrics.RateLimited()
				// key may hold a session id; log the address instead
				d.Logger.Warn("sidebar action rate limited",
					logger.String("ip", utils.ClientIP(r, d.TrustProxy)),
					logger.Bool("per_session", strings.HasPrefix(key, "session:")),
					logger.String("path", r.URL.Path))
			},
		}),
		d.Sessions.Middleware(d.Logger),
	)

	actions.Post(ui.CollapsePath, handlers.Collapse(d))
	actions.Post(ui.MenuOpenPath, handlers.OpenMenu(d))
	actions.Post(ui.MenuClosePath, handlers.CloseMenu(d))
	actions.Get(ui.MenuNavigatePath, handlers.NavigateFromMenu(d))
}
