package deps

import (
	"time"

	"github.com/MrSnakeDoc/planopro/internal/assets"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/metrics"
	"github.com/MrSnakeDoc/planopro/internal/nav"
	"github.com/MrSnakeDoc/planopro/internal/session"
	"github.com/MrSnakeDoc/planopro/internal/store"
)

// Store modes reported by /infra.
const (
	StoreModeMemory = "memory"
	StoreModeRedis  = "redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AppName   string           // shown in page titles and the drawer header
	Menu      nav.Menu         // fixed for the life of the process
	Store     store.StateStore // per-session sidebar state
	StoreMode string           // StoreModeMemory | StoreModeRedis
	Sessions  *session.Manager // session cookie
	Assets    *assets.Set      // logo variants and stylesheet
	Metrics   *metrics.Metrics // Prometheus registry
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts []string // Host headers allowed to access the pages
	AllowedCIDRS []string // IPs allowed to access the ops endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy
	RateBurst    int      // sidebar action burst per client IP
	RatePerMin   int      // sidebar action refill per client IP
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
