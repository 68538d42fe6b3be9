package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/planopro/internal/utils"
)

// RateLimitConfig configures a token bucket per key.
type RateLimitConfig struct {
	Burst      int // bucket size
	PerMinute  int // tokens added per minute
	MaxEntries int // sweep early once this many buckets exist; 0 means no cap
	IdleTTL    time.Duration

	// Key picks the bucket of a request. Nil means the client IP.
	Key        func(r *http.Request) string
	TrustProxy bool

	// OnLimited, when set, is called for every rejected request.
	OnLimited func(r *http.Request, key string)
}

// SessionReader reads the session id of a request without creating one.
type SessionReader interface {
	Read(r *http.Request) (string, bool)
}

// SessionOrIP buckets requests by session so visitors behind one NAT do not
// starve each other. Requests without a valid session share their IP's
// bucket.
func SessionOrIP(sessions SessionReader, trustProxy bool) func(*http.Request) string {
	return func(r *http.Request) string {
		if id, ok := sessions.Read(r); ok {
			return "session:" + id
		}
		return "ip:" + utils.ClientIP(r, trustProxy)
	}
}

type tokens struct {
	level float64
	at    time.Time
}

type limiter struct {
	burst      float64
	perSec     float64
	maxEntries int
	idleTTL    time.Duration

	mu        sync.Mutex
	buckets   map[string]*tokens
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	l := &limiter{
		burst:      float64(max(cfg.Burst, 1)),
		perSec:     float64(max(cfg.PerMinute, 1)) / 60,
		maxEntries: cfg.MaxEntries,
		idleTTL:    cfg.IdleTTL,
		buckets:    make(map[string]*tokens),
	}
	if l.idleTTL <= 0 {
		l.idleTTL = 15 * time.Minute
	}
	return l
}

// take spends one token of key's bucket. When the bucket is empty it
// reports how long until the next token.
func (l *limiter) take(key string, now time.Time) (ok bool, left int, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL || (l.maxEntries > 0 && len(l.buckets) >= l.maxEntries) {
		l.sweep(now)
	}

	b, found := l.buckets[key]
	if !found {
		b = &tokens{level: l.burst, at: now}
		l.buckets[key] = b
	}
	if dt := now.Sub(b.at).Seconds(); dt > 0 {
		b.level = math.Min(l.burst, b.level+dt*l.perSec)
		b.at = now
	}

	if b.level < 1 {
		secs := math.Ceil((1 - b.level) / l.perSec)
		return false, 0, time.Duration(secs) * time.Second
	}
	b.level--
	return true, int(b.level), 0
}

// sweep drops buckets that have refilled completely and sat idle.
func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.at) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit answers 429 once a key has used up its bucket. Headers are set
// before next runs so redirects carry them.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limit := strconv.Itoa(int(l.burst))

	keyOf := cfg.Key
	if keyOf == nil {
		keyOf = func(r *http.Request) string { return utils.ClientIP(r, cfg.TrustProxy) }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyOf(r)
			ok, left, wait := l.take(key, time.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(left))

			if !ok {
				if cfg.OnLimited != nil {
					cfg.OnLimited(r, key)
				}
				h.Set("Retry-After", strconv.Itoa(int(wait/time.Second)))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
