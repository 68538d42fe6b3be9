// Package session identifies a browser across requests so that its sidebar
// state can be found again. The cookie carries only an opaque id.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/MrSnakeDoc/planopro/internal/logger"
)

// ErrShortSecret is returned when the secret cannot provide both keys.
var ErrShortSecret = errors.New("session secret must be at least 64 bytes")

type ctxKey struct{}

// Manager issues and reads the session cookie.
type Manager struct {
	cookie *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewManager creates a Manager. The secret must be at least 64 bytes: the
// first 32 sign the cookie, the next 32 encrypt it.
func NewManager(secret, name string, ttl time.Duration, secure bool) (*Manager, error) {
	if len(secret) < 64 {
		return nil, ErrShortSecret
	}
	if name == "" {
		return nil, fmt.Errorf("session cookie name must not be empty")
	}

	maxAge := int(ttl.Seconds())
	codec := securecookie.New([]byte(secret)[:32], []byte(secret)[32:64])
	codec.MaxAge(maxAge)

	return &Manager{
		cookie: codec,
		name:   name,
		maxAge: maxAge,
		secure: secure,
	}, nil
}

// Read returns the session id carried by the request, if it has a valid one.
func (m *Manager) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.name)
	if err != nil {
		return "", false
	}

	var id string
	if err := m.cookie.Decode(m.name, c.Value, &id); err != nil {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// Ensure returns the request's session id, minting a new one when the
// cookie is missing or invalid. The cookie is re-issued on every call so
// its lifetime slides with activity.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	id, ok := m.Read(r)
	if !ok {
		id = uuid.NewString()
	}

	encoded, err := m.cookie.Encode(m.name, id)
	if err != nil {
		return "", fmt.Errorf("encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware ensures every request has a session id and stores it in the
// request context. A cookie that cannot be encoded is logged and the
// request continues without an id.
func (m *Manager) Middleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := m.Ensure(w, r)
			if err != nil {
				log.Warn("session unavailable", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
		})
	}
}

// WithID returns a copy of ctx carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the session id set by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
