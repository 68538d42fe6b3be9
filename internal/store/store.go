// Package store defines where per-session sidebar state lives between
// requests.
package store

import (
	"context"

	"github.com/MrSnakeDoc/planopro/internal/domain"
)

// StateStore persists one SidebarState per browser session id.
// Get on an unknown id returns the zero state and no error.
type StateStore interface {
	Get(ctx context.Context, id string) (domain.SidebarState, error)
	Save(ctx context.Context, id string, state domain.SidebarState) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error

	// Active counts the sessions that currently hold a state.
	Active(ctx context.Context) (int, error)
}
