package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/planopro/internal/domain"
)

// DefaultStateTTL is the idle lifetime of a sidebar state when none is given
const DefaultStateTTL = 30 * time.Minute

// Store keeps sidebar states in Redis as JSON. Every read or write slides
// the key's expiry, so idle sessions disappear on their own.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the sidebar state of a session. A missing key is the zero
// state.
func (s *Store) Get(ctx context.Context, id string) (domain.SidebarState, error) {
	data, err := s.client.GetEx(ctx, SidebarKey(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SidebarState{}, nil
		}
		return domain.SidebarState{}, fmt.Errorf("failed to get sidebar state: %w", err)
	}

	var state domain.SidebarState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.SidebarState{}, fmt.Errorf("failed to unmarshal sidebar state: %w", err)
	}
	return state, nil
}

// Save stores the sidebar state of a session
func (s *Store) Save(ctx context.Context, id string, state domain.SidebarState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal sidebar state: %w", err)
	}

	if err := s.client.Set(ctx, SidebarKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save sidebar state: %w", err)
	}
	return nil
}

// Delete removes the sidebar state of a session
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SidebarKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete sidebar state: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// scanBatch is the COUNT hint passed to SCAN
const scanBatch = 256

// Sessions returns the ids of all sessions with a stored state. It walks
// the keyspace with SCAN so a large store never blocks Redis.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, KeyPrefixSidebar+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		id, err := ExtractSessionID(iter.Val())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sidebar states: %w", err)
	}
	return ids, nil
}

// Active counts the stored sidebar states
func (s *Store) Active(ctx context.Context) (int, error) {
	ids, err := s.Sessions(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
