package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	redisclient "github.com/angelmondragon/storefront-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(tokenID string) string
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, tokenID string) (bool, error)
}

// Manager tracks live login sessions so logout can revoke a token before it expires.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if access := cfg.AccessTTL(); ttl < access {
		return nil, fmt.Errorf("session ttl (%s) must cover the access token ttl (%s)", ttl, access)
	}
	return &Manager{store: client, keyer: client, ttl: ttl}, nil
}

// Start records the session for tokenID owned by userID.
func (m *Manager) Start(ctx context.Context, tokenID, userID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return errors.New("token id is required")
	}
	return m.store.Set(ctx, m.keyer.SessionKey(tokenID), userID, m.ttl)
}

// HasSession reports whether tokenID still has an active session.
func (m *Manager) HasSession(ctx context.Context, tokenID string) (bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return false, nil
	}
	return m.store.Exists(ctx, m.keyer.SessionKey(tokenID))
}

// Revoke ends the session. Revoking an unknown token is not an error.
func (m *Manager) Revoke(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return errors.New("token id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(tokenID))
}
