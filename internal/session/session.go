// Package session keeps the single "current user" slot of a device and the
// explicit Context object the UI layer threads through its handlers.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/models"
)

// Manager persists at most one session under common.KeySession. Starting a
// session always overwrites the previous one.
type Manager struct {
	store kv.Store
}

func NewManager(store kv.Store) *Manager {
	return &Manager{store: store}
}

// Start records u as the current user.
func (m *Manager) Start(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.store.Set(ctx, common.KeySession, string(b)); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return nil
}

// Current returns the user of the active session, or nil when there is none,
// the stored value cannot be parsed or it carries no user id. Only store
// failures are errors.
func (m *Manager) Current(ctx context.Context) (*models.User, error) {
	raw, ok, err := m.store.Get(ctx, common.KeySession)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// Logout removes the session slot. It succeeds when no session exists.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, common.KeySession); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
