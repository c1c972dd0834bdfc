package session

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"github.com/dmitrijs2005/nichescope/internal/kv"
	"github.com/dmitrijs2005/nichescope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_NoSession(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())

	u, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestManager_StartCurrentLogout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	m := NewManager(store)

	ana := models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, m.Start(ctx, ana))

	u, err := m.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, ana, *u)

	raw, ok, err := store.Get(ctx, common.KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "credential")

	require.NoError(t, m.Logout(ctx))
	u, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, m.Logout(ctx), "logout without a session must succeed")
}

func TestManager_NewSessionOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewManager(kv.NewMemoryStore())

	require.NoError(t, m.Start(ctx, models.User{ID: "u1"}))
	require.NoError(t, m.Start(ctx, models.User{ID: "u2"}))

	u, err := m.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u2", u.ID)
}

func TestManager_CorruptSessionReadsAsNone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", "{not json"},
		{"null", "null"},
		{"empty object", "{}"},
		{"blank id", `{"id":"","name":"Ana","email":"ana@example.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kv.NewMemoryStore()
			require.NoError(t, store.Set(ctx, common.KeySession, tt.raw))

			u, err := NewManager(store).Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	}
}

func TestContext(t *testing.T) {
	anon := NewContext(nil)
	assert.False(t, anon.LoggedIn())
	assert.Nil(t, anon.User())
	_, err := anon.RequireUser()
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)

	u := &models.User{ID: "u1", Name: "Ana"}
	c := NewContext(u)
	u.Name = "mutated"

	require.True(t, c.LoggedIn())
	got, err := c.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name, "context keeps its own copy")

	c.User().Name = "mutated again"
	assert.Equal(t, "Ana", c.User().Name)
}
