package ports

import (
	"context"
	"testing"

	"github.com/aretw0/steward/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConfigStoreContract runs a suite of tests to verify that a ConfigStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunConfigStoreContract(t *testing.T, store ConfigStore) {
	ctx := context.Background()

	t.Run("Scalar Replace", func(t *testing.T) {
		require.NoError(t, store.SetAdminRole(ctx, "role-1"))
		require.NoError(t, store.SetAdminRole(ctx, "role-2"))
		require.NoError(t, store.SetAutoRole(ctx, "role-3"))

		cfg, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "role-2", cfg.AdminRoleID)
		assert.Equal(t, "role-3", cfg.AutoRoleID)
	})

	t.Run("Keyed Upsert", func(t *testing.T) {
		require.NoError(t, store.SetWelcomeTemplate(ctx, "chan-1", "hi {user}"))
		require.NoError(t, store.SetWelcomeTemplate(ctx, "chan-2", "hey {user}"))
		require.NoError(t, store.SetWelcomeTemplate(ctx, "chan-1", "hello {user}"))
		require.NoError(t, store.SetAnnouncementChannel(ctx, "guild-1", "chan-1"))
		require.NoError(t, store.SetAnnouncementChannel(ctx, "guild-1", "chan-2"))

		cfg, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"chan-1": "hello {user}", "chan-2": "hey {user}"}, cfg.WelcomeChannels)
		assert.Equal(t, map[string]string{"guild-1": "chan-2"}, cfg.AnnouncementChannels)
	})

	t.Run("Append Buttons", func(t *testing.T) {
		first := domain.ButtonSpec{Label: "Red", AddRole: "role-red"}
		second := domain.ButtonSpec{Label: "Blue", AddRole: "role-blue", RemoveRole: "role-red", Response: "Blue!", Ephemeral: true}
		require.NoError(t, store.AppendButton(ctx, "chan-1", first))
		require.NoError(t, store.AppendButton(ctx, "chan-1", second))

		cfg, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ButtonSpec{first, second}, cfg.ButtonPanels["chan-1"])

		got, ok, err := store.Button(ctx, "chan-1", "role-blue")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, second, got)
	})

	t.Run("Button Not Found", func(t *testing.T) {
		_, ok, err := store.Button(ctx, "chan-1", "missing-role")
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.Button(ctx, "missing-chan", "role-red")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Snapshot Isolation", func(t *testing.T) {
		cfg, err := store.Snapshot(ctx)
		require.NoError(t, err)
		cfg.WelcomeChannels["chan-1"] = "mutated"
		cfg.ButtonPanels["chan-1"][0].Label = "mutated"

		again, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "hello {user}", again.WelcomeChannels["chan-1"])
		assert.Equal(t, "Red", again.ButtonPanels["chan-1"][0].Label)
	})
}
