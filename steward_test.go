package steward_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/steward"
	"github.com/aretw0/steward/internal/testutils"
	"github.com/aretw0/steward/pkg/adapters/memory"
	"github.com/aretw0/steward/pkg/domain"
)

func TestAssistant_WelcomeRoundTrip(t *testing.T) {
	platform := testutils.NewPlatform()
	var steps int
	a := steward.New(testutils.AdminConfig(), testutils.NewDirectory(), platform,
		steward.WithWelcomeTemplate("Hello {user}"),
		steward.WithLifecycleHooks(domain.LifecycleHooks{
			OnStep: func(context.Context, *domain.StepEvent) { steps++ },
		}),
	)
	ctx := context.Background()
	mod := testutils.Moderator()

	require.NoError(t, a.Register(ctx))
	assert.Len(t, platform.Commands, 2)

	require.NoError(t, a.Handle(ctx, &domain.Event{
		Kind: domain.EventSelection, Actor: mod, GuildID: testutils.GuildID,
		CustomID: "welcome|1", Values: []string{testutils.General},
	}))
	form := platform.Responses[0].Reply.(domain.Form)
	assert.Equal(t, "Hello {user}", form.Fields[0].Value)

	require.NoError(t, a.Handle(ctx, &domain.Event{
		Kind: domain.EventFormSubmit, Actor: mod, GuildID: testutils.GuildID,
		CustomID: form.Token, Fields: map[string]string{"text": form.Fields[0].Value},
	}))

	require.NoError(t, a.Handle(ctx, &domain.Event{
		Kind: domain.EventMemberJoin, Actor: testutils.Member(), GuildID: testutils.GuildID,
	}))
	require.Len(t, platform.Messages, 1)
	assert.Equal(t, "Hello "+domain.MentionUser(testutils.MemberID), platform.Messages[0].Card.Description)
	assert.Equal(t, 3, steps)

	cfg, err := a.Config(ctx)
	require.NoError(t, err)
	assert.Contains(t, cfg.WelcomeChannels, testutils.General)
}

func TestAssistant_WithStore(t *testing.T) {
	store := memory.NewStore(domain.NewConfig())
	require.NoError(t, store.SetAutoRole(context.Background(), testutils.MemberRole))

	a := steward.New(testutils.AdminConfig(), testutils.NewDirectory(), testutils.NewPlatform(), steward.WithStore(store))
	cfg, err := a.Config(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutils.MemberRole, cfg.AutoRoleID)
	assert.Empty(t, cfg.AdminRoleID)
}
