package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/steward/internal/testutils"
	"github.com/aretw0/steward/internal/workflow"
	"github.com/aretw0/steward/pkg/domain"
)

func (h *harness) join(t *testing.T, member domain.Actor) []domain.Action {
	t.Helper()
	actions, err := h.engine.MemberJoined(context.Background(), &domain.Event{
		ID:      "ev-join",
		Kind:    domain.EventMemberJoin,
		Actor:   member,
		GuildID: member.GuildID,
	})
	require.NoError(t, err)
	return actions
}

func TestMemberJoined(t *testing.T) {
	cfg := domain.NewConfig()
	cfg.AutoRoleID = testutils.MemberRole
	cfg.WelcomeChannels[testutils.Rules] = "hey {user}"
	cfg.WelcomeChannels[testutils.General] = "hi {user}, welcome to {server}"
	cfg.WelcomeChannels[testutils.OtherText] = "wrong community"
	cfg.WelcomeChannels["404"] = "deleted channel"
	h := newHarness(t, cfg)

	actions := h.join(t, testutils.Member())
	require.Len(t, actions, 3)

	assert.Equal(t, domain.Action{
		Type:    domain.ActionGrantRole,
		Payload: domain.RoleChange{GuildID: testutils.GuildID, UserID: testutils.MemberID, RoleID: testutils.MemberRole},
	}, actions[0])

	mention := domain.MentionUser(testutils.MemberID)
	want := []domain.Message{
		{
			ChannelID:    testutils.General,
			Content:      mention,
			Card:         &domain.Card{Title: workflow.WelcomeCardTitle, Description: "hi " + mention + ", welcome to " + testutils.GuildName},
			MentionUsers: []string{testutils.MemberID},
		},
		{
			ChannelID:    testutils.Rules,
			Content:      mention,
			Card:         &domain.Card{Title: workflow.WelcomeCardTitle, Description: "hey " + mention},
			MentionUsers: []string{testutils.MemberID},
		},
	}
	for i, a := range actions[1:] {
		require.Equal(t, domain.ActionSendMessage, a.Type)
		assert.Equal(t, want[i], a.Payload.(domain.Message))
	}
}

func TestMemberJoined_NothingConfigured(t *testing.T) {
	h := newHarness(t, domain.NewConfig())
	assert.Empty(t, h.join(t, testutils.Member()))
}

func TestMemberJoined_AutoRoleUnresolved(t *testing.T) {
	cfg := domain.NewConfig()
	cfg.AutoRoleID = "999"
	cfg.WelcomeChannels[testutils.General] = "hi"
	h := newHarness(t, cfg)

	actions := h.join(t, testutils.Member())
	require.Len(t, actions, 1)
	assert.Equal(t, domain.ActionSendMessage, actions[0].Type)
}

func TestMemberJoined_NotGated(t *testing.T) {
	cfg := testutils.AdminConfig()
	cfg.AutoRoleID = testutils.MemberRole
	h := newHarness(t, cfg)

	require.Len(t, h.join(t, testutils.Member()), 1)
	assert.Empty(t, h.rejects)
	require.Len(t, h.steps, 1)
	assert.Equal(t, "join", h.steps[0].Workflow)
}
