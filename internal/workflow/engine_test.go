package workflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/steward/internal/testutils"
	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/internal/workflow"
	"github.com/aretw0/steward/pkg/adapters/memory"
	"github.com/aretw0/steward/pkg/domain"
)

type harness struct {
	engine  *workflow.Engine
	store   *memory.Store
	dir     *memory.Directory
	steps   []*domain.StepEvent
	rejects []*domain.RejectEvent
}

func newHarness(t *testing.T, cfg domain.Config) *harness {
	t.Helper()
	h := &harness{
		store: memory.NewStore(cfg),
		dir:   testutils.NewDirectory(),
	}
	hooks := domain.LifecycleHooks{
		OnStep:   func(_ context.Context, e *domain.StepEvent) { h.steps = append(h.steps, e) },
		OnReject: func(_ context.Context, e *domain.RejectEvent) { h.rejects = append(h.rejects, e) },
	}
	h.engine = workflow.NewEngine(h.store, h.dir, workflow.WithLifecycleHooks(hooks))
	return h
}

func (h *harness) snapshot(t *testing.T) domain.Config {
	t.Helper()
	cfg, err := h.store.Snapshot(context.Background())
	require.NoError(t, err)
	return cfg
}

func (h *harness) trigger(t *testing.T, actor domain.Actor, command string) []domain.Action {
	t.Helper()
	actions, err := h.engine.Trigger(context.Background(), &domain.Event{
		ID:      "ev-trigger",
		Kind:    domain.EventCommand,
		Actor:   actor,
		GuildID: actor.GuildID,
		Command: command,
	})
	require.NoError(t, err)
	return actions
}

func (h *harness) resume(t *testing.T, ev *domain.Event) []domain.Action {
	t.Helper()
	c, err := token.Decode(ev.CustomID)
	require.NoError(t, err)
	actions, err := h.engine.Resume(context.Background(), ev, c)
	require.NoError(t, err)
	return actions
}

func selection(actor domain.Actor, tok, value string) *domain.Event {
	return &domain.Event{
		ID:       "ev-select",
		Kind:     domain.EventSelection,
		Actor:    actor,
		GuildID:  actor.GuildID,
		CustomID: tok,
		Values:   []string{value},
	}
}

func submission(actor domain.Actor, tok string, fields map[string]string) *domain.Event {
	return &domain.Event{
		ID:       "ev-submit",
		Kind:     domain.EventFormSubmit,
		Actor:    actor,
		GuildID:  actor.GuildID,
		CustomID: tok,
		Fields:   fields,
	}
}

func onlyReply(t *testing.T, actions []domain.Action) domain.Reply {
	t.Helper()
	require.Len(t, actions, 1)
	require.Equal(t, domain.ActionReply, actions[0].Type)
	reply, ok := actions[0].Payload.(domain.Reply)
	require.True(t, ok, "payload should be a Reply")
	return reply
}

func onlyForm(t *testing.T, actions []domain.Action) domain.Form {
	t.Helper()
	require.Len(t, actions, 1)
	require.Equal(t, domain.ActionShowForm, actions[0].Type)
	form, ok := actions[0].Payload.(domain.Form)
	require.True(t, ok, "payload should be a Form")
	return form
}

func assertRejected(t *testing.T, actions []domain.Action, contains string) {
	t.Helper()
	reply := onlyReply(t, actions)
	assert.True(t, reply.Private)
	assert.Contains(t, reply.Content, "❌")
	assert.Contains(t, reply.Content, contains)
}

func TestCommands(t *testing.T) {
	h := newHarness(t, domain.NewConfig())
	names := []string{}
	for _, c := range h.engine.Commands() {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Description)
	}
	assert.Equal(t, []string{workflow.CommandConfig, workflow.CommandAnnounce}, names)
}

func TestTrigger_UnknownCommand(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	assert.Empty(t, h.trigger(t, testutils.Moderator(), "dance"))
	assert.Empty(t, h.steps)
}

func TestTrigger_GateRejectsWithoutMutation(t *testing.T) {
	for _, command := range []string{workflow.CommandConfig, workflow.CommandAnnounce} {
		t.Run(command, func(t *testing.T) {
			h := newHarness(t, testutils.AdminConfig())
			before := h.snapshot(t)

			actions := h.trigger(t, testutils.Member(), command)

			assertRejected(t, actions, "permission")
			assert.Equal(t, before, h.snapshot(t))
			require.Len(t, h.rejects, 1)
			assert.Equal(t, "permission_denied", h.rejects[0].Reason)
		})
	}
}

func TestTrigger_AdministratorFallback(t *testing.T) {
	h := newHarness(t, domain.NewConfig())

	admin := testutils.Member()
	admin.Administrator = true
	reply := onlyReply(t, h.trigger(t, admin, workflow.CommandConfig))
	assert.True(t, reply.Private)
	assert.Len(t, reply.Menus, 5)

	// Holding a role named admin means nothing while no admin role is configured.
	assertRejected(t, h.trigger(t, testutils.Moderator(), workflow.CommandConfig), "permission")
}

func TestConfigPanel(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	reply := onlyReply(t, h.trigger(t, testutils.Moderator(), workflow.CommandConfig))

	tokens := []string{}
	for _, m := range reply.Menus {
		tokens = append(tokens, m.Token)
	}
	assert.Equal(t, []string{"config|1", "config|2", "welcome|1", "panel|1", "config|3"}, tokens)

	// Managed roles are not offered; voice channels are not offered.
	assert.Equal(t, []domain.Option{
		{Label: "Admin", Value: testutils.AdminRole},
		{Label: "Member", Value: testutils.MemberRole},
		{Label: "Guest", Value: testutils.GuestRole},
	}, reply.Menus[0].Options)
	assert.Equal(t, []domain.Option{
		{Label: "#general", Value: testutils.General},
		{Label: "#rules", Value: testutils.Rules},
	}, reply.Menus[2].Options)
}

func TestConfigPanel_OutsideGuild(t *testing.T) {
	h := newHarness(t, domain.NewConfig())
	dm := domain.Actor{UserID: testutils.ModeratorID, Administrator: true}
	assertRejected(t, h.trigger(t, dm, workflow.CommandConfig), "inside a server")
}

func TestConfigChoosers(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	mod := testutils.Moderator()

	reply := onlyReply(t, h.resume(t, selection(mod, "config|2", testutils.MemberRole)))
	assert.True(t, reply.Private)
	assert.Contains(t, reply.Content, "Member")

	onlyReply(t, h.resume(t, selection(mod, "config|3", testutils.Rules)))

	cfg := h.snapshot(t)
	assert.Equal(t, testutils.MemberRole, cfg.AutoRoleID)
	assert.Equal(t, testutils.Rules, cfg.AnnouncementChannels[testutils.GuildID])

	onlyReply(t, h.resume(t, selection(mod, "config|1", testutils.GuestRole)))
	assert.Equal(t, testutils.GuestRole, h.snapshot(t).AdminRoleID)

	// The moderator lost the admin role: further steps are gated again.
	assertRejected(t, h.resume(t, selection(mod, "config|2", testutils.GuestRole)), "permission")
	assert.Equal(t, testutils.MemberRole, h.snapshot(t).AutoRoleID)
}

func TestConfigChoosers_Stale(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	mod := testutils.Moderator()

	tests := []struct {
		name     string
		ev       *domain.Event
		contains string
	}{
		{"Unknown Role", selection(mod, "config|2", "999"), "no longer exists"},
		{"Voice Channel", selection(mod, "config|3", testutils.Voice), "no longer valid"},
		{"Foreign Channel", selection(mod, "config|3", testutils.OtherText), "no longer valid"},
		{"Empty Selection", selection(mod, "config|1", ""), "Nothing was selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRejected(t, h.resume(t, tt.ev), tt.contains)
		})
	}
	assert.Equal(t, testutils.AdminConfig(), h.snapshot(t))
}

func TestResume_EventKindMismatch(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	ev := submission(testutils.Moderator(), "config|1", map[string]string{"text": "x"})
	assertRejected(t, h.resume(t, ev), "no longer valid")
	require.Len(t, h.rejects, 1)
	assert.Equal(t, "malformed_token", h.rejects[0].Reason)
}

func TestWelcomeSetup(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	mod := testutils.Moderator()

	form := onlyForm(t, h.resume(t, selection(mod, "welcome|1", testutils.General)))
	assert.Equal(t, "welcome|2|"+testutils.General, form.Token)
	require.Len(t, form.Fields, 1)
	assert.Equal(t, workflow.DefaultWelcomeTemplate, form.Fields[0].Value)

	reply := onlyReply(t, h.resume(t, submission(mod, form.Token, map[string]string{"text": "Hi {user}"})))
	assert.Contains(t, reply.Content, "#general")
	assert.Equal(t, "Hi {user}", h.snapshot(t).WelcomeChannels[testutils.General])

	// The form is prefilled with the current template once one exists.
	form = onlyForm(t, h.resume(t, selection(mod, "welcome|1", testutils.General)))
	assert.Equal(t, "Hi {user}", form.Fields[0].Value)
}

func TestWelcomeSetup_Rejections(t *testing.T) {
	h := newHarness(t, testutils.AdminConfig())
	mod := testutils.Moderator()

	assertRejected(t, h.resume(t, submission(mod, "welcome|2|"+testutils.General, map[string]string{"text": "  "})), "empty")

	h.dir.RemoveChannel(testutils.Rules)
	assertRejected(t, h.resume(t, submission(mod, "welcome|2|"+testutils.Rules, map[string]string{"text": "hi"})), "no longer valid")

	assertRejected(t, h.resume(t, submission(testutils.Member(), "welcome|2|"+testutils.General, map[string]string{"text": "hi"})), "permission")

	assert.Empty(t, h.snapshot(t).WelcomeChannels)
}

func TestWelcomeTemplateOption(t *testing.T) {
	store := memory.NewStore(testutils.AdminConfig())
	e := workflow.NewEngine(store, testutils.NewDirectory(), workflow.WithWelcomeTemplate("Hello {user}"))

	ev := selection(testutils.Moderator(), "welcome|1", testutils.General)
	c, err := token.Decode(ev.CustomID)
	require.NoError(t, err)
	actions, err := e.Resume(context.Background(), ev, c)
	require.NoError(t, err)
	assert.Equal(t, "Hello {user}", onlyForm(t, actions).Fields[0].Value)
}
