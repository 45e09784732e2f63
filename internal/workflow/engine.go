// Package workflow drives the multi-step moderator dialogs.
//
// No step keeps server-side state. A step reads the configuration, resolves
// entities through the directory and returns the actions the host must perform;
// progress for the next step travels inside the token of the emitted prompt.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/steward/internal/gate"
	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/internal/template"
	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
	"github.com/aretw0/steward/pkg/ports"
)

// Command names registered with the platform.
const (
	CommandConfig   = "config"
	CommandAnnounce = "announce"
)

// DefaultWelcomeTemplate prefills the welcome form.
const DefaultWelcomeTemplate = template.DefaultWelcome

// maxOptions is the platform limit for entries in a single chooser.
const maxOptions = 25

const msgNoPermission = "You don't have permission to do that."

// Engine is the workflow state machine.
type Engine struct {
	store           ports.ConfigStore
	dir             ports.Directory
	logger          *slog.Logger
	hooks           domain.LifecycleHooks
	welcomeTemplate string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithWelcomeTemplate overrides the template prefilled in the welcome form.
func WithWelcomeTemplate(tmpl string) Option {
	return func(e *Engine) {
		e.welcomeTemplate = tmpl
	}
}

// NewEngine creates a new engine with dependencies.
func NewEngine(store ports.ConfigStore, dir ports.Directory, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		dir:             dir,
		logger:          logging.NewNop(),
		welcomeTemplate: DefaultWelcomeTemplate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Commands returns the commands to register at startup.
func (e *Engine) Commands() []domain.Command {
	return []domain.Command{
		{Name: CommandConfig, Description: "Server settings"},
		{Name: CommandAnnounce, Description: "Publish an announcement"},
	}
}

// stepFunc is one state of a workflow. Returning a *domain.Rejection discards the workflow.
type stepFunc func(ctx context.Context, ev *domain.Event, cfg domain.Config) ([]domain.Action, error)

// Trigger starts a workflow from a slash or text command.
// Unknown commands produce no actions.
func (e *Engine) Trigger(ctx context.Context, ev *domain.Event) ([]domain.Action, error) {
	switch ev.Command {
	case CommandConfig:
		return e.run(ctx, ev, token.KindConfig, "trigger", true, e.openConfigPanel)
	case CommandAnnounce:
		return e.run(ctx, ev, token.KindAnnounce, "trigger", true, e.chooseCommunity)
	default:
		e.logger.DebugContext(ctx, "ignoring unknown command", "event_id", ev.ID, "command", ev.Command)
		return nil, nil
	}
}

// Resume continues a workflow from a selection or a form submission.
func (e *Engine) Resume(ctx context.Context, ev *domain.Event, c token.Continuation) ([]domain.Action, error) {
	fn := e.resolveStep(c)
	if fn == nil || expectedEvent(c) != ev.Kind {
		return e.run(ctx, ev, c.Kind, stepLabel(c.Step), false, rejectMalformed)
	}
	return e.run(ctx, ev, c.Kind, stepLabel(c.Step), true, fn)
}

// Press handles a role button. It is not privileged.
func (e *Engine) Press(ctx context.Context, ev *domain.Event, c token.Continuation) ([]domain.Action, error) {
	if c.Kind != token.KindRoleButton || ev.Kind != domain.EventButtonPress {
		return e.run(ctx, ev, c.Kind, stepLabel(c.Step), false, rejectMalformed)
	}
	return e.run(ctx, ev, c.Kind, "press", false, func(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
		return e.pressRoleButton(ctx, ev, c.Param(0), c.Param(1))
	})
}

// MemberJoined grants the automatic role and fans out welcome messages.
func (e *Engine) MemberJoined(ctx context.Context, ev *domain.Event) ([]domain.Action, error) {
	return e.run(ctx, ev, "join", "welcome", false, e.welcomeMember)
}

func (e *Engine) resolveStep(c token.Continuation) stepFunc {
	bind := func(fn func(context.Context, *domain.Event, domain.Config, token.Continuation) ([]domain.Action, error)) stepFunc {
		return func(ctx context.Context, ev *domain.Event, cfg domain.Config) ([]domain.Action, error) {
			return fn(ctx, ev, cfg, c)
		}
	}

	switch c.Kind {
	case token.KindConfig:
		switch c.Step {
		case token.StepAdminRole:
			return e.setAdminRole
		case token.StepAutoRole:
			return e.setAutoRole
		case token.StepAnnouncementChannel:
			return e.setAnnouncementChannel
		}
	case token.KindWelcome:
		switch c.Step {
		case token.StepPickChannel:
			return e.showWelcomeForm
		case token.StepFillForm:
			return bind(e.saveWelcome)
		}
	case token.KindPanel:
		switch c.Step {
		case token.StepPickChannel:
			return e.showPanelForm
		case token.StepFillForm:
			return bind(e.savePanelButton)
		}
	case token.KindAnnounce, token.KindAnnounceDefault:
		switch c.Step {
		case token.StepAwaitCommunity:
			if c.Kind == token.KindAnnounce {
				return e.pickCommunity
			}
		case token.StepAwaitChannel:
			if c.Kind == token.KindAnnounce {
				return bind(e.pickChannel)
			}
		case token.StepAwaitMention:
			return bind(e.pickMention)
		case token.StepAwaitContent:
			return bind(e.publishAnnouncement)
		}
	}
	return nil
}

// expectedEvent returns the event kind a step's prompt produces.
func expectedEvent(c token.Continuation) domain.EventKind {
	switch {
	case c.Kind == token.KindRoleButton:
		return domain.EventButtonPress
	case (c.Kind == token.KindWelcome || c.Kind == token.KindPanel) && c.Step == token.StepFillForm:
		return domain.EventFormSubmit
	case (c.Kind == token.KindAnnounce || c.Kind == token.KindAnnounceDefault) && c.Step == token.StepAwaitContent:
		return domain.EventFormSubmit
	default:
		return domain.EventSelection
	}
}

func rejectMalformed(context.Context, *domain.Event, domain.Config) ([]domain.Action, error) {
	return nil, domain.Reject(domain.ErrMalformedToken, "This prompt is no longer valid. Please start over.")
}

// run loads the configuration, applies the gate and converts rejections into a private reply.
func (e *Engine) run(ctx context.Context, ev *domain.Event, kind token.Kind, step string, privileged bool, fn stepFunc) ([]domain.Action, error) {
	cfg, err := e.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e.emitStep(ctx, ev, kind, step)

	var actions []domain.Action
	if privileged && !gate.CanAdminister(ev.Actor, cfg) {
		err = domain.Reject(domain.ErrPermissionDenied, msgNoPermission)
	} else {
		actions, err = fn(ctx, ev, cfg)
	}

	var rej *domain.Rejection
	if errors.As(err, &rej) {
		e.emitReject(ctx, ev, kind, rej)
		return []domain.Action{domain.PrivateReply("❌ " + rej.Message)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", kind, step, err)
	}
	return actions, nil
}

func (e *Engine) emitStep(ctx context.Context, ev *domain.Event, kind token.Kind, step string) {
	e.logger.DebugContext(ctx, "workflow step",
		"event_id", ev.ID,
		"workflow", string(kind),
		"step", step,
		"guild_id", ev.GuildID,
		"user_id", ev.Actor.UserID,
	)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			Timestamp: time.Now(),
			EventID:   ev.ID,
			Workflow:  string(kind),
			Step:      step,
			GuildID:   ev.GuildID,
			UserID:    ev.Actor.UserID,
		})
	}
}

func (e *Engine) emitReject(ctx context.Context, ev *domain.Event, kind token.Kind, rej *domain.Rejection) {
	reason := domain.ReasonLabel(rej)
	e.logger.InfoContext(ctx, "workflow rejected",
		"event_id", ev.ID,
		"workflow", string(kind),
		"reason", reason,
		"message", rej.Message,
	)
	if e.hooks.OnReject != nil {
		e.hooks.OnReject(ctx, &domain.RejectEvent{
			Timestamp: time.Now(),
			EventID:   ev.ID,
			Workflow:  string(kind),
			Reason:    reason,
		})
	}
}

func stepLabel(s token.Step) string {
	return strconv.Itoa(int(s))
}
