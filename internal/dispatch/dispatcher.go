// Package dispatch routes inbound platform events to the workflow engine and
// performs the resulting actions.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/internal/sanitize"
	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
	"github.com/aretw0/steward/pkg/ports"
)

const (
	msgStalePrompt  = "❌ This prompt is no longer valid. Please start over."
	msgInvalidInput = "❌ That input can't be accepted."
)

// Workflows is the engine surface the dispatcher drives.
type Workflows interface {
	Commands() []domain.Command
	Trigger(ctx context.Context, ev *domain.Event) ([]domain.Action, error)
	Resume(ctx context.Context, ev *domain.Event, c token.Continuation) ([]domain.Action, error)
	Press(ctx context.Context, ev *domain.Event, c token.Continuation) ([]domain.Action, error)
	MemberJoined(ctx context.Context, ev *domain.Event) ([]domain.Action, error)
}

// Dispatcher is the single entry point for inbound events.
type Dispatcher struct {
	engine   Workflows
	platform ports.Platform
	executor *Executor
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option defines a functional option for configuring the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for events, stale tokens and side effects.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// New creates a Dispatcher that performs actions against platform.
func New(engine Workflows, platform ports.Platform, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:   engine,
		platform: platform,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.executor = NewExecutor(platform, d.logger, d.hooks.OnEffect)
	return d
}

// Register publishes the engine's commands. Call once the platform session is ready.
func (d *Dispatcher) Register(ctx context.Context) error {
	cmds := d.engine.Commands()
	if err := d.platform.RegisterCommands(ctx, cmds); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	d.logger.InfoContext(ctx, "commands registered", "count", len(cmds))
	return nil
}

// Handle processes one event. Side-effect failures are logged and never returned;
// the error reports unknown events and infrastructure failures of the engine.
func (d *Dispatcher) Handle(ctx context.Context, ev *domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	log := d.logger.With(
		"event_id", ev.ID,
		"kind", string(ev.Kind),
		"guild_id", ev.GuildID,
		"user_id", ev.Actor.UserID,
	)
	log.DebugContext(ctx, "event received", "custom_id", ev.CustomID, "command", ev.Command)

	if d.hooks.OnEvent != nil {
		d.hooks.OnEvent(ctx, ev)
	}

	var (
		actions []domain.Action
		err     error
	)
	switch ev.Kind {
	case domain.EventCommand, domain.EventTextCommand:
		actions, err = d.engine.Trigger(ctx, ev)
	case domain.EventSelection, domain.EventFormSubmit:
		c, decodeErr := token.Decode(ev.CustomID)
		if decodeErr != nil {
			actions = d.refuse(ctx, log, ev, "unknown", decodeErr, msgStalePrompt)
			break
		}
		if cleanErr := sanitize.Fields(ev.Fields); cleanErr != nil {
			actions = d.refuse(ctx, log, ev, string(c.Kind), fmt.Errorf("%w: %w", domain.ErrInvalidInput, cleanErr), msgInvalidInput)
			break
		}
		actions, err = d.engine.Resume(ctx, ev, c)
	case domain.EventButtonPress:
		c, decodeErr := token.Decode(ev.CustomID)
		if decodeErr != nil {
			actions = d.refuse(ctx, log, ev, "unknown", decodeErr, msgStalePrompt)
			break
		}
		actions, err = d.engine.Press(ctx, ev, c)
	case domain.EventMemberJoin:
		actions, err = d.engine.MemberJoined(ctx, ev)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	if err != nil {
		log.ErrorContext(ctx, "event failed", "err", err)
		return err
	}

	d.executor.Execute(ctx, ev, actions)
	return nil
}

// refuse answers an event that never reached the engine.
func (d *Dispatcher) refuse(ctx context.Context, log *slog.Logger, ev *domain.Event, workflow string, err error, msg string) []domain.Action {
	log.InfoContext(ctx, "event refused", "custom_id", ev.CustomID, "err", err)
	if d.hooks.OnReject != nil {
		d.hooks.OnReject(ctx, &domain.RejectEvent{
			Timestamp: time.Now(),
			EventID:   ev.ID,
			Workflow:  workflow,
			Reason:    domain.ReasonLabel(err),
		})
	}
	return []domain.Action{domain.PrivateReply(msg)}
}
