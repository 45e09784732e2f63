package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/pkg/domain"
	"github.com/aretw0/steward/pkg/ports"
)

// Executor performs engine actions one by one. A failed action never stops the batch.
type Executor struct {
	platform ports.Platform
	logger   *slog.Logger
	onEffect func(context.Context, *domain.EffectEvent)
}

// NewExecutor creates an Executor. logger and onEffect may be nil.
func NewExecutor(platform ports.Platform, logger *slog.Logger, onEffect func(context.Context, *domain.EffectEvent)) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{platform: platform, logger: logger, onEffect: onEffect}
}

// Execute performs every action and returns how many failed.
func (x *Executor) Execute(ctx context.Context, ev *domain.Event, actions []domain.Action) int {
	failed := 0
	for _, a := range actions {
		err := x.perform(ctx, ev, a)
		if x.onEffect != nil {
			x.onEffect(ctx, &domain.EffectEvent{
				Timestamp: time.Now(),
				EventID:   ev.ID,
				Action:    a.Type,
				Err:       err,
			})
		}
		if err != nil {
			failed++
			x.logger.WarnContext(ctx, "side effect failed", "event_id", ev.ID, "action", string(a.Type), "err", err)
		}
	}
	if failed > 0 {
		x.logger.WarnContext(ctx, "batch finished with failures", "event_id", ev.ID, "failed", failed, "total", len(actions))
	}
	return failed
}

func (x *Executor) perform(ctx context.Context, ev *domain.Event, a domain.Action) error {
	switch a.Type {
	case domain.ActionReply:
		reply, ok := a.Payload.(domain.Reply)
		if !ok {
			return payloadError(a)
		}
		return x.platform.Respond(ctx, ev, reply)
	case domain.ActionShowForm:
		form, ok := a.Payload.(domain.Form)
		if !ok {
			return payloadError(a)
		}
		return x.platform.Respond(ctx, ev, form)
	case domain.ActionAcknowledge:
		return x.platform.Respond(ctx, ev, nil)
	case domain.ActionSendMessage:
		msg, ok := a.Payload.(domain.Message)
		if !ok {
			return payloadError(a)
		}
		return x.platform.SendMessage(ctx, msg)
	case domain.ActionGrantRole:
		change, ok := a.Payload.(domain.RoleChange)
		if !ok {
			return payloadError(a)
		}
		return x.platform.GrantRole(ctx, change)
	case domain.ActionRevokeRole:
		change, ok := a.Payload.(domain.RoleChange)
		if !ok {
			return payloadError(a)
		}
		return x.platform.RevokeRole(ctx, change)
	default:
		return fmt.Errorf("unsupported action %q", a.Type)
	}
}

func payloadError(a domain.Action) error {
	return fmt.Errorf("action %s: unexpected payload %T", a.Type, a.Payload)
}
