package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/steward/internal/template"
	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
)

// Form field IDs.
const (
	fieldWelcomeText = "text"
	fieldContent     = "content"
)

// WelcomeCardTitle heads every welcome message.
const WelcomeCardTitle = "🎉 Welcome"

func (e *Engine) showWelcomeForm(ctx context.Context, ev *domain.Event, cfg domain.Config) ([]domain.Action, error) {
	ch, err := e.textChannel(ctx, ev.GuildID, selected(ev))
	if err != nil {
		return nil, err
	}
	tok, err := token.Encode(token.KindWelcome, token.StepFillForm, ch.ID)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That channel can't be used.")
	}

	prefill := e.welcomeTemplate
	if existing, ok := cfg.WelcomeChannels[ch.ID]; ok {
		prefill = existing
	}

	return []domain.Action{{
		Type: domain.ActionShowForm,
		Payload: domain.Form{
			Token: tok,
			Title: "Welcome message",
			Fields: []domain.FormField{{
				ID:        fieldWelcomeText,
				Label:     "Message ({user} and {server} are replaced)",
				Style:     domain.FieldParagraph,
				Required:  true,
				Value:     prefill,
				MaxLength: 2000,
			}},
		},
	}}, nil
}

func (e *Engine) saveWelcome(ctx context.Context, ev *domain.Event, _ domain.Config, c token.Continuation) ([]domain.Action, error) {
	ch, err := e.textChannel(ctx, ev.GuildID, c.Param(0))
	if err != nil {
		return nil, err
	}
	text := ev.Fields[fieldWelcomeText]
	if strings.TrimSpace(text) == "" {
		return nil, domain.Reject(domain.ErrInvalidInput, "The welcome message can't be empty.")
	}
	if err := e.store.SetWelcomeTemplate(ctx, ch.ID, text); err != nil {
		return nil, fmt.Errorf("failed to save welcome template: %w", err)
	}
	return []domain.Action{domain.PrivateReply(fmt.Sprintf("✅ Welcome message saved for #%s.", ch.Name))}, nil
}

// welcomeMember grants the automatic role and posts one welcome per configured channel of the guild.
// Every lookup miss is skipped silently.
func (e *Engine) welcomeMember(ctx context.Context, ev *domain.Event, cfg domain.Config) ([]domain.Action, error) {
	var actions []domain.Action
	member := ev.Actor.UserID

	if cfg.AutoRoleID != "" {
		if _, err := e.dir.Role(ctx, ev.GuildID, cfg.AutoRoleID); err == nil {
			actions = append(actions, domain.Action{
				Type:    domain.ActionGrantRole,
				Payload: domain.RoleChange{GuildID: ev.GuildID, UserID: member, RoleID: cfg.AutoRoleID},
			})
		} else {
			e.logger.DebugContext(ctx, "auto role unresolved", "event_id", ev.ID, "role_id", cfg.AutoRoleID, "err", err)
		}
	}

	if len(cfg.WelcomeChannels) == 0 {
		return actions, nil
	}

	g, err := e.dir.Guild(ctx, ev.GuildID)
	if err != nil {
		e.logger.DebugContext(ctx, "joined guild unresolved", "event_id", ev.ID, "guild_id", ev.GuildID, "err", err)
		return actions, nil
	}

	ids := make([]string, 0, len(cfg.WelcomeChannels))
	for id := range cfg.WelcomeChannels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ch, err := e.dir.Channel(ctx, id)
		if err != nil || ch.GuildID != ev.GuildID || !ch.Text {
			continue
		}
		actions = append(actions, domain.Action{
			Type: domain.ActionSendMessage,
			Payload: domain.Message{
				ChannelID: ch.ID,
				Content:   domain.MentionUser(member),
				Card: &domain.Card{
					Title:       WelcomeCardTitle,
					Description: template.Render(cfg.WelcomeChannels[id], member, g.Name),
				},
				MentionUsers: []string{member},
			},
		})
	}
	return actions, nil
}
