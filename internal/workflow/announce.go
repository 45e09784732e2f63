package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
)

// Mention chooser values.
const (
	mentionYes = "1"
	mentionNo  = "0"
)

func (e *Engine) chooseCommunity(ctx context.Context, _ *domain.Event, _ domain.Config) ([]domain.Action, error) {
	guilds, err := e.dir.Guilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds: %w", err)
	}
	if len(guilds) == 0 {
		return nil, domain.Reject(domain.ErrStaleReference, "I'm not in any server yet.")
	}
	return []domain.Action{domain.NewReply(domain.Reply{
		Content: "📣 Which server is the announcement for?",
		Private: true,
		Menus: []domain.Menu{{
			Token:       token.MustEncode(token.KindAnnounce, token.StepAwaitCommunity),
			Placeholder: "Server",
			Options:     guildOptions(guilds),
		}},
	})}, nil
}

func (e *Engine) pickCommunity(ctx context.Context, ev *domain.Event, cfg domain.Config) ([]domain.Action, error) {
	g, err := e.guild(ctx, selected(ev))
	if err != nil {
		return nil, err
	}

	if cfg.AnnouncementChannels[g.ID] != "" {
		return e.mentionPrompt(token.KindAnnounceDefault, g.ID)
	}

	channels, err := e.dir.TextChannels(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	if len(channels) == 0 {
		return nil, domain.Reject(domain.ErrStaleReference, "That server has no text channels.")
	}
	tok, err := token.Encode(token.KindAnnounce, token.StepAwaitChannel, g.ID)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That server can't be used.")
	}
	return []domain.Action{domain.NewReply(domain.Reply{
		Content: fmt.Sprintf("📣 Which channel of %s?", g.Name),
		Private: true,
		Menus: []domain.Menu{{
			Token:       tok,
			Placeholder: "Channel",
			Options:     channelOptions(channels),
		}},
	})}, nil
}

func (e *Engine) pickChannel(ctx context.Context, ev *domain.Event, _ domain.Config, c token.Continuation) ([]domain.Action, error) {
	g, err := e.guild(ctx, c.Param(0))
	if err != nil {
		return nil, err
	}
	ch, err := e.textChannel(ctx, g.ID, selected(ev))
	if err != nil {
		return nil, err
	}
	return e.mentionPrompt(token.KindAnnounce, g.ID, ch.ID)
}

// mentionPrompt asks whether to ping everyone. params are the accumulated continuation.
func (e *Engine) mentionPrompt(kind token.Kind, params ...string) ([]domain.Action, error) {
	tok, err := token.Encode(kind, token.StepAwaitMention, params...)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That destination can't be used.")
	}
	return []domain.Action{domain.NewReply(domain.Reply{
		Content: "📣 Should the announcement mention " + domain.MentionEveryone + "?",
		Private: true,
		Menus: []domain.Menu{{
			Token:       tok,
			Placeholder: "Mention",
			Options: []domain.Option{
				{Label: "Mention " + domain.MentionEveryone, Value: mentionYes},
				{Label: "No mention", Value: mentionNo},
			},
		}},
	})}, nil
}

func (e *Engine) pickMention(ctx context.Context, ev *domain.Event, _ domain.Config, c token.Continuation) ([]domain.Action, error) {
	flag := selected(ev)
	if flag != mentionYes && flag != mentionNo {
		return nil, domain.Reject(domain.ErrInvalidInput, "Nothing was selected.")
	}
	if _, err := e.guild(ctx, c.Param(0)); err != nil {
		return nil, err
	}

	params := append(append([]string(nil), c.Params...), flag)
	tok, err := token.Encode(c.Kind, token.StepAwaitContent, params...)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidInput, "That destination can't be used.")
	}

	return []domain.Action{{
		Type: domain.ActionShowForm,
		Payload: domain.Form{
			Token: tok,
			Title: "Announcement",
			Fields: []domain.FormField{{
				ID:        fieldContent,
				Label:     "Content",
				Style:     domain.FieldParagraph,
				Required:  true,
				MaxLength: 1900,
			}},
		},
	}}, nil
}

// publishAnnouncement re-resolves the destination, since it may have changed since the prompt was sent.
func (e *Engine) publishAnnouncement(ctx context.Context, ev *domain.Event, cfg domain.Config, c token.Continuation) ([]domain.Action, error) {
	g, err := e.guild(ctx, c.Param(0))
	if err != nil {
		return nil, err
	}

	var channelID, flag string
	if c.Kind == token.KindAnnounceDefault {
		channelID, flag = cfg.AnnouncementChannels[g.ID], c.Param(1)
	} else {
		channelID, flag = c.Param(1), c.Param(2)
	}
	ch, err := e.textChannel(ctx, g.ID, channelID)
	if err != nil {
		return nil, err
	}

	content := ev.Fields[fieldContent]
	if strings.TrimSpace(content) == "" {
		return nil, domain.Reject(domain.ErrInvalidInput, "The announcement can't be empty.")
	}

	mention := false
	if flag == mentionYes {
		allowed, err := e.dir.CanMentionEveryone(ctx, ch.ID)
		if err != nil {
			e.logger.WarnContext(ctx, "mention permission check failed", "event_id", ev.ID, "channel_id", ch.ID, "err", err)
		}
		mention = err == nil && allowed
	}
	if mention {
		content = domain.MentionEveryone + "\n" + content
	}

	return []domain.Action{
		{
			Type:    domain.ActionSendMessage,
			Payload: domain.Message{ChannelID: ch.ID, Content: content, MentionEveryone: mention},
		},
		domain.PrivateReply(fmt.Sprintf("✅ Announcement sent to #%s in %s.", ch.Name, g.Name)),
	}, nil
}
