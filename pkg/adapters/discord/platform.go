package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/steward/pkg/domain"
)

// ErrUnsupportedReply is returned when a reply can't be delivered over the event's source,
// such as a form answering a text command.
var ErrUnsupportedReply = errors.New("reply not supported for this event")

// Platform implements ports.Platform over a discordgo session.
type Platform struct {
	session *discordgo.Session
}

// NewPlatform creates a Platform.
func NewPlatform(s *discordgo.Session) *Platform {
	return &Platform{session: s}
}

func (p *Platform) Respond(ctx context.Context, ev *domain.Event, reply any) error {
	switch src := ev.Source.(type) {
	case *discordgo.Interaction:
		resp, err := interactionResponse(src, reply)
		if err != nil {
			return err
		}
		return p.session.InteractionRespond(src, resp, discordgo.WithContext(ctx))
	case *discordgo.Message:
		r, ok := reply.(domain.Reply)
		if !ok {
			if reply == nil {
				return nil
			}
			return fmt.Errorf("%w: %T", ErrUnsupportedReply, reply)
		}
		_, err := p.session.ChannelMessageSendComplex(src.ChannelID, textReply(src, r), discordgo.WithContext(ctx))
		return err
	default:
		return fmt.Errorf("%w: source %T", ErrUnsupportedReply, ev.Source)
	}
}

func interactionResponse(i *discordgo.Interaction, reply any) (*discordgo.InteractionResponse, error) {
	switch r := reply.(type) {
	case nil:
		return ackResponse(i), nil
	case domain.Reply:
		return replyResponse(r), nil
	case domain.Form:
		if i.Type == discordgo.InteractionModalSubmit {
			return nil, fmt.Errorf("%w: form after form", ErrUnsupportedReply)
		}
		return formResponse(r), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedReply, reply)
	}
}

func (p *Platform) SendMessage(ctx context.Context, msg domain.Message) error {
	_, err := p.session.ChannelMessageSendComplex(msg.ChannelID, messageSend(msg), discordgo.WithContext(ctx))
	return err
}

func (p *Platform) GrantRole(ctx context.Context, c domain.RoleChange) error {
	return p.session.GuildMemberRoleAdd(c.GuildID, c.UserID, c.RoleID, discordgo.WithContext(ctx))
}

func (p *Platform) RevokeRole(ctx context.Context, c domain.RoleChange) error {
	return p.session.GuildMemberRoleRemove(c.GuildID, c.UserID, c.RoleID, discordgo.WithContext(ctx))
}

// RegisterCommands overwrites the global command set of the application.
func (p *Platform) RegisterCommands(ctx context.Context, cmds []domain.Command) error {
	if p.session.State == nil || p.session.State.User == nil {
		return errors.New("session is not ready")
	}
	_, err := p.session.ApplicationCommandBulkOverwrite(p.session.State.User.ID, "", applicationCommands(cmds), discordgo.WithContext(ctx))
	return err
}
