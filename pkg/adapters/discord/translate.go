package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/steward/pkg/domain"
)

// FromInteraction translates an interaction into an event.
// The boolean is false for interaction types the assistant does not handle.
func FromInteraction(i *discordgo.InteractionCreate) (*domain.Event, bool) {
	if i == nil || i.Interaction == nil {
		return nil, false
	}

	ev := &domain.Event{
		Actor:     interactionActor(i.Interaction),
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Source:    i.Interaction,
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		ev.Kind = domain.EventCommand
		ev.Command = i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		ev.CustomID = data.CustomID
		if data.ComponentType == discordgo.ButtonComponent {
			ev.Kind = domain.EventButtonPress
		} else {
			ev.Kind = domain.EventSelection
			ev.Values = data.Values
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		ev.Kind = domain.EventFormSubmit
		ev.CustomID = data.CustomID
		ev.Fields = modalFields(data)
	default:
		return nil, false
	}
	return ev, true
}

func interactionActor(i *discordgo.Interaction) domain.Actor {
	actor := domain.Actor{GuildID: i.GuildID}
	switch {
	case i.Member != nil:
		if i.Member.User != nil {
			actor.UserID = i.Member.User.ID
		}
		actor.Roles = i.Member.Roles
		actor.Administrator = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	case i.User != nil:
		actor.UserID = i.User.ID
	}
	return actor
}

func modalFields(m discordgo.ModalSubmitInteractionData) map[string]string {
	fields := make(map[string]string)
	for _, comp := range m.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok || row == nil {
			continue
		}
		for _, c := range row.Components {
			if ti, ok := c.(*discordgo.TextInput); ok {
				fields[ti.CustomID] = ti.Value
			}
		}
	}
	return fields
}

// FromMemberAdd translates a join. Bots are ignored.
func FromMemberAdd(m *discordgo.GuildMemberAdd) (*domain.Event, bool) {
	if m == nil || m.Member == nil || m.User == nil || m.User.Bot {
		return nil, false
	}
	return &domain.Event{
		Kind:    domain.EventMemberJoin,
		Actor:   domain.Actor{UserID: m.User.ID, GuildID: m.GuildID, Roles: m.Roles},
		GuildID: m.GuildID,
		Source:  m.Member,
	}, true
}

// AdminCheck reports whether userID has the administrator permission in channelID.
type AdminCheck func(userID, channelID string) bool

// FromMessage translates a prefixed guild message such as "!config" into a text command.
// An empty prefix disables text commands.
func FromMessage(m *discordgo.MessageCreate, prefix string, isAdmin AdminCheck) (*domain.Event, bool) {
	if prefix == "" || m == nil || m.Message == nil || m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return nil, false
	}
	if !strings.HasPrefix(m.Content, prefix) {
		return nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return nil, false
	}

	actor := domain.Actor{UserID: m.Author.ID, GuildID: m.GuildID}
	if m.Member != nil {
		actor.Roles = m.Member.Roles
	}
	if isAdmin != nil {
		actor.Administrator = isAdmin(m.Author.ID, m.ChannelID)
	}

	return &domain.Event{
		Kind:      domain.EventTextCommand,
		Actor:     actor,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Command:   strings.ToLower(fields[0]),
		Source:    m.Message,
	}, true
}
