package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/steward/pkg/domain"
)

func member(id string, perms int64, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id}, Roles: roles, Permissions: perms}
}

func TestFromInteraction(t *testing.T) {
	tests := []struct {
		name string
		in   *discordgo.Interaction
		want domain.Event
	}{
		{
			name: "Slash Command",
			in: &discordgo.Interaction{
				Type:    discordgo.InteractionApplicationCommand,
				GuildID: "g",
				Member:  member("u", discordgo.PermissionAdministrator, "r1"),
				Data:    discordgo.ApplicationCommandInteractionData{Name: "config"},
			},
			want: domain.Event{
				Kind:    domain.EventCommand,
				Actor:   domain.Actor{UserID: "u", GuildID: "g", Roles: []string{"r1"}, Administrator: true},
				GuildID: "g",
				Command: "config",
			},
		},
		{
			name: "Selection",
			in: &discordgo.Interaction{
				Type:    discordgo.InteractionMessageComponent,
				GuildID: "g",
				Member:  member("u", 0),
				Data: discordgo.MessageComponentInteractionData{
					CustomID:      "config|1",
					ComponentType: discordgo.SelectMenuComponent,
					Values:        []string{"r2"},
				},
			},
			want: domain.Event{
				Kind:     domain.EventSelection,
				Actor:    domain.Actor{UserID: "u", GuildID: "g"},
				GuildID:  "g",
				CustomID: "config|1",
				Values:   []string{"r2"},
			},
		},
		{
			name: "Button",
			in: &discordgo.Interaction{
				Type:    discordgo.InteractionMessageComponent,
				GuildID: "g",
				Member:  member("u", 0),
				Data: discordgo.MessageComponentInteractionData{
					CustomID:      "role|0|c|r",
					ComponentType: discordgo.ButtonComponent,
				},
			},
			want: domain.Event{
				Kind:     domain.EventButtonPress,
				Actor:    domain.Actor{UserID: "u", GuildID: "g"},
				GuildID:  "g",
				CustomID: "role|0|c|r",
			},
		},
		{
			name: "Modal Submit",
			in: &discordgo.Interaction{
				Type:    discordgo.InteractionModalSubmit,
				GuildID: "g",
				Member:  member("u", 0),
				Data: discordgo.ModalSubmitInteractionData{
					CustomID: "welcome|2|c",
					Components: []discordgo.MessageComponent{
						&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
							&discordgo.TextInput{CustomID: "text", Value: "hi {user}"},
						}},
					},
				},
			},
			want: domain.Event{
				Kind:     domain.EventFormSubmit,
				Actor:    domain.Actor{UserID: "u", GuildID: "g"},
				GuildID:  "g",
				CustomID: "welcome|2|c",
				Fields:   map[string]string{"text": "hi {user}"},
			},
		},
		{
			name: "Direct Message",
			in: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				User: &discordgo.User{ID: "u"},
				Data: discordgo.ApplicationCommandInteractionData{Name: "announce"},
			},
			want: domain.Event{
				Kind:    domain.EventCommand,
				Actor:   domain.Actor{UserID: "u"},
				Command: "announce",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromInteraction(&discordgo.InteractionCreate{Interaction: tt.in})
			require.True(t, ok)
			assert.Same(t, tt.in, got.Source)
			got.Source = nil
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFromInteraction_Ignored(t *testing.T) {
	_, ok := FromInteraction(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{Type: discordgo.InteractionPing}})
	assert.False(t, ok)
	_, ok = FromInteraction(&discordgo.InteractionCreate{})
	assert.False(t, ok)
}

func TestFromMemberAdd(t *testing.T) {
	ev, ok := FromMemberAdd(&discordgo.GuildMemberAdd{Member: &discordgo.Member{GuildID: "g", User: &discordgo.User{ID: "u"}}})
	require.True(t, ok)
	assert.Equal(t, domain.EventMemberJoin, ev.Kind)
	assert.Equal(t, "g", ev.GuildID)
	assert.Equal(t, "u", ev.Actor.UserID)

	_, ok = FromMemberAdd(&discordgo.GuildMemberAdd{Member: &discordgo.Member{GuildID: "g", User: &discordgo.User{ID: "b", Bot: true}}})
	assert.False(t, ok)
}

func TestFromMessage(t *testing.T) {
	admin := func(userID, channelID string) bool { return userID == "boss" }
	msg := func(author, content string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{Message: &discordgo.Message{
			ID:        "m",
			ChannelID: "c",
			GuildID:   "g",
			Content:   content,
			Author:    &discordgo.User{ID: author},
			Member:    &discordgo.Member{Roles: []string{"r"}},
		}}
	}

	ev, ok := FromMessage(msg("boss", "!Config now"), "!", admin)
	require.True(t, ok)
	assert.Equal(t, domain.EventTextCommand, ev.Kind)
	assert.Equal(t, "config", ev.Command)
	assert.Equal(t, domain.Actor{UserID: "boss", GuildID: "g", Roles: []string{"r"}, Administrator: true}, ev.Actor)
	assert.IsType(t, &discordgo.Message{}, ev.Source)

	ev, ok = FromMessage(msg("pleb", "!announce"), "!", admin)
	require.True(t, ok)
	assert.False(t, ev.Actor.Administrator)

	for _, tt := range []struct {
		name   string
		m      *discordgo.MessageCreate
		prefix string
	}{
		{"No Prefix", msg("boss", "config"), "!"},
		{"Only Prefix", msg("boss", "! "), "!"},
		{"Disabled", msg("boss", "!config"), ""},
		{"Direct Message", &discordgo.MessageCreate{Message: &discordgo.Message{Content: "!config", Author: &discordgo.User{ID: "boss"}}}, "!"},
		{"Bot Author", &discordgo.MessageCreate{Message: &discordgo.Message{GuildID: "g", Content: "!config", Author: &discordgo.User{ID: "b", Bot: true}}}, "!"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := FromMessage(tt.m, tt.prefix, admin)
			assert.False(t, ok)
		})
	}
}
