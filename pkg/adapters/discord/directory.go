package discord

import (
	"context"
	"errors"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/steward/pkg/domain"
)

// Directory implements ports.Directory over the session state cache.
// It only sees communities delivered by the gateway since the session opened.
type Directory struct {
	state *discordgo.State
}

// NewDirectory creates a Directory reading from state.
func NewDirectory(state *discordgo.State) *Directory {
	return &Directory{state: state}
}

func notFound(err error) error {
	if errors.Is(err, discordgo.ErrStateNotFound) || errors.Is(err, discordgo.ErrNilState) {
		return domain.ErrNotFound
	}
	return err
}

func (d *Directory) Guilds(ctx context.Context) ([]domain.Guild, error) {
	d.state.RLock()
	defer d.state.RUnlock()

	out := make([]domain.Guild, 0, len(d.state.Guilds))
	for _, g := range d.state.Guilds {
		if g.Unavailable {
			continue
		}
		out = append(out, domain.Guild{ID: g.ID, Name: g.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (d *Directory) Guild(ctx context.Context, guildID string) (domain.Guild, error) {
	g, err := d.state.Guild(guildID)
	if err != nil {
		return domain.Guild{}, notFound(err)
	}
	return domain.Guild{ID: g.ID, Name: g.Name}, nil
}

func isText(c *discordgo.Channel) bool {
	return c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews
}

func toChannel(c *discordgo.Channel) domain.Channel {
	return domain.Channel{ID: c.ID, GuildID: c.GuildID, Name: c.Name, Text: isText(c)}
}

// TextChannels lists text channels in sidebar order.
func (d *Directory) TextChannels(ctx context.Context, guildID string) ([]domain.Channel, error) {
	g, err := d.state.Guild(guildID)
	if err != nil {
		return nil, notFound(err)
	}

	d.state.RLock()
	channels := make([]*discordgo.Channel, 0, len(g.Channels))
	for _, c := range g.Channels {
		if isText(c) {
			channels = append(channels, c)
		}
	}
	d.state.RUnlock()

	sort.Slice(channels, func(i, j int) bool {
		if channels[i].Position != channels[j].Position {
			return channels[i].Position < channels[j].Position
		}
		return channels[i].ID < channels[j].ID
	})

	out := make([]domain.Channel, 0, len(channels))
	for _, c := range channels {
		out = append(out, toChannel(c))
	}
	return out, nil
}

func (d *Directory) Channel(ctx context.Context, channelID string) (domain.Channel, error) {
	c, err := d.state.Channel(channelID)
	if err != nil {
		return domain.Channel{}, notFound(err)
	}
	return toChannel(c), nil
}

// Roles lists assignable roles, highest first. Managed roles and @everyone are excluded.
func (d *Directory) Roles(ctx context.Context, guildID string) ([]domain.Role, error) {
	g, err := d.state.Guild(guildID)
	if err != nil {
		return nil, notFound(err)
	}

	d.state.RLock()
	roles := make([]*discordgo.Role, 0, len(g.Roles))
	for _, r := range g.Roles {
		if !r.Managed && r.ID != g.ID {
			roles = append(roles, r)
		}
	}
	d.state.RUnlock()

	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Position != roles[j].Position {
			return roles[i].Position > roles[j].Position
		}
		return roles[i].ID < roles[j].ID
	})

	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, domain.Role{ID: r.ID, GuildID: guildID, Name: r.Name})
	}
	return out, nil
}

func (d *Directory) Role(ctx context.Context, guildID, roleID string) (domain.Role, error) {
	r, err := d.state.Role(guildID, roleID)
	if err != nil {
		return domain.Role{}, notFound(err)
	}
	return domain.Role{ID: r.ID, GuildID: guildID, Name: r.Name, Managed: r.Managed}, nil
}

// CanMentionEveryone checks the assistant's own permissions in channelID.
func (d *Directory) CanMentionEveryone(ctx context.Context, channelID string) (bool, error) {
	if d.state.User == nil {
		return false, errors.New("session is not ready")
	}
	perms, err := d.state.UserChannelPermissions(d.state.User.ID, channelID)
	if err != nil {
		return false, notFound(err)
	}
	return perms&discordgo.PermissionMentionEveryone != 0, nil
}
