package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/steward/pkg/domain"
)

// Directory implements ports.Directory using in-memory maps.
// It stands in for the platform cache in tests and dry runs.
type Directory struct {
	mu       sync.RWMutex
	guilds   map[string]domain.Guild
	channels map[string]domain.Channel
	roles    map[string]domain.Role
	everyone map[string]bool
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		guilds:   make(map[string]domain.Guild),
		channels: make(map[string]domain.Channel),
		roles:    make(map[string]domain.Role),
		everyone: make(map[string]bool),
	}
}

// AddGuild registers a guild.
func (d *Directory) AddGuild(g domain.Guild) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.guilds[g.ID] = g
	return d
}

// AddChannel registers a channel. The guild must be added separately.
func (d *Directory) AddChannel(c domain.Channel) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels[c.ID] = c
	return d
}

// AddRole registers a role.
func (d *Directory) AddRole(r domain.Role) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[r.ID] = r
	return d
}

// AllowEveryone sets whether the broadcast mention is permitted in channelID.
func (d *Directory) AllowEveryone(channelID string, allowed bool) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.everyone[channelID] = allowed
	return d
}

// RemoveGuild drops a guild with its channels and roles, as if the assistant left it.
func (d *Directory) RemoveGuild(guildID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.guilds, guildID)
	for id, c := range d.channels {
		if c.GuildID == guildID {
			delete(d.channels, id)
		}
	}
	for id, r := range d.roles {
		if r.GuildID == guildID {
			delete(d.roles, id)
		}
	}
}

// RemoveChannel drops a channel.
func (d *Directory) RemoveChannel(channelID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.channels, channelID)
}

// Guilds lists every guild sorted by ID.
func (d *Directory) Guilds(ctx context.Context) ([]domain.Guild, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Guild, 0, len(d.guilds))
	for _, g := range d.guilds {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID }) // Deterministic order
	return out, nil
}

// Guild retrieves a guild by ID.
func (d *Directory) Guild(ctx context.Context, guildID string) (domain.Guild, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	g, ok := d.guilds[guildID]
	if !ok {
		return domain.Guild{}, domain.ErrNotFound
	}
	return g, nil
}

// TextChannels lists the text channels of a guild sorted by ID.
func (d *Directory) TextChannels(ctx context.Context, guildID string) ([]domain.Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.guilds[guildID]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Channel, 0)
	for _, c := range d.channels {
		if c.GuildID == guildID && c.Text {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Channel retrieves a channel by ID.
func (d *Directory) Channel(ctx context.Context, channelID string) (domain.Channel, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.channels[channelID]
	if !ok {
		return domain.Channel{}, domain.ErrNotFound
	}
	return c, nil
}

// Roles lists the assignable roles of a guild sorted by ID.
func (d *Directory) Roles(ctx context.Context, guildID string) ([]domain.Role, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.guilds[guildID]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Role, 0)
	for _, r := range d.roles {
		if r.GuildID == guildID && !r.Managed && r.ID != guildID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Role retrieves a role of a guild.
func (d *Directory) Role(ctx context.Context, guildID, roleID string) (domain.Role, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.roles[roleID]
	if !ok || r.GuildID != guildID {
		return domain.Role{}, domain.ErrNotFound
	}
	return r, nil
}

// CanMentionEveryone reports the permission set with AllowEveryone.
func (d *Directory) CanMentionEveryone(ctx context.Context, channelID string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.channels[channelID]; !ok {
		return false, domain.ErrNotFound
	}
	return d.everyone[channelID], nil
}
