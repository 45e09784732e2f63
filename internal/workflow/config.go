package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/steward/internal/token"
	"github.com/aretw0/steward/pkg/domain"
)

// openConfigPanel bundles every configuration chooser into one private prompt.
func (e *Engine) openConfigPanel(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
	if ev.GuildID == "" {
		return nil, domain.Reject(domain.ErrInvalidInput, "This command only works inside a server.")
	}
	if _, err := e.guild(ctx, ev.GuildID); err != nil {
		return nil, err
	}

	roles, err := e.dir.Roles(ctx, ev.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	channels, err := e.dir.TextChannels(ctx, ev.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	roleOpts := roleOptions(roles)
	chanOpts := channelOptions(channels)

	var menus []domain.Menu
	if len(roleOpts) > 0 {
		menus = append(menus,
			domain.Menu{Token: token.MustEncode(token.KindConfig, token.StepAdminRole), Placeholder: "Admin role", Options: roleOpts},
			domain.Menu{Token: token.MustEncode(token.KindConfig, token.StepAutoRole), Placeholder: "Role granted on join", Options: roleOpts},
		)
	}
	if len(chanOpts) > 0 {
		menus = append(menus,
			domain.Menu{Token: token.MustEncode(token.KindWelcome, token.StepPickChannel), Placeholder: "Add a welcome channel", Options: chanOpts},
			domain.Menu{Token: token.MustEncode(token.KindPanel, token.StepPickChannel), Placeholder: "Add a role button to a channel", Options: chanOpts},
			domain.Menu{Token: token.MustEncode(token.KindConfig, token.StepAnnouncementChannel), Placeholder: "Announcement channel", Options: chanOpts},
		)
	}
	if len(menus) == 0 {
		return nil, domain.Reject(domain.ErrStaleReference, "This server has no roles or text channels to configure.")
	}

	return []domain.Action{domain.NewReply(domain.Reply{
		Content: "🔧 Server configuration",
		Private: true,
		Menus:   menus,
	})}, nil
}

func (e *Engine) setAdminRole(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
	role, err := e.selectedRole(ctx, ev)
	if err != nil {
		return nil, err
	}
	if err := e.store.SetAdminRole(ctx, role.ID); err != nil {
		return nil, fmt.Errorf("failed to save admin role: %w", err)
	}
	return []domain.Action{domain.PrivateReply(fmt.Sprintf("✅ Admin role set to %s.", role.Name))}, nil
}

func (e *Engine) setAutoRole(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
	role, err := e.selectedRole(ctx, ev)
	if err != nil {
		return nil, err
	}
	if err := e.store.SetAutoRole(ctx, role.ID); err != nil {
		return nil, fmt.Errorf("failed to save auto role: %w", err)
	}
	return []domain.Action{domain.PrivateReply(fmt.Sprintf("✅ New members will receive %s.", role.Name))}, nil
}

func (e *Engine) setAnnouncementChannel(ctx context.Context, ev *domain.Event, _ domain.Config) ([]domain.Action, error) {
	ch, err := e.textChannel(ctx, ev.GuildID, selected(ev))
	if err != nil {
		return nil, err
	}
	if err := e.store.SetAnnouncementChannel(ctx, ev.GuildID, ch.ID); err != nil {
		return nil, fmt.Errorf("failed to save announcement channel: %w", err)
	}
	return []domain.Action{domain.PrivateReply(fmt.Sprintf("✅ Announcements will go to #%s.", ch.Name))}, nil
}

func (e *Engine) selectedRole(ctx context.Context, ev *domain.Event) (domain.Role, error) {
	id := selected(ev)
	if id == "" {
		return domain.Role{}, domain.Reject(domain.ErrInvalidInput, "Nothing was selected.")
	}
	role, err := e.dir.Role(ctx, ev.GuildID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Role{}, domain.Reject(domain.ErrStaleReference, "That role no longer exists.")
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("failed to resolve role: %w", err)
	}
	return role, nil
}

// guild resolves a community or rejects the step as stale.
func (e *Engine) guild(ctx context.Context, guildID string) (domain.Guild, error) {
	notFound := domain.Reject(domain.ErrStaleReference, "Community not found.")
	if guildID == "" {
		return domain.Guild{}, notFound
	}
	g, err := e.dir.Guild(ctx, guildID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Guild{}, notFound
	}
	if err != nil {
		return domain.Guild{}, fmt.Errorf("failed to resolve guild: %w", err)
	}
	return g, nil
}

// textChannel resolves channelID to a text channel of guildID or rejects the step as stale.
func (e *Engine) textChannel(ctx context.Context, guildID, channelID string) (domain.Channel, error) {
	invalid := domain.Reject(domain.ErrStaleReference, "That channel is no longer valid.")
	if channelID == "" {
		return domain.Channel{}, invalid
	}
	ch, err := e.dir.Channel(ctx, channelID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Channel{}, invalid
	}
	if err != nil {
		return domain.Channel{}, fmt.Errorf("failed to resolve channel: %w", err)
	}
	if ch.GuildID != guildID || !ch.Text {
		return domain.Channel{}, invalid
	}
	return ch, nil
}

func selected(ev *domain.Event) string {
	return ev.Value()
}

func roleOptions(roles []domain.Role) []domain.Option {
	opts := make([]domain.Option, 0, min(len(roles), maxOptions))
	for _, r := range roles {
		if len(opts) == maxOptions {
			break
		}
		opts = append(opts, domain.Option{Label: r.Name, Value: r.ID})
	}
	return opts
}

func channelOptions(channels []domain.Channel) []domain.Option {
	opts := make([]domain.Option, 0, min(len(channels), maxOptions))
	for _, c := range channels {
		if len(opts) == maxOptions {
			break
		}
		opts = append(opts, domain.Option{Label: "#" + c.Name, Value: c.ID})
	}
	return opts
}

func guildOptions(guilds []domain.Guild) []domain.Option {
	opts := make([]domain.Option, 0, min(len(guilds), maxOptions))
	for _, g := range guilds {
		if len(opts) == maxOptions {
			break
		}
		opts = append(opts, domain.Option{Label: g.Name, Value: g.ID})
	}
	return opts
}
