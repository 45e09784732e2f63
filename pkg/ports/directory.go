package ports

import (
	"context"

	"github.com/aretw0/steward/pkg/domain"
)

// Directory resolves platform entities the assistant currently has visibility into.
// Lookups of unknown IDs return domain.ErrNotFound.
type Directory interface {
	// Guilds lists every visible community.
	Guilds(ctx context.Context) ([]domain.Guild, error)
	Guild(ctx context.Context, guildID string) (domain.Guild, error)

	// TextChannels lists the channels of a guild that accept plain messages.
	TextChannels(ctx context.Context, guildID string) ([]domain.Channel, error)
	Channel(ctx context.Context, channelID string) (domain.Channel, error)

	// Roles lists the roles of a guild that can be assigned by hand.
	Roles(ctx context.Context, guildID string) ([]domain.Role, error)
	Role(ctx context.Context, guildID, roleID string) (domain.Role, error)

	// CanMentionEveryone reports whether the assistant may use the broadcast mention in channelID.
	CanMentionEveryone(ctx context.Context, channelID string) (bool, error)
}
