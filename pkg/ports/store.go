package ports

import (
	"context"

	"github.com/aretw0/steward/pkg/domain"
)

// ConfigStore defines the interface for the process-wide configuration.
// Scalar setters replace the prior value; map setters are keyed upserts;
// AppendButton appends to the channel's panel.
type ConfigStore interface {
	// Snapshot returns a deep copy of the current configuration.
	Snapshot(ctx context.Context) (domain.Config, error)

	SetAdminRole(ctx context.Context, roleID string) error
	SetAutoRole(ctx context.Context, roleID string) error
	SetWelcomeTemplate(ctx context.Context, channelID, template string) error
	SetAnnouncementChannel(ctx context.Context, guildID, channelID string) error
	AppendButton(ctx context.Context, channelID string, spec domain.ButtonSpec) error

	// Button looks up the published button in channelID that grants roleID.
	// The boolean is false when no such button exists.
	Button(ctx context.Context, channelID, roleID string) (domain.ButtonSpec, bool, error)
}
