package ports

import (
	"context"

	"github.com/aretw0/steward/pkg/domain"
)

// Platform defines how outbound actions reach the chat platform.
// The engine emits actions, and the host implements this interface to perform them.
type Platform interface {
	// Respond answers the event that produced ev with a reply, a form or a silent acknowledgment.
	// reply is one of domain.Reply, domain.Form or nil (acknowledge).
	Respond(ctx context.Context, ev *domain.Event, reply any) error

	SendMessage(ctx context.Context, msg domain.Message) error
	GrantRole(ctx context.Context, change domain.RoleChange) error
	RevokeRole(ctx context.Context, change domain.RoleChange) error

	// RegisterCommands publishes the command set. Called once at startup.
	RegisterCommands(ctx context.Context, commands []domain.Command) error
}
