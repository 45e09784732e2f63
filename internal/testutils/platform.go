package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/steward/pkg/domain"
)

// ErrInjected is returned by Platform calls configured to fail.
var ErrInjected = errors.New("injected failure")

// Response records one Respond call.
type Response struct {
	EventID string
	// Reply is a domain.Reply, a domain.Form or nil for an acknowledgment.
	Reply any
}

// Platform is a recording ports.Platform with per-target failure injection.
type Platform struct {
	mu sync.Mutex

	Responses []Response
	Messages  []domain.Message
	Granted   []domain.RoleChange
	Revoked   []domain.RoleChange
	Commands  []domain.Command

	// FailChannels makes SendMessage fail for the listed channel IDs.
	FailChannels map[string]bool
	// FailRoles makes GrantRole and RevokeRole fail for the listed role IDs.
	FailRoles map[string]bool
	// FailRespond makes every Respond call fail.
	FailRespond bool
}

// NewPlatform returns an empty recorder.
func NewPlatform() *Platform {
	return &Platform{
		FailChannels: make(map[string]bool),
		FailRoles:    make(map[string]bool),
	}
}

func (p *Platform) Respond(_ context.Context, ev *domain.Event, reply any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailRespond {
		return ErrInjected
	}
	p.Responses = append(p.Responses, Response{EventID: ev.ID, Reply: reply})
	return nil
}

func (p *Platform) SendMessage(_ context.Context, msg domain.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailChannels[msg.ChannelID] {
		return ErrInjected
	}
	p.Messages = append(p.Messages, msg)
	return nil
}

func (p *Platform) GrantRole(_ context.Context, change domain.RoleChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailRoles[change.RoleID] {
		return ErrInjected
	}
	p.Granted = append(p.Granted, change)
	return nil
}

func (p *Platform) RevokeRole(_ context.Context, change domain.RoleChange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailRoles[change.RoleID] {
		return ErrInjected
	}
	p.Revoked = append(p.Revoked, change)
	return nil
}

func (p *Platform) RegisterCommands(_ context.Context, commands []domain.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Commands = append(p.Commands, commands...)
	return nil
}
