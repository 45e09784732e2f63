// Package testutils provides shared fixtures for package tests.
package testutils

import (
	"github.com/aretw0/steward/pkg/adapters/memory"
	"github.com/aretw0/steward/pkg/domain"
)

// Fixture IDs of the standard test community.
const (
	GuildID     = "100"
	GuildName   = "Gophers"
	OtherGuild  = "200"
	General     = "110"
	Rules       = "111"
	Voice       = "112"
	OtherText   = "210"
	AdminRole   = "120"
	MemberRole  = "121"
	GuestRole   = "122"
	BotRole     = "123"
	ModeratorID = "900"
	MemberID    = "901"
)

// NewDirectory builds a directory with two communities. GuildID has two text channels,
// one voice channel, three assignable roles and one managed role. The broadcast mention
// is allowed in General only.
func NewDirectory() *memory.Directory {
	return memory.NewDirectory().
		AddGuild(domain.Guild{ID: GuildID, Name: GuildName}).
		AddGuild(domain.Guild{ID: OtherGuild, Name: "Rustaceans"}).
		AddChannel(domain.Channel{ID: General, GuildID: GuildID, Name: "general", Text: true}).
		AddChannel(domain.Channel{ID: Rules, GuildID: GuildID, Name: "rules", Text: true}).
		AddChannel(domain.Channel{ID: Voice, GuildID: GuildID, Name: "voice"}).
		AddChannel(domain.Channel{ID: OtherText, GuildID: OtherGuild, Name: "lobby", Text: true}).
		AddRole(domain.Role{ID: AdminRole, GuildID: GuildID, Name: "Admin"}).
		AddRole(domain.Role{ID: MemberRole, GuildID: GuildID, Name: "Member"}).
		AddRole(domain.Role{ID: GuestRole, GuildID: GuildID, Name: "Guest"}).
		AddRole(domain.Role{ID: BotRole, GuildID: GuildID, Name: "Bot", Managed: true}).
		AllowEveryone(General, true)
}

// Moderator returns an actor holding AdminRole in GuildID.
func Moderator() domain.Actor {
	return domain.Actor{UserID: ModeratorID, GuildID: GuildID, Roles: []string{AdminRole}}
}

// Member returns an unprivileged actor in GuildID.
func Member() domain.Actor {
	return domain.Actor{UserID: MemberID, GuildID: GuildID}
}

// AdminConfig returns a configuration gating privileged workflows on AdminRole.
func AdminConfig() domain.Config {
	cfg := domain.NewConfig()
	cfg.AdminRoleID = AdminRole
	return cfg
}
