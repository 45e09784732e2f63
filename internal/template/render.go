// Package template substitutes placeholders in moderator-authored text.
package template

import (
	"strings"

	"github.com/aretw0/steward/pkg/domain"
)

// Recognized placeholders.
const (
	PlaceholderUser   = "{user}"
	PlaceholderServer = "{server}"
)

// DefaultWelcome is the welcome template used when a moderator has not written one.
const DefaultWelcome = "🎉 Welcome {user} to {server}!"

// Render replaces every {user} with a mention of userID and every {server} with serverName.
// Substitution is literal; unknown placeholders pass through unchanged.
func Render(tmpl, userID, serverName string) string {
	r := strings.NewReplacer(
		PlaceholderUser, domain.MentionUser(userID),
		PlaceholderServer, serverName,
	)
	return r.Replace(tmpl)
}
