package domain

// Guild is a community visible to the assistant.
type Guild struct {
	ID   string
	Name string
}

// Channel is a message destination inside a guild.
type Channel struct {
	ID      string
	GuildID string
	Name    string
	// Text reports whether plain messages can be sent to the channel.
	Text bool
}

// Role is a grantable tag on a member.
type Role struct {
	ID      string
	GuildID string
	Name    string
	// Managed roles belong to integrations and can't be assigned by hand.
	Managed bool
}

// Actor is the member that produced an event.
type Actor struct {
	UserID  string
	GuildID string
	Roles   []string
	// Administrator is the platform-native administrator capability.
	Administrator bool
}

// HasRole reports whether the actor holds roleID.
func (a Actor) HasRole(roleID string) bool {
	for _, r := range a.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// MentionUser formats a user mention reference.
func MentionUser(userID string) string {
	return "<@" + userID + ">"
}

// MentionEveryone is the broadcast mention.
const MentionEveryone = "@everyone"
