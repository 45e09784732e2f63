package domain

// Config holds every moderator-set value.
// Empty role IDs mean "unset".
type Config struct {
	// AdminRoleID gates privileged workflows. Unset falls back to the administrator flag.
	AdminRoleID string `yaml:"admin_role_id" json:"admin_role_id,omitempty"`

	// AutoRoleID is granted to every member on join.
	AutoRoleID string `yaml:"auto_role_id" json:"auto_role_id,omitempty"`

	// WelcomeChannels maps a channel ID to its welcome template.
	WelcomeChannels map[string]string `yaml:"welcome_channels" json:"welcome_channels,omitempty"`

	// AnnouncementChannels maps a guild ID to its announcement channel ID.
	AnnouncementChannels map[string]string `yaml:"announcement_channels" json:"announcement_channels,omitempty"`

	// ButtonPanels maps a channel ID to the role buttons published there, in publication order.
	ButtonPanels map[string][]ButtonSpec `yaml:"button_panels" json:"button_panels,omitempty"`
}

// ButtonSpec describes one self-service role button.
type ButtonSpec struct {
	Label      string `yaml:"label" json:"label" mapstructure:"label"`
	AddRole    string `yaml:"add_role" json:"add_role" mapstructure:"add_role"`
	RemoveRole string `yaml:"remove_role" json:"remove_role,omitempty" mapstructure:"remove_role"`
	Response   string `yaml:"response" json:"response,omitempty" mapstructure:"response"`
	Ephemeral  bool   `yaml:"ephemeral" json:"ephemeral" mapstructure:"ephemeral"`
}

// NewConfig returns an empty configuration with initialized maps.
func NewConfig() Config {
	return Config{
		WelcomeChannels:      make(map[string]string),
		AnnouncementChannels: make(map[string]string),
		ButtonPanels:         make(map[string][]ButtonSpec),
	}
}

// Clone returns a deep copy so callers can't mutate shared maps by reference.
func (c Config) Clone() Config {
	out := NewConfig()
	out.AdminRoleID = c.AdminRoleID
	out.AutoRoleID = c.AutoRoleID
	for k, v := range c.WelcomeChannels {
		out.WelcomeChannels[k] = v
	}
	for k, v := range c.AnnouncementChannels {
		out.AnnouncementChannels[k] = v
	}
	for k, v := range c.ButtonPanels {
		out.ButtonPanels[k] = append([]ButtonSpec(nil), v...)
	}
	return out
}

// FindButton returns the first published button in channelID that grants roleID.
func (c Config) FindButton(channelID, roleID string) (ButtonSpec, bool) {
	for _, b := range c.ButtonPanels[channelID] {
		if b.AddRole == roleID {
			return b, true
		}
	}
	return ButtonSpec{}, false
}
