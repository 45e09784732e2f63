package domain

import (
	"reflect"
)

// ConfigDiff represents the changes between two configurations.
// It is designed to be logged after each store write.
type ConfigDiff struct {
	AdminRoleID *string `json:"admin_role_id,omitempty"`
	AutoRoleID  *string `json:"auto_role_id,omitempty"`

	// Map deltas contain only changed, added or deleted keys.
	// For deletions, the key is present with an empty value.
	WelcomeChannels      map[string]string `json:"welcome_channels,omitempty"`
	AnnouncementChannels map[string]string `json:"announcement_channels,omitempty"`

	// ButtonsAppended lists the buttons added per channel. Panels are append-only.
	ButtonsAppended map[string][]ButtonSpec `json:"buttons_appended,omitempty"`
}

// Diff calculates the difference between two configurations.
// It returns nil when nothing changed.
func Diff(oldCfg, newCfg Config) *ConfigDiff {
	diff := &ConfigDiff{}

	if oldCfg.AdminRoleID != newCfg.AdminRoleID {
		diff.AdminRoleID = &newCfg.AdminRoleID
	}
	if oldCfg.AutoRoleID != newCfg.AutoRoleID {
		diff.AutoRoleID = &newCfg.AutoRoleID
	}

	diff.WelcomeChannels = diffStrings(oldCfg.WelcomeChannels, newCfg.WelcomeChannels)
	diff.AnnouncementChannels = diffStrings(oldCfg.AnnouncementChannels, newCfg.AnnouncementChannels)
	diff.ButtonsAppended = diffPanels(oldCfg.ButtonPanels, newCfg.ButtonPanels)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffStrings(old, new map[string]string) map[string]string {
	delta := make(map[string]string)

	for k, newVal := range new {
		if oldVal, exists := old[k]; !exists || oldVal != newVal {
			delta[k] = newVal
		}
	}
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = ""
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffPanels assumes append-only behavior, like the store.
func diffPanels(old, new map[string][]ButtonSpec) map[string][]ButtonSpec {
	delta := make(map[string][]ButtonSpec)
	for k, newButtons := range new {
		oldButtons := old[k]
		if len(newButtons) > len(oldButtons) && reflect.DeepEqual(oldButtons, newButtons[:len(oldButtons)]) {
			delta[k] = newButtons[len(oldButtons):]
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any changes.
func (d *ConfigDiff) IsEmpty() bool {
	return d.AdminRoleID == nil &&
		d.AutoRoleID == nil &&
		len(d.WelcomeChannels) == 0 &&
		len(d.AnnouncementChannels) == 0 &&
		len(d.ButtonsAppended) == 0
}
