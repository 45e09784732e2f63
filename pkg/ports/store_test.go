package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/steward/pkg/domain"
	"github.com/aretw0/steward/pkg/ports"
)

// MockStore is a minimal ConfigStore for testing purposes. Not safe for concurrent use.
type MockStore struct {
	cfg domain.Config
}

func NewMockStore() *MockStore {
	return &MockStore{cfg: domain.NewConfig()}
}

func (m *MockStore) Snapshot(ctx context.Context) (domain.Config, error) {
	return m.cfg.Clone(), nil
}

func (m *MockStore) SetAdminRole(ctx context.Context, roleID string) error {
	m.cfg.AdminRoleID = roleID
	return nil
}

func (m *MockStore) SetAutoRole(ctx context.Context, roleID string) error {
	m.cfg.AutoRoleID = roleID
	return nil
}

func (m *MockStore) SetWelcomeTemplate(ctx context.Context, channelID, template string) error {
	m.cfg.WelcomeChannels[channelID] = template
	return nil
}

func (m *MockStore) SetAnnouncementChannel(ctx context.Context, guildID, channelID string) error {
	m.cfg.AnnouncementChannels[guildID] = channelID
	return nil
}

func (m *MockStore) AppendButton(ctx context.Context, channelID string, spec domain.ButtonSpec) error {
	m.cfg.ButtonPanels[channelID] = append(m.cfg.ButtonPanels[channelID], spec)
	return nil
}

func (m *MockStore) Button(ctx context.Context, channelID, roleID string) (domain.ButtonSpec, bool, error) {
	spec, ok := m.cfg.FindButton(channelID, roleID)
	return spec, ok, nil
}

func TestConfigStore_Contract(t *testing.T) {
	// This test verifies that the MockStore complies with the ConfigStore contract
	// and serves as a reference for future implementations (Adapters).
	ports.RunConfigStoreContract(t, NewMockStore())
}
