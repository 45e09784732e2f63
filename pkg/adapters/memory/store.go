package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/pkg/domain"
)

// Store implements ports.ConfigStore in memory.
// Safe for concurrent use. Contents are lost when the process exits.
type Store struct {
	cfg    domain.Config
	mu     sync.RWMutex
	logger *slog.Logger
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithLogger logs every effective change at debug level.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a new in-memory store holding a copy of seed.
func NewStore(seed domain.Config, opts ...StoreOption) *Store {
	s := &Store{
		cfg:    seed.Clone(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy so callers can't mutate store state by reference.
func (s *Store) Snapshot(ctx context.Context) (domain.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone(), nil
}

// SetAdminRole replaces the administrative role.
func (s *Store) SetAdminRole(ctx context.Context, roleID string) error {
	s.update(ctx, func(c *domain.Config) { c.AdminRoleID = roleID })
	return nil
}

// SetAutoRole replaces the role granted on join.
func (s *Store) SetAutoRole(ctx context.Context, roleID string) error {
	s.update(ctx, func(c *domain.Config) { c.AutoRoleID = roleID })
	return nil
}

// SetWelcomeTemplate upserts the welcome template of a channel.
func (s *Store) SetWelcomeTemplate(ctx context.Context, channelID, template string) error {
	s.update(ctx, func(c *domain.Config) { c.WelcomeChannels[channelID] = template })
	return nil
}

// SetAnnouncementChannel upserts the announcement target of a guild.
func (s *Store) SetAnnouncementChannel(ctx context.Context, guildID, channelID string) error {
	s.update(ctx, func(c *domain.Config) { c.AnnouncementChannels[guildID] = channelID })
	return nil
}

// AppendButton appends a button to the channel's panel.
func (s *Store) AppendButton(ctx context.Context, channelID string, spec domain.ButtonSpec) error {
	s.update(ctx, func(c *domain.Config) {
		c.ButtonPanels[channelID] = append(c.ButtonPanels[channelID], spec)
	})
	return nil
}

// Button looks up a published button by channel and granted role.
func (s *Store) Button(ctx context.Context, channelID, roleID string) (domain.ButtonSpec, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spec, ok := s.cfg.FindButton(channelID, roleID)
	return spec, ok, nil
}

func (s *Store) update(ctx context.Context, fn func(*domain.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.cfg.Clone()
	fn(&s.cfg)

	if diff := domain.Diff(before, s.cfg); diff != nil {
		s.logger.DebugContext(ctx, "config changed", "diff", diff)
	}
}
