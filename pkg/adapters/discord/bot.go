// Package discord connects the assistant to the Discord gateway.
//
// Bot owns the event loop: handlers run serially (SyncEvents), translate gateway
// payloads into domain events and hand them to a Handler. Platform and Directory
// are the outbound and read-only sides of the same session.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/pkg/domain"
)

// Intents requested from the gateway.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent

// Handler consumes translated events.
type Handler interface {
	Handle(ctx context.Context, ev *domain.Event) error
	Register(ctx context.Context) error
}

// Bot binds a session to a Handler.
type Bot struct {
	session    *discordgo.Session
	handler    Handler
	logger     *slog.Logger
	textPrefix string
	ctx        context.Context
	removers   []func()
}

// BotOption configures a Bot.
type BotOption func(*Bot)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) BotOption {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithTextPrefix enables text commands such as "!config".
func WithTextPrefix(prefix string) BotOption {
	return func(b *Bot) {
		b.textPrefix = prefix
	}
}

// NewSession creates a session configured for the assistant. It does not connect.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.Identify.Intents = Intents
	s.SyncEvents = true
	s.StateEnabled = true
	return s, nil
}

// NewBot creates a Bot. Call Open to connect.
func NewBot(s *discordgo.Session, handler Handler, opts ...BotOption) *Bot {
	b := &Bot{
		session: s,
		handler: handler,
		logger:  logging.NewNop(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open registers handlers and connects to the gateway. ctx is handed to every event.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	b.removers = append(b.removers,
		b.session.AddHandler(b.onReady),
		b.session.AddHandler(b.onInteraction),
		b.session.AddHandler(b.onMemberAdd),
		b.session.AddHandler(b.onMessage),
	)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway: %w", err)
	}
	return nil
}

// Close removes handlers and disconnects.
func (b *Bot) Close() error {
	for _, remove := range b.removers {
		remove()
	}
	b.removers = nil
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected", "user", r.User.Username, "guilds", len(r.Guilds))
	if err := b.handler.Register(b.ctx); err != nil {
		b.logger.Error("command registration failed", "err", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if ev, ok := FromInteraction(i); ok {
		b.handle(ev)
	}
}

func (b *Bot) onMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if ev, ok := FromMemberAdd(m); ok {
		b.handle(ev)
	}
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ev, ok := FromMessage(m, b.textPrefix, b.isAdmin); ok {
		b.handle(ev)
	}
}

func (b *Bot) isAdmin(userID, channelID string) bool {
	perms, err := b.session.State.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

func (b *Bot) handle(ev *domain.Event) {
	if err := b.handler.Handle(b.ctx, ev); err != nil {
		b.logger.Error("event handling failed", "event_id", ev.ID, "kind", string(ev.Kind), "err", err)
	}
}
