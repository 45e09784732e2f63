package steward

import (
	"context"
	"log/slog"

	"github.com/aretw0/steward/internal/dispatch"
	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/internal/workflow"
	"github.com/aretw0/steward/pkg/adapters/memory"
	"github.com/aretw0/steward/pkg/domain"
	"github.com/aretw0/steward/pkg/ports"
)

// Version is overridden at build time with -ldflags "-X github.com/aretw0/steward.Version=...".
var Version = "0.1.0"

// Assistant wires the configuration store, the workflow engine and the dispatcher.
type Assistant struct {
	store      ports.ConfigStore
	engine     *workflow.Engine
	dispatcher *dispatch.Dispatcher
}

type options struct {
	store           ports.ConfigStore
	logger          *slog.Logger
	hooks           domain.LifecycleHooks
	welcomeTemplate string
}

// Option defines a functional option for configuring the Assistant.
type Option func(*options)

// WithLogger sets a custom structured logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithStore replaces the in-memory store. The seed passed to New is ignored.
func WithStore(store ports.ConfigStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithWelcomeTemplate overrides the template prefilled in the welcome form.
func WithWelcomeTemplate(tmpl string) Option {
	return func(o *options) {
		o.welcomeTemplate = tmpl
	}
}

// New creates an Assistant seeded with seed.
func New(seed domain.Config, dir ports.Directory, platform ports.Platform, opts ...Option) *Assistant {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = memory.NewStore(seed, memory.WithLogger(o.logger))
	}

	engineOpts := []workflow.Option{
		workflow.WithLogger(o.logger),
		workflow.WithLifecycleHooks(o.hooks),
	}
	if o.welcomeTemplate != "" {
		engineOpts = append(engineOpts, workflow.WithWelcomeTemplate(o.welcomeTemplate))
	}
	engine := workflow.NewEngine(o.store, dir, engineOpts...)

	return &Assistant{
		store:  o.store,
		engine: engine,
		dispatcher: dispatch.New(engine, platform,
			dispatch.WithLogger(o.logger),
			dispatch.WithLifecycleHooks(o.hooks),
		),
	}
}

// Handle processes one inbound event.
func (a *Assistant) Handle(ctx context.Context, ev *domain.Event) error {
	return a.dispatcher.Handle(ctx, ev)
}

// Register publishes the slash commands.
func (a *Assistant) Register(ctx context.Context) error {
	return a.dispatcher.Register(ctx)
}

// Config returns a snapshot of the current configuration.
func (a *Assistant) Config(ctx context.Context) (domain.Config, error) {
	return a.store.Snapshot(ctx)
}
