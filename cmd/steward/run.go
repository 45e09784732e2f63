package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/steward"
	httpAdapter "github.com/aretw0/steward/internal/adapters/http"
	"github.com/aretw0/steward/internal/config"
	"github.com/aretw0/steward/internal/logging"
	"github.com/aretw0/steward/pkg/adapters/discord"
	"github.com/aretw0/steward/pkg/observability"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve the health endpoint",
	Long: `Connects to the Discord gateway with DISCORD_TOKEN and serves GET /, /health
and /metrics on PORT until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
			cfg.LogLevel = flag
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		seed, err := cfg.Seed()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			return err
		}
		assistant := steward.New(seed,
			discord.NewDirectory(session.State),
			discord.NewPlatform(session),
			steward.WithLogger(logger),
			steward.WithLifecycleHooks(metrics.Hooks()),
		)
		bot := discord.NewBot(session, assistant,
			discord.WithLogger(logger),
			discord.WithTextPrefix(cfg.TextPrefix),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpAdapter.NewServer(cfg.Addr(), httpAdapter.NewHandler(reg, steward.Version), logger)
		serverErrors := make(chan error, 1)
		go func() {
			serverErrors <- srv.Run(ctx)
		}()

		if err := bot.Open(ctx); err != nil {
			return err
		}
		defer bot.Close()
		logger.Info("steward running", "version", steward.Version, "addr", cfg.Addr())

		select {
		case err := <-serverErrors:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
			logger.Info("shutting down")
			// Let the HTTP server finish its graceful shutdown.
			return <-serverErrors
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

