package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "steward",
	Short: "Steward is a Discord community assistant",
	Long: `Steward greets new members, hands out roles through self-service buttons
and walks moderators through configuration and announcements with guided dialogs.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides STEWARD_LOG_LEVEL)")
}
