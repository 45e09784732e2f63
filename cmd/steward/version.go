package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/steward"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of steward",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "steward version %s\n", strings.TrimSpace(steward.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
