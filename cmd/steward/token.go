package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/steward/internal/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect continuation tokens",
	Long:  `Encode or decode the identifiers attached to prompts, e.g. when reading logs.`,
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode a token and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := token.Decode(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <kind> <step> [params...]",
	Short: "Encode a token",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		step, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step %q: %w", args[1], err)
		}
		tok, err := token.Encode(token.Kind(args[0]), token.Step(step), args[2:]...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenDecodeCmd, tokenEncodeCmd)
	rootCmd.AddCommand(tokenCmd)
}
