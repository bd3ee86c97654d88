// Package commands provides the CLI commands for the derive tool.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootVerbose bool

var rootCmd = &cobra.Command{
	Use:   "derive [decls.yaml]",
	Short: "Structural map/traverse derivation engine",
	Long: `derive synthesizes the structural map and traverse operations for
algebraic data type declarations, together with their per-constructor
unfolding equations and the functor/traversable law obligations.

Usage:
  derive [decls.yaml]           Derive every declaration in a file (shorthand)
  derive run decls.yaml         Derive explicitly
  derive check decls.yaml       Derive and property-check the laws
  derive version                Print version`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Run the derivation by default when a .yaml file is given.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && (strings.HasSuffix(args[0], ".yaml") || strings.HasSuffix(args[0], ".yml")) {
			return runDerive(cmd, args)
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for \"derive\"\nRun 'derive --help' for usage", args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Verbose derivation logging")
}
