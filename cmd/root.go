// Package cmd wires the regress CLI: a root command holding the shared
// config and logging flags, a run subcommand that executes the full
// study, and a clean subcommand that audits the cleaning rules on
// their own.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// NewRootCmd builds the regress command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Linear-regression study of movie ratings",
		Long: `Regress models audience ratings from the movie table: it cleans the
raw CSV, expands genres into indicators, fits a baseline additive model,
trims influential rows, applies a Box-Cox response transform, reduces a
pairwise-interaction model by backward stepwise AIC, and compares the
baseline against the selected model on a held-out split.

Settings come from defaults, an optional regress.yaml, REGRESS_-prefixed
environment variables, and flags, in rising precedence.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env if present; a missing file is fine.
			_ = godotenv.Load()
			log.SetupLogger(logLevel)
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default is ./regress.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCleanCmd())

	return cmd
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
