package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawruhv/Less-Stress-More-Regress/analysis"
	"github.com/sawruhv/Less-Stress-More-Regress/config"
)

func newRunCmd() *cobra.Command {
	var (
		dataPath string
		outDir   string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full study and print the report",
		Long: `Run executes every stage of the study in order and prints the rendered
report. With a non-empty output directory it also writes the text and
YAML reports, per-model diagnostics tables, and the plot files.`,
		Example: `  # Defaults plus an explicit config file
  regress run --config regress.yaml

  # Override the input and artifact locations
  regress run --data movies.csv --out /tmp/regress

  # Reproduce a specific holdout split
  regress run --seed 1337`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			params, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data") {
				params.DataPath = dataPath
			}
			if cmd.Flags().Changed("out") {
				params.OutputDir = outDir
			}
			if cmd.Flags().Changed("seed") {
				params.Seed = seed
			}
			if err := params.Validate(); err != nil {
				return err
			}

			res, err := analysis.Run(params)
			if err != nil {
				return err
			}
			if params.OutputDir != "" {
				if err := res.WriteArtifacts(params.OutputDir); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Report.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "input CSV (overrides config)")
	cmd.Flags().StringVar(&outDir, "out", "", "artifact directory, empty skips artifacts (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "holdout split seed (overrides config)")

	return cmd
}
