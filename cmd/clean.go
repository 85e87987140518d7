package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sawruhv/Less-Stress-More-Regress/config"
	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
)

func newCleanCmd() *cobra.Command {
	var (
		dataPath string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Audit the cleaning rules without fitting anything",
		Long: `Clean loads the raw CSV, applies the row filters in their fixed order,
and prints how many rows each rule dropped. With --out it also writes
the cleaned table back out as CSV.`,
		Example: `  # Audit the default input
  regress clean

  # Audit a specific file and keep the cleaned rows
  regress clean --data movies.csv --out cleaned.csv`,
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

			records, err := dataset.Load(params.DataPath)
			if err != nil {
				return err
			}
			table, rep, err := dataset.Clean(records)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rep.String())
			if outPath != "" {
				if err := table.SaveCSV(outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleaned table written to %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "input CSV (overrides config)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the cleaned table to this CSV")

	return cmd
}
