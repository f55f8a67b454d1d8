package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndbench/ndbench/coverage"
)

func newCoverageCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "coverage <reference.json> <target.json>",
		Short: "Diff two API-surface audit snapshots",
		Long: `Compare a reference audit snapshot (categorized function lists plus
methods) against a target snapshot (implemented functions plus methods) and
write a per-category completion table to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := coverage.Load(args[0])
			if err != nil {
				return fmt.Errorf("reference: %w", err)
			}

			target, err := coverage.Load(args[1])
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}

			analysis := coverage.Diff(ref, target)

			a.logger.Info("coverage computed",
				slog.Int("functions", analysis.FunctionsShared),
				slog.Int("reference_functions", analysis.RefFunctions),
				slog.Int("methods", analysis.MethodsShared),
				slog.Int("reference_methods", analysis.RefMethods),
			)

			if err := coverage.WriteTable(os.Stdout, analysis); err != nil {
				return err
			}

			if verbose {
				fmt.Fprintln(os.Stdout)

				return coverage.WriteGaps(os.Stdout, analysis)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"List every missing and extra name after the table")

	return cmd
}
