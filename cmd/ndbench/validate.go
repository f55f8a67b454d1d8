package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndbench/ndbench/harness"
	"github.com/ndbench/ndbench/report"
	"github.com/ndbench/ndbench/spec"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Execute each spec once and emit encoded result values",
		Long: `Read a validation batch, run every spec exactly once with comparable
deterministic inputs, and write the encoded values to stdout as a positional
JSON array. A failing spec becomes a null at its position; the batch
continues, and the exit status stays zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readValidationBatch(args)
			if err != nil {
				return err
			}

			a.logger.Info("validation batch starting",
				slog.Int("specs", len(batch.Specs)),
			)

			runner := harness.NewRunner(a.logger)
			results := runner.RunValidation(batch)

			return report.WriteValues(os.Stdout, results)
		},
	}
}

func readValidationBatch(args []string) (spec.Batch, error) {
	if len(args) == 1 && args[0] != "-" {
		batch, err := spec.LoadFile(args[0])
		if err != nil {
			return spec.Batch{}, fmt.Errorf("load batch: %w", err)
		}

		return batch, nil
	}

	batch, err := spec.DecodeValidationBatch(os.Stdin)
	if err != nil {
		return spec.Batch{}, fmt.Errorf("read batch from stdin: %w", err)
	}

	return batch, nil
}
