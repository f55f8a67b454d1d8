package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ndbench/ndbench/harness"
	"github.com/ndbench/ndbench/report"
	"github.com/ndbench/ndbench/spec"
)

func newBenchCmd(a *app) *cobra.Command {
	var outputTable bool

	cmd := &cobra.Command{
		Use:   "bench [file]",
		Short: "Run a benchmark batch and emit timing reports",
		Long: `Read a benchmark batch (JSON or YAML file argument, or JSON on stdin),
calibrate and sample every spec, and write the report document to stdout.
Any spec failure aborts the whole batch with no result document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch(args)
			if err != nil {
				return err
			}

			applyConfigDefaults(&batch.Config)

			a.logger.Info("benchmark batch starting",
				slog.Int("specs", len(batch.Specs)),
				slog.Float64("min_sample_time_ms", batch.Config.ResolveMinSampleTimeMs()),
				slog.Int("target_samples", batch.Config.ResolveTargetSamples()),
			)

			runner := harness.NewRunner(a.logger)

			reports, err := runner.RunBenchmarks(batch)
			if err != nil {
				return err
			}

			if outputTable {
				return report.WriteTable(os.Stdout, reports)
			}

			return report.WriteJSON(os.Stdout, reports)
		},
	}

	cmd.Flags().BoolVar(&outputTable, "table", false,
		"Render a markdown table instead of the JSON report document")

	return cmd
}

// readBatch loads the batch from the file argument, or from stdin when
// no argument (or "-") is given.
func readBatch(args []string) (spec.Batch, error) {
	if len(args) == 1 && args[0] != "-" {
		batch, err := spec.LoadFile(args[0])
		if err != nil {
			return spec.Batch{}, fmt.Errorf("load batch: %w", err)
		}

		return batch, nil
	}

	batch, err := spec.DecodeBatch(os.Stdin)
	if err != nil {
		return spec.Batch{}, fmt.Errorf("read batch from stdin: %w", err)
	}

	return batch, nil
}

// applyConfigDefaults fills calibration settings the document left
// unset from the viper layers (flags, env, config file).
func applyConfigDefaults(cfg *spec.Config) {
	if cfg.MinSampleTimeMs == 0 {
		cfg.MinSampleTimeMs = viper.GetFloat64("min_sample_time_ms")
	}

	if cfg.TargetSamples == 0 {
		cfg.TargetSamples = viper.GetInt("target_samples")
	}
}
