// Package main provides the CLI entry point for ndbench, a
// cross-implementation benchmark and validation harness for array
// operation libraries.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.3.0"

// app carries the per-invocation diagnostic logger. All diagnostics go
// to stderr; stdout carries exactly one result document so output can
// be piped straight into a comparator.
type app struct {
	logger *slog.Logger
}

func main() {
	a := &app{logger: newLogger(slog.LevelInfo)}

	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		a.logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "ndbench",
		Short: "Cross-implementation array operation benchmark harness",
		Long: `Ndbench runs a declarative batch of array operation specs against the
bundled ndarray library and emits per-spec timing reports, one-shot validation
values for diffing against a reference implementation, or an API coverage
comparison between two audit snapshots.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfgFile); err != nil {
				return err
			}

			level, err := parseLevel(viper.GetString("log_level"))
			if err != nil {
				return err
			}

			run := uuid.Must(uuid.NewV7()).String()
			a.logger = newLogger(level).With(slog.String("run", run))

			a.logger.Debug("starting",
				slog.String("version", version),
				slog.String("go", runtime.Version()),
				slog.String("platform", runtime.GOOS+"/"+runtime.GOARCH),
			)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default: ./.ndbench.yaml)")
	root.PersistentFlags().String("log-level", "",
		"Log level: debug, info, warn, error")
	viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newBenchCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newCoverageCmd(a))

	return root
}

// initConfig layers viper configuration: defaults, then an optional
// config file, then NDBENCH_* environment variables. A batch document's
// own config object still wins over all of these.
func initConfig(cfgFile string) error {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("min_sample_time_ms", 100.0)
	viper.SetDefault("target_samples", 5)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ndbench")

		// A missing default config file is fine.
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	viper.SetEnvPrefix("NDBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
