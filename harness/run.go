package harness

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ndbench/ndbench/codec"
	"github.com/ndbench/ndbench/ops"
	"github.com/ndbench/ndbench/report"
	"github.com/ndbench/ndbench/spec"
)

// Runner processes spec batches sequentially: one spec is fully
// materialized, warmed up, calibrated and sampled before the next
// begins. Concurrent execution would corrupt the timings through
// scheduler contention, so there is none.
type Runner struct {
	Logger *slog.Logger

	// now is the monotonic reading used for timed regions; tests inject
	// a deterministic clock here.
	now func() time.Time
}

// NewRunner creates a Runner logging diagnostics through logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{Logger: logger, now: time.Now}
}

// RunBenchmarks executes a benchmark batch. Any failure aborts the
// whole batch: a partial timing report would be misleading to a caller
// diffing performance across runs.
func (r *Runner) RunBenchmarks(batch spec.Batch) ([]report.Report, error) {
	mat := NewMaterializer(time.Now().UnixNano())

	targetTime := batch.Config.ResolveMinSampleTimeMs()
	targetSamples := batch.Config.ResolveTargetSamples()

	reports := make([]report.Report, 0, len(batch.Specs))

	for i, b := range batch.Specs {
		rep, err := r.runOne(mat, b, targetTime, targetSamples)
		if err != nil {
			return nil, fmt.Errorf("spec %q: %w", b.Name, err)
		}

		reports = append(reports, rep)

		r.Logger.Info("benchmark finished",
			slog.String("progress", fmt.Sprintf("[%d/%d]", i+1, len(batch.Specs))),
			slog.String("name", b.Name),
			slog.String("mean", fmt.Sprintf("%.3fms", rep.MeanMs)),
		)
	}

	return reports, nil
}

func (r *Runner) runOne(
	mat *Materializer, b spec.Benchmark, targetTime float64, targetSamples int,
) (report.Report, error) {
	env, op, err := r.prepare(mat, b)
	if err != nil {
		return report.Report{}, err
	}

	for i := 0; i < b.Warmup; i++ {
		if _, err := op(env); err != nil {
			return report.Report{}, fmt.Errorf("%w: warmup: %v", ErrOperationFailed, err)
		}
	}

	// Legacy fixed-count mode bypasses calibration.
	if b.Iterations > 0 {
		samples, err := r.SampleFixed(op, env, b.Iterations)
		if err != nil {
			return report.Report{}, err
		}

		return report.Reduce(b.Name, samples, 1)
	}

	cal, err := r.Calibrate(op, env, targetTime)
	if err != nil {
		return report.Report{}, err
	}

	samples, err := r.Sample(op, env, cal.OpsPerSample, targetSamples)
	if err != nil {
		return report.Report{}, err
	}

	return report.Reduce(b.Name, samples, cal.OpsPerSample)
}

// RunValidation executes each spec exactly once and encodes the result.
// Failures are recorded as nulls at the spec's position and the batch
// continues: correctness auditing is about surfacing which operations
// diverge, not all-or-nothing.
func (r *Runner) RunValidation(batch spec.Batch) []any {
	mat := NewComparableMaterializer()
	results := make([]any, 0, len(batch.Specs))

	for _, b := range batch.Specs {
		encoded, err := r.validateOne(mat, b)
		if err != nil {
			r.Logger.Warn("validation spec failed",
				slog.String("name", b.Name),
				slog.String("error", err.Error()),
			)

			results = append(results, nil)

			continue
		}

		results = append(results, encoded)
	}

	return results
}

func (r *Runner) validateOne(mat *Materializer, b spec.Benchmark) (any, error) {
	env, op, err := r.prepare(mat, b)
	if err != nil {
		return nil, err
	}

	out, err := op(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}

	encoded, err := codec.Encode(out)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	return encoded, nil
}

// prepare materializes the environment, runs the fixture pass, and
// resolves the operation.
func (r *Runner) prepare(
	mat *Materializer, b spec.Benchmark,
) (ops.Env, ops.Operation, error) {
	env, err := mat.Materialize(b.Setup)
	if err != nil {
		return nil, nil, err
	}

	if err := AddFixtures(env, b.Operation); err != nil {
		return nil, nil, err
	}

	op, err := ops.Resolve(b.Operation)
	if err != nil {
		return nil, nil, err
	}

	return env, op, nil
}
