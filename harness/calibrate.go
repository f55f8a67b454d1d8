package harness

import (
	"fmt"
	"math"
	"time"

	"github.com/ndbench/ndbench/ops"
)

// Calibration bounds. The round budget caps time spent sizing a batch;
// the ops clamp bounds worst-case sample duration for operations whose
// calibration never converges.
const (
	maxCalibrationRounds = 10
	maxOpsPerSample      = 100_000
)

// CalibrationResult carries the batch size for one spec's samples.
type CalibrationResult struct {
	OpsPerSample int
}

// Calibrate determines how many back-to-back invocations of op produce
// one measurable sample of at least targetTimeMs. Single-shot timing of
// sub-millisecond operations is dominated by timer quantization, so the
// batch size ramps up exponentially while samples are far too fast and
// extrapolates linearly once close.
func (r *Runner) Calibrate(
	op ops.Operation, env ops.Env, targetTimeMs float64,
) (CalibrationResult, error) {
	opsPerSample := 1

	for round := 0; round < maxCalibrationRounds; round++ {
		elapsed, err := r.timeBatch(op, env, opsPerSample)
		if err != nil {
			return CalibrationResult{}, err
		}

		switch {
		case elapsed >= targetTimeMs:
			return CalibrationResult{clampOps(opsPerSample)}, nil
		case elapsed < targetTimeMs/10:
			opsPerSample *= 10
		case elapsed < targetTimeMs/2:
			opsPerSample *= 2
		default:
			// Close enough to extrapolate in one step.
			target := int(math.Ceil(
				float64(opsPerSample) * targetTimeMs / elapsed,
			))
			opsPerSample = max(target, opsPerSample+1)

			return CalibrationResult{clampOps(opsPerSample)}, nil
		}
	}

	// Round budget exhausted; settle for the last computed size.
	return CalibrationResult{clampOps(opsPerSample)}, nil
}

// timeBatch runs op n times back-to-back inside one timed region and
// returns the elapsed milliseconds.
func (r *Runner) timeBatch(op ops.Operation, env ops.Env, n int) (float64, error) {
	start := r.now()

	for i := 0; i < n; i++ {
		if _, err := op(env); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrOperationFailed, err)
		}
	}

	return float64(r.now().Sub(start)) / float64(time.Millisecond), nil
}

func clampOps(n int) int {
	return min(n, maxOpsPerSample)
}
