package harness

import "github.com/ndbench/ndbench/ops"

// Sample collects targetSamples independent timed regions, each running
// opsPerSample invocations, and returns per-operation time estimates in
// milliseconds. Multiple regions (rather than one long run) keep the
// median and minimum robust against scheduler jitter.
func (r *Runner) Sample(
	op ops.Operation, env ops.Env, opsPerSample, targetSamples int,
) ([]float64, error) {
	samples := make([]float64, 0, targetSamples)

	for i := 0; i < targetSamples; i++ {
		elapsed, err := r.timeBatch(op, env, opsPerSample)
		if err != nil {
			return nil, err
		}

		samples = append(samples, elapsed/float64(opsPerSample))
	}

	return samples, nil
}

// SampleFixed is the legacy fixed-iteration mode: exactly iterations
// single-shot timed invocations, no calibration.
func (r *Runner) SampleFixed(
	op ops.Operation, env ops.Env, iterations int,
) ([]float64, error) {
	return r.Sample(op, env, 1, iterations)
}
