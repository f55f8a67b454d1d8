package harness

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndbench/ndbench/ops"
)

// fakeClock feeds deterministic readings into timed regions. Synthetic
// operations advance it by a fixed injected cost per invocation.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func testRunner(clock *fakeClock) *Runner {
	r := NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if clock != nil {
		r.now = clock.Now
	}

	return r
}

// costOp returns an operation with a fixed injected cost.
func costOp(clock *fakeClock, cost time.Duration) ops.Operation {
	return func(ops.Env) (any, error) {
		clock.advance(cost)

		return nil, nil
	}
}

func TestCalibrateFastOpRampsUp(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	// 1ms per op against a 100ms target: x10 ramp, then x2, then one
	// linear extrapolation step.
	cal, err := r.Calibrate(costOp(clock, time.Millisecond), nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, cal.OpsPerSample)
}

func TestCalibrateSlowOpStaysAtOne(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	cal, err := r.Calibrate(costOp(clock, 200*time.Millisecond), nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, cal.OpsPerSample)
}

func TestCalibrateExtrapolatesWhenClose(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	// 20ms per op: 1 -> 2 -> 4, then 80ms >= target/2 extrapolates to
	// ceil(4 * 100 / 80) = 5.
	cal, err := r.Calibrate(costOp(clock, 20*time.Millisecond), nil, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, cal.OpsPerSample)
}

func TestCalibrateClampsWhenNeverConverging(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	// A zero-cost op exhausts the round budget multiplying by 10.
	cal, err := r.Calibrate(costOp(clock, 0), nil, 100)
	require.NoError(t, err)
	assert.Equal(t, maxOpsPerSample, cal.OpsPerSample)
}

func TestCalibrateMonotoneIdempotent(t *testing.T) {
	// Re-running calibration against the same injected cost never
	// yields a batch too small to meet the target time.
	for _, cost := range []time.Duration{
		100 * time.Microsecond,
		time.Millisecond,
		7 * time.Millisecond,
		40 * time.Millisecond,
		250 * time.Millisecond,
	} {
		clock := &fakeClock{}
		r := testRunner(clock)
		op := costOp(clock, cost)

		first, err := r.Calibrate(op, nil, 100)
		require.NoError(t, err)

		second, err := r.Calibrate(op, nil, 100)
		require.NoError(t, err)

		assert.Equal(t, first.OpsPerSample, second.OpsPerSample,
			"cost %v: calibration is not stable", cost)

		// The accepted batch meets the target (unless a single op
		// already exceeds it, where the batch is 1).
		if cost < 100*time.Millisecond && first.OpsPerSample < maxOpsPerSample {
			batchMs := float64(first.OpsPerSample) *
				float64(cost) / float64(time.Millisecond)
			assert.GreaterOrEqual(t, batchMs, 100.0, "cost %v", cost)
		}
	}
}

func TestCalibratePropagatesOperationError(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	failing := func(ops.Env) (any, error) {
		return nil, assert.AnError
	}

	_, err := r.Calibrate(failing, nil, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperationFailed)
}

func TestSampleDividesByBatchSize(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	samples, err := r.Sample(costOp(clock, 2*time.Millisecond), nil, 4, 3)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	for _, s := range samples {
		assert.InDelta(t, 2.0, s, 1e-9)
	}
}

func TestSampleFixedIsSingleShot(t *testing.T) {
	clock := &fakeClock{}
	r := testRunner(clock)

	calls := 0
	op := func(ops.Env) (any, error) {
		calls++
		clock.advance(time.Millisecond)

		return nil, nil
	}

	samples, err := r.SampleFixed(op, nil, 5)
	require.NoError(t, err)
	assert.Len(t, samples, 5)
	assert.Equal(t, 5, calls)
}
