// Package harness executes spec batches against the operation catalog:
// it materializes setup descriptions into operand environments, sizes
// timed batches via calibration, collects samples, and drives the
// benchmark and validation control paths.
package harness

import "errors"

// Error kinds surfaced by batch processing. Benchmark runs treat all of
// them as fatal to the batch; validation runs record them per spec and
// continue.
var (
	// ErrMalformedSetup reports a setup entry with a missing or empty
	// shape, or an unsupported dtype.
	ErrMalformedSetup = errors.New("malformed setup")

	// ErrOperationFailed reports an operation raising during execution,
	// e.g. a shape mismatch in a binary op.
	ErrOperationFailed = errors.New("operation failed")
)
