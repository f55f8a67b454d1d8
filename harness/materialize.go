package harness

import (
	"fmt"
	mrand "math/rand"
	"slices"

	"github.com/ndbench/ndbench/ndarray"
	"github.com/ndbench/ndbench/ops"
	"github.com/ndbench/ndbench/spec"
)

// Materializer turns setup descriptions into concrete operand
// environments. With a nil rng, fill=random degenerates to the same
// deterministic ramp as fill=arange; this is what the validation path
// uses so both implementations materialize identical comparable inputs.
type Materializer struct {
	rng *mrand.Rand
}

// NewMaterializer returns a benchmark-mode materializer whose random
// fills draw from a seeded source.
func NewMaterializer(seed int64) *Materializer {
	return &Materializer{rng: mrand.New(mrand.NewSource(seed))}
}

// NewComparableMaterializer returns a validation-mode materializer:
// every fill is reproducible on the reference side.
func NewComparableMaterializer() *Materializer {
	return &Materializer{}
}

// Materialize builds the environment for one spec, iterating entries in
// document order.
func (m *Materializer) Materialize(setup spec.Setup) (ops.Env, error) {
	env := make(ops.Env, setup.Len())

	for _, e := range setup.Entries() {
		v, err := m.materializeEntry(e)
		if err != nil {
			return nil, err
		}

		env[e.Key] = v
	}

	return env, nil
}

func (m *Materializer) materializeEntry(e spec.SetupEntry) (any, error) {
	switch e.Kind {
	case spec.EntryScalar:
		if len(e.Shape) == 0 {
			return nil, fmt.Errorf(
				"%w: parameter %q has empty shape", ErrMalformedSetup, e.Key,
			)
		}

		if len(e.Shape) == 1 {
			return e.Shape[0], nil
		}

		return slices.Clone(e.Shape), nil

	case spec.EntryIndexList:
		// The shape field is literal index data here, not a shape.
		return slices.Clone(e.Shape), nil

	default:
		return m.materializeArray(e)
	}
}

func (m *Materializer) materializeArray(e spec.SetupEntry) (*ndarray.Array, error) {
	if len(e.Shape) == 0 {
		return nil, fmt.Errorf(
			"%w: operand %q has missing or empty shape", ErrMalformedSetup, e.Key,
		)
	}

	dtype, err := ndarray.ParseDType(e.DType)
	if err != nil {
		return nil, fmt.Errorf("%w: operand %q: %v", ErrMalformedSetup, e.Key, err)
	}

	// An explicit value wins over the fill strategy.
	if e.Value != nil {
		v := *e.Value

		return ndarray.FromFunc(e.Shape, dtype, func(int) float64 { return v })
	}

	switch e.Fill {
	case spec.FillZeros:
		return ndarray.New(e.Shape, dtype)
	case spec.FillOnes:
		return ndarray.FromFunc(e.Shape, dtype, func(int) float64 { return 1 })
	case spec.FillArange:
		return ndarray.FromFunc(e.Shape, dtype, func(i int) float64 {
			return float64(i)
		})
	case spec.FillRandom:
		if m.rng == nil {
			return ndarray.FromFunc(e.Shape, dtype, func(i int) float64 {
				return float64(i)
			})
		}

		return ndarray.FromFunc(e.Shape, dtype, func(int) float64 {
			return m.rng.NormFloat64()
		})
	default:
		return nil, fmt.Errorf(
			"%w: operand %q has unknown fill %q", ErrMalformedSetup, e.Key, e.Fill,
		)
	}
}

// AddFixtures runs the operation-specific secondary pass: a
// deserialization benchmark gets a pre-serialized buffer so the timed
// region excludes fixture construction.
func AddFixtures(env ops.Env, operation string) error {
	if operation != "deserialize" {
		return nil
	}

	a, err := env.Array("a")
	if err != nil {
		return fmt.Errorf("%w: deserialize: %v", ErrMalformedSetup, err)
	}

	env["bytes"] = ndarray.Marshal(a)

	return nil
}
