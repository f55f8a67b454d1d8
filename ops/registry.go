package ops

import (
	"fmt"
	"sort"

	"github.com/ndbench/ndbench/ndarray"
)

// Operation consumes a materialized environment and produces a result
// value: an array, a scalar, a boolean or a byte buffer. Operations are
// pure with respect to the environment and safe to invoke any number
// of times with the same instance.
type Operation func(Env) (any, error)

// Resolve looks up an operation by identifier.
func Resolve(id string) (Operation, error) {
	op, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, id)
	}

	return op, nil
}

// Names returns every catalog identifier, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for id := range catalog {
		names = append(names, id)
	}

	sort.Strings(names)

	return names
}

// unary lifts an infallible elementwise function over operand a.
func unary(f func(*ndarray.Array) *ndarray.Array) Operation {
	return func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return f(a), nil
	}
}

// binary lifts a broadcasting binary function over a and b-or-scalar.
func binary(f func(a, b *ndarray.Array) (*ndarray.Array, error)) Operation {
	return func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		b, err := env.secondOperand()
		if err != nil {
			return nil, err
		}

		return f(a, b)
	}
}

// pair lifts a two-array function that always takes operands a and b.
func pair(f func(a, b *ndarray.Array) (*ndarray.Array, error)) Operation {
	return func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		b, err := env.Array("b")
		if err != nil {
			return nil, err
		}

		return f(a, b)
	}
}

// reduction dispatches on the optional axis parameter: absent axis
// reduces over all elements.
func reduction(
	full func(*ndarray.Array) (any, error),
	axis func(*ndarray.Array, int) (*ndarray.Array, error),
) Operation {
	return func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		ax, ok, err := env.Axis()
		if err != nil {
			return nil, err
		}

		if !ok {
			return full(a)
		}

		return axis(a, ax)
	}
}

var catalog = map[string]Operation{
	// Creation.
	"zeros": func(env Env) (any, error) {
		shape, err := env.Shape("shape")
		if err != nil {
			return nil, err
		}

		return ndarray.Zeros(shape)
	},
	"ones": func(env Env) (any, error) {
		shape, err := env.Shape("shape")
		if err != nil {
			return nil, err
		}

		return ndarray.Ones(shape)
	},
	// empty materializes as zeros: uninitialized storage cannot be
	// compared across implementations.
	"empty": func(env Env) (any, error) {
		shape, err := env.Shape("shape")
		if err != nil {
			return nil, err
		}

		return ndarray.Zeros(shape)
	},
	"full": func(env Env) (any, error) {
		shape, err := env.Shape("shape")
		if err != nil {
			return nil, err
		}

		fv, err := env.Int("fill_value")
		if err != nil {
			return nil, err
		}

		return ndarray.Full(shape, float64(fv))
	},
	"arange": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Arange(n)
	},
	"linspace": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Linspace(0, 100, n)
	},
	"logspace": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Logspace(0, 3, n, 10)
	},
	"geomspace": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Geomspace(1, 1000, n)
	},
	"eye": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Eye(n)
	},
	"identity": func(env Env) (any, error) {
		n, err := env.Int("n")
		if err != nil {
			return nil, err
		}

		return ndarray.Eye(n)
	},
	"copy": unary(func(a *ndarray.Array) *ndarray.Array {
		return a.Copy()
	}),
	"zeros_like": unary(ndarray.ZerosLike),
	"ones_like":  unary(ndarray.OnesLike),
	"empty_like": unary(ndarray.ZerosLike),
	"full_like": unary(func(a *ndarray.Array) *ndarray.Array {
		return ndarray.FullLike(a, 7)
	}),

	// Elementwise arithmetic.
	"add":          binary(ndarray.Add),
	"subtract":     binary(ndarray.Subtract),
	"multiply":     binary(ndarray.Multiply),
	"divide":       binary(ndarray.Divide),
	"mod":          binary(ndarray.Mod),
	"floor_divide": binary(ndarray.FloorDivide),
	"reciprocal":   unary(ndarray.Reciprocal),

	// Elementwise math.
	"sqrt": unary(ndarray.Sqrt),
	"power": unary(func(a *ndarray.Array) *ndarray.Array {
		return ndarray.Square(a)
	}),
	"absolute": unary(ndarray.Absolute),
	"negative": unary(ndarray.Negative),
	"sign":     unary(ndarray.Sign),
	"sin":      unary(ndarray.Sin),
	"cos":      unary(ndarray.Cos),
	"tan":      unary(ndarray.Tan),
	"arctan2":  pair(ndarray.Arctan2),
	"hypot":    pair(ndarray.Hypot),
	"sinh":     unary(ndarray.Sinh),
	"cosh":     unary(ndarray.Cosh),
	"tanh":     unary(ndarray.Tanh),

	// Linear algebra.
	"dot": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		b, err := env.Array("b")
		if err != nil {
			return nil, err
		}

		return ndarray.Dot(a, b)
	},
	"inner": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		b, err := env.Array("b")
		if err != nil {
			return nil, err
		}

		return ndarray.Inner(a, b)
	},
	"outer":  pair(ndarray.Outer),
	"matmul": pair(ndarray.MatMul),
	"trace": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return ndarray.Trace(a)
	},
	"transpose": unary(ndarray.Transpose),

	// Reductions.
	"sum": reduction(
		func(a *ndarray.Array) (any, error) { return a.SumAll(), nil },
		(*ndarray.Array).SumAxis,
	),
	"mean": reduction(
		func(a *ndarray.Array) (any, error) { return a.MeanAll(), nil },
		(*ndarray.Array).MeanAxis,
	),
	"max": reduction(
		func(a *ndarray.Array) (any, error) { return a.MaxAll() },
		(*ndarray.Array).MaxAxis,
	),
	"min": reduction(
		func(a *ndarray.Array) (any, error) { return a.MinAll() },
		(*ndarray.Array).MinAxis,
	),
	"prod": reduction(
		func(a *ndarray.Array) (any, error) { return a.ProdAll(), nil },
		(*ndarray.Array).ProdAxis,
	),
	"argmin": reduction(
		func(a *ndarray.Array) (any, error) { return a.ArgMinAll() },
		(*ndarray.Array).ArgMinAxis,
	),
	"argmax": reduction(
		func(a *ndarray.Array) (any, error) { return a.ArgMaxAll() },
		(*ndarray.Array).ArgMaxAxis,
	),
	"var": reduction(
		func(a *ndarray.Array) (any, error) { return a.VarAll(), nil },
		(*ndarray.Array).VarAxis,
	),
	"std": reduction(
		func(a *ndarray.Array) (any, error) { return a.StdAll(), nil },
		(*ndarray.Array).StdAxis,
	),
	"all": reduction(
		func(a *ndarray.Array) (any, error) { return a.AllTrue(), nil },
		(*ndarray.Array).AllAxis,
	),
	"any": reduction(
		func(a *ndarray.Array) (any, error) { return a.AnyTrue(), nil },
		(*ndarray.Array).AnyAxis,
	),

	// Shape manipulation.
	"reshape": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		shape, err := env.Shape("new_shape")
		if err != nil {
			return nil, err
		}

		return ndarray.Reshape(a, shape)
	},
	"flatten": unary(ndarray.Flatten),
	"ravel":   unary(ndarray.Ravel),
	"squeeze": unary(ndarray.Squeeze),
	"swapaxes": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return ndarray.SwapAxes(a, 0, 1)
	},
	"slice": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		limits := []int{100, 100}
		if a.NDim() < 2 {
			limits = limits[:a.NDim()]
		}

		return ndarray.SliceHead(a, limits...)
	},

	// Joining and expansion.
	"concatenate": pair(func(a, b *ndarray.Array) (*ndarray.Array, error) {
		return ndarray.Concatenate(a, b, 0)
	}),
	"stack":  pair(ndarray.Stack),
	"vstack": pair(ndarray.VStack),
	"hstack": pair(ndarray.HStack),
	"tile": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return ndarray.Tile(a, []int{2, 2})
	},
	"repeat": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return ndarray.Repeat(a, 2)
	},

	// Broadcast and gather.
	"broadcast_to": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		shape, err := env.Shape("target_shape")
		if err != nil {
			return nil, err
		}

		return ndarray.BroadcastTo(a, shape)
	},
	"take": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		idx, err := env.Indices("indices")
		if err != nil {
			return nil, err
		}

		return ndarray.Take(a, idx)
	},

	// Serialization.
	"serialize": func(env Env) (any, error) {
		a, err := env.Array("a")
		if err != nil {
			return nil, err
		}

		return ndarray.Marshal(a), nil
	},
	"deserialize": func(env Env) (any, error) {
		buf, err := env.Bytes("bytes")
		if err != nil {
			return nil, err
		}

		return ndarray.Unmarshal(buf)
	},
}
