// Package ops maps operation identifiers onto the array implementation.
// The catalog is a closed set keyed once at init; resolving an unknown
// identifier is a single lookup failure, not a fallthrough branch.
package ops

import (
	"errors"
	"fmt"

	"github.com/ndbench/ndbench/ndarray"
)

// ErrUnknownOperation reports an identifier outside the catalog.
var ErrUnknownOperation = errors.New("unknown operation")

// Env holds the materialized operands for one spec: arrays, integer
// scalars, integer tuples and byte buffers, keyed by setup name. The
// same instance is reused across every repetition of the operation.
type Env map[string]any

// Array returns the array operand at key.
func (e Env) Array(key string) (*ndarray.Array, error) {
	v, ok := e[key]
	if !ok {
		return nil, fmt.Errorf("operand %q not in environment", key)
	}

	a, ok := v.(*ndarray.Array)
	if !ok {
		return nil, fmt.Errorf("operand %q is not an array", key)
	}

	return a, nil
}

// Int returns the scalar parameter at key.
func (e Env) Int(key string) (int, error) {
	v, ok := e[key]
	if !ok {
		return 0, fmt.Errorf("parameter %q not in environment", key)
	}

	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("parameter %q is not a scalar", key)
	}

	return n, nil
}

// Shape returns the shape parameter at key: a tuple verbatim, or a
// scalar promoted to a one-element shape.
func (e Env) Shape(key string) ([]int, error) {
	v, ok := e[key]
	if !ok {
		return nil, fmt.Errorf("parameter %q not in environment", key)
	}

	switch t := v.(type) {
	case []int:
		return t, nil
	case int:
		return []int{t}, nil
	default:
		return nil, fmt.Errorf("parameter %q is not a shape", key)
	}
}

// Indices returns the index list at key.
func (e Env) Indices(key string) ([]int, error) {
	v, ok := e[key]
	if !ok {
		return nil, fmt.Errorf("parameter %q not in environment", key)
	}

	idx, ok := v.([]int)
	if !ok {
		return nil, fmt.Errorf("parameter %q is not an index list", key)
	}

	return idx, nil
}

// Bytes returns the byte buffer at key.
func (e Env) Bytes(key string) ([]byte, error) {
	v, ok := e[key]
	if !ok {
		return nil, fmt.Errorf("buffer %q not in environment", key)
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("buffer %q is not a byte buffer", key)
	}

	return b, nil
}

// Axis returns the optional axis parameter. Absent axis means a full
// reduction, so ok=false is not an error.
func (e Env) Axis() (int, bool, error) {
	v, ok := e["axis"]
	if !ok {
		return 0, false, nil
	}

	axis, ok := v.(int)
	if !ok {
		return 0, false, fmt.Errorf("parameter \"axis\" is not a scalar")
	}

	return axis, true, nil
}

// secondOperand resolves the right-hand side of a binary op: the array
// b when present, otherwise the scalar operand.
func (e Env) secondOperand() (*ndarray.Array, error) {
	if _, ok := e["b"]; ok {
		return e.Array("b")
	}

	if _, ok := e["scalar"]; ok {
		return e.Array("scalar")
	}

	return nil, fmt.Errorf("binary operation needs operand \"b\" or \"scalar\"")
}
