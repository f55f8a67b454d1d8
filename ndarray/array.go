// Package ndarray implements the dense row-major array type driven by the
// benchmark and validation harnesses. Arrays carry an element-type tag but
// store values as float64, which is lossless for every dtype in the
// operation catalog.
package ndarray

import (
	"fmt"
	"slices"
)

// DType tags the element type of an Array.
type DType string

const (
	Float64 DType = "float64"
	Float32 DType = "float32"
	Int64   DType = "int64"
	Int32   DType = "int32"
	Bool    DType = "bool"
)

// ParseDType validates a dtype name from a setup document.
func ParseDType(s string) (DType, error) {
	switch DType(s) {
	case Float64, Float32, Int64, Int32, Bool:
		return DType(s), nil
	case "":
		return Float64, nil
	default:
		return "", fmt.Errorf("unsupported dtype %q", s)
	}
}

// Array is a dense row-major n-dimensional array.
type Array struct {
	shape []int
	data  []float64
	dtype DType
}

// New returns a zero-filled array of the given shape and dtype.
func New(shape []int, dtype DType) (*Array, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}

	return &Array{
		shape: slices.Clone(shape),
		data:  make([]float64, n),
		dtype: dtype,
	}, nil
}

// FromData wraps an existing flat value slice. The slice is not copied;
// callers hand over ownership.
func FromData(shape []int, dtype DType, data []float64) (*Array, error) {
	n, err := checkShape(shape)
	if err != nil {
		return nil, err
	}

	if n != len(data) {
		return nil, fmt.Errorf(
			"shape %v holds %d elements, got %d values", shape, n, len(data),
		)
	}

	return &Array{shape: slices.Clone(shape), data: data, dtype: dtype}, nil
}

// FromFunc builds an array whose flat element i equals f(i).
func FromFunc(shape []int, dtype DType, f func(i int) float64) (*Array, error) {
	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}

	for i := range a.data {
		a.data[i] = f(i)
	}

	return a, nil
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int { return slices.Clone(a.shape) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the total element count.
func (a *Array) Size() int { return len(a.data) }

// DType returns the element-type tag.
func (a *Array) DType() DType { return a.dtype }

// Data exposes the flat backing slice. Mutating it mutates the array.
func (a *Array) Data() []float64 { return a.data }

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) (float64, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf(
			"index %v does not match %d-d array", idx, len(a.shape),
		)
	}

	flat := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, fmt.Errorf(
				"index %v out of range for shape %v", idx, a.shape,
			)
		}

		flat = flat*a.shape[d] + i
	}

	return a.data[flat], nil
}

// Copy returns a deep copy.
func (a *Array) Copy() *Array {
	return &Array{
		shape: slices.Clone(a.shape),
		data:  slices.Clone(a.data),
		dtype: a.dtype,
	}
}

func checkShape(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v", shape)
		}

		n *= d
	}

	return n, nil
}

// rowStrides returns row-major strides for shape.
func rowStrides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1

	for d := len(shape) - 1; d >= 0; d-- {
		s[d] = acc
		acc *= shape[d]
	}

	return s
}

// unravel writes the multi-index of flat position i into idx.
func unravel(i int, shape, idx []int) {
	for d := len(shape) - 1; d >= 0; d-- {
		if shape[d] == 0 {
			idx[d] = 0

			continue
		}

		idx[d] = i % shape[d]
		i /= shape[d]
	}
}
