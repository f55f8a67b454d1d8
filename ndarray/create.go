package ndarray

import (
	"fmt"
	"math"
)

// Zeros returns a zero-filled float64 array.
func Zeros(shape []int) (*Array, error) {
	return New(shape, Float64)
}

// Ones returns an array of ones.
func Ones(shape []int) (*Array, error) {
	return Full(shape, 1)
}

// Full returns an array filled with v.
func Full(shape []int, v float64) (*Array, error) {
	return FromFunc(shape, Float64, func(int) float64 { return v })
}

// Arange returns [0, 1, ..., n-1].
func Arange(n int) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("arange: negative length %d", n)
	}

	return FromFunc([]int{n}, Float64, func(i int) float64 {
		return float64(i)
	})
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("linspace: negative length %d", n)
	}

	if n == 1 {
		return FromData([]int{1}, Float64, []float64{start})
	}

	step := (stop - start) / float64(n-1)

	return FromFunc([]int{n}, Float64, func(i int) float64 {
		if i == n-1 {
			return stop
		}

		return start + float64(i)*step
	})
}

// Logspace returns n values spaced evenly on a log scale from
// base^start to base^stop.
func Logspace(start, stop float64, n int, base float64) (*Array, error) {
	lin, err := Linspace(start, stop, n)
	if err != nil {
		return nil, err
	}

	for i, v := range lin.data {
		lin.data[i] = math.Pow(base, v)
	}

	return lin, nil
}

// Geomspace returns n values spaced evenly on a log scale between
// start and stop inclusive.
func Geomspace(start, stop float64, n int) (*Array, error) {
	if start == 0 || stop == 0 {
		return nil, fmt.Errorf("geomspace: endpoints must be non-zero")
	}

	return Logspace(math.Log10(start), math.Log10(stop), n, 10)
}

// Eye returns the n-by-n identity matrix.
func Eye(n int) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("eye: negative size %d", n)
	}

	a, err := New([]int{n, n}, Float64)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		a.data[i*n+i] = 1
	}

	return a, nil
}

// ZerosLike returns a zero array with a's shape and dtype.
func ZerosLike(a *Array) *Array {
	out, _ := New(a.Shape(), a.dtype)

	return out
}

// OnesLike returns a one-filled array with a's shape and dtype.
func OnesLike(a *Array) *Array {
	return FullLike(a, 1)
}

// FullLike returns an array with a's shape and dtype filled with v.
func FullLike(a *Array, v float64) *Array {
	out, _ := New(a.Shape(), a.dtype)
	for i := range out.data {
		out.data[i] = v
	}

	return out
}
