package ndarray

import (
	"fmt"
	"math"
)

// SumAll sums every element.
func (a *Array) SumAll() float64 {
	var sum float64
	for _, v := range a.data {
		sum += v
	}

	return sum
}

// MeanAll returns the arithmetic mean of every element.
func (a *Array) MeanAll() float64 {
	if len(a.data) == 0 {
		return math.NaN()
	}

	return a.SumAll() / float64(len(a.data))
}

// MaxAll returns the largest element.
func (a *Array) MaxAll() (float64, error) {
	if len(a.data) == 0 {
		return 0, fmt.Errorf("max of empty array")
	}

	m := a.data[0]
	for _, v := range a.data[1:] {
		if v > m {
			m = v
		}
	}

	return m, nil
}

// MinAll returns the smallest element.
func (a *Array) MinAll() (float64, error) {
	if len(a.data) == 0 {
		return 0, fmt.Errorf("min of empty array")
	}

	m := a.data[0]
	for _, v := range a.data[1:] {
		if v < m {
			m = v
		}
	}

	return m, nil
}

// ProdAll multiplies every element; the empty product is 1.
func (a *Array) ProdAll() float64 {
	p := 1.0
	for _, v := range a.data {
		p *= v
	}

	return p
}

// ArgMaxAll returns the flat index of the first largest element.
func (a *Array) ArgMaxAll() (int, error) {
	if len(a.data) == 0 {
		return 0, fmt.Errorf("argmax of empty array")
	}

	best := 0
	for i, v := range a.data {
		if v > a.data[best] {
			best = i
		}
	}

	return best, nil
}

// ArgMinAll returns the flat index of the first smallest element.
func (a *Array) ArgMinAll() (int, error) {
	if len(a.data) == 0 {
		return 0, fmt.Errorf("argmin of empty array")
	}

	best := 0
	for i, v := range a.data {
		if v < a.data[best] {
			best = i
		}
	}

	return best, nil
}

// VarAll returns the population variance.
func (a *Array) VarAll() float64 {
	if len(a.data) == 0 {
		return math.NaN()
	}

	mean := a.MeanAll()

	var acc float64
	for _, v := range a.data {
		d := v - mean
		acc += d * d
	}

	return acc / float64(len(a.data))
}

// StdAll returns the population standard deviation.
func (a *Array) StdAll() float64 {
	return math.Sqrt(a.VarAll())
}

// AllTrue reports whether every element is non-zero.
func (a *Array) AllTrue() bool {
	for _, v := range a.data {
		if v == 0 {
			return false
		}
	}

	return true
}

// AnyTrue reports whether at least one element is non-zero.
func (a *Array) AnyTrue() bool {
	for _, v := range a.data {
		if v != 0 {
			return true
		}
	}

	return false
}

// reduceAxis collapses the given axis, feeding each lane through fold.
// fold receives the lane's values in index order.
func reduceAxis(
	a *Array, axis int, dtype DType, fold func(lane []float64) float64,
) (*Array, error) {
	nd := a.NDim()
	if axis < 0 || axis >= nd {
		return nil, fmt.Errorf(
			"axis %d out of range for %d-d array", axis, nd,
		)
	}

	outShape := make([]int, 0, nd-1)
	outShape = append(outShape, a.shape[:axis]...)
	outShape = append(outShape, a.shape[axis+1:]...)

	out, err := New(outShape, dtype)
	if err != nil {
		return nil, err
	}

	// outer iterates over everything before axis, inner over everything
	// after; the lane stride across axis is the product of trailing dims.
	outer, n, inner := 1, a.shape[axis], 1
	for _, d := range a.shape[:axis] {
		outer *= d
	}

	for _, d := range a.shape[axis+1:] {
		inner *= d
	}

	lane := make([]float64, n)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*n*inner + in
			for l := 0; l < n; l++ {
				lane[l] = a.data[base+l*inner]
			}

			out.data[o*inner+in] = fold(lane)
		}
	}

	return out, nil
}

// SumAxis sums along one axis.
func (a *Array) SumAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		var s float64
		for _, v := range lane {
			s += v
		}

		return s
	})
}

// MeanAxis averages along one axis.
func (a *Array) MeanAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		var s float64
		for _, v := range lane {
			s += v
		}

		return s / float64(len(lane))
	})
}

// MaxAxis takes the maximum along one axis.
func (a *Array) MaxAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		m := lane[0]
		for _, v := range lane[1:] {
			if v > m {
				m = v
			}
		}

		return m
	})
}

// MinAxis takes the minimum along one axis.
func (a *Array) MinAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		m := lane[0]
		for _, v := range lane[1:] {
			if v < m {
				m = v
			}
		}

		return m
	})
}

// ProdAxis multiplies along one axis.
func (a *Array) ProdAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		p := 1.0
		for _, v := range lane {
			p *= v
		}

		return p
	})
}

// ArgMaxAxis returns per-lane indices of the first maximum.
func (a *Array) ArgMaxAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Int64, func(lane []float64) float64 {
		best := 0
		for i, v := range lane {
			if v > lane[best] {
				best = i
			}
		}

		return float64(best)
	})
}

// ArgMinAxis returns per-lane indices of the first minimum.
func (a *Array) ArgMinAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Int64, func(lane []float64) float64 {
		best := 0
		for i, v := range lane {
			if v < lane[best] {
				best = i
			}
		}

		return float64(best)
	})
}

// VarAxis returns the population variance along one axis.
func (a *Array) VarAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, laneVar)
}

// StdAxis returns the population standard deviation along one axis.
func (a *Array) StdAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Float64, func(lane []float64) float64 {
		return math.Sqrt(laneVar(lane))
	})
}

// AllAxis tests all-non-zero along one axis, producing a bool array.
func (a *Array) AllAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Bool, func(lane []float64) float64 {
		for _, v := range lane {
			if v == 0 {
				return 0
			}
		}

		return 1
	})
}

// AnyAxis tests any-non-zero along one axis, producing a bool array.
func (a *Array) AnyAxis(axis int) (*Array, error) {
	return reduceAxis(a, axis, Bool, func(lane []float64) float64 {
		for _, v := range lane {
			if v != 0 {
				return 1
			}
		}

		return 0
	})
}

func laneVar(lane []float64) float64 {
	var sum float64
	for _, v := range lane {
		sum += v
	}

	mean := sum / float64(len(lane))

	var acc float64
	for _, v := range lane {
		d := v - mean
		acc += d * d
	}

	return acc / float64(len(lane))
}
