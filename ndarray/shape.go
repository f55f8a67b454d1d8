package ndarray

import (
	"fmt"
	"slices"
)

// Reshape returns a copy of a with the new shape. One dimension may be
// -1 and is inferred from the element count.
func Reshape(a *Array, shape []int) (*Array, error) {
	resolved := slices.Clone(shape)
	infer := -1
	known := 1

	for d, v := range resolved {
		switch {
		case v == -1 && infer == -1:
			infer = d
		case v == -1:
			return nil, fmt.Errorf("reshape: multiple -1 dimensions in %v", shape)
		case v < 0:
			return nil, fmt.Errorf("reshape: negative dimension in %v", shape)
		default:
			known *= v
		}
	}

	if infer >= 0 {
		if known == 0 || a.Size()%known != 0 {
			return nil, fmt.Errorf(
				"reshape: cannot infer dimension for %v from %d elements",
				shape, a.Size(),
			)
		}

		resolved[infer] = a.Size() / known
		known *= resolved[infer]
	}

	if known != a.Size() {
		return nil, fmt.Errorf(
			"reshape: %v holds %d elements, array has %d",
			shape, known, a.Size(),
		)
	}

	return FromData(resolved, a.dtype, slices.Clone(a.data))
}

// Flatten returns a 1-d copy.
func Flatten(a *Array) *Array {
	out, _ := FromData([]int{a.Size()}, a.dtype, slices.Clone(a.data))

	return out
}

// Ravel returns a 1-d copy. The backing store is always contiguous here,
// so ravel and flatten coincide.
func Ravel(a *Array) *Array {
	return Flatten(a)
}

// Squeeze drops every length-1 dimension.
func Squeeze(a *Array) *Array {
	shape := make([]int, 0, a.NDim())
	for _, d := range a.shape {
		if d != 1 {
			shape = append(shape, d)
		}
	}

	out, _ := FromData(shape, a.dtype, slices.Clone(a.data))

	return out
}

// SliceHead takes the leading limits[d] elements along each listed axis,
// clamped to the axis length. Axes beyond len(limits) are kept whole.
func SliceHead(a *Array, limits ...int) (*Array, error) {
	if len(limits) > a.NDim() {
		return nil, fmt.Errorf(
			"slice: %d limits for %d-d array", len(limits), a.NDim(),
		)
	}

	shape := a.Shape()
	for d, lim := range limits {
		if lim < 0 {
			return nil, fmt.Errorf("slice: negative limit %d", lim)
		}

		shape[d] = min(lim, shape[d])
	}

	out, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}

	srcStrides := rowStrides(a.shape)
	idx := make([]int, len(shape))

	for i := range out.data {
		unravel(i, shape, idx)

		flat := 0
		for d, j := range idx {
			flat += j * srcStrides[d]
		}

		out.data[i] = a.data[flat]
	}

	return out, nil
}
