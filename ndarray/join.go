package ndarray

import (
	"fmt"
	"slices"
)

// Concatenate joins a and b along an existing axis.
func Concatenate(a, b *Array, axis int) (*Array, error) {
	nd := a.NDim()
	if nd != b.NDim() {
		return nil, fmt.Errorf(
			"concatenate: %d-d and %d-d operands", nd, b.NDim(),
		)
	}

	if axis < 0 || axis >= nd {
		return nil, fmt.Errorf(
			"concatenate: axis %d out of range for %d-d array", axis, nd,
		)
	}

	for d := 0; d < nd; d++ {
		if d != axis && a.shape[d] != b.shape[d] {
			return nil, fmt.Errorf(
				"concatenate: shapes %v and %v differ off axis %d",
				a.shape, b.shape, axis,
			)
		}
	}

	shape := a.Shape()
	shape[axis] += b.shape[axis]

	out, err := New(shape, resultDType(a.dtype, b.dtype))
	if err != nil {
		return nil, err
	}

	// Copy in blocks: each outer position contributes a's chunk then b's.
	inner := 1
	for _, d := range a.shape[axis+1:] {
		inner *= d
	}

	outer := 1
	for _, d := range a.shape[:axis] {
		outer *= d
	}

	ca := a.shape[axis] * inner
	cb := b.shape[axis] * inner

	for o := 0; o < outer; o++ {
		dst := out.data[o*(ca+cb):]
		copy(dst[:ca], a.data[o*ca:(o+1)*ca])
		copy(dst[ca:ca+cb], b.data[o*cb:(o+1)*cb])
	}

	return out, nil
}

// Stack joins a and b along a new leading axis.
func Stack(a, b *Array) (*Array, error) {
	if !slices.Equal(a.shape, b.shape) {
		return nil, fmt.Errorf(
			"stack: shapes %v and %v differ", a.shape, b.shape,
		)
	}

	shape := append([]int{2}, a.shape...)

	out, err := New(shape, resultDType(a.dtype, b.dtype))
	if err != nil {
		return nil, err
	}

	copy(out.data[:a.Size()], a.data)
	copy(out.data[a.Size():], b.data)

	return out, nil
}

// VStack stacks vertically: 1-d operands become rows, higher-d operands
// concatenate along axis 0.
func VStack(a, b *Array) (*Array, error) {
	if a.NDim() == 1 && b.NDim() == 1 {
		return Stack(a, b)
	}

	return Concatenate(a, b, 0)
}

// HStack stacks horizontally: 1-d operands concatenate along axis 0,
// higher-d operands along axis 1.
func HStack(a, b *Array) (*Array, error) {
	if a.NDim() == 1 && b.NDim() == 1 {
		return Concatenate(a, b, 0)
	}

	return Concatenate(a, b, 1)
}

// Tile repeats a reps[d] times along each dimension. Missing leading
// dimensions in either the array or reps are treated as length 1.
func Tile(a *Array, reps []int) (*Array, error) {
	nd := max(a.NDim(), len(reps))

	srcShape := leftPad(a.shape, nd)
	fullReps := leftPad(reps, nd)

	shape := make([]int, nd)
	for d := range shape {
		if fullReps[d] <= 0 {
			return nil, fmt.Errorf("tile: non-positive repeat %v", reps)
		}

		shape[d] = srcShape[d] * fullReps[d]
	}

	out, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}

	srcStrides := rowStrides(srcShape)
	idx := make([]int, nd)

	for i := range out.data {
		unravel(i, shape, idx)

		flat := 0
		for d, j := range idx {
			flat += (j % srcShape[d]) * srcStrides[d]
		}

		out.data[i] = a.data[flat]
	}

	return out, nil
}

// Repeat flattens a and repeats each element n times.
func Repeat(a *Array, n int) (*Array, error) {
	if n < 0 {
		return nil, fmt.Errorf("repeat: negative count %d", n)
	}

	out, err := New([]int{a.Size() * n}, a.dtype)
	if err != nil {
		return nil, err
	}

	for i, v := range a.data {
		for r := 0; r < n; r++ {
			out.data[i*n+r] = v
		}
	}

	return out, nil
}

// Take gathers elements from the flattened array at the given indices.
func Take(a *Array, indices []int) (*Array, error) {
	out, err := New([]int{len(indices)}, a.dtype)
	if err != nil {
		return nil, err
	}

	for i, j := range indices {
		if j < 0 || j >= a.Size() {
			return nil, fmt.Errorf(
				"take: index %d out of range for %d elements", j, a.Size(),
			)
		}

		out.data[i] = a.data[j]
	}

	return out, nil
}

// BroadcastTo materializes a stretched to the target shape.
func BroadcastTo(a *Array, shape []int) (*Array, error) {
	bshape, err := BroadcastShapes(a.shape, shape)
	if err != nil || !slices.Equal(bshape, shape) {
		return nil, fmt.Errorf(
			"broadcast_to: cannot broadcast %v to %v", a.shape, shape,
		)
	}

	out, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}

	strides := broadcastStrides(a.shape, shape)
	idx := make([]int, len(shape))

	for i := range out.data {
		unravel(i, shape, idx)

		flat := 0
		for d, j := range idx {
			flat += j * strides[d]
		}

		out.data[i] = a.data[flat]
	}

	return out, nil
}

func leftPad(s []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}

	copy(out[n-len(s):], s)

	return out
}
