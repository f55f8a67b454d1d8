package ndarray

import "fmt"

// MatMul multiplies two 2-d matrices.
func MatMul(a, b *Array) (*Array, error) {
	if a.NDim() != 2 || b.NDim() != 2 {
		return nil, fmt.Errorf(
			"matmul: want 2-d operands, got %v and %v", a.shape, b.shape,
		)
	}

	m, k := a.shape[0], a.shape[1]
	k2, n := b.shape[0], b.shape[1]

	if k != k2 {
		return nil, fmt.Errorf(
			"matmul: inner dimensions %d and %d differ", k, k2,
		)
	}

	out, err := New([]int{m, n}, Float64)
	if err != nil {
		return nil, err
	}

	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			av := a.data[i*k+l]
			if av == 0 {
				continue
			}

			row := out.data[i*n : (i+1)*n]
			brow := b.data[l*n : (l+1)*n]

			for j := range row {
				row[j] += av * brow[j]
			}
		}
	}

	return out, nil
}

// Dot follows the reference semantics: scalar product for 1-d operands,
// matrix product for 2-d operands.
func Dot(a, b *Array) (any, error) {
	if a.NDim() == 1 && b.NDim() == 1 {
		if a.Size() != b.Size() {
			return nil, fmt.Errorf(
				"dot: lengths %d and %d differ", a.Size(), b.Size(),
			)
		}

		var sum float64
		for i, v := range a.data {
			sum += v * b.data[i]
		}

		return sum, nil
	}

	return MatMul(a, b)
}

// Inner contracts over the last axis of both operands. For 1-d inputs
// this is the scalar product; for 2-d inputs a matrix of row dots.
func Inner(a, b *Array) (any, error) {
	if a.NDim() == 0 || b.NDim() == 0 {
		return nil, fmt.Errorf("inner: zero-dimensional operand")
	}

	ka := a.shape[a.NDim()-1]
	kb := b.shape[b.NDim()-1]

	if ka != kb {
		return nil, fmt.Errorf(
			"inner: last dimensions %d and %d differ", ka, kb,
		)
	}

	rowsA := a.Size() / max(ka, 1)
	rowsB := b.Size() / max(kb, 1)

	flat := make([]float64, rowsA*rowsB)
	for i := 0; i < rowsA; i++ {
		for j := 0; j < rowsB; j++ {
			var sum float64
			for l := 0; l < ka; l++ {
				sum += a.data[i*ka+l] * b.data[j*kb+l]
			}

			flat[i*rowsB+j] = sum
		}
	}

	if a.NDim() == 1 && b.NDim() == 1 {
		return flat[0], nil
	}

	shape := append(a.shape[:a.NDim()-1:a.NDim()-1], b.shape[:b.NDim()-1]...)

	return FromData(shape, Float64, flat)
}

// Outer returns the outer product of the flattened operands.
func Outer(a, b *Array) (*Array, error) {
	n, m := a.Size(), b.Size()

	out, err := New([]int{n, m}, Float64)
	if err != nil {
		return nil, err
	}

	for i, av := range a.data {
		for j, bv := range b.data {
			out.data[i*m+j] = av * bv
		}
	}

	return out, nil
}

// Trace sums the main diagonal of a 2-d matrix.
func Trace(a *Array) (float64, error) {
	if a.NDim() != 2 {
		return 0, fmt.Errorf("trace: want 2-d array, got %v", a.shape)
	}

	n := min(a.shape[0], a.shape[1])

	var sum float64
	for i := 0; i < n; i++ {
		sum += a.data[i*a.shape[1]+i]
	}

	return sum, nil
}

// Transpose reverses the axes, copying into a contiguous result.
func Transpose(a *Array) *Array {
	nd := a.NDim()
	if nd < 2 {
		return a.Copy()
	}

	perm := make([]int, nd)
	for d := range perm {
		perm[d] = nd - 1 - d
	}

	out, _ := permuteAxes(a, perm)

	return out
}

// SwapAxes exchanges two axes, copying into a contiguous result.
func SwapAxes(a *Array, ax1, ax2 int) (*Array, error) {
	nd := a.NDim()
	if ax1 < 0 || ax1 >= nd || ax2 < 0 || ax2 >= nd {
		return nil, fmt.Errorf(
			"swapaxes: axes %d,%d out of range for %d-d array", ax1, ax2, nd,
		)
	}

	perm := make([]int, nd)
	for d := range perm {
		perm[d] = d
	}

	perm[ax1], perm[ax2] = perm[ax2], perm[ax1]

	return permuteAxes(a, perm)
}

func permuteAxes(a *Array, perm []int) (*Array, error) {
	nd := a.NDim()
	shape := make([]int, nd)

	for d, p := range perm {
		shape[d] = a.shape[p]
	}

	out, err := New(shape, a.dtype)
	if err != nil {
		return nil, err
	}

	srcStrides := rowStrides(a.shape)
	idx := make([]int, nd)

	for i := range out.data {
		unravel(i, shape, idx)

		flat := 0
		for d, j := range idx {
			flat += j * srcStrides[perm[d]]
		}

		out.data[i] = a.data[flat]
	}

	return out, nil
}
