package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatMul(t *testing.T) {
	a := arr(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := arr(t, []int{3, 2}, []float64{7, 8, 9, 10, 11, 12})

	got, err := MatMul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Shape())
	assert.Equal(t, []float64{58, 64, 139, 154}, got.Data())
}

func TestMatMulDimensionMismatch(t *testing.T) {
	a := arr(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})

	_, err := MatMul(a, b)
	require.Error(t, err)
}

func TestDotVectors(t *testing.T) {
	a := arr(t, []int{3}, []float64{1, 2, 3})
	b := arr(t, []int{3}, []float64{4, 5, 6})

	got, err := Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, 32.0, got)
}

func TestInnerMatrices(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})
	b := arr(t, []int{2, 2}, []float64{5, 6, 7, 8})

	got, err := Inner(a, b)
	require.NoError(t, err)

	m, ok := got.(*Array)
	require.True(t, ok)
	assert.Equal(t, []int{2, 2}, m.Shape())
	// row i of a dotted with row j of b.
	assert.Equal(t, []float64{17, 23, 39, 53}, m.Data())
}

func TestOuter(t *testing.T) {
	a := arr(t, []int{2}, []float64{1, 2})
	b := arr(t, []int{3}, []float64{3, 4, 5})

	got, err := Outer(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got.Shape())
	assert.Equal(t, []float64{3, 4, 5, 6, 8, 10}, got.Data())
}

func TestTrace(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})

	tr, err := Trace(a)
	require.NoError(t, err)
	assert.Equal(t, 5.0, tr)

	_, err = Trace(arr(t, []int{3}, []float64{1, 2, 3}))
	require.Error(t, err)
}

func TestTranspose(t *testing.T) {
	a := arr(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	got := Transpose(a)
	assert.Equal(t, []int{3, 2}, got.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, got.Data())
}

func TestTranspose1D(t *testing.T) {
	a := arr(t, []int{3}, []float64{1, 2, 3})

	got := Transpose(a)
	assert.Equal(t, []int{3}, got.Shape())
	assert.Equal(t, a.Data(), got.Data())
}

func TestSwapAxes(t *testing.T) {
	a, err := Arange(24)
	require.NoError(t, err)

	a, err = Reshape(a, []int{2, 3, 4})
	require.NoError(t, err)

	got, err := SwapAxes(a, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 4}, got.Shape())

	v, err := got.At(1, 0, 2)
	require.NoError(t, err)

	orig, err := a.At(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, orig, v)
}
