package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReshape(t *testing.T) {
	a, err := Arange(6)
	require.NoError(t, err)

	b, err := Reshape(a, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, b.Shape())
	assert.Equal(t, a.Data(), b.Data())
}

func TestReshapeInferred(t *testing.T) {
	a, err := Arange(12)
	require.NoError(t, err)

	b, err := Reshape(a, []int{3, -1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, b.Shape())
}

func TestReshapeErrors(t *testing.T) {
	a, err := Arange(6)
	require.NoError(t, err)

	_, err = Reshape(a, []int{4, 2})
	assert.Error(t, err)

	_, err = Reshape(a, []int{-1, -1})
	assert.Error(t, err)

	_, err = Reshape(a, []int{5, -1})
	assert.Error(t, err)
}

func TestFlattenAndSqueeze(t *testing.T) {
	a, err := Arange(6)
	require.NoError(t, err)

	b, err := Reshape(a, []int{1, 2, 1, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{6}, Flatten(b).Shape())
	assert.Equal(t, []int{6}, Ravel(b).Shape())
	assert.Equal(t, []int{2, 3}, Squeeze(b).Shape())
	assert.Equal(t, a.Data(), Squeeze(b).Data())
}

func TestSliceHead(t *testing.T) {
	a, err := Arange(16)
	require.NoError(t, err)

	a, err = Reshape(a, []int{4, 4})
	require.NoError(t, err)

	got, err := SliceHead(a, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, got.Shape())
	assert.Equal(t, []float64{0, 1, 2, 4, 5, 6}, got.Data())
}

func TestSliceHeadClamps(t *testing.T) {
	a, err := Arange(4)
	require.NoError(t, err)

	a, err = Reshape(a, []int{2, 2})
	require.NoError(t, err)

	got, err := SliceHead(a, 100, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Shape())
}
