package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arr(t *testing.T, shape []int, data []float64) *Array {
	t.Helper()

	a, err := FromData(shape, Float64, data)
	require.NoError(t, err)

	return a
}

func TestAddSameShape(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})
	b := arr(t, []int{2, 2}, []float64{10, 20, 30, 40})

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 22, 33, 44}, got.Data())
}

func TestAddBroadcastScalar(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})
	b := arr(t, []int{1}, []float64{10})

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Shape())
	assert.Equal(t, []float64{11, 12, 13, 14}, got.Data())
}

func TestAddBroadcastRow(t *testing.T) {
	a := arr(t, []int{2, 3}, []float64{0, 0, 0, 10, 10, 10})
	b := arr(t, []int{3}, []float64{1, 2, 3})

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 11, 12, 13}, got.Data())
}

func TestAddShapeMismatch(t *testing.T) {
	a := arr(t, []int{2}, []float64{1, 2})
	b := arr(t, []int{3}, []float64{1, 2, 3})

	_, err := Add(a, b)
	require.Error(t, err)
}

func TestDivideByZero(t *testing.T) {
	a := arr(t, []int{3}, []float64{1, -1, 0})
	b := arr(t, []int{3}, []float64{0, 0, 0})

	got, err := Divide(a, b)
	require.NoError(t, err)

	assert.True(t, math.IsInf(got.Data()[0], 1))
	assert.True(t, math.IsInf(got.Data()[1], -1))
	assert.True(t, math.IsNaN(got.Data()[2]))
}

func TestModTakesDivisorSign(t *testing.T) {
	a := arr(t, []int{4}, []float64{7, -7, 7, -7})
	b := arr(t, []int{4}, []float64{3, 3, -3, -3})

	got, err := Mod(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, -2, -1}, got.Data())
}

func TestFloorDivide(t *testing.T) {
	a := arr(t, []int{2}, []float64{7, -7})
	b := arr(t, []int{2}, []float64{2, 2})

	got, err := FloorDivide(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -4}, got.Data())
}

func TestUnaryOps(t *testing.T) {
	a := arr(t, []int{3}, []float64{4, -9, 0})

	assert.Equal(t, []float64{2, math.NaN(), 0}[0], Sqrt(a).Data()[0])
	assert.True(t, math.IsNaN(Sqrt(a).Data()[1]))
	assert.Equal(t, []float64{16, 81, 0}, Square(a).Data())
	assert.Equal(t, []float64{4, 9, 0}, Absolute(a).Data())
	assert.Equal(t, []float64{-4, 9, 0}, Negative(a).Data())
	assert.Equal(t, []float64{1, -1, 0}, Sign(a).Data())
}

func TestSignNaN(t *testing.T) {
	a := arr(t, []int{1}, []float64{math.NaN()})
	assert.True(t, math.IsNaN(Sign(a).Data()[0]))
}

func TestTrig(t *testing.T) {
	a := arr(t, []int{2}, []float64{0, math.Pi / 2})

	assert.InDelta(t, 0, Sin(a).Data()[0], 1e-12)
	assert.InDelta(t, 1, Sin(a).Data()[1], 1e-12)
	assert.InDelta(t, 1, Cos(a).Data()[0], 1e-12)
	assert.InDelta(t, 0, Tanh(a).Data()[0], 1e-12)
}

func TestArctan2AndHypot(t *testing.T) {
	y := arr(t, []int{1}, []float64{3})
	x := arr(t, []int{1}, []float64{4})

	at, err := Arctan2(y, x)
	require.NoError(t, err)
	assert.InDelta(t, math.Atan2(3, 4), at.Data()[0], 1e-12)

	h, err := Hypot(y, x)
	require.NoError(t, err)
	assert.InDelta(t, 5, h.Data()[0], 1e-12)
}

func TestReciprocal(t *testing.T) {
	a := arr(t, []int{2}, []float64{2, 0})
	got := Reciprocal(a)

	assert.Equal(t, 0.5, got.Data()[0])
	assert.True(t, math.IsInf(got.Data()[1], 1))
}
