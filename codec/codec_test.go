package codec

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndbench/ndbench/ndarray"
)

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"float", 1.5, 1.5},
		{"int", 7, 7.0},
		{"bool", true, true},
		{"nan", math.NaN(), NaNMarker},
		{"posinf", math.Inf(1), PosInfMarker},
		{"neginf", math.Inf(-1), NegInfMarker},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeArrayShapeAndNesting(t *testing.T) {
	a, err := ndarray.FromData(
		[]int{2, 3}, ndarray.Float64, []float64{1, 2, 3, 4, 5, 6},
	)
	require.NoError(t, err)

	got, err := Encode(a)
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.Equal(t, []int{2, 3}, m["shape"])
	assert.Equal(t, []any{
		[]any{1.0, 2.0, 3.0},
		[]any{4.0, 5.0, 6.0},
	}, m["data"])
}

func TestEncodeBoolArray(t *testing.T) {
	a, err := ndarray.FromData([]int{2}, ndarray.Bool, []float64{1, 0})
	require.NoError(t, err)

	got, err := Encode(a)
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.Equal(t, []any{true, false}, m["data"])
}

func TestEncodeEmptyArray(t *testing.T) {
	a, err := ndarray.FromData([]int{0}, ndarray.Float64, nil)
	require.NoError(t, err)

	got, err := Encode(a)
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.Equal(t, []any{}, m["data"])
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	_, err := Encode(struct{}{})
	require.Error(t, err)
}

func TestRoundTripNonFinite(t *testing.T) {
	a, err := ndarray.FromData([]int{4}, ndarray.Float64, []float64{
		math.NaN(), math.Inf(1), math.Inf(-1), 2.5,
	})
	require.NoError(t, err)

	encoded, err := Encode(a)
	require.NoError(t, err)

	// Through the actual interchange format and back.
	raw, err := json.Marshal(encoded)
	require.NoError(t, err)

	var tree any
	require.NoError(t, json.Unmarshal(raw, &tree))

	decoded := Decode(tree).(map[string]any)
	data := decoded["data"].([]any)
	require.Len(t, data, 4)

	assert.True(t, math.IsNaN(data[0].(float64)))
	assert.True(t, math.IsInf(data[1].(float64), 1))
	assert.True(t, math.IsInf(data[2].(float64), -1))
	assert.Equal(t, 2.5, data[3])
}

func TestDecodeLeavesOrdinaryStringsAlone(t *testing.T) {
	assert.Equal(t, "hello", Decode("hello"))
}

func TestEncodeWalksMapsAndSequences(t *testing.T) {
	in := map[string]any{
		"xs": []any{math.Inf(1), 1.0},
	}

	got, err := Encode(in)
	require.NoError(t, err)

	m := got.(map[string]any)
	assert.Equal(t, []any{PosInfMarker, 1.0}, m["xs"])
}

func TestEncodeBytesAsBase64(t *testing.T) {
	got, err := Encode([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "AQID", got)
}
