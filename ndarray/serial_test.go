package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRoundTrip(t *testing.T) {
	a := arr(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})

	got, err := Unmarshal(Marshal(a))
	require.NoError(t, err)
	assert.Equal(t, a.Shape(), got.Shape())
	assert.Equal(t, a.Data(), got.Data())
	assert.Equal(t, a.DType(), got.DType())
}

func TestMarshalRoundTripNonFinite(t *testing.T) {
	a := arr(t, []int{3}, []float64{
		math.NaN(), math.Inf(1), math.Inf(-1),
	})

	got, err := Unmarshal(Marshal(a))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Data()[0]))
	assert.True(t, math.IsInf(got.Data()[1], 1))
	assert.True(t, math.IsInf(got.Data()[2], -1))
}

func TestMarshalPreservesDType(t *testing.T) {
	a, err := FromData([]int{2}, Int32, []float64{1, 2})
	require.NoError(t, err)

	got, err := Unmarshal(Marshal(a))
	require.NoError(t, err)
	assert.Equal(t, Int32, got.DType())
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("XXXX\x00\x01")},
		{"truncated shape", append([]byte("NDB1"), 0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.buf)
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalTruncatedData(t *testing.T) {
	a := arr(t, []int{4}, []float64{1, 2, 3, 4})
	buf := Marshal(a)

	_, err := Unmarshal(buf[:len(buf)-8])
	require.Error(t, err)
}
