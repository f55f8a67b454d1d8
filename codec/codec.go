// Package codec converts operation results into the transport
// representation shared with the reference implementation. The
// interchange format cannot represent non-finite floats, so they travel
// as sentinel strings recognized on both sides.
package codec

import (
	"encoding/base64"
	"fmt"
	"math"

	"github.com/ndbench/ndbench/ndarray"
)

// Sentinel markers for non-finite floats. These exact strings are part
// of the cross-implementation contract and must not change.
const (
	NaNMarker    = "__NaN__"
	PosInfMarker = "__Infinity__"
	NegInfMarker = "__-Infinity__"
)

// Encode converts a result value into a transport-safe tree of plain
// JSON-encodable values: arrays become {shape, data} with row-major
// nesting, scalars become numbers or booleans, and non-finite floats
// become sentinel strings. Mappings and sequences are walked
// recursively.
func Encode(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *ndarray.Array:
		return encodeArray(t), nil
	case float64:
		return encodeFloat(t), nil
	case float32:
		return encodeFloat(float64(t)), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case bool:
		return t, nil
	case []byte:
		return base64.StdEncoding.EncodeToString(t), nil
	case string:
		return t, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			enc, err := Encode(e)
			if err != nil {
				return nil, err
			}

			out[i] = enc
		}

		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			enc, err := Encode(e)
			if err != nil {
				return nil, err
			}

			out[k] = enc
		}

		return out, nil
	default:
		return nil, fmt.Errorf("encode: unsupported value type %T", v)
	}
}

func encodeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return NaNMarker
	case math.IsInf(f, 1):
		return PosInfMarker
	case math.IsInf(f, -1):
		return NegInfMarker
	default:
		return f
	}
}

func encodeArray(a *ndarray.Array) map[string]any {
	shape := a.Shape()
	asBool := a.DType() == ndarray.Bool

	nested, _ := nest(a.Data(), shape, asBool)

	return map[string]any{
		"shape": shape,
		"data":  nested,
	}
}

// nest folds a flat row-major slice into nested sequences following
// shape, encoding each leaf. Returns the tree and the values consumed.
func nest(flat []float64, shape []int, asBool bool) (any, int) {
	if len(shape) == 0 {
		if asBool {
			return flat[0] != 0, 1
		}

		return encodeFloat(flat[0]), 1
	}

	out := make([]any, shape[0])
	used := 0

	for i := range out {
		sub, n := nest(flat[used:], shape[1:], asBool)
		out[i] = sub
		used += n
	}

	return out, used
}

// Decode reverses the sentinel substitution in a decoded JSON tree,
// mirroring what the external comparator does on the other side. Array
// envelopes stay as {shape, data} mappings; only leaves change.
func Decode(v any) any {
	switch t := v.(type) {
	case string:
		switch t {
		case NaNMarker:
			return math.NaN()
		case PosInfMarker:
			return math.Inf(1)
		case NegInfMarker:
			return math.Inf(-1)
		default:
			return t
		}
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Decode(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Decode(e)
		}

		return out
	default:
		return v
	}
}
