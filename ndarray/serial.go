package ndarray

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary wire format: magic, dtype tag, shape, then elements as
// little-endian IEEE 754 float64 in row-major order. Used by the
// serialize/deserialize catalog entries so both sides measure the codec,
// not the fixture construction.

var serialMagic = [4]byte{'N', 'D', 'B', '1'}

// Marshal encodes a into the binary wire format.
func Marshal(a *Array) []byte {
	nd := a.NDim()
	buf := make([]byte, 0, 4+1+1+8*nd+8*a.Size())

	buf = append(buf, serialMagic[:]...)
	buf = append(buf, dtypeTag(a.dtype), byte(nd))

	for _, d := range a.shape {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(d))
	}

	for _, v := range a.data {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// Unmarshal decodes the binary wire format produced by Marshal.
func Unmarshal(buf []byte) (*Array, error) {
	if len(buf) < 6 || [4]byte(buf[:4]) != serialMagic {
		return nil, fmt.Errorf("unmarshal: bad header")
	}

	dtype, err := tagDType(buf[4])
	if err != nil {
		return nil, err
	}

	nd := int(buf[5])
	buf = buf[6:]

	if len(buf) < 8*nd {
		return nil, fmt.Errorf("unmarshal: truncated shape")
	}

	shape := make([]int, nd)
	n := 1

	for d := range shape {
		shape[d] = int(binary.LittleEndian.Uint64(buf[8*d:]))
		n *= shape[d]
	}

	buf = buf[8*nd:]
	if len(buf) != 8*n {
		return nil, fmt.Errorf(
			"unmarshal: want %d data bytes, got %d", 8*n, len(buf),
		)
	}

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}

	return FromData(shape, dtype, data)
}

func dtypeTag(d DType) byte {
	switch d {
	case Float64:
		return 0
	case Float32:
		return 1
	case Int64:
		return 2
	case Int32:
		return 3
	case Bool:
		return 4
	default:
		return 0
	}
}

func tagDType(t byte) (DType, error) {
	switch t {
	case 0:
		return Float64, nil
	case 1:
		return Float32, nil
	case 2:
		return Int64, nil
	case 3:
		return Int32, nil
	case 4:
		return Bool, nil
	default:
		return "", fmt.Errorf("unmarshal: unknown dtype tag %d", t)
	}
}
