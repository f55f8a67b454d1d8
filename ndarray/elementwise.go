package ndarray

import (
	"fmt"
	"math"
)

// BroadcastShapes computes the broadcast result shape of x and y using
// NumPy alignment rules: shapes align on the trailing dimensions and a
// dimension of 1 stretches to match.
func BroadcastShapes(x, y []int) ([]int, error) {
	n := max(len(x), len(y))
	out := make([]int, n)

	for i := 1; i <= n; i++ {
		dx, dy := 1, 1
		if i <= len(x) {
			dx = x[len(x)-i]
		}

		if i <= len(y) {
			dy = y[len(y)-i]
		}

		switch {
		case dx == dy:
			out[n-i] = dx
		case dx == 1:
			out[n-i] = dy
		case dy == 1:
			out[n-i] = dx
		default:
			return nil, fmt.Errorf(
				"shapes %v and %v are not broadcastable", x, y,
			)
		}
	}

	return out, nil
}

// broadcastStrides returns strides for reading src as if it had the
// broadcast shape out: stretched dimensions get stride 0.
func broadcastStrides(src, out []int) []int {
	strides := rowStrides(src)
	eff := make([]int, len(out))
	pad := len(out) - len(src)

	for d := range out {
		if d < pad || src[d-pad] == 1 {
			eff[d] = 0
		} else {
			eff[d] = strides[d-pad]
		}
	}

	return eff
}

// apply2 evaluates f elementwise over the broadcast of a and b.
func apply2(a, b *Array, f func(x, y float64) float64) (*Array, error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	out, err := New(shape, resultDType(a.dtype, b.dtype))
	if err != nil {
		return nil, err
	}

	sa := broadcastStrides(a.shape, shape)
	sb := broadcastStrides(b.shape, shape)
	idx := make([]int, len(shape))

	for i := range out.data {
		unravel(i, shape, idx)

		fa, fb := 0, 0
		for d, j := range idx {
			fa += j * sa[d]
			fb += j * sb[d]
		}

		out.data[i] = f(a.data[fa], b.data[fb])
	}

	return out, nil
}

// apply1 evaluates f elementwise, producing a float64-tagged result.
func apply1(a *Array, f func(x float64) float64) *Array {
	out, _ := New(a.Shape(), Float64)
	for i, v := range a.data {
		out.data[i] = f(v)
	}

	return out
}

func resultDType(x, y DType) DType {
	if x == y {
		return x
	}

	return Float64
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x + y })
}

// Subtract returns a - b with broadcasting.
func Subtract(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x - y })
}

// Multiply returns a * b with broadcasting.
func Multiply(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x * y })
}

// Divide returns a / b with broadcasting. Division by zero follows IEEE
// semantics (Inf or NaN), matching the reference implementation.
func Divide(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 { return x / y })
}

// Mod returns the elementwise remainder with the sign of the divisor,
// matching the reference implementation's mod.
func Mod(a, b *Array) (*Array, error) {
	return apply2(a, b, pymod)
}

// FloorDivide returns floor(a / b) elementwise.
func FloorDivide(a, b *Array) (*Array, error) {
	return apply2(a, b, func(x, y float64) float64 {
		return math.Floor(x / y)
	})
}

// Reciprocal returns 1/x elementwise.
func Reciprocal(a *Array) *Array {
	return apply1(a, func(x float64) float64 { return 1 / x })
}

// Sqrt returns the elementwise square root.
func Sqrt(a *Array) *Array { return apply1(a, math.Sqrt) }

// Square returns x*x elementwise.
func Square(a *Array) *Array {
	return apply1(a, func(x float64) float64 { return x * x })
}

// Power returns a raised to the given scalar exponent elementwise.
func Power(a *Array, exp float64) *Array {
	return apply1(a, func(x float64) float64 { return math.Pow(x, exp) })
}

// Absolute returns |x| elementwise.
func Absolute(a *Array) *Array { return apply1(a, math.Abs) }

// Negative returns -x elementwise.
func Negative(a *Array) *Array {
	return apply1(a, func(x float64) float64 { return -x })
}

// Sign returns -1, 0 or 1 elementwise. NaN maps to NaN.
func Sign(a *Array) *Array {
	return apply1(a, func(x float64) float64 {
		switch {
		case math.IsNaN(x):
			return math.NaN()
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	})
}

// Sin returns the elementwise sine.
func Sin(a *Array) *Array { return apply1(a, math.Sin) }

// Cos returns the elementwise cosine.
func Cos(a *Array) *Array { return apply1(a, math.Cos) }

// Tan returns the elementwise tangent.
func Tan(a *Array) *Array { return apply1(a, math.Tan) }

// Sinh returns the elementwise hyperbolic sine.
func Sinh(a *Array) *Array { return apply1(a, math.Sinh) }

// Cosh returns the elementwise hyperbolic cosine.
func Cosh(a *Array) *Array { return apply1(a, math.Cosh) }

// Tanh returns the elementwise hyperbolic tangent.
func Tanh(a *Array) *Array { return apply1(a, math.Tanh) }

// Arctan2 returns atan2(a, b) elementwise with broadcasting.
func Arctan2(a, b *Array) (*Array, error) {
	return apply2(a, b, math.Atan2)
}

// Hypot returns sqrt(a*a + b*b) elementwise with broadcasting.
func Hypot(a, b *Array) (*Array, error) {
	return apply2(a, b, math.Hypot)
}

// pymod matches Python's modulo: the result takes the divisor's sign.
func pymod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}

	return m
}
