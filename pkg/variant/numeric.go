package variant

import (
	"fmt"
	"math"
	"strings"
)

// Upper bounds on values built from a single integer input, so a large
// parameter fails the compute instead of exhausting memory.
const (
	MaxVectorLength = 1 << 24
	MaxStringLength = 1 << 26
)

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

type binaryOp struct {
	name   string
	ints   func(a, b int64) int64
	floats func(a, b float64) float64
}

var (
	opAdd = binaryOp{"+", func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }}
	opSub = binaryOp{"-", func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b }}
	opMul = binaryOp{"*", func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b }}
)

// apply follows host numeric semantics: two integers stay integral, any float
// promotes the result to float64, and vectors combine element-wise or
// broadcast a scalar.
func (op binaryOp) apply(a, b any) (any, error) {
	ai, aInt := toInt(a)
	bi, bInt := toInt(b)
	if aInt && bInt {
		return int(op.ints(ai, bi)), nil
	}
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return op.floats(af, bf), nil
	}

	av, aVec := a.([]float64)
	bv, bVec := b.([]float64)
	switch {
	case aVec && bVec:
		if len(av) != len(bv) {
			return nil, fmt.Errorf("vector lengths differ: %d %s %d", len(av), op.name, len(bv))
		}
		out := make([]float64, len(av))
		for i := range av {
			out[i] = op.floats(av[i], bv[i])
		}
		return out, nil
	case aVec && bNum:
		out := make([]float64, len(av))
		for i := range av {
			out[i] = op.floats(av[i], bf)
		}
		return out, nil
	case aNum && bVec:
		out := make([]float64, len(bv))
		for i := range bv {
			out[i] = op.floats(af, bv[i])
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported operand types for %s: %T and %T", op.name, a, b)
}

// Add returns a + b. Strings concatenate.
func Add(a, b any) (any, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
	}
	return opAdd.apply(a, b)
}

// Subtract returns a - b.
func Subtract(a, b any) (any, error) {
	return opSub.apply(a, b)
}

// Multiply returns a * b. A string times an integer repeats the string.
func Multiply(a, b any) (any, error) {
	if s, ok := a.(string); ok {
		if n, ok := toInt(b); ok {
			return repeat(s, n)
		}
	}
	if s, ok := b.(string); ok {
		if n, ok := toInt(a); ok {
			return repeat(s, n)
		}
	}
	return opMul.apply(a, b)
}

func repeat(s string, n int64) (any, error) {
	if n <= 0 || s == "" {
		return "", nil
	}
	if n > MaxStringLength/int64(len(s)) {
		return nil, fmt.Errorf("repeating a %d byte string %d times exceeds %d bytes", len(s), n, MaxStringLength)
	}
	return strings.Repeat(s, int(n)), nil
}
