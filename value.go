package handoff

import (
	"math/rand"
	"strconv"

	"github.com/samber/lo"
)

// Kind identifies the numeric variant held by a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
)

// String returns a human-readable representation of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// Value is a tagged union over int64 and float64. Equality is exact on both
// the kind and the stored number, so Int(3) and Float(3) never compare equal.
type Value struct {
	kind Kind
	i    int64
	f    float64
}

func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Int returns the integer payload. Zero for a KindFloat value.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the floating-point payload. Zero for a KindInt value.
func (v Value) Float() float64 {
	return v.f
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	default:
		return false
	}
}

// String returns a human-readable representation of the value
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return "Unknown"
	}
}

// RandomValues produces n values with a random mix of the two kinds, for
// demos and ad-hoc runs where the exact contents do not matter.
func RandomValues(n int) []Value {
	return lo.Times(n, func(_ int) Value {
		if rand.Intn(2) == 0 {
			return Int(int64(rand.Intn(100) + 1))
		}
		return Float(rand.Float64() * 100)
	})
}
