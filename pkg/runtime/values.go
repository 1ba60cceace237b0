package runtime

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindBool
	KindString
	KindArray
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. String returns the
// text written by print.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// Numbers
//-----------------------------------------------------------------------------

// NumberValue is an arbitrary-precision integer when Int is non-nil and a
// float64 otherwise.
type NumberValue struct {
	Int   *big.Int
	Float float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

func NewInt(n int64) NumberValue {
	return NumberValue{Int: big.NewInt(n)}
}

func NewBigInt(n *big.Int) NumberValue {
	return NumberValue{Int: CloneBigInt(n)}
}

func NewFloat(f float64) NumberValue {
	return NumberValue{Float: f}
}

func (v NumberValue) IsFloat() bool { return v.Int == nil }

// Float64 converts the value to the nearest float64.
func (v NumberValue) Float64() float64 {
	if v.IsFloat() {
		return v.Float
	}
	f, _ := new(big.Float).SetInt(v.Int).Float64()
	return f
}

func (v NumberValue) String() string {
	if !v.IsFloat() {
		return v.Int.String()
	}
	return FormatFloat(v.Float)
}

// FormatFloat renders f in shortest round-trip form. Integral values keep a
// trailing ".0" and very large or very small magnitudes use exponent form.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

func (v BoolValue) String() string { return strconv.FormatBool(v.Val) }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

func (v StringValue) String() string { return v.Val }

type NoneValue struct{}

func (NoneValue) Kind() Kind { return KindNone }

func (NoneValue) String() string { return "null" }

// None is the shared absent value.
var None Value = NoneValue{}

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func NewArray(elements []Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func (v *ArrayValue) Len() int { return len(v.Elements) }

func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}
