package runtime

import (
	"math"
	"math/big"

	"delta/interpreter-go/pkg/ast"
)

// MaxIntegerExponent bounds integer powers that are computed exactly.
const MaxIntegerExponent = 1_000_000

// MaxIntegerBits bounds the estimated size of an exact integer power result.
const MaxIntegerBits = 1 << 26

type binaryFunc func(left, right Value) (Value, error)

// operations maps a left operand kind to the operators it supports. The right
// operand must share the left operand's kind.
var operations = map[Kind]map[ast.BinaryOperator]binaryFunc{
	KindNumber: {
		ast.BinaryAdd:          numberArithmetic(ast.BinaryAdd),
		ast.BinarySubtract:     numberArithmetic(ast.BinarySubtract),
		ast.BinaryMultiply:     numberArithmetic(ast.BinaryMultiply),
		ast.BinaryDivide:       numberDivide,
		ast.BinaryPower:        numberPower,
		ast.BinaryEqual:        numberCompare(func(c int) bool { return c == 0 }),
		ast.BinaryNotEqual:     numberNotEqual,
		ast.BinaryLess:         numberCompare(func(c int) bool { return c < 0 }),
		ast.BinaryGreater:      numberCompare(func(c int) bool { return c > 0 }),
		ast.BinaryLessEqual:    numberCompare(func(c int) bool { return c <= 0 }),
		ast.BinaryGreaterEqual: numberCompare(func(c int) bool { return c >= 0 }),
	},
	KindBool: {
		ast.BinaryEqual:    equality(true),
		ast.BinaryNotEqual: equality(false),
	},
	KindString: {
		ast.BinaryAdd:      stringConcat,
		ast.BinaryEqual:    equality(true),
		ast.BinaryNotEqual: equality(false),
	},
	KindArray: {
		ast.BinaryEqual:    equality(true),
		ast.BinaryNotEqual: equality(false),
	},
	KindNone: {
		ast.BinaryEqual:    equality(true),
		ast.BinaryNotEqual: equality(false),
	},
}

// ApplyBinary evaluates left op right.
func ApplyBinary(op ast.BinaryOperator, left, right Value) (Value, error) {
	fn, ok := operations[left.Kind()][op]
	if !ok || left.Kind() != right.Kind() {
		return nil, operandError(string(op), left, right)
	}
	return fn(left, right)
}

// ApplyUnary evaluates a prefix operator. Negation flips the sign and the
// plus prefix yields the absolute value.
func ApplyUnary(op ast.UnaryOperator, operand Value) (Value, error) {
	num, ok := operand.(NumberValue)
	if !ok {
		return nil, operandError(string(op), operand)
	}
	switch op {
	case ast.UnaryNegate:
		if num.IsFloat() {
			return NewFloat(-num.Float), nil
		}
		return NumberValue{Int: new(big.Int).Neg(num.Int)}, nil
	case ast.UnaryAbs:
		if num.IsFloat() {
			return NewFloat(math.Abs(num.Float)), nil
		}
		return NumberValue{Int: new(big.Int).Abs(num.Int)}, nil
	default:
		return nil, operandError(string(op), operand)
	}
}

// ValuesEqual reports structural equality. Values of different kinds are
// never equal.
func ValuesEqual(left, right Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case NumberValue:
		r := right.(NumberValue)
		if l.IsFloat() && math.IsNaN(l.Float) || r.IsFloat() && math.IsNaN(r.Float) {
			return false
		}
		return compareNumbers(l, r) == 0
	case BoolValue:
		return l.Val == right.(BoolValue).Val
	case StringValue:
		return l.Val == right.(StringValue).Val
	case *ArrayValue:
		r := right.(*ArrayValue)
		if len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !ValuesEqual(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	case NoneValue:
		return true
	default:
		return false
	}
}

func equality(want bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		return BoolValue{Val: ValuesEqual(left, right) == want}, nil
	}
}

func stringConcat(left, right Value) (Value, error) {
	return StringValue{Val: left.(StringValue).Val + right.(StringValue).Val}, nil
}

//-----------------------------------------------------------------------------
// Numeric operators
//-----------------------------------------------------------------------------

func numberArithmetic(op ast.BinaryOperator) binaryFunc {
	return func(left, right Value) (Value, error) {
		l, r := left.(NumberValue), right.(NumberValue)
		if !l.IsFloat() && !r.IsFloat() {
			result := new(big.Int)
			switch op {
			case ast.BinaryAdd:
				result.Add(l.Int, r.Int)
			case ast.BinarySubtract:
				result.Sub(l.Int, r.Int)
			case ast.BinaryMultiply:
				result.Mul(l.Int, r.Int)
			}
			return NumberValue{Int: result}, nil
		}
		a, b := l.Float64(), r.Float64()
		switch op {
		case ast.BinaryAdd:
			return finiteResult(a+b, l, r)
		case ast.BinarySubtract:
			return finiteResult(a-b, l, r)
		default:
			return finiteResult(a*b, l, r)
		}
	}
}

func numberDivide(left, right Value) (Value, error) {
	l, r := left.(NumberValue), right.(NumberValue)
	if isZero(r) {
		return nil, NewValueError("division by zero")
	}
	if !l.IsFloat() && !r.IsFloat() {
		quotient, _ := new(big.Rat).SetFrac(l.Int, r.Int).Float64()
		return finiteResult(quotient, l, r)
	}
	return finiteResult(l.Float64()/r.Float64(), l, r)
}

func numberPower(left, right Value) (Value, error) {
	base, exp := left.(NumberValue), right.(NumberValue)
	if isZero(base) && sign(exp) < 0 {
		return nil, NewValueError("zero cannot be raised to a negative power")
	}
	if !base.IsFloat() && !exp.IsFloat() && exp.Int.Sign() >= 0 {
		if base.Int.CmpAbs(big.NewInt(1)) <= 0 {
			return NumberValue{Int: new(big.Int).Exp(base.Int, exp.Int, nil)}, nil
		}
		if exp.Int.Cmp(big.NewInt(MaxIntegerExponent)) > 0 {
			return nil, NewValueError("exponent %s is too large", exp.Int)
		}
		if int64(base.Int.BitLen())*exp.Int.Int64() > MaxIntegerBits {
			return nil, NewValueError("numerical result out of range")
		}
		return NumberValue{Int: new(big.Int).Exp(base.Int, exp.Int, nil)}, nil
	}
	b, e := base.Float64(), exp.Float64()
	if b < 0 && !math.IsInf(e, 0) && e != math.Trunc(e) {
		return nil, NewValueError("negative number cannot be raised to a fractional power")
	}
	return finiteResult(math.Pow(b, e), base, exp)
}

// finiteResult rejects a float result that overflowed to infinity. An
// operand that was already infinite passes its infinity through.
func finiteResult(result float64, left, right NumberValue) (Value, error) {
	if math.IsInf(result, 0) && !isInf(left) && !isInf(right) {
		return nil, NewValueError("numerical result out of range")
	}
	return NewFloat(result), nil
}

func isInf(n NumberValue) bool {
	return n.IsFloat() && math.IsInf(n.Float, 0)
}

func numberNotEqual(left, right Value) (Value, error) {
	return BoolValue{Val: !ValuesEqual(left, right)}, nil
}

func numberCompare(test func(int) bool) binaryFunc {
	return func(left, right Value) (Value, error) {
		l, r := left.(NumberValue), right.(NumberValue)
		if l.IsFloat() && math.IsNaN(l.Float) || r.IsFloat() && math.IsNaN(r.Float) {
			return BoolValue{Val: false}, nil
		}
		return BoolValue{Val: test(compareNumbers(l, r))}, nil
	}
}

// compareNumbers orders two non-NaN numbers exactly, including integers
// beyond float64 precision.
func compareNumbers(l, r NumberValue) int {
	if !l.IsFloat() && !r.IsFloat() {
		return l.Int.Cmp(r.Int)
	}
	return toBigFloat(l).Cmp(toBigFloat(r))
}

func toBigFloat(v NumberValue) *big.Float {
	if v.IsFloat() {
		return new(big.Float).SetFloat64(v.Float)
	}
	return new(big.Float).SetInt(v.Int)
}

func isZero(v NumberValue) bool {
	if v.IsFloat() {
		return v.Float == 0
	}
	return v.Int.Sign() == 0
}

func sign(v NumberValue) int {
	if v.IsFloat() {
		switch {
		case v.Float < 0:
			return -1
		case v.Float > 0:
			return 1
		}
		return 0
	}
	return v.Int.Sign()
}
