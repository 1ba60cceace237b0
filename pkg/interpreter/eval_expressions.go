package interpreter

import (
	"fmt"
	"math/big"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/runtime"
)

// MaxArrayLength caps the padded length an array annotation may request.
const MaxArrayLength = 1 << 24

func (i *Interpreter) evaluateExpression(node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		if n.IsFloat() {
			return runtime.NewFloat(n.Float), nil
		}
		return runtime.NewBigInt(n.Int), nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.VariableAccess:
		return i.scopes.Get(n.Name), nil
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n)
	case *ast.Scope:
		return i.evaluateScope(n)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	result, err := runtime.ApplyBinary(expr.Operator, left, right)
	if err != nil {
		return nil, wrapError(expr, err)
	}
	return result, nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	result, err := runtime.ApplyUnary(expr.Operator, operand)
	if err != nil {
		return nil, wrapError(expr, err)
	}
	return result, nil
}

// evaluateIfExpression yields true when the action ran and false otherwise.
// A scope condition runs in its own child frame.
func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition)
	if err != nil {
		return nil, err
	}
	flag, ok := cond.(runtime.BoolValue)
	if !ok {
		return nil, wrapError(expr, runtime.NewTypeError("if condition must be bool, got %s", cond.Kind()))
	}
	if !flag.Val {
		return runtime.BoolValue{Val: false}, nil
	}
	if _, err := i.evaluateScope(expr.Action); err != nil {
		return nil, err
	}
	return runtime.BoolValue{Val: true}, nil
}

// evaluateArrayLiteral evaluates elements left to right, then the length
// annotation. A longer annotation pads the array with None.
func (i *Interpreter) evaluateArrayLiteral(arr *ast.ArrayLiteral) (runtime.Value, error) {
	values := make([]runtime.Value, 0, len(arr.Elements))
	for _, el := range arr.Elements {
		val, err := i.evaluateExpression(el)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	if arr.Length == nil {
		return runtime.NewArray(values), nil
	}

	lengthVal, err := i.evaluateExpression(arr.Length)
	if err != nil {
		return nil, err
	}
	length, err := arrayLength(lengthVal, len(values))
	if err != nil {
		return nil, wrapError(arr, err)
	}
	for len(values) < length {
		values = append(values, runtime.None)
	}
	return runtime.NewArray(values), nil
}

func arrayLength(val runtime.Value, count int) (int, error) {
	num, ok := val.(runtime.NumberValue)
	if !ok {
		return 0, runtime.NewTypeError("array length must be a number, got %s", val.Kind())
	}
	if num.IsFloat() {
		return 0, runtime.NewValueError("array length must be an integer, got %s", num)
	}
	if num.Int.Sign() < 0 {
		return 0, runtime.NewValueError("array length must not be negative, got %s", num)
	}
	if num.Int.Cmp(big.NewInt(MaxArrayLength)) > 0 {
		return 0, runtime.NewValueError("array length %s exceeds the maximum of %d", num, MaxArrayLength)
	}
	length := int(num.Int.Int64())
	if length < count {
		return 0, runtime.NewValueError("array length %d is smaller than its %d elements", length, count)
	}
	return length, nil
}
