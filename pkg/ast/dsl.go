package ast

import "math/big"

// Literal helpers.

func Int(value int64) *NumberLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func Flt(value float64) *NumberLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(nil, elements)
}

func ArrLen(length Expression, elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(length, elements)
}

// Variable helpers.

func ID(name string) *VariableAccess {
	return NewVariableAccess(name)
}

func Let(name string, value Expression) *VariableAssign {
	return NewVariableAssign(name, value)
}

// Operator helpers.

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

// Statement helpers.

func Block(statements ...Statement) *Scope {
	return NewScope(statements)
}

func Iff(condition Expression, statements ...Statement) *IfExpression {
	return NewIfExpression(condition, Block(statements...))
}

func Print(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func Ret(expr Expression) *ReturnStatement {
	return NewReturnStatement(expr)
}
