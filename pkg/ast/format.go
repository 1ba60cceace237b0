package ast

import (
	"strconv"
	"strings"
)

// Binding tiers, loosest first. Operands are parenthesised when their tier
// is looser than the position they occupy.
const (
	tierComparison = iota + 1
	tierArithmetic
	tierTerm
	tierUnary
	tierPower
	tierAtom
)

// FormatProgram renders the statements of a top-level scope as source text
// without the enclosing braces. Lexing and parsing the result yields a tree
// equal to program.
func FormatProgram(program *Scope) string {
	var b strings.Builder
	for _, stmt := range program.Body {
		writeStatement(&b, stmt, 0)
		b.WriteString(";\n")
	}
	return b.String()
}

// Format renders any node as source text.
func Format(node Node) string {
	var b strings.Builder
	switch n := node.(type) {
	case Expression:
		writeExpression(&b, n, 0)
	case Statement:
		writeStatement(&b, n, 0)
	}
	return b.String()
}

func writeStatement(b *strings.Builder, stmt Statement, depth int) {
	switch n := stmt.(type) {
	case *VariableAssign:
		b.WriteString("let ")
		b.WriteString(n.Name)
		b.WriteString(" = ")
		writeExpression(b, n.Value, depth)
	case *PrintStatement:
		b.WriteString("print ")
		writeExpression(b, n.Expression, depth)
	case *ReturnStatement:
		b.WriteString("return ")
		writeExpression(b, n.Expression, depth)
	case Expression:
		writeExpression(b, n, depth)
	}
}

func writeScope(b *strings.Builder, scope *Scope, depth int) {
	if len(scope.Body) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for _, stmt := range scope.Body {
		b.WriteString(strings.Repeat("  ", depth+1))
		writeStatement(b, stmt, depth+1)
		b.WriteString(";\n")
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}")
}

func writeExpression(b *strings.Builder, expr Expression, depth int) {
	switch n := expr.(type) {
	case *NumberLiteral:
		b.WriteString(formatNumber(n))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *StringLiteral:
		b.WriteString(QuoteString(n.Value))
	case *VariableAccess:
		b.WriteString(n.Name)
	case *ArrayLiteral:
		b.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpression(b, el, depth)
		}
		b.WriteString("]")
		if n.Length != nil {
			b.WriteString(": [")
			writeExpression(b, n.Length, depth)
			b.WriteString("]")
		}
	case *Scope:
		writeScope(b, n, depth)
	case *IfExpression:
		b.WriteString("if ")
		writeExpression(b, n.Condition, depth)
		b.WriteString(" then ")
		writeScope(b, n.Action, depth)
	case *UnaryExpression:
		b.WriteString(string(n.Operator))
		writeOperand(b, n.Operand, tierUnary, depth)
	case *BinaryExpression:
		left, right := operandTiers(n.Operator)
		writeOperand(b, n.Left, left, depth)
		b.WriteString(" ")
		b.WriteString(string(n.Operator))
		b.WriteString(" ")
		writeOperand(b, n.Right, right, depth)
	}
}

func writeOperand(b *strings.Builder, expr Expression, min int, depth int) {
	if tierOf(expr) >= min {
		writeExpression(b, expr, depth)
		return
	}
	b.WriteString("(")
	writeExpression(b, expr, depth)
	b.WriteString(")")
}

// operandTiers returns the loosest tier accepted on each side of op.
func operandTiers(op BinaryOperator) (int, int) {
	switch op {
	case BinaryPower:
		return tierAtom, tierUnary
	case BinaryMultiply, BinaryDivide:
		return tierTerm, tierUnary
	case BinaryAdd, BinarySubtract:
		return tierArithmetic, tierTerm
	default:
		return tierComparison, tierArithmetic
	}
}

func tierOf(expr Expression) int {
	switch n := expr.(type) {
	case *UnaryExpression:
		return tierUnary
	case *BinaryExpression:
		switch n.Operator {
		case BinaryPower:
			return tierPower
		case BinaryMultiply, BinaryDivide:
			return tierTerm
		case BinaryAdd, BinarySubtract:
			return tierArithmetic
		default:
			return tierComparison
		}
	default:
		return tierAtom
	}
}

func formatNumber(n *NumberLiteral) string {
	if !n.IsFloat() {
		return n.Int.String()
	}
	text := strconv.FormatFloat(n.Float, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// QuoteString renders s as a Delta string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
