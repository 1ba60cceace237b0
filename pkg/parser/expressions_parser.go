package parser

import (
	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
)

type subParser func() (ast.Expression, error)

type operatorSet map[lexer.Kind]ast.BinaryOperator

var (
	comparisonOperators = operatorSet{
		lexer.KindEquals:        ast.BinaryEqual,
		lexer.KindNotEquals:     ast.BinaryNotEqual,
		lexer.KindLess:          ast.BinaryLess,
		lexer.KindGreater:       ast.BinaryGreater,
		lexer.KindLessEquals:    ast.BinaryLessEqual,
		lexer.KindGreaterEquals: ast.BinaryGreaterEqual,
	}
	arithmeticOperators = operatorSet{
		lexer.KindPlus:  ast.BinaryAdd,
		lexer.KindMinus: ast.BinarySubtract,
	}
	termOperators = operatorSet{
		lexer.KindMultiply: ast.BinaryMultiply,
		lexer.KindDivide:   ast.BinaryDivide,
	}
	powerOperators = operatorSet{
		lexer.KindPower: ast.BinaryPower,
	}
	unaryOperators = map[lexer.Kind]ast.UnaryOperator{
		lexer.KindPlus:  ast.UnaryAbs,
		lexer.KindMinus: ast.UnaryNegate,
	}
)

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	return p.binaryOp(p.parseArithmetic, comparisonOperators, p.parseArithmetic)
}

func (p *Parser) parseArithmetic() (ast.Expression, error) {
	return p.binaryOp(p.parseTerm, arithmeticOperators, p.parseTerm)
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	return p.binaryOp(p.parseUnary, termOperators, p.parseUnary)
}

// parseUnary handles prefix signs. The operand is another unary or a power,
// so `-2 ^ 2` negates the whole power.
func (p *Parser) parseUnary() (ast.Expression, error) {
	op, ok := unaryOperators[p.current().Kind]
	if !ok {
		return p.parsePower()
	}
	start := p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return finish(p, ast.NewUnaryExpression(op, operand), start.Pos), nil
}

// parsePower is right associative: its right operand re-enters the unary tier.
func (p *Parser) parsePower() (ast.Expression, error) {
	return p.binaryOp(p.parseAtom, powerOperators, p.parseUnary)
}

// binaryOp parses `left (op right)*`, folding to the left.
func (p *Parser) binaryOp(parseLeft subParser, ops operatorSet, parseRight subParser) (ast.Expression, error) {
	start := p.current().Pos
	left, err := parseLeft()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := parseRight()
		if err != nil {
			return nil, err
		}
		left = finish(p, ast.NewBinaryExpression(op, left, right), start)
	}
}
