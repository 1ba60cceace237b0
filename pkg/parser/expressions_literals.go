package parser

import (
	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
)

func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.KindInt:
		p.advance()
		return finish(p, ast.NewIntegerLiteral(tok.Int), tok.Pos), nil
	case lexer.KindFloat:
		p.advance()
		return finish(p, ast.NewFloatLiteral(tok.Float), tok.Pos), nil
	case lexer.KindString:
		p.advance()
		return finish(p, ast.NewStringLiteral(tok.Text), tok.Pos), nil
	case lexer.KindIdent:
		p.advance()
		return finish(p, ast.NewVariableAccess(tok.Text), tok.Pos), nil
	case lexer.KindLParen:
		return p.parseParenthesized()
	case lexer.KindLSquare:
		return p.parseArray()
	case lexer.KindKeyword:
		switch tok.Text {
		case lexer.KeywordTrue, lexer.KeywordFalse:
			p.advance()
			return finish(p, ast.NewBooleanLiteral(tok.Text == lexer.KeywordTrue), tok.Pos), nil
		case lexer.KeywordIf:
			return p.parseIf()
		}
	}
	return nil, p.unexpected("expression")
}

func (p *Parser) parseParenthesized() (ast.Expression, error) {
	p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindRParen, quoted(lexer.KindRParen)); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseArray reads `[e1, e2, ...]` with an optional `: [N]` length annotation.
func (p *Parser) parseArray() (ast.Expression, error) {
	open := p.advance()
	elements := make([]ast.Expression, 0)
	if !p.at(lexer.KindRSquare) {
		for {
			el, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if !p.at(lexer.KindComma) {
				break
			}
			p.advance()
		}
	}
	if !p.at(lexer.KindRSquare) {
		return nil, p.unexpected(quoted(lexer.KindComma), quoted(lexer.KindRSquare))
	}
	p.advance()

	var length ast.Expression
	if p.at(lexer.KindColon) {
		p.advance()
		if _, err := p.expect(lexer.KindLSquare, quoted(lexer.KindLSquare)); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.KindRSquare, quoted(lexer.KindRSquare)); err != nil {
			return nil, err
		}
		length = expr
	}
	return finish(p, ast.NewArrayLiteral(length, elements), open.Pos), nil
}

// parseIf reads `if COND then { ... }` where COND is a braced scope or an
// expression.
func (p *Parser) parseIf() (ast.Expression, error) {
	start := p.advance()
	var (
		condition ast.Expression
		err       error
	)
	if p.at(lexer.KindScopeBegin) {
		condition, err = p.parseScope()
	} else {
		condition, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(lexer.KeywordThen); err != nil {
		return nil, err
	}
	if !p.at(lexer.KindScopeBegin) {
		return nil, p.unexpected(quoted(lexer.KindScopeBegin))
	}
	action, err := p.parseScope()
	if err != nil {
		return nil, err
	}
	return finish(p, ast.NewIfExpression(condition, action), start.Pos), nil
}
