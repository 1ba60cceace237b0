package parser

import (
	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
)

// parseScope reads `{ stmt ; stmt ... }`. Empty statements are skipped.
func (p *Parser) parseScope() (*ast.Scope, error) {
	open, err := p.expect(lexer.KindScopeBegin, quoted(lexer.KindScopeBegin))
	if err != nil {
		return nil, err
	}
	body := make([]ast.Statement, 0)
	for {
		for p.at(lexer.KindEOS) {
			p.advance()
		}
		if p.at(lexer.KindScopeEnd) {
			p.advance()
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		switch {
		case p.at(lexer.KindEOS):
			p.advance()
		case p.at(lexer.KindScopeEnd):
		default:
			return nil, p.unexpected(quoted(lexer.KindEOS), quoted(lexer.KindScopeEnd))
		}
	}
	return finish(p, ast.NewScope(body), open.Pos), nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	start := p.current()
	switch {
	case start.Is(lexer.KeywordPrint):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, ast.NewPrintStatement(expr), start.Pos), nil
	case start.Is(lexer.KeywordReturn):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, ast.NewReturnStatement(expr), start.Pos), nil
	case start.Is(lexer.KeywordLet):
		return p.parseLet()
	case start.Kind == lexer.KindScopeBegin:
		return p.parseScope()
	default:
		return p.parseExpression()
	}
}

func (p *Parser) parseLet() (ast.Statement, error) {
	start := p.advance()
	name, err := p.expect(lexer.KindIdent, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KindAssign, quoted(lexer.KindAssign)); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return finish(p, ast.NewVariableAssign(name.Text, value), start.Pos), nil
}
