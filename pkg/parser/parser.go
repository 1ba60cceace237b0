// Package parser builds Delta syntax trees from lexer tokens with a
// recursive-descent parser and one token of lookahead.
package parser

import (
	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
)

// Parser consumes a token stream produced by lexer.Lex.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	prevEnd ast.Position
}

// NewParser prepares a parser over tokens.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse reads the implicit top-level scope and requires EOF right after it.
func Parse(tokens []lexer.Token) (*ast.Scope, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseSource lexes and parses source in one step.
func ParseSource(source string) (*ast.Scope, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses the whole stream as a program.
func (p *Parser) ParseProgram() (*ast.Scope, error) {
	if len(p.tokens) == 0 {
		return nil, &ParseError{Token: lexer.Token{Kind: lexer.KindEOF}, Expected: []string{"'{'"}}
	}
	program, err := p.parseScope()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.KindEOF) {
		return nil, p.unexpected("end of file")
	}
	return program, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) atKeyword(keyword string) bool {
	return p.current().Is(keyword)
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	p.prevEnd = tokenEnd(tok)
	return tok
}

func (p *Parser) expect(kind lexer.Kind, description string) (lexer.Token, error) {
	if !p.at(kind) {
		return lexer.Token{}, p.unexpected(description)
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(keyword string) (lexer.Token, error) {
	if !p.atKeyword(keyword) {
		return lexer.Token{}, p.unexpected("'" + keyword + "'")
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected ...string) *ParseError {
	return &ParseError{Token: p.current(), Expected: expected}
}
