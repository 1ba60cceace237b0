// Package lexer turns Delta source text into a token stream.
package lexer

import (
	"math/big"
	"strconv"
	"strings"
)

const (
	commentChar       = '#'
	openBlockComment  = '>'
	closeBlockComment = '<'
	operatorAlphabet  = ";+-*/^(){}[],:=!<>"
)

type lexer struct {
	src    string
	pos    Position
	tokens []Token
}

// Lex scans source into tokens. The stream is always wrapped in an implicit
// scope-begin token and closed by an implicit scope-end token followed by EOF,
// so the parser can treat any program as a scope body.
func Lex(source string) ([]Token, error) {
	l := &lexer{
		src: source,
		pos: Position{Line: 1, Column: 1},
	}
	return l.run()
}

func (l *lexer) run() ([]Token, error) {
	l.tokens = append(l.tokens, Token{Kind: KindScopeBegin, Lexeme: "{", Pos: l.pos, Implicit: true})

	for !l.atEnd() {
		ch := l.current()
		var err error
		switch {
		case ch == commentChar:
			err = l.skipComment()
		case isLetter(ch):
			l.lexIdentifier()
		case isDigit(ch) || ch == '.':
			err = l.lexNumber()
		case ch == '"':
			err = l.lexString()
		case strings.IndexByte(operatorAlphabet, ch) >= 0:
			err = l.lexOperator()
		default:
			l.advance()
		}
		if err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens,
		Token{Kind: KindScopeEnd, Lexeme: "}", Pos: l.pos, Implicit: true},
		Token{Kind: KindEOF, Pos: l.pos, Implicit: true},
	)
	return l.tokens, nil
}

func (l *lexer) atEnd() bool {
	return l.pos.Offset >= len(l.src)
}

func (l *lexer) current() byte {
	return l.peek(0)
}

func (l *lexer) peek(n int) byte {
	idx := l.pos.Offset + n
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *lexer) advance() {
	if l.atEnd() {
		return
	}
	ch := l.src[l.pos.Offset]
	l.pos.Offset++
	switch {
	case ch == '\n':
		l.pos.Char++
		l.pos.Line++
		l.pos.Column = 1
	case ch&0xC0 == 0x80:
		// UTF-8 continuation byte; the lead byte already moved the position.
	default:
		l.pos.Char++
		l.pos.Column++
	}
}

func (l *lexer) skipComment() error {
	start := l.pos
	if l.peek(1) != openBlockComment {
		for !l.atEnd() && l.current() != '\n' {
			l.advance()
		}
		return nil
	}
	l.advance()
	l.advance()
	for !l.atEnd() {
		if l.current() == closeBlockComment && l.peek(1) == commentChar {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &LexError{Reason: ReasonUnterminatedComment, Text: "#>", Pos: start}
}

func (l *lexer) lexIdentifier() {
	start := l.pos
	for !l.atEnd() && (isLetter(l.current()) || isDigit(l.current())) {
		l.advance()
	}
	text := l.src[start.Offset:l.pos.Offset]
	kind := KindIdent
	if IsKeyword(text) {
		kind = KindKeyword
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: text, Text: text, Pos: start})
}

func (l *lexer) lexNumber() error {
	start := l.pos
	dots := 0
	for !l.atEnd() && (isDigit(l.current()) || l.current() == '.') {
		if l.current() == '.' {
			dots++
		}
		l.advance()
	}
	text := l.src[start.Offset:l.pos.Offset]

	switch {
	case dots == 0:
		value, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return &LexError{Reason: "malformed number", Text: text, Pos: start}
		}
		l.tokens = append(l.tokens, Token{Kind: KindInt, Lexeme: text, Int: value, Pos: start})
	case dots == 1 && text != ".":
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &LexError{Reason: "number out of range", Text: text, Pos: start}
		}
		l.tokens = append(l.tokens, Token{Kind: KindFloat, Lexeme: text, Float: value, Pos: start})
	default:
		return &LexError{Reason: "malformed number", Text: text, Pos: start}
	}
	return nil
}

func (l *lexer) lexString() error {
	start := l.pos
	l.advance()
	var buf strings.Builder
	for {
		if l.atEnd() {
			return &LexError{Reason: "unterminated string", Text: l.src[start.Offset:], Pos: start}
		}
		ch := l.current()
		switch ch {
		case '"':
			l.advance()
			l.tokens = append(l.tokens, Token{
				Kind:   KindString,
				Lexeme: l.src[start.Offset:l.pos.Offset],
				Text:   buf.String(),
				Pos:    start,
			})
			return nil
		case '\\':
			escPos := l.pos
			l.advance()
			if l.atEnd() {
				return &LexError{Reason: "unterminated string", Text: l.src[start.Offset:], Pos: start}
			}
			switch esc := l.current(); esc {
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			default:
				return &LexError{Reason: "unknown escape sequence", Text: `\` + string(esc), Pos: escPos}
			}
			l.advance()
		default:
			buf.WriteByte(ch)
			l.advance()
		}
	}
}

func (l *lexer) lexOperator() error {
	start := l.pos
	if l.pos.Offset+2 <= len(l.src) {
		if kind, ok := operators[l.src[l.pos.Offset:l.pos.Offset+2]]; ok {
			l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: l.src[l.pos.Offset : l.pos.Offset+2], Pos: start})
			l.advance()
			l.advance()
			return nil
		}
	}
	if kind, ok := operators[l.src[l.pos.Offset:l.pos.Offset+1]]; ok {
		l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: l.src[l.pos.Offset : l.pos.Offset+1], Pos: start})
		l.advance()
		return nil
	}
	end := l.pos.Offset
	for end < len(l.src) && strings.IndexByte(operatorAlphabet, l.src[end]) >= 0 {
		end++
	}
	return &LexError{Reason: "unrecognised operator", Text: l.src[l.pos.Offset:end], Pos: start}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
