package parser

import (
	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
)

func toPosition(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Column: pos.Column}
}

// tokenEnd returns the position just past the token's lexeme. Implicit tokens
// occupy no source text.
func tokenEnd(tok lexer.Token) ast.Position {
	end := toPosition(tok.Pos)
	if tok.Implicit {
		return end
	}
	for _, r := range tok.Lexeme {
		if r == '\n' {
			end.Line++
			end.Column = 1
			continue
		}
		end.Column++
	}
	return end
}

// finish stamps node with a span from start to the end of the last consumed
// token.
func finish[T ast.Node](p *Parser, node T, start lexer.Position) T {
	ast.SetSpan(node, ast.Span{Start: toPosition(start), End: p.prevEnd})
	return node
}
