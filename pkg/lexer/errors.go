package lexer

import (
	"errors"
	"fmt"
)

// ErrLex matches every LexError through errors.Is.
var ErrLex = errors.New("lex error")

// ReasonUnterminatedComment is the Reason of a block comment left open at the
// end of the source.
const ReasonUnterminatedComment = "unterminated block comment"

// LexError reports source text the lexer could not classify.
type LexError struct {
	Reason string
	Text   string
	Pos    Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s (offset %d): %s %q", e.Pos, e.Pos.Char, e.Reason, e.Text)
}

// Incomplete reports whether appending more source could resolve the error.
func (e *LexError) Incomplete() bool {
	return e.Reason == ReasonUnterminatedComment
}

// Is lets errors.Is(err, ErrLex) match.
func (e *LexError) Is(target error) bool {
	return target == ErrLex
}
