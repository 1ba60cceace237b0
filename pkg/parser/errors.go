package parser

import (
	"errors"
	"fmt"

	"delta/interpreter-go/pkg/lexer"
)

// ErrParse matches every ParseError through errors.Is.
var ErrParse = errors.New("parse error")

// ParseError reports a token the grammar does not allow at its position.
type ParseError struct {
	Token    lexer.Token
	Expected []string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at %s: unexpected %s", e.Token.Pos, e.Token.Describe())
	if len(e.Expected) > 0 {
		msg += ", expected " + joinAlternatives(e.Expected)
	}
	return msg
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
