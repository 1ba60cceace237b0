package lexer

import (
	"fmt"
	"math/big"
	"strconv"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	KindInt    Kind = iota // integer literal
	KindFloat              // floating point literal
	KindString             // string literal
	KindIdent              // identifier
	KindKeyword            // reserved word

	KindEOS // ;
	KindEOF

	KindPlus     // +
	KindMinus    // -
	KindMultiply // *
	KindDivide   // /
	KindPower    // ^
	KindLParen   // (
	KindRParen   // )
	KindLSquare  // [
	KindRSquare  // ]
	KindComma    // ,
	KindColon    // :
	KindAssign   // =

	KindEquals        // ==
	KindNotEquals     // !=
	KindLess          // <
	KindGreater       // >
	KindLessEquals    // <=
	KindGreaterEquals // >=

	KindScopeBegin // {
	KindScopeEnd   // }
)

var kindNames = map[Kind]string{
	KindInt:           "INT",
	KindFloat:         "FLOAT",
	KindString:        "STRING",
	KindIdent:         "IDENT",
	KindKeyword:       "KEYWORD",
	KindEOS:           "EOS",
	KindEOF:           "EOF",
	KindPlus:          "OP_PLUS",
	KindMinus:         "OP_MINUS",
	KindMultiply:      "OP_MULTIPLY",
	KindDivide:        "OP_DIVIDE",
	KindPower:         "OP_POWER",
	KindLParen:        "OP_LPAREN",
	KindRParen:        "OP_RPAREN",
	KindLSquare:       "OP_LSQUARE",
	KindRSquare:       "OP_RSQUARE",
	KindComma:         "OP_COMMA",
	KindColon:         "OP_COLON",
	KindAssign:        "OP_ASSIGN",
	KindEquals:        "OP_EQUALS",
	KindNotEquals:     "OP_NEQUALS",
	KindLess:          "OP_LESS",
	KindGreater:       "OP_GREATER",
	KindLessEquals:    "OP_LEQUALS",
	KindGreaterEquals: "OP_GEQUALS",
	KindScopeBegin:    "OP_SCOPE_BEGIN",
	KindScopeEnd:      "OP_SCOPE_END",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Keywords recognised by the lexer.
const (
	KeywordPrint  = "print"
	KeywordReturn = "return"
	KeywordLet    = "let"
	KeywordIf     = "if"
	KeywordThen   = "then"
	KeywordTrue   = "true"
	KeywordFalse  = "false"
)

var keywords = map[string]struct{}{
	KeywordPrint:  {},
	KeywordReturn: {},
	KeywordLet:    {},
	KeywordIf:     {},
	KeywordThen:   {},
	KeywordTrue:   {},
	KeywordFalse:  {},
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// operators maps every operator and punctuation spelling to its kind.
var operators = map[string]Kind{
	";":  KindEOS,
	"+":  KindPlus,
	"-":  KindMinus,
	"*":  KindMultiply,
	"/":  KindDivide,
	"^":  KindPower,
	"(":  KindLParen,
	")":  KindRParen,
	"[":  KindLSquare,
	"]":  KindRSquare,
	",":  KindComma,
	":":  KindColon,
	"=":  KindAssign,
	"==": KindEquals,
	"!=": KindNotEquals,
	"<":  KindLess,
	">":  KindGreater,
	"<=": KindLessEquals,
	">=": KindGreaterEquals,
	"{":  KindScopeBegin,
	"}":  KindScopeEnd,
}

// Spelling returns the source spelling of an operator kind, or "" for literal kinds.
func (k Kind) Spelling() string {
	for text, kind := range operators {
		if kind == k {
			return text
		}
	}
	return ""
}

// Position locates a token in the source text. Line and Column are 1-based;
// Offset is a 0-based byte offset and Char the 0-based character offset.
type Position struct {
	Offset int
	Char   int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a classified lexical unit. Int, Float and Text hold the payload for
// integer, float and string/identifier/keyword tokens respectively.
type Token struct {
	Kind     Kind
	Lexeme   string
	Int      *big.Int
	Float    float64
	Text     string
	Pos      Position
	Implicit bool
}

// Is reports whether the token is the given keyword.
func (t Token) Is(keyword string) bool {
	return t.Kind == KindKeyword && t.Text == keyword
}

func (t Token) String() string {
	switch t.Kind {
	case KindInt:
		if t.Int != nil {
			return fmt.Sprintf("%s(%s)", t.Kind, t.Int.String())
		}
	case KindFloat:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	case KindString:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case KindIdent, KindKeyword:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case KindEOF:
		return "end of file"
	case KindScopeEnd:
		if t.Implicit {
			return "end of input"
		}
	case KindScopeBegin:
		if t.Implicit {
			return "start of input"
		}
	case KindInt, KindFloat:
		return fmt.Sprintf("number %s", t.Lexeme)
	case KindString:
		return fmt.Sprintf("string %q", t.Text)
	case KindIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case KindKeyword:
		return fmt.Sprintf("keyword %q", t.Text)
	}
	return fmt.Sprintf("%q", t.Kind.Spelling())
}
