package parser

import (
	"strings"

	"delta/interpreter-go/pkg/lexer"
)

func joinAlternatives(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
	}
}

func quoted(kind lexer.Kind) string {
	return "'" + kind.Spelling() + "'"
}
