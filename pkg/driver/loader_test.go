package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"delta/interpreter-go/pkg/lexer"
	"delta/interpreter-go/pkg/parser"
)

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main"+SourceExtension)
	writeFile(t, path, "let x = 1;\nprint x + 2;\n")

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	program, err := NewLoader(logger).Load(path)
	require.NoError(t, err)
	require.Equal(t, path, program.Name)
	require.Len(t, program.Root.Body, 2)
	require.Equal(t, lexer.KindScopeBegin, program.Tokens[0].Kind)
	require.True(t, program.Tokens[0].Implicit)

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	require.Equal(t, []string{"read source", "lexed", "parsed"}, messages)
	require.Equal(t, 2, hook.LastEntry().Data["statements"])
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "nope.delta"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), "read ")
}

func TestLoaderKeepsLanguageErrors(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Compile("bad.delta", `print "open`)
	require.ErrorIs(t, err, lexer.ErrLex)
	require.Contains(t, err.Error(), "bad.delta: lex error")

	_, err = loader.Compile("bad.delta", "print 1 print 2")
	require.ErrorIs(t, err, parser.ErrParse)
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "print", perr.Token.Lexeme)
}

func TestLoaderTokenize(t *testing.T) {
	tokens, err := NewLoader(nil).Tokenize("-e", "1 + 2")
	require.NoError(t, err)

	kinds := make([]lexer.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []lexer.Kind{
		lexer.KindScopeBegin,
		lexer.KindInt,
		lexer.KindPlus,
		lexer.KindInt,
		lexer.KindScopeEnd,
		lexer.KindEOF,
	}, kinds)
}
