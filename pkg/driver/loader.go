// Package driver loads Delta scripts and project manifests from disk.
package driver

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/lexer"
	"delta/interpreter-go/pkg/parser"
)

// SourceExtension is the conventional extension for Delta scripts.
const SourceExtension = ".delta"

// Program is a script taken through lexing and parsing.
type Program struct {
	Name   string
	Source string
	Tokens []lexer.Token
	Root   *ast.Scope
}

// Loader reads scripts and turns them into syntax trees.
type Loader struct {
	log logrus.FieldLogger
}

// NewLoader returns a loader that reports timings to log. A nil logger
// discards output.
func NewLoader(log logrus.FieldLogger) *Loader {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	return &Loader{log: log}
}

// Load reads path and compiles its contents.
func (l *Loader) Load(path string) (*Program, error) {
	source, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Compile(path, source)
}

// ReadFile returns the contents of a script on disk.
func (l *Loader) ReadFile(path string) (string, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	l.log.WithFields(logrus.Fields{
		"path":    path,
		"bytes":   len(data),
		"elapsed": time.Since(start),
	}).Debug("read source")
	return string(data), nil
}

// Tokenize lexes source. name labels log entries and errors.
func (l *Loader) Tokenize(name, source string) ([]lexer.Token, error) {
	start := time.Now()
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	l.log.WithFields(logrus.Fields{
		"source":  name,
		"tokens":  len(tokens),
		"elapsed": time.Since(start),
	}).Debug("lexed")
	return tokens, nil
}

// Compile lexes and parses source. Language errors keep their type, so
// errors.Is against lexer.ErrLex or parser.ErrParse still holds.
func (l *Loader) Compile(name, source string) (*Program, error) {
	tokens, err := l.Tokenize(name, source)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	root, err := parser.Parse(tokens)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	l.log.WithFields(logrus.Fields{
		"source":     name,
		"statements": len(root.Body),
		"elapsed":    time.Since(start),
	}).Debug("parsed")
	return &Program{Name: name, Source: source, Tokens: tokens, Root: root}, nil
}
