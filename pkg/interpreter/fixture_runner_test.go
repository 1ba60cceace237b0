package interpreter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"delta/interpreter-go/pkg/lexer"
	"delta/interpreter-go/pkg/parser"
	"delta/interpreter-go/pkg/runtime"
)

// testingT captures the subset of testing.T used by fixture helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

type fixtureManifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	Expect      struct {
		Stdout []string      `yaml:"stdout"`
		Result *string       `yaml:"result"`
		Error  *fixtureError `yaml:"error"`
	} `yaml:"expect"`
}

type fixtureError struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message"`
}

var fixtureErrorKinds = map[string]error{
	"lex":   lexer.ErrLex,
	"parse": parser.ErrParse,
	"type":  runtime.ErrType,
	"value": runtime.ErrValue,
}

func readManifest(t testingT, dir string) fixtureManifest {
	t.Helper()
	manifestPath := filepath.Join(dir, "manifest.yml")
	file, err := os.Open(manifestPath)
	if err != nil {
		t.Fatalf("read manifest %s: %v", manifestPath, err)
	}
	defer file.Close()

	var manifest fixtureManifest
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", manifestPath, err)
	}
	return manifest
}

// runFixture evaluates dir's entry source and checks it against the manifest.
func runFixture(t testingT, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = "source.delta"
	}
	sourcePath := filepath.Join(dir, entry)
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		t.Fatalf("read source %s: %v", sourcePath, err)
	}

	var out bytes.Buffer
	interp := New(WithOutput(&out))
	var value runtime.Value
	program, err := parser.ParseSource(string(data))
	if err == nil {
		value, err = interp.Run(program)
	}

	if want := manifest.Expect.Error; want != nil {
		if err == nil {
			t.Fatalf("%s: expected %s error", dir, want.Kind)
		}
		sentinel, ok := fixtureErrorKinds[want.Kind]
		if !ok {
			t.Fatalf("%s: unknown error kind %q", dir, want.Kind)
		}
		if !errors.Is(err, sentinel) {
			t.Fatalf("%s: expected %s error, got %v", dir, want.Kind, err)
		}
		if !strings.Contains(err.Error(), want.Message) {
			t.Fatalf("%s: expected error containing %q, got %q", dir, want.Message, err.Error())
		}
	} else if err != nil {
		t.Fatalf("%s: evaluation error: %v", dir, err)
	}

	if manifest.Expect.Stdout != nil {
		got := splitLines(out.String())
		if strings.Join(got, "\n") != strings.Join(manifest.Expect.Stdout, "\n") {
			t.Fatalf("%s: expected stdout %q, got %q", dir, manifest.Expect.Stdout, got)
		}
	}
	if manifest.Expect.Result != nil && err == nil {
		if value.String() != *manifest.Expect.Result {
			t.Fatalf("%s: expected result %s, got %s", dir, *manifest.Expect.Result, value)
		}
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

func walkFixtures(t *testing.T, root string, fn func(dir string)) {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yml")); err == nil {
			fn(dir)
			continue
		}
		walkFixtures(t, dir, fn)
	}
}
