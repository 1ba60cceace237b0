package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"delta/interpreter-go/pkg/driver"
	"delta/interpreter-go/pkg/interpreter"
	"delta/interpreter-go/pkg/lexer"
	"delta/interpreter-go/pkg/runtime"
)

const (
	replPrompt         = "delta> "
	replContinuePrompt = "...> "
	replSourceName     = "<repl>"
)

// runRepl reads statements line by line and evaluates them against one
// persistent global frame. Input with unclosed braces or an open block
// comment continues on the next line. Errors are reported and the session
// carries on.
func (c *cli) runRepl(args []string) int {
	opts, err := c.parseOptions("repl", "v", args)
	if err != nil {
		return c.usageError("%v", err)
	}
	if len(opts.rest) > 0 {
		return c.usageError("delta repl does not take arguments (received %s)", strings.Join(opts.rest, " "))
	}
	log, err := c.newLogger(opts.verbosity, "")
	if err != nil {
		return c.usageError("%v", err)
	}

	loader := driver.NewLoader(log)
	interp := interpreter.New(interpreter.WithOutput(c.stdout), interpreter.WithLogger(log))
	scanner := bufio.NewScanner(c.stdin)

	var pending strings.Builder
	fmt.Fprint(c.stdout, replPrompt)
	for scanner.Scan() {
		line := scanner.Text()
		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				fmt.Fprint(c.stdout, replPrompt)
				continue
			case ":quit", ":q", "exit":
				return exitOK
			}
		}
		pending.WriteString(line)
		pending.WriteString("\n")

		source := pending.String()
		tokens, err := loader.Tokenize(replSourceName, source)
		if needsMoreInput(tokens, err) {
			fmt.Fprint(c.stdout, replContinuePrompt)
			continue
		}
		pending.Reset()
		if err != nil {
			c.fail(err)
		} else {
			c.evalLine(loader, interp, source)
		}
		fmt.Fprint(c.stdout, replPrompt)
	}
	fmt.Fprintln(c.stdout)
	if pending.Len() > 0 {
		c.evalLine(loader, interp, pending.String())
	}
	if err := scanner.Err(); err != nil {
		return c.fail(err)
	}
	return exitOK
}

func (c *cli) evalLine(loader *driver.Loader, interp *interpreter.Interpreter, source string) {
	program, err := loader.Compile(replSourceName, source)
	if err != nil {
		c.fail(err)
		return
	}
	value, err := interp.Exec(program.Root)
	if err != nil {
		c.fail(err)
		return
	}
	if value.Kind() != runtime.KindNone {
		fmt.Fprintln(c.stdout, value.String())
	}
}

func needsMoreInput(tokens []lexer.Token, err error) bool {
	if err != nil {
		var lexErr *lexer.LexError
		return errors.As(err, &lexErr) && lexErr.Incomplete()
	}
	return openScopes(tokens) > 0
}

// openScopes counts explicit braces left open in tokens.
func openScopes(tokens []lexer.Token) int {
	depth := 0
	for _, tok := range tokens {
		if tok.Implicit {
			continue
		}
		switch tok.Kind {
		case lexer.KindScopeBegin:
			depth++
		case lexer.KindScopeEnd:
			depth--
		}
	}
	return depth
}
