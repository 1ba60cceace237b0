package interpreter

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"delta/interpreter-go/pkg/ast"
	"delta/interpreter-go/pkg/runtime"
)

// Interpreter evaluates Delta syntax trees against a scope chain. It is not
// safe for concurrent use.
type Interpreter struct {
	scopes *runtime.ScopeChain
	out    io.Writer
	log    logrus.FieldLogger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the sink that print writes to. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithLogger sets the logger used for trace output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(i *Interpreter) {
		i.log = log
	}
}

// New returns an interpreter with an empty root frame.
func New(opts ...Option) *Interpreter {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	i := &Interpreter{
		scopes: runtime.NewScopeChain(),
		out:    os.Stdout,
		log:    quiet,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Scopes exposes the interpreter's scope chain.
func (i *Interpreter) Scopes() *runtime.ScopeChain {
	return i.scopes
}

// Run evaluates program as a scope in a fresh child of the root frame and
// returns the scope's result: the value of a top-level return, or None.
func (i *Interpreter) Run(program *ast.Scope) (runtime.Value, error) {
	return i.evaluateScope(program)
}

// Exec evaluates the statements of program directly in the root frame, so
// bindings persist across calls. It returns the value of the last statement,
// or the value of a return statement that ended the program early.
func (i *Interpreter) Exec(program *ast.Scope) (runtime.Value, error) {
	depth := i.scopes.Depth()
	defer i.unwindTo(depth)

	var last runtime.Value = runtime.None
	for _, stmt := range program.Body {
		val, err := i.evaluateStatement(stmt)
		if err != nil {
			if sig, ok := err.(returnSignal); ok {
				return sig.value, nil
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) unwindTo(depth int) {
	for i.scopes.Depth() > depth {
		i.scopes.Pop()
	}
}
