package runtime

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrType matches every TypeError through errors.Is.
	ErrType = errors.New("type error")
	// ErrValue matches every ValueError through errors.Is.
	ErrValue = errors.New("value error")
)

// TypeError reports an operation applied to values of the wrong kind.
type TypeError struct {
	Operator string
	Operands []Kind
	Message  string
}

func (e *TypeError) Error() string {
	if e.Message != "" {
		return "type error: " + e.Message
	}
	kinds := make([]string, len(e.Operands))
	for i, k := range e.Operands {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("type error: unsupported operand types for %s: %s", e.Operator, strings.Join(kinds, " and "))
}

func (e *TypeError) Is(target error) bool { return target == ErrType }

// NewTypeError builds a TypeError with a free-form message.
func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

func operandError(op string, operands ...Value) *TypeError {
	kinds := make([]Kind, len(operands))
	for i, v := range operands {
		kinds[i] = v.Kind()
	}
	return &TypeError{Operator: op, Operands: kinds}
}

// ValueError reports an operation whose operands have the right kind but an
// unusable value.
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string { return "value error: " + e.Message }

func (e *ValueError) Is(target error) bool { return target == ErrValue }

func NewValueError(format string, args ...any) *ValueError {
	return &ValueError{Message: fmt.Sprintf(format, args...)}
}
