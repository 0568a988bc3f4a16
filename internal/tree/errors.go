package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates the text does not form a value in the requested dialect.
	ErrSyntax = errors.New("tree: syntax error")

	// ErrTooDeep indicates nesting beyond MaxDepth.
	ErrTooDeep = errors.New("tree: nesting too deep")
)

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}
