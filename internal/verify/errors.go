package verify

import (
	"errors"
)

// Sentinel errors for path verification, checked with errors.Is().
var (
	// ErrNotJSON indicates the document is not a JSON document, so a path
	// resolved in it cannot be checked by a JSONPath query.
	ErrNotJSON = errors.New("document is not JSON")

	// ErrQuery indicates the path did not render to a valid JSONPath query.
	ErrQuery = errors.New("invalid query")

	// ErrNotFound indicates the query selected no node.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates the query selected more than one node.
	ErrAmbiguous = errors.New("ambiguous path")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
