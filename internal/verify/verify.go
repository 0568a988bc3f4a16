// Package verify re-applies a resolved path to its JSON document through a
// JSONPath engine.
package verify

import (
	"encoding/json"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/hoverpath/internal/pathing"
)

// Container selects the node that path addresses in the JSON text and
// returns its decoded value. Exactly one node must match.
func Container(text string, path pathing.Path) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	return Select(data, path)
}

// Select applies path to an already decoded document.
func Select(data any, path pathing.Path) (any, error) {
	expr := path.JSONPath()

	query, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, expr, err)
	}

	results := query.Select(data)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, expr)
	case 1:
		return results[0], nil
	default:
		return nil, fmt.Errorf("%w: %s selected %d nodes", ErrAmbiguous, expr, len(results))
	}
}
