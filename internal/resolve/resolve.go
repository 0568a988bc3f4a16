// Package resolve computes the chain of keys and array indexes enclosing an
// offset in a JSON document or in an object literal inside script source.
//
// Resolution is a pure function of its inputs and is safe for concurrent use.
package resolve

import (
	"errors"
	"fmt"

	"github.com/jacoelho/hoverpath/internal/pathing"
	"github.com/jacoelho/hoverpath/internal/tree"
)

// ErrOffsetOutOfRange indicates an offset outside [0, len(text)).
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Resolve returns the path of the token at offset, a byte offset into text.
// It reports false when the offset is not inside a key, value or element of
// a located structure, when the JSON document is malformed in ModeJSON, or
// when no enclosing literal exists in ModeScript.
//
// Hovering a key yields the path of the object holding it. An offset on a
// delimiter or whitespace inside a container yields the container's path.
func Resolve(text string, offset int, mode Mode) (pathing.Path, bool) {
	if offset < 0 || offset >= len(text) {
		return nil, false
	}

	switch mode {
	case ModeJSON:
		return resolveJSON(text, offset)
	case ModeScript:
		return resolveScript(text, offset)
	}

	root, err := tree.Parse(text, tree.Strict)
	if err != nil {
		return resolveScript(text, offset)
	}
	return walk(root, offset, nil)
}

// ResolveChecked is Resolve with the offset validated at the boundary.
func ResolveChecked(text string, offset int, mode Mode) (pathing.Path, bool, error) {
	if offset < 0 || offset >= len(text) {
		return nil, false, fmt.Errorf("%w: %d not in [0, %d)", ErrOffsetOutOfRange, offset, len(text))
	}

	path, ok := Resolve(text, offset, mode)
	return path, ok, nil
}

func resolveJSON(text string, offset int) (pathing.Path, bool) {
	root, err := tree.Parse(text, tree.Strict)
	if err != nil {
		return nil, false
	}
	return walk(root, offset, nil)
}

// walk descends from node towards offset, appending one accessor per
// container entered.
func walk(node *tree.Node, offset int, path pathing.Path) (pathing.Path, bool) {
	if !node.Span.Contains(offset) {
		return nil, false
	}

	switch node.Kind {
	case tree.KindObject:
		for _, member := range node.Members {
			if member.HasKey && member.KeySpan.Contains(offset) {
				return path, true
			}
			if member.HasKey && member.Value != nil && member.Value.Span.Contains(offset) {
				return walk(member.Value, offset, path.Append(pathing.Key(member.Key)))
			}
		}
	case tree.KindArray:
		for index, element := range node.Elements {
			if element.Span.Contains(offset) {
				return walk(element, offset, path.Append(pathing.Index(index)))
			}
		}
	}

	return path, true
}
