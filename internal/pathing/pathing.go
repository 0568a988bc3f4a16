package pathing

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes object keys from array indexes.
type Kind uint8

const (
	KindKey Kind = iota
	KindIndex
)

// Accessor is a single path segment.
type Accessor struct {
	Kind  Kind
	Name  string
	Index int
}

// Key builds an object property accessor.
func Key(name string) Accessor {
	return Accessor{Kind: KindKey, Name: name}
}

// Index builds a zero-based array position accessor.
func Index(index int) Accessor {
	return Accessor{Kind: KindIndex, Index: index}
}

func (a Accessor) IsIndex() bool {
	return a.Kind == KindIndex
}

func (a Accessor) String() string {
	if a.IsIndex() {
		return "[" + strconv.Itoa(a.Index) + "]"
	}
	return a.Name
}

// Path is the ordered chain of accessors from the document root.
type Path []Accessor

// Append returns a new path with the accessor added, leaving p untouched.
func (p Path) Append(accessor Accessor) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, accessor)
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String renders keys joined with "." and indexes as "[n]".
// The root path renders as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for i, accessor := range p {
		if accessor.IsIndex() {
			b.WriteString(accessor.String())
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(accessor.Name)
	}
	return b.String()
}

// JSONPath renders the path as a normalized JSONPath query starting at "$".
// Keys that are not plain identifiers use the bracketed string form.
func (p Path) JSONPath() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, accessor := range p {
		if accessor.IsIndex() {
			fmt.Fprintf(&b, "[%d]", accessor.Index)
			continue
		}
		if isIdentifier(accessor.Name) {
			b.WriteByte('.')
			b.WriteString(accessor.Name)
			continue
		}
		b.WriteString("['")
		b.WriteString(escapeQuoted(accessor.Name))
		b.WriteString("']")
	}
	return b.String()
}

// Equal reports whether both paths hold the same accessors in order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func escapeQuoted(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || isASCIIAlpha(r) {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func isASCIIAlpha(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
