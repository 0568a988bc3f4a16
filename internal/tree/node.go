package tree

import "github.com/jacoelho/hoverpath/internal/syntax"

// Kind classifies a node.
type Kind uint8

const (
	KindObject Kind = iota
	KindArray
	KindScalar
	// KindExpression is a script value that is not a plain literal, kept as an
	// opaque span (calls, arrow functions, operators, ...).
	KindExpression
	// KindHole is an elided array element, as in [1, , 3].
	KindHole
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindScalar:
		return "scalar"
	case KindExpression:
		return "expression"
	case KindHole:
		return "hole"
	}
	return "unknown"
}

// Node is a value annotated with its source span.
type Node struct {
	Kind     Kind
	Span     syntax.Span
	Members  []Member // objects
	Elements []*Node  // arrays
}

// IsContainer reports whether the node is an object or an array.
func (n *Node) IsContainer() bool {
	return n.Kind == KindObject || n.Kind == KindArray
}

// Member is one object entry. Shorthand properties have a key and no value;
// spreads, methods and computed keys have neither and only a span.
type Member struct {
	Key     string
	KeySpan syntax.Span
	HasKey  bool
	Value   *Node
	Span    syntax.Span
}
