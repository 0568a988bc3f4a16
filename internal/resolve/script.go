package resolve

import (
	"strings"

	"github.com/jacoelho/hoverpath/internal/pathing"
	"github.com/jacoelho/hoverpath/internal/stack"
	"github.com/jacoelho/hoverpath/internal/syntax"
	"github.com/jacoelho/hoverpath/internal/tree"
)

// expressionKeywords are keywords after which "{" or "[" opens a literal.
var expressionKeywords = map[string]bool{
	"return": true, "yield": true, "await": true, "typeof": true, "void": true,
	"delete": true, "throw": true, "in": true, "of": true, "case": true,
	"default": true, "new": true,
}

// bracket is an opening bracket still unclosed at the offset.
type bracket struct {
	kind  syntax.Kind
	index int
}

func resolveScript(text string, offset int) (pathing.Path, bool) {
	tokens := syntax.Significant(syntax.Tokenize(text))

	chain := enclosingBrackets(tokens, offset)
	root := rootLiteral(tokens, chain)
	if root < 0 {
		return nil, false
	}

	node, err := tree.ParseLiteral(text, tokens[root:])
	if err != nil {
		return nil, false
	}

	return walk(node, offset, bindingName(tokens, root))
}

// enclosingBrackets returns the opening brackets that contain offset,
// outermost first. Unbalanced closers pop back to their nearest opener.
func enclosingBrackets(tokens []syntax.Token, offset int) []bracket {
	open := stack.New[bracket]()

	for index, tok := range tokens {
		if tok.Span.Start > offset || tok.Kind == syntax.EOF {
			break
		}

		switch {
		case tok.Kind.IsOpen():
			open.Push(bracket{kind: tok.Kind, index: index})
		case tok.Kind.IsClose():
			if tok.Span.Start == offset {
				return open.ToSlice()
			}
			open.PopTo(func(b bracket) bool { return b.kind.Closer() == tok.Kind })
		}
	}

	return open.ToSlice()
}

// rootLiteral picks the innermost enclosing literal, then climbs through
// directly enclosing literals. It returns the token index of the root
// literal's opening bracket, or -1.
func rootLiteral(tokens []syntax.Token, chain []bracket) int {
	innermost := -1
	for position := len(chain) - 1; position >= 0; position-- {
		if isLiteral(tokens, chain[position].index) {
			innermost = position
			break
		}
	}
	if innermost < 0 {
		return -1
	}

	for innermost > 0 && isLiteral(tokens, chain[innermost-1].index) {
		innermost--
	}

	return chain[innermost].index
}

// isLiteral classifies the bracket at tokens[index] from the token before it.
func isLiteral(tokens []syntax.Token, index int) bool {
	tok := tokens[index]
	if index == 0 {
		return tok.Kind == syntax.LBrace || tok.Kind == syntax.LBracket
	}
	prev := tokens[index-1]

	switch tok.Kind {
	case syntax.LBracket:
		switch prev.Kind {
		case syntax.Ident:
			return expressionKeywords[prev.Text]
		case syntax.RParen, syntax.RBracket, syntax.Number, syntax.String:
			return false
		case syntax.Operator:
			return prev.Text != "?."
		}
		return true
	case syntax.LBrace:
		switch prev.Kind {
		case syntax.Ident:
			return expressionKeywords[prev.Text]
		case syntax.Operator:
			return prev.Text != "=>" && prev.Text != ";"
		case syntax.LParen, syntax.LBracket, syntax.Comma, syntax.Colon:
			return true
		}
	}

	return false
}

// bindingName returns the assignment target of the literal opening at
// tokens[index] as a single-key path, or nil when it is not assigned.
// Member targets such as module.exports keep their dotted form.
func bindingName(tokens []syntax.Token, index int) pathing.Path {
	if index < 2 || !tokens[index-1].Is("=") {
		return nil
	}

	end := index - 2
	if colon := annotationColon(tokens, end); colon > 0 {
		end = colon - 1
	}

	var parts []string
	for position := end; position >= 0; position -= 2 {
		if tokens[position].Kind != syntax.Ident {
			break
		}
		parts = append(parts, tokens[position].Text)
		if position == 0 || !tokens[position-1].Is(".") {
			break
		}
	}
	if len(parts) == 0 {
		return nil
	}

	for left, right := 0, len(parts)-1; left < right; left, right = left+1, right-1 {
		parts[left], parts[right] = parts[right], parts[left]
	}
	return pathing.Path{pathing.Key(strings.Join(parts, "."))}
}

// annotationColon finds the ':' of a type annotation ending at tokens[end],
// as in `const config: Record<string, number> =`. It returns -1 when the
// statement has none.
func annotationColon(tokens []syntax.Token, end int) int {
	depth := 0
	for position := end; position >= 0; position-- {
		tok := tokens[position]
		switch {
		case tok.Kind.IsClose():
			depth++
		case tok.Kind.IsOpen():
			if depth == 0 {
				return -1
			}
			depth--
		case tok.Is(">"):
			depth++
		case tok.Is(">>"):
			depth += 2
		case tok.Is("<"):
			if depth == 0 {
				return -1
			}
			depth--
		case depth > 0:
		case tok.Kind == syntax.Colon:
			return position
		case tok.Kind == syntax.Comma, tok.Is(";"), tok.Is("="), tok.Is("=>"):
			return -1
		case tok.Kind == syntax.Ident && (tok.Text == "const" || tok.Text == "let" || tok.Text == "var"):
			return -1
		}
	}
	return -1
}
