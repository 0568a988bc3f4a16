package tree

import (
	"errors"

	"github.com/jacoelho/hoverpath/internal/syntax"
)

// MaxDepth bounds container nesting.
const MaxDepth = 10000

// Dialect selects how strictly values are parsed.
type Dialect uint8

const (
	// Strict accepts RFC 8259 JSON only.
	Strict Dialect = iota
	// Loose accepts object and array literals as written in script source:
	// unquoted and single-quoted keys, comments, trailing commas, holes,
	// shorthand members and arbitrary expressions as values.
	Loose
)

// Parse parses text as exactly one value surrounded by whitespace.
func Parse(text string, dialect Dialect) (*Node, error) {
	tokens := syntax.Tokenize(text)
	if dialect == Strict {
		if err := checkStrictLexemes(text, tokens); err != nil {
			return nil, err
		}
	} else {
		tokens = syntax.Significant(tokens)
	}

	p := parser{text: text, tokens: tokens, dialect: dialect}
	node, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != syntax.EOF {
		return nil, syntaxError("unexpected %s after value at offset %d", tok.Kind, tok.Span.Start)
	}

	return node, nil
}

// ParseLiteral parses the object or array literal opening at tokens[0] with
// the Loose dialect. tokens must not contain comments. Tokens after the
// literal's closing bracket are ignored; a literal cut short by the end of
// input ends there.
func ParseLiteral(text string, tokens []syntax.Token) (*Node, error) {
	if len(tokens) == 0 || (tokens[0].Kind != syntax.LBrace && tokens[0].Kind != syntax.LBracket) {
		return nil, syntaxError("literal must start with '{' or '['")
	}

	p := parser{text: text, tokens: tokens, dialect: Loose}
	return p.parseContainer(0)
}

type parser struct {
	text    string
	tokens  []syntax.Token
	pos     int
	dialect Dialect
}

func (p *parser) strict() bool {
	return p.dialect == Strict
}

func (p *parser) peek() syntax.Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(ahead int) syntax.Token {
	if p.pos+ahead < len(p.tokens) {
		return p.tokens[p.pos+ahead]
	}
	return syntax.Token{Kind: syntax.EOF, Span: syntax.Span{Start: len(p.text), End: len(p.text)}}
}

func (p *parser) next() syntax.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parser) atValueEnd() bool {
	switch p.peek().Kind {
	case syntax.Comma, syntax.RBrace, syntax.RBracket, syntax.RParen, syntax.EOF:
		return true
	}
	return false
}

func (p *parser) parseValue(depth int) (*Node, error) {
	tok := p.peek()

	if tok.Kind == syntax.LBrace || tok.Kind == syntax.LBracket {
		if p.strict() {
			return p.parseContainer(depth)
		}

		start := p.pos
		node, err := p.parseContainer(depth)
		if errors.Is(err, ErrTooDeep) {
			return nil, err
		}
		if err == nil && p.atValueEnd() {
			return node, nil
		}
		p.pos = start
		return p.parseExpression(), nil
	}

	if p.strict() {
		return p.parseStrictScalar()
	}

	switch tok.Kind {
	case syntax.String, syntax.Number, syntax.Ident, syntax.Regexp:
		start := p.pos
		p.pos++
		if p.atValueEnd() {
			return &Node{Kind: KindScalar, Span: tok.Span}, nil
		}
		p.pos = start
	}

	return p.parseExpression(), nil
}

func (p *parser) parseStrictScalar() (*Node, error) {
	tok := p.next()

	switch tok.Kind {
	case syntax.String:
		if _, ok := syntax.Unquote(tok, true); ok {
			return &Node{Kind: KindScalar, Span: tok.Span}, nil
		}
		return nil, syntaxError("invalid string at offset %d", tok.Span.Start)
	case syntax.Number:
		if isJSONNumber(tok.Text) {
			return &Node{Kind: KindScalar, Span: tok.Span}, nil
		}
		return nil, syntaxError("invalid number %q at offset %d", tok.Text, tok.Span.Start)
	case syntax.Operator:
		number := p.peek()
		if tok.Text == "-" && number.Kind == syntax.Number && number.Span.Start == tok.Span.End && isJSONNumber(number.Text) {
			p.pos++
			return &Node{Kind: KindScalar, Span: syntax.Span{Start: tok.Span.Start, End: number.Span.End}}, nil
		}
	case syntax.Ident:
		switch tok.Text {
		case "true", "false", "null":
			return &Node{Kind: KindScalar, Span: tok.Span}, nil
		}
	case syntax.EOF:
		return nil, syntaxError("unexpected end of input")
	}

	return nil, syntaxError("unexpected %s %q at offset %d", tok.Kind, tok.Text, tok.Span.Start)
}

// parseExpression consumes tokens up to the next comma or unmatched closing
// bracket at depth zero.
func (p *parser) parseExpression() *Node {
	start := p.peek().Span.Start
	end := start
	depth := 0

	for {
		tok := p.peek()
		if tok.Kind == syntax.EOF {
			break
		}
		if depth == 0 && (tok.Kind == syntax.Comma || tok.Kind.IsClose()) {
			break
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		}
		end = tok.Span.End
		p.pos++
	}

	return &Node{Kind: KindExpression, Span: syntax.Span{Start: start, End: end}}
}

func (p *parser) parseContainer(depth int) (*Node, error) {
	if depth >= MaxDepth {
		return nil, ErrTooDeep
	}

	open := p.next()
	switch open.Kind {
	case syntax.LBrace:
		return p.parseObject(open, depth)
	case syntax.LBracket:
		return p.parseArray(open, depth)
	}

	return nil, syntaxError("unexpected %s at offset %d", open.Kind, open.Span.Start)
}

func (p *parser) parseObject(open syntax.Token, depth int) (*Node, error) {
	node := &Node{Kind: KindObject, Span: syntax.Span{Start: open.Span.Start}}

	for {
		tok := p.peek()
		switch tok.Kind {
		case syntax.RBrace:
			p.pos++
			node.Span.End = tok.Span.End
			return node, nil
		case syntax.EOF:
			if p.strict() {
				return nil, syntaxError("unterminated object starting at offset %d", open.Span.Start)
			}
			node.Span.End = tok.Span.Start
			return node, nil
		case syntax.RBracket, syntax.RParen:
			if p.strict() {
				return nil, syntaxError("unexpected %s in object at offset %d", tok.Kind, tok.Span.Start)
			}
			p.pos++
			continue
		case syntax.Comma:
			if p.strict() {
				return nil, syntaxError("unexpected ',' at offset %d", tok.Span.Start)
			}
			p.pos++
			continue
		}

		member, ok, err := p.parseMember(depth)
		if err != nil {
			return nil, err
		}
		if ok {
			node.Members = append(node.Members, member)
		}

		tok = p.peek()
		switch tok.Kind {
		case syntax.Comma:
			p.pos++
			if p.strict() && p.peek().Kind == syntax.RBrace {
				return nil, syntaxError("trailing comma at offset %d", tok.Span.Start)
			}
		case syntax.RBrace, syntax.EOF:
		default:
			if p.strict() {
				return nil, syntaxError("expected ',' or '}' at offset %d", tok.Span.Start)
			}
		}
	}
}

func (p *parser) parseMember(depth int) (Member, bool, error) {
	tok := p.peek()

	if key, ok := p.memberKey(tok); ok {
		next := p.peekAt(1)
		if next.Kind == syntax.Colon {
			p.pos += 2
			value, err := p.parseValue(depth + 1)
			if err != nil {
				return Member{}, false, err
			}
			end := next.Span.End
			if value.Span.End > end {
				end = value.Span.End
			}
			return Member{
				Key:     key,
				KeySpan: tok.Span,
				HasKey:  true,
				Value:   value,
				Span:    syntax.Span{Start: tok.Span.Start, End: end},
			}, true, nil
		}

		if !p.strict() && tok.Kind == syntax.Ident {
			switch next.Kind {
			case syntax.Comma, syntax.RBrace, syntax.EOF:
				p.pos++
				return Member{Key: key, KeySpan: tok.Span, HasKey: true, Span: tok.Span}, true, nil
			}
		}
	}

	if p.strict() {
		if tok.Kind == syntax.String {
			return Member{}, false, syntaxError("expected ':' after key at offset %d", tok.Span.End)
		}
		return Member{}, false, syntaxError("expected string key at offset %d", tok.Span.Start)
	}

	opaque := p.parseExpression()
	if opaque.Span.Len() == 0 {
		return Member{}, false, nil
	}
	return Member{Span: opaque.Span}, true, nil
}

func (p *parser) memberKey(tok syntax.Token) (string, bool) {
	switch tok.Kind {
	case syntax.String:
		return syntax.Unquote(tok, p.strict())
	case syntax.Ident, syntax.Number:
		if p.strict() {
			return "", false
		}
		return tok.Text, true
	}
	return "", false
}

func (p *parser) parseArray(open syntax.Token, depth int) (*Node, error) {
	node := &Node{Kind: KindArray, Span: syntax.Span{Start: open.Span.Start}}
	expectElement := true

	for {
		tok := p.peek()
		switch tok.Kind {
		case syntax.RBracket:
			if p.strict() && expectElement && len(node.Elements) > 0 {
				return nil, syntaxError("trailing comma at offset %d", tok.Span.Start)
			}
			p.pos++
			node.Span.End = tok.Span.End
			return node, nil
		case syntax.EOF:
			if p.strict() {
				return nil, syntaxError("unterminated array starting at offset %d", open.Span.Start)
			}
			node.Span.End = tok.Span.Start
			return node, nil
		case syntax.Comma:
			if expectElement {
				if p.strict() {
					return nil, syntaxError("unexpected ',' at offset %d", tok.Span.Start)
				}
				node.Elements = append(node.Elements, &Node{
					Kind: KindHole,
					Span: syntax.Span{Start: tok.Span.Start, End: tok.Span.Start},
				})
			}
			p.pos++
			expectElement = true
			continue
		case syntax.RBrace, syntax.RParen:
			if p.strict() {
				return nil, syntaxError("unexpected %s in array at offset %d", tok.Kind, tok.Span.Start)
			}
			p.pos++
			continue
		}

		if !expectElement && p.strict() {
			return nil, syntaxError("expected ',' or ']' at offset %d", tok.Span.Start)
		}

		value, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		node.Elements = append(node.Elements, value)
		expectElement = false
	}
}

func checkStrictLexemes(text string, tokens []syntax.Token) error {
	prev := 0
	for _, tok := range tokens {
		for index := prev; index < tok.Span.Start; index++ {
			switch text[index] {
			case ' ', '\t', '\n', '\r':
			default:
				return syntaxError("invalid character at offset %d", index)
			}
		}

		switch tok.Kind {
		case syntax.Comment, syntax.Illegal, syntax.Regexp:
			return syntaxError("unexpected %s at offset %d", tok.Kind, tok.Span.Start)
		}
		prev = tok.Span.End
	}

	return nil
}

// isJSONNumber validates an unsigned RFC 8259 number.
func isJSONNumber(text string) bool {
	index := 0
	digits := func() int {
		start := index
		for index < len(text) && text[index] >= '0' && text[index] <= '9' {
			index++
		}
		return index - start
	}

	switch {
	case index < len(text) && text[index] == '0':
		index++
	case digits() == 0:
		return false
	}

	if index < len(text) && text[index] == '.' {
		index++
		if digits() == 0 {
			return false
		}
	}

	if index < len(text) && (text[index] == 'e' || text[index] == 'E') {
		index++
		if index < len(text) && (text[index] == '+' || text[index] == '-') {
			index++
		}
		if digits() == 0 {
			return false
		}
	}

	return index == len(text)
}
