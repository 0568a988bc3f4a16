package syntax

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	EOF Kind = iota
	Illegal

	LBrace   // "{"
	RBrace   // "}"
	LBracket // "["
	RBracket // "]"
	LParen   // "("
	RParen   // ")"
	Colon    // ":"
	Comma    // ","

	String   // '...', "...", `...`
	Number   // 12, 1.5e3, 0xff, 10n
	Ident    // identifiers and keywords
	Operator // any other punctuation: =, =>, ..., ?, ;, +, ...
	Regexp   // /.../flags
	Comment  // line or block comment
)

var kindNames = map[Kind]string{
	EOF:      "EOF",
	Illegal:  "Illegal",
	LBrace:   "{",
	RBrace:   "}",
	LBracket: "[",
	RBracket: "]",
	LParen:   "(",
	RParen:   ")",
	Colon:    ":",
	Comma:    ",",
	String:   "String",
	Number:   "Number",
	Ident:    "Ident",
	Operator: "Operator",
	Regexp:   "Regexp",
	Comment:  "Comment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsOpen reports whether the kind opens a bracket pair.
func (k Kind) IsOpen() bool {
	return k == LBrace || k == LBracket || k == LParen
}

// IsClose reports whether the kind closes a bracket pair.
func (k Kind) IsClose() bool {
	return k == RBrace || k == RBracket || k == RParen
}

// Closer returns the closing kind matching an opening kind.
func (k Kind) Closer() Kind {
	switch k {
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	case LParen:
		return RParen
	}
	return Illegal
}

// Span is a half-open byte range into the source text.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies in [Start, End).
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a lexeme with its byte span. Text is a slice of the source.
type Token struct {
	Kind Kind
	Text string
	Span Span

	// Unterminated is set for strings, template literals, regexps and block
	// comments that reach the end of input without closing.
	Unterminated bool
}

// Is reports whether the token is an operator or identifier with the given text.
func (t Token) Is(text string) bool {
	return (t.Kind == Operator || t.Kind == Ident) && t.Text == text
}
