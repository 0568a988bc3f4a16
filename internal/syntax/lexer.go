package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// operators lists multi-character punctuators, longest first.
var operators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

// regexPrecedingKeywords are keywords after which a "/" starts a regexp.
var regexPrecedingKeywords = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true,
	"in": true, "of": true, "new": true, "delete": true, "void": true,
	"throw": true, "instanceof": true, "yield": true, "await": true,
}

// Tokenize splits text into tokens, comments included, terminated by an EOF
// token. It never fails: unknown input becomes Illegal or Operator tokens and
// unterminated literals run to the end of the text.
func Tokenize(text string) []Token {
	l := lexer{input: text}
	return l.run()
}

// Significant drops comments from a token stream.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == Comment {
			continue
		}
		out = append(out, tok)
	}
	return out
}

type lexer struct {
	input  string
	pos    int
	tokens []Token
	prev   Token
}

func (l *lexer) run() []Token {
	l.tokens = make([]Token, 0, len(l.input)/3+1)

	for {
		l.skipSpace()
		if l.pos >= len(l.input) {
			break
		}
		l.emit(l.next())
	}

	l.tokens = append(l.tokens, Token{Kind: EOF, Span: Span{Start: len(l.input), End: len(l.input)}})
	return l.tokens
}

func (l *lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
	if tok.Kind != Comment {
		l.prev = tok
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '\uFEFF' || unicode.IsSpace(r) {
			l.pos += size
			continue
		}
		return
	}
}

func (l *lexer) token(kind Kind, start int) Token {
	return Token{Kind: kind, Text: l.input[start:l.pos], Span: Span{Start: start, End: l.pos}}
}

func (l *lexer) next() Token {
	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '{':
		l.pos++
		return l.token(LBrace, start)
	case '}':
		l.pos++
		return l.token(RBrace, start)
	case '[':
		l.pos++
		return l.token(LBracket, start)
	case ']':
		l.pos++
		return l.token(RBracket, start)
	case '(':
		l.pos++
		return l.token(LParen, start)
	case ')':
		l.pos++
		return l.token(RParen, start)
	case ':':
		l.pos++
		return l.token(Colon, start)
	case ',':
		l.pos++
		return l.token(Comma, start)
	case '"', '\'':
		return l.lexString(ch)
	case '`':
		return l.lexTemplate()
	case '/':
		if strings.HasPrefix(l.input[l.pos:], "//") {
			return l.lexLineComment()
		}
		if strings.HasPrefix(l.input[l.pos:], "/*") {
			return l.lexBlockComment()
		}
		if l.regexAllowed() {
			if tok, ok := l.lexRegexp(); ok {
				return tok
			}
		}
	}

	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
		return l.lexNumber()
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if isIdentStart(r) {
		l.pos += size
		for l.pos < len(l.input) {
			r, size = utf8.DecodeRuneInString(l.input[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		return l.token(Ident, start)
	}

	for _, op := range operators {
		if strings.HasPrefix(l.input[l.pos:], op) {
			l.pos += len(op)
			return l.token(Operator, start)
		}
	}

	l.pos += size
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return l.token(Illegal, start)
	}
	return l.token(Operator, start)
}

func (l *lexer) lexString(quote byte) Token {
	start := l.pos
	l.pos++

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\':
			l.pos += 2
			continue
		case ch == quote:
			l.pos++
			return l.token(String, start)
		case ch == '\n':
			tok := l.token(String, start)
			tok.Unterminated = true
			return tok
		}
		l.pos++
	}

	l.pos = len(l.input)
	tok := l.token(String, start)
	tok.Unterminated = true
	return tok
}

func (l *lexer) lexTemplate() Token {
	start := l.pos
	l.pos++
	depth := 0

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\':
			l.pos += 2
			continue
		case depth == 0 && ch == '`':
			l.pos++
			return l.token(String, start)
		case depth == 0 && ch == '$' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '{':
			depth++
			l.pos += 2
			continue
		case depth > 0 && ch == '{':
			depth++
		case depth > 0 && ch == '}':
			depth--
		case depth > 0 && (ch == '"' || ch == '\''):
			l.lexString(ch)
			continue
		case depth > 0 && ch == '`':
			l.lexTemplate()
			continue
		}
		l.pos++
	}

	l.pos = len(l.input)
	tok := l.token(String, start)
	tok.Unterminated = true
	return tok
}

func (l *lexer) lexLineComment() Token {
	start := l.pos
	end := strings.IndexByte(l.input[l.pos:], '\n')
	if end < 0 {
		l.pos = len(l.input)
	} else {
		l.pos += end
	}
	return l.token(Comment, start)
}

func (l *lexer) lexBlockComment() Token {
	start := l.pos
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		l.pos = len(l.input)
		tok := l.token(Comment, start)
		tok.Unterminated = true
		return tok
	}
	l.pos += end + 4
	return l.token(Comment, start)
}

func (l *lexer) regexAllowed() bool {
	switch l.prev.Kind {
	case EOF:
		return true
	case LParen, LBracket, LBrace, RBrace, Comma, Colon:
		return true
	case Operator:
		return l.prev.Text != "++" && l.prev.Text != "--"
	case Ident:
		return regexPrecedingKeywords[l.prev.Text]
	}
	return false
}

// lexRegexp scans a regexp literal on one line. It reports false when the
// line ends first, leaving the "/" to be read as an operator.
func (l *lexer) lexRegexp() (Token, bool) {
	start := l.pos
	pos := l.pos + 1
	inClass := false

	for pos < len(l.input) {
		ch := l.input[pos]
		switch {
		case ch == '\n':
			return Token{}, false
		case ch == '\\':
			pos += 2
			continue
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			pos++
			for pos < len(l.input) && isIdentByte(l.input[pos]) {
				pos++
			}
			l.pos = pos
			return l.token(Regexp, start), true
		}
		pos++
	}

	return Token{}, false
}

func (l *lexer) lexNumber() Token {
	start := l.pos
	hex := strings.HasPrefix(l.input[l.pos:], "0x") || strings.HasPrefix(l.input[l.pos:], "0X")

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isIdentByte(ch) || ch == '.':
			l.pos++
		case (ch == '+' || ch == '-') && !hex && (l.input[l.pos-1] == 'e' || l.input[l.pos-1] == 'E'):
			l.pos++
		default:
			return l.token(Number, start)
		}
	}

	return l.token(Number, start)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == '$' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\u200C' || r == '\u200D'
}
