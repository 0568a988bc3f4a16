package syntax

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unquote decodes a String token into its value. In strict mode only JSON
// strings are accepted: double quotes, JSON escapes, no raw control characters.
// Template literals are returned verbatim between the backticks.
func Unquote(tok Token, strict bool) (string, bool) {
	if tok.Kind != String || tok.Unterminated || len(tok.Text) < 2 {
		return "", false
	}

	quote := tok.Text[0]
	raw := tok.Text[1 : len(tok.Text)-1]

	switch {
	case strict && quote != '"':
		return "", false
	case quote == '`':
		return raw, true
	}

	return decodeStringLiteral(raw, quote, strict)
}

func decodeStringLiteral(raw string, quote byte, strict bool) (string, bool) {
	var out strings.Builder
	out.Grow(len(raw))

	for index := 0; index < len(raw); index++ {
		current := raw[index]
		if current != '\\' {
			if strict && current < 0x20 {
				return "", false
			}
			out.WriteByte(current)
			continue
		}

		index++
		if index >= len(raw) {
			return "", false
		}

		escaped := raw[index]
		switch escaped {
		case '\\':
			out.WriteByte('\\')
		case '"':
			out.WriteByte('"')
		case '/':
			out.WriteByte('/')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'u':
			next, ok := decodeUnicodeEscape(raw, index, strict, &out)
			if !ok {
				return "", false
			}
			index = next
		default:
			if strict {
				return "", false
			}
			if !decodeScriptEscape(raw, &index, quote, &out) {
				return "", false
			}
		}
	}

	return out.String(), true
}

// decodeScriptEscape handles the escapes JavaScript allows beyond JSON.
func decodeScriptEscape(raw string, index *int, quote byte, out *strings.Builder) bool {
	escaped := raw[*index]
	switch escaped {
	case '\'':
		out.WriteByte('\'')
	case 'v':
		out.WriteByte('\v')
	case '0':
		out.WriteByte('\x00')
	case '\n':
		// line continuation
	case '\r':
		if *index+1 < len(raw) && raw[*index+1] == '\n' {
			*index++
		}
	case 'x':
		if *index+2 >= len(raw) {
			return false
		}
		value, err := strconv.ParseUint(raw[*index+1:*index+3], 16, 8)
		if err != nil {
			return false
		}
		out.WriteRune(rune(value))
		*index += 2
	default:
		if escaped == quote {
			out.WriteByte(quote)
			return true
		}
		out.WriteByte(escaped)
	}
	return true
}

// decodeUnicodeEscape decodes the escape whose 'u' sits at raw[index] and
// returns the index of its last byte.
func decodeUnicodeEscape(raw string, index int, strict bool, out *strings.Builder) (int, bool) {
	if !strict && index+1 < len(raw) && raw[index+1] == '{' {
		end := strings.IndexByte(raw[index+2:], '}')
		if end <= 0 {
			return 0, false
		}
		value, err := strconv.ParseUint(raw[index+2:index+2+end], 16, 32)
		if err != nil || value > utf8.MaxRune {
			return 0, false
		}
		out.WriteRune(rune(value))
		return index + 2 + end, true
	}

	if index+4 >= len(raw) {
		return 0, false
	}
	firstValue, err := strconv.ParseUint(raw[index+1:index+5], 16, 16)
	if err != nil {
		return 0, false
	}
	firstRune := rune(firstValue)

	if utf16.IsSurrogate(firstRune) && index+10 < len(raw) && raw[index+5] == '\\' && raw[index+6] == 'u' {
		secondValue, secondErr := strconv.ParseUint(raw[index+7:index+11], 16, 16)
		if secondErr == nil {
			decoded := utf16.DecodeRune(firstRune, rune(secondValue))
			if decoded != utf8.RuneError {
				out.WriteRune(decoded)
				return index + 10, true
			}
		}
	}

	out.WriteRune(firstRune)
	return index + 4, true
}
