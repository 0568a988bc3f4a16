package document

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrPositionOutOfRange indicates a line or column outside the text.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrInvalidPosition indicates a position string not in LINE:COLUMN form.
	ErrInvalidPosition = errors.New("position must be in format line:column")
)

// Position is a 1-based line and 1-based column counted in runes, as shown
// by most editors' status bars.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParsePosition parses "LINE:COLUMN".
func ParsePosition(input string) (Position, error) {
	lineText, columnText, found := strings.Cut(strings.TrimSpace(input), ":")
	if !found {
		return Position{}, fmt.Errorf("%w, got: %s", ErrInvalidPosition, input)
	}

	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("%w, got: %s", ErrInvalidPosition, input)
	}
	column, err := strconv.Atoi(columnText)
	if err != nil || column < 1 {
		return Position{}, fmt.Errorf("%w, got: %s", ErrInvalidPosition, input)
	}

	return Position{Line: line, Column: column}, nil
}

// Document is immutable text with a line index.
type Document struct {
	Name string
	Text string

	// lineStarts holds the byte offset of each line's first byte.
	lineStarts []int
}

// New indexes text. "\r\n" counts as one line break; the "\r" belongs to
// no column.
func New(name, text string) *Document {
	starts := []int{0}
	for index := 0; index < len(text); index++ {
		if text[index] == '\n' {
			starts = append(starts, index+1)
		}
	}
	return &Document{Name: name, Text: text, lineStarts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// line returns the byte range of a 0-based line without its terminator.
func (d *Document) line(line int) (int, int) {
	start := d.lineStarts[line]
	end := len(d.Text)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1
	}
	if end > start && d.Text[end-1] == '\r' {
		end--
	}
	return start, end
}

// OffsetAt converts a 1-based line and rune column to a byte offset. The
// column just past the last character addresses the line terminator.
func (d *Document) OffsetAt(pos Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(d.lineStarts) || pos.Column < 1 {
		return 0, fmt.Errorf("%w: %s", ErrPositionOutOfRange, pos)
	}

	offset, end := d.line(pos.Line - 1)
	for column := 1; column < pos.Column; column++ {
		if offset >= end {
			return 0, fmt.Errorf("%w: %s", ErrPositionOutOfRange, pos)
		}
		_, size := utf8.DecodeRuneInString(d.Text[offset:])
		offset += size
	}

	return offset, nil
}

// PositionAt converts a byte offset to a 1-based line and rune column.
func (d *Document) PositionAt(offset int) (Position, error) {
	line, err := d.lineOf(offset)
	if err != nil {
		return Position{}, err
	}

	column := utf8.RuneCountInString(d.Text[d.lineStarts[line]:offset]) + 1
	return Position{Line: line + 1, Column: column}, nil
}

// OffsetAtUTF16 converts a 0-based line and UTF-16 code unit character, the
// Language Server Protocol encoding, to a byte offset.
func (d *Document) OffsetAtUTF16(line, character int) (int, error) {
	if line < 0 || line >= len(d.lineStarts) || character < 0 {
		return 0, fmt.Errorf("%w: line %d character %d", ErrPositionOutOfRange, line, character)
	}

	offset, end := d.line(line)
	for need := character; need > 0; {
		if offset >= end {
			return 0, fmt.Errorf("%w: line %d character %d", ErrPositionOutOfRange, line, character)
		}
		r, size := utf8.DecodeRuneInString(d.Text[offset:])
		need -= utf16Len(r)
		offset += size
	}

	return offset, nil
}

// UTF16At converts a byte offset to a 0-based line and UTF-16 character.
func (d *Document) UTF16At(offset int) (int, int, error) {
	line, err := d.lineOf(offset)
	if err != nil {
		return 0, 0, err
	}

	character := 0
	for _, r := range d.Text[d.lineStarts[line]:offset] {
		character += utf16Len(r)
	}
	return line, character, nil
}

func (d *Document) lineOf(offset int) (int, error) {
	if offset < 0 || offset > len(d.Text) {
		return 0, fmt.Errorf("%w: offset %d", ErrPositionOutOfRange, offset)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	return line, nil
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
