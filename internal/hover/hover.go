// Package hover turns an editor position into a hover payload showing the
// path of the hovered key, value or element.
package hover

import (
	"fmt"
	"strings"

	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/pathing"
	"github.com/jacoelho/hoverpath/internal/resolve"
	"github.com/jacoelho/hoverpath/internal/syntax"
)

// RootLabel is displayed for the empty path.
const RootLabel = "(root)"

type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"` // UTF-16 code units
}

type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

type MarkupContent struct {
	Kind  string `json:"kind" yaml:"kind"` // "plaintext" or "markdown"
	Value string `json:"value" yaml:"value"`
}

// Params is the subset of an LSP hover request the adapter needs.
type Params struct {
	// LanguageID is the editor language id; empty falls back to the
	// document name's extension.
	LanguageID string   `json:"languageId,omitempty"`
	Position   Position `json:"position"`
}

// Result is an LSP hover response with the resolved path attached.
type Result struct {
	Contents MarkupContent `json:"contents" yaml:"contents"`
	Range    *Range        `json:"range,omitempty" yaml:"range,omitempty"`
	Path     pathing.Path  `json:"-" yaml:"-"`
}

// Hover resolves params against doc. It returns nil without error when the
// position has no path.
func Hover(doc *document.Document, params Params) (*Result, error) {
	offset, err := doc.OffsetAtUTF16(params.Position.Line, params.Position.Character)
	if err != nil {
		return nil, fmt.Errorf("hover: %w", err)
	}

	path, ok, err := resolve.ResolveChecked(doc.Text, offset, modeFor(doc, params.LanguageID))
	if err != nil {
		return nil, fmt.Errorf("hover: %w", err)
	}
	if !ok {
		return nil, nil
	}

	result := &Result{
		Contents: MarkupContent{Kind: "markdown", Value: codeSpan(Label(path))},
		Path:     path,
	}
	if rng, found := tokenRange(doc, offset); found {
		result.Range = &rng
	}

	return result, nil
}

// Label is the display text of path.
func Label(path pathing.Path) string {
	if path.IsRoot() {
		return RootLabel
	}
	return path.String()
}

func modeFor(doc *document.Document, languageID string) resolve.Mode {
	if mode := resolve.ModeForLanguage(languageID); mode != resolve.ModeAuto {
		return mode
	}
	return resolve.ModeForFile(doc.Name)
}

// tokenRange returns the UTF-16 range of the token covering offset.
func tokenRange(doc *document.Document, offset int) (Range, bool) {
	for _, tok := range syntax.Tokenize(doc.Text) {
		if tok.Span.Start > offset || tok.Kind == syntax.EOF {
			break
		}
		if !tok.Span.Contains(offset) {
			continue
		}

		startLine, startChar, err := doc.UTF16At(tok.Span.Start)
		if err != nil {
			return Range{}, false
		}
		endLine, endChar, err := doc.UTF16At(tok.Span.End)
		if err != nil {
			return Range{}, false
		}
		return Range{
			Start: Position{Line: startLine, Character: startChar},
			End:   Position{Line: endLine, Character: endChar},
		}, true
	}

	return Range{}, false
}

// codeSpan wraps text in a markdown code span, widening the fence when the
// text itself holds backticks.
func codeSpan(text string) string {
	fence := "`"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}
