package constraints

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacoelho/hoverpath/internal/batch"
	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/hover"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

const sample = "{\n  \"servers\": [\n    {\"host\": \"a\", \"ports\": [80, 443]}\n  ]\n}\n"

func TestHoverAndBatchAgreeWithResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "sample.json")
	if err := os.WriteFile(file, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	doc := document.New(file, sample)

	var cases []batch.Case
	for offset := range len(sample) {
		cases = append(cases, batch.Case{File: file, Offset: &offset})
	}

	summary, err := batch.Run(context.Background(), cases, batch.Options{Parallel: 4})
	if err != nil {
		t.Fatalf("batch.Run() error = %v", err)
	}

	for offset := range len(sample) {
		path, found := resolve.Resolve(sample, offset, resolve.ModeJSON)

		row := summary.Cases[offset]
		if row.Found != found || row.Path != path.String() {
			t.Fatalf("offset %d: batch found=%v path=%q, resolve found=%v path=%q", offset, row.Found, row.Path, found, path.String())
		}

		line, character, err := doc.UTF16At(offset)
		if err != nil {
			t.Fatalf("UTF16At(%d) error = %v", offset, err)
		}
		result, err := hover.Hover(doc, hover.Params{Position: hover.Position{Line: line, Character: character}})
		if err != nil {
			t.Fatalf("offset %d: Hover() error = %v", offset, err)
		}
		if (result != nil) != found {
			t.Fatalf("offset %d: hover result %v, resolve found %v", offset, result, found)
		}
		if result != nil && !result.Path.Equal(path) {
			t.Fatalf("offset %d: hover path %q, resolve path %q", offset, result.Path.String(), path.String())
		}
	}
}
