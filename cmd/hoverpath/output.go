package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/hoverpath/internal/batch"
	"github.com/jacoelho/hoverpath/internal/config"
	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/hover"
	"github.com/jacoelho/hoverpath/internal/pathing"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

// segment is one accessor in structured output; exactly one field is set.
type segment struct {
	Key   *string `json:"key,omitempty" yaml:"key,omitempty"`
	Index *int    `json:"index,omitempty" yaml:"index,omitempty"`
}

type output struct {
	File     string    `json:"file" yaml:"file"`
	Offset   int       `json:"offset" yaml:"offset"`
	Line     int       `json:"line" yaml:"line"`
	Column   int       `json:"column" yaml:"column"`
	Mode     string    `json:"mode" yaml:"mode"`
	Found    bool      `json:"found" yaml:"found"`
	Path     string    `json:"path,omitempty" yaml:"path,omitempty"`
	JSONPath string    `json:"jsonpath,omitempty" yaml:"jsonpath,omitempty"`
	Segments []segment `json:"segments,omitempty" yaml:"segments,omitempty"`
	Verified bool      `json:"verified,omitempty" yaml:"verified,omitempty"`
	Value    any       `json:"value,omitempty" yaml:"value,omitempty"`
}

func newOutput(doc *document.Document, offset int, mode resolve.Mode, path pathing.Path, found bool) *output {
	out := &output{
		File:   doc.Name,
		Offset: offset,
		Mode:   mode.String(),
		Found:  found,
	}

	if pos, err := doc.PositionAt(offset); err == nil {
		out.Line, out.Column = pos.Line, pos.Column
	}

	if found {
		out.Path = hover.Label(path)
		out.JSONPath = path.JSONPath()
		out.Segments = make([]segment, 0, len(path))
		for _, accessor := range path {
			if accessor.IsIndex() {
				out.Segments = append(out.Segments, segment{Index: &accessor.Index})
				continue
			}
			out.Segments = append(out.Segments, segment{Key: &accessor.Name})
		}
	}

	return out
}

func (o *output) render(format config.OutputFormat) (string, error) {
	switch format {
	case config.OutputJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(o); err != nil {
			return "", err
		}
		return buf.String(), nil
	case config.OutputYAML:
		payload, err := yaml.Marshal(o)
		if err != nil {
			return "", fmt.Errorf("encode YAML: %w", err)
		}
		return string(payload), nil
	case config.OutputJSONPath:
		if !o.Found {
			return batch.NoResult + "\n", nil
		}
		return o.JSONPath + "\n", nil
	default:
		if !o.Found {
			return batch.NoResult + "\n", nil
		}
		if o.Verified {
			value, err := json.Marshal(o.Value)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s = %s\n", o.Path, value), nil
		}
		return o.Path + "\n", nil
	}
}
