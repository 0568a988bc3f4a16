package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/hoverpath/internal/hover"
)

// ErrUnknownFormat indicates an unsupported report format.
var ErrUnknownFormat = errors.New("unsupported report format")

// Format determines how summaries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml. Empty means text.
func ParseFormat(input string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(input))); format {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, input)
	}
}

// Outcome classifies a case result.
type Outcome string

const (
	// OutcomeMatched is a result equal to the case expectation.
	OutcomeMatched Outcome = "matched"
	// OutcomeMismatched is a result different from the case expectation.
	OutcomeMismatched Outcome = "mismatched"
	// OutcomeResolved is a result for a case without expectation.
	OutcomeResolved Outcome = "resolved"
	// OutcomeNoResult is a case without expectation that did not resolve.
	OutcomeNoResult Outcome = "no-result"
	// OutcomeError is a case that could not be evaluated.
	OutcomeError Outcome = "error"
)

// CaseResult is the per-case outcome.
type CaseResult struct {
	Name     string  `json:"name" yaml:"name"`
	File     string  `json:"file" yaml:"file"`
	Offset   int     `json:"offset" yaml:"offset"`
	Mode     string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Found    bool    `json:"found" yaml:"found"`
	Path     string  `json:"path,omitempty" yaml:"path,omitempty"`
	JSONPath string  `json:"jsonpath,omitempty" yaml:"jsonpath,omitempty"`
	Expect   *string `json:"expect,omitempty" yaml:"expect,omitempty"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates outcomes across a batch run.
type Summary struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	Total      int          `json:"total" yaml:"total"`
	Matched    int          `json:"matched" yaml:"matched"`
	Mismatched int          `json:"mismatched" yaml:"mismatched"`
	Resolved   int          `json:"resolved" yaml:"resolved"`
	NoResult   int          `json:"no_result" yaml:"no_result"`
	Errors     int          `json:"errors" yaml:"errors"`
	Cases      []CaseResult `json:"cases,omitempty" yaml:"cases,omitempty"`
}

// HasFailures reports whether any case mismatched or failed.
func (s Summary) HasFailures() bool {
	return s.Mismatched > 0 || s.Errors > 0
}

// Add records one case result into the summary.
func (s *Summary) Add(result CaseResult) {
	s.Total++
	s.Cases = append(s.Cases, result)

	switch result.Outcome {
	case OutcomeMatched:
		s.Matched++
	case OutcomeMismatched:
		s.Mismatched++
	case OutcomeResolved:
		s.Resolved++
	case OutcomeNoResult:
		s.NoResult++
	case OutcomeError:
		s.Errors++
	}
}

// Write prints the summary in the requested format.
func (s Summary) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatYAML:
		payload, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(payload)
		return err
	case FormatText, "":
		return s.writeText(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (s Summary) writeText(w io.Writer) error {
	writef := func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	for _, result := range s.Cases {
		var err error
		switch result.Outcome {
		case OutcomeError:
			err = writef("  %-10s %s: %s\n", result.Outcome, result.Name, result.Error)
		case OutcomeMismatched:
			err = writef("  %-10s %s: got %s, want %s\n", result.Outcome, result.Name, describe(result), *result.Expect)
		default:
			err = writef("  %-10s %s: %s\n", result.Outcome, result.Name, describe(result))
		}
		if err != nil {
			return err
		}
	}
	if len(s.Cases) > 0 {
		if err := writef("\n"); err != nil {
			return err
		}
	}

	if err := writef("Batch summary (run %s)\n", s.RunID); err != nil {
		return err
	}
	if err := writef("  total cases: %d\n", s.Total); err != nil {
		return err
	}
	if err := writef("  matched: %d\n", s.Matched); err != nil {
		return err
	}
	if err := writef("  mismatched: %d\n", s.Mismatched); err != nil {
		return err
	}
	if err := writef("  resolved: %d\n", s.Resolved); err != nil {
		return err
	}
	if err := writef("  no result: %d\n", s.NoResult); err != nil {
		return err
	}
	return writef("  errors: %d\n", s.Errors)
}

func describe(result CaseResult) string {
	if !result.Found {
		return NoResult
	}
	if result.Path == "" {
		return hover.RootLabel
	}
	return result.Path
}
