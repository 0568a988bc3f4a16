package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const (
	nestedJSON   = `{"level2": {"level3": {"targetAttrib": 1}}, "anArray": [10, 20, 30]}`
	configScript = "const config = {\n  server: {\n    port: 8080,\n  },\n};\n"
)

func writeFixtures(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	fixtures := map[string]string{
		"nested.json": nestedJSON,
		"config.ts":   configScript,
		"cases.yaml": `
- name: target
  file: nested.json
  offset: 39
  expect: level2.level3.targetAttrib
- name: element
  file: nested.json
  position: "1:65"
  expect: anArray[2]
- name: key
  file: nested.json
  offset: 12
  expect: level2
- name: script
  file: config.ts
  position: "3:11"
  expect: config.server.port
- name: wrong
  file: nested.json
  offset: 39
  expect: level2
- name: unchecked
  file: nested.json
  offset: 39
- name: outside literal
  file: config.ts
  offset: 0
  expect: "-"
- name: missing file
  file: missing.json
  offset: 0
- name: past end
  file: nested.json
  offset: 68
`,
	}
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	cases, err := Load(filepath.Join(dir, "cases.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	summary, err := Run(context.Background(), cases, Options{Parallel: 3})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.RunID == "" {
		t.Fatal("expected run id")
	}
	if summary.Total != 9 || summary.Matched != 5 || summary.Mismatched != 1 ||
		summary.Resolved != 1 || summary.NoResult != 0 || summary.Errors != 2 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if !summary.HasFailures() {
		t.Fatal("expected failures")
	}

	wantOutcomes := []Outcome{
		OutcomeMatched, OutcomeMatched, OutcomeMatched, OutcomeMatched,
		OutcomeMismatched, OutcomeResolved, OutcomeMatched, OutcomeError, OutcomeError,
	}
	for index, want := range wantOutcomes {
		got := summary.Cases[index]
		if got.Outcome != want {
			t.Errorf("case %d (%s) outcome = %s, want %s (error %q)", index, got.Name, got.Outcome, want, got.Error)
		}
	}

	element := summary.Cases[1]
	if element.Offset != 64 || element.JSONPath != "$.anArray[2]" || element.Mode != "json" {
		t.Fatalf("element case = %+v", element)
	}
	if script := summary.Cases[3]; script.Mode != "script" || script.Offset != 39 {
		t.Fatalf("script case = %+v", script)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := writeFixtures(t)
	cases, err := Load(filepath.Join(dir, "cases.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, cases, Options{RateLimit: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	expect := func(value string) *string { return &value }

	tests := []struct {
		name   string
		result CaseResult
		expect *string
		want   Outcome
	}{
		{name: "no expectation found", result: CaseResult{Found: true, Path: "a"}, want: OutcomeResolved},
		{name: "no expectation missing", result: CaseResult{}, want: OutcomeNoResult},
		{name: "expected none", result: CaseResult{}, expect: expect(NoResult), want: OutcomeMatched},
		{name: "expected none got path", result: CaseResult{Found: true}, expect: expect(NoResult), want: OutcomeMismatched},
		{name: "expected path got none", result: CaseResult{}, expect: expect("a"), want: OutcomeMismatched},
		{name: "root by label", result: CaseResult{Found: true}, expect: expect("(root)"), want: OutcomeMatched},
		{name: "root by empty", result: CaseResult{Found: true}, expect: expect(""), want: OutcomeMatched},
		{name: "path", result: CaseResult{Found: true, Path: "a[1]"}, expect: expect("a[1]"), want: OutcomeMatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := outcome(tt.result, tt.expect); got != tt.want {
				t.Fatalf("outcome() = %s, want %s", got, tt.want)
			}
		})
	}
}
