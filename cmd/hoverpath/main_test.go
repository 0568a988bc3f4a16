package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nestedJSON   = `{"level2": {"level3": {"targetAttrib": 1}}, "anArray": [10, 20, 30]}`
	configScript = "const config = {\n  server: {\n    port: 8080,\n  },\n};\n"
)

func fixtures(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "nested.json")
	scriptFile := filepath.Join(dir, "config.ts")
	if err := os.WriteFile(jsonFile, []byte(nestedJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(scriptFile, []byte(configScript), 0o600); err != nil {
		t.Fatal(err)
	}
	return jsonFile, scriptFile
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"hoverpath"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunSingle(t *testing.T) {
	t.Parallel()

	jsonFile, scriptFile := fixtures(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{
			name:       "offset in json",
			args:       []string{"--file", jsonFile, "--offset", "39"},
			wantStdout: "level2.level3.targetAttrib\n",
		},
		{
			name:       "position as jsonpath",
			args:       []string{"--file", jsonFile, "--position", "1:65", "--format", "jsonpath"},
			wantStdout: "$.anArray[2]\n",
		},
		{
			name:       "verified value",
			args:       []string{"--file", jsonFile, "--position", "1:65", "--verify"},
			wantStdout: "anArray[2] = 30\n",
		},
		{
			name:       "root",
			args:       []string{"--file", jsonFile, "--offset", "0"},
			wantStdout: "(root)\n",
		},
		{
			name:       "script binding",
			args:       []string{"--file", scriptFile, "--position", "3:11"},
			wantStdout: "config.server.port\n",
		},
		{
			name:       "outside any literal",
			args:       []string{"--file", scriptFile, "--offset", "0"},
			wantCode:   2,
			wantStdout: "-\n",
		},
		{
			name:       "forced json mode on script",
			args:       []string{"--file", scriptFile, "--position", "3:11", "--mode", "json"},
			wantCode:   2,
			wantStdout: "-\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(t, tt.args...)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			if stdout != tt.wantStdout {
				t.Fatalf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
		})
	}
}

func TestRunSingleJSONOutput(t *testing.T) {
	t.Parallel()

	jsonFile, _ := fixtures(t)

	code, stdout, stderr := runCLI(t, "--file", jsonFile, "--offset", "64", "--format", "json", "--verify")
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr)
	}

	var got struct {
		Offset   int    `json:"offset"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
		Mode     string `json:"mode"`
		Found    bool   `json:"found"`
		Path     string `json:"path"`
		JSONPath string `json:"jsonpath"`
		Segments []struct {
			Key   *string `json:"key"`
			Index *int    `json:"index"`
		} `json:"segments"`
		Verified bool    `json:"verified"`
		Value    float64 `json:"value"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", stdout, err)
	}

	if !got.Found || got.Path != "anArray[2]" || got.JSONPath != "$.anArray[2]" || got.Mode != "json" {
		t.Fatalf("output = %+v", got)
	}
	if got.Offset != 64 || got.Line != 1 || got.Column != 65 {
		t.Fatalf("location = %d %d:%d", got.Offset, got.Line, got.Column)
	}
	if len(got.Segments) != 2 || got.Segments[0].Key == nil || *got.Segments[0].Key != "anArray" ||
		got.Segments[1].Index == nil || *got.Segments[1].Index != 2 {
		t.Fatalf("segments = %+v", got.Segments)
	}
	if !got.Verified || got.Value != 30 {
		t.Fatalf("verification = %v %v", got.Verified, got.Value)
	}
}

func TestRunSingleYAMLOutput(t *testing.T) {
	t.Parallel()

	jsonFile, _ := fixtures(t)

	code, stdout, _ := runCLI(t, "--file", jsonFile, "--offset", "39", "--format", "yaml")
	if code != 0 {
		t.Fatalf("run() = %d", code)
	}
	for _, want := range []string{"path: level2.level3.targetAttrib", "found: true", "mode: json"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("YAML output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunSingleErrors(t *testing.T) {
	t.Parallel()

	jsonFile, scriptFile := fixtures(t)

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "offset past end", args: []string{"--file", jsonFile, "--offset", "68"}, wantStderr: "offset out of range"},
		{name: "position past end", args: []string{"--file", jsonFile, "--position", "9:1"}, wantStderr: "position out of range"},
		{name: "verify script", args: []string{"--file", scriptFile, "--position", "3:11", "--verify"}, wantStderr: "cannot verify"},
		{name: "bad flag", args: []string{"--file", jsonFile, "--cursor", "1"}, wantStderr: "Usage:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Fatalf("run() = %d, want 1", code)
			}
			if stdout != "" {
				t.Fatalf("unexpected stdout %q", stdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Fatalf("stderr %q does not contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "-h")
	if code != 0 || !strings.Contains(stdout, "hoverpath --batch CASES.yaml") {
		t.Fatalf("run(-h) = %d, %q", code, stdout)
	}
}

func TestRunDebugLogging(t *testing.T) {
	t.Parallel()

	jsonFile, _ := fixtures(t)

	code, _, stderr := runCLI(t, "--file", jsonFile, "--offset", "39", "--debug")
	if code != 0 {
		t.Fatalf("run() = %d", code)
	}
	if !strings.Contains(stderr, "msg=resolved") || !strings.Contains(stderr, "path=level2.level3.targetAttrib") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	jsonFile, scriptFile := fixtures(t)
	dir := filepath.Dir(jsonFile)

	passing := filepath.Join(dir, "pass.yaml")
	failing := filepath.Join(dir, "fail.yaml")
	cases := map[string]string{
		passing: `
- name: target
  file: ` + filepath.Base(jsonFile) + `
  offset: 39
  expect: level2.level3.targetAttrib
- name: script
  file: ` + scriptFile + `
  position: "3:11"
  expect: config.server.port
- name: nothing
  file: config.ts
  offset: 0
  expect: "-"
`,
		failing: `
- name: wrong
  file: nested.json
  offset: 39
  expect: level2
`,
	}
	for path, content := range cases {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	code, stdout, stderr := runCLI(t, "--batch", passing, "--parallel", "2")
	if code != 0 {
		t.Fatalf("run(pass) = %d, stdout %q, stderr %q", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "matched: 3") || !strings.Contains(stdout, "mismatched: 0") {
		t.Fatalf("report = %q", stdout)
	}

	code, stdout, _ = runCLI(t, "--batch", failing, "--report", "json")
	if code != 1 {
		t.Fatalf("run(fail) = %d, want 1", code)
	}
	var summary struct {
		RunID      string `json:"run_id"`
		Mismatched int    `json:"mismatched"`
	}
	if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
		t.Fatalf("invalid JSON report %q: %v", stdout, err)
	}
	if summary.RunID == "" || summary.Mismatched != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestRunBatchInvalidCases(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte("- offset: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "--batch", path)
	if code != 1 || !strings.Contains(stderr, "invalid case") {
		t.Fatalf("run() = %d, stderr %q", code, stderr)
	}
}
