package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jacoelho/hoverpath/internal/tree"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("mode must be one of: auto, json, script")

// Mode selects how the structure around the offset is located.
type Mode uint8

const (
	// ModeAuto picks JSON when the whole text is valid JSON, script otherwise.
	ModeAuto Mode = iota
	// ModeJSON parses the whole document as strict JSON.
	ModeJSON
	// ModeScript locates the object or array literal around the offset in
	// JavaScript or TypeScript source.
	ModeScript
)

func (m Mode) String() string {
	switch m {
	case ModeJSON:
		return "json"
	case ModeScript:
		return "script"
	}
	return "auto"
}

// MarshalText lets modes appear by name in YAML and JSON output.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses a mode name. The empty string is auto.
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "auto":
		return ModeAuto, nil
	case "json":
		return ModeJSON, nil
	case "script", "js", "ts":
		return ModeScript, nil
	}
	return ModeAuto, fmt.Errorf("%w, got: %s", ErrUnknownMode, input)
}

var scriptExtensions = map[string]bool{
	".js": true, ".mjs": true, ".cjs": true, ".jsx": true,
	".ts": true, ".mts": true, ".cts": true, ".tsx": true,
	".jsonc": true, ".json5": true,
}

// ModeForFile derives the mode from a file name extension.
func ModeForFile(name string) Mode {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".json":
		return ModeJSON
	case scriptExtensions[ext]:
		return ModeScript
	}
	return ModeAuto
}

// ModeForLanguage derives the mode from an editor language identifier.
func ModeForLanguage(languageID string) Mode {
	switch strings.ToLower(languageID) {
	case "json":
		return ModeJSON
	case "jsonc", "json5", "javascript", "javascriptreact", "typescript", "typescriptreact":
		return ModeScript
	}
	return ModeAuto
}

// Detect picks JSON when text is a valid JSON document and script otherwise.
func Detect(text string) Mode {
	if _, err := tree.Parse(text, tree.Strict); err == nil {
		return ModeJSON
	}
	return ModeScript
}
