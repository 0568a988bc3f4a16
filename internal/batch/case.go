package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

// NoResult is the expectation value for a case that must not resolve.
const NoResult = "-"

var (
	// ErrDecode indicates the cases file is not valid YAML for a case list.
	ErrDecode = errors.New("decode cases")

	// ErrInvalidCase indicates a case with missing or conflicting fields.
	ErrInvalidCase = errors.New("invalid case")
)

// Case is one resolution request read from a cases file.
type Case struct {
	Name     string  `yaml:"name"`
	File     string  `yaml:"file"`
	Offset   *int    `yaml:"offset,omitempty"`
	Position string  `yaml:"position,omitempty"`
	Mode     string  `yaml:"mode,omitempty"`
	Expect   *string `yaml:"expect,omitempty"`
}

// Label names the case in reports.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Offset != nil {
		return fmt.Sprintf("%s@%d", c.File, *c.Offset)
	}
	return fmt.Sprintf("%s:%s", c.File, c.Position)
}

// Validate checks that the case names a file and exactly one location.
func (c Case) Validate() error {
	if c.File == "" {
		return fmt.Errorf("%w: %s: file is required", ErrInvalidCase, c.Label())
	}

	switch {
	case c.Offset == nil && c.Position == "":
		return fmt.Errorf("%w: %s: one of offset or position is required", ErrInvalidCase, c.Label())
	case c.Offset != nil && c.Position != "":
		return fmt.Errorf("%w: %s: offset and position are mutually exclusive", ErrInvalidCase, c.Label())
	case c.Offset != nil && *c.Offset < 0:
		return fmt.Errorf("%w: %s: offset must be >= 0, got: %d", ErrInvalidCase, c.Label(), *c.Offset)
	case c.Position != "":
		if _, err := document.ParsePosition(c.Position); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidCase, c.Label(), err)
		}
	}

	if _, err := resolve.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCase, c.Label(), err)
	}

	return nil
}

// mode returns the explicit mode or the one implied by the file name.
func (c Case) mode() resolve.Mode {
	mode, err := resolve.ParseMode(c.Mode)
	if err != nil || mode == resolve.ModeAuto {
		return resolve.ModeForFile(c.File)
	}
	return mode
}

// Parse decodes a YAML case list. Relative file paths are joined to baseDir.
func Parse(r io.Reader, baseDir string) ([]Case, error) {
	decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField())

	var cases []Case
	if err := decoder.Decode(&cases); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	for index := range cases {
		if err := cases[index].Validate(); err != nil {
			return nil, fmt.Errorf("case %d: %w", index+1, err)
		}
		if baseDir != "" && !filepath.IsAbs(cases[index].File) {
			cases[index].File = filepath.Join(baseDir, cases[index].File)
		}
	}

	return cases, nil
}

// Load reads a cases file. Case files are relative to its directory.
func Load(path string) ([]Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cases: %w", err)
	}
	defer file.Close()

	return Parse(file, filepath.Dir(path))
}
