package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/hoverpath/internal/batch"
	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/exit"
	"github.com/jacoelho/hoverpath/internal/logging"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

var (
	ErrNoArguments         = errors.New("no arguments provided")
	ErrMissingInput        = errors.New("one of --file or --batch is required")
	ErrConflictingInput    = errors.New("--file and --batch are mutually exclusive")
	ErrMissingLocation     = errors.New("one of --offset or --position is required with --file")
	ErrConflictingLocation = errors.New("--offset and --position are mutually exclusive")
	ErrNegativeOffset      = errors.New("--offset must be >= 0")
	ErrInvalidOutputFormat = errors.New("--format must be one of: text, json, yaml, jsonpath")
	ErrInvalidParallel     = errors.New("--parallel must be >= 0")
	ErrUnexpectedArguments = errors.New("unexpected positional arguments")
	ErrSingleOnlyFlag      = errors.New("--offset, --position, --mode, --format and --verify apply to --file only")
	ErrInvalidReportFormat = errors.New("--report must be one of: text, json, yaml")
)

// OutputFormat selects how a single resolution is printed.
type OutputFormat string

const (
	OutputText     OutputFormat = "text"
	OutputJSON     OutputFormat = "json"
	OutputYAML     OutputFormat = "yaml"
	OutputJSONPath OutputFormat = "jsonpath"
)

// Config defines CLI options.
type Config struct {
	// Single resolution
	File     string
	Offset   int
	Position *document.Position // nil when --offset is used
	Mode     resolve.Mode
	Format   OutputFormat
	Verify   bool

	// Batch resolution
	BatchFile string
	Parallel  int
	RateLimit float64 // Cases per second (0 = unlimited)
	Report    batch.Format

	Logging logging.Options
}

// IsBatch reports whether the batch command was selected.
func (c *Config) IsBatch() bool {
	return c.BatchFile != ""
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		file      = fs.String("file", "", "Path to the JSON or script file")
		offset    = fs.Int("offset", 0, "Byte offset of the cursor")
		position  = fs.String("position", "", "Cursor position as line:column, 1-based")
		mode      = fs.String("mode", "auto", "Resolution mode: auto, json or script")
		format    = fs.String("format", "text", "Output format: text, json, yaml or jsonpath")
		verify    = fs.Bool("verify", false, "Check the path against the document with a JSONPath query")
		batchFile = fs.String("batch", "", "Path to a YAML file of cases")
		parallel  = fs.Int("parallel", 0, "Maximum concurrent cases (0 for unbounded)")
		rateLimit = fs.Float64("rate-limit", 0, "Cases started per second (0 for unlimited)")
		report    = fs.String("report", "text", "Batch report format: text, json or yaml")
		debug     = fs.Bool("debug", false, "Log debug output to stderr")
		logFile   = fs.String("log-file", "", "Write logs to a rotating file")
		logLevel  = fs.String("log-level", "info", "Log level: debug, info, warn or error")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, usageError(fmt.Errorf("failed to parse arguments: %w", err))
	}

	if fs.NArg() > 0 {
		return nil, usageError(fmt.Errorf("%w: %s", ErrUnexpectedArguments, strings.Join(fs.Args(), " ")))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if _, err := logging.ParseLevel(*logLevel); err != nil {
		return nil, usageError(err)
	}

	config := &Config{
		File:      *file,
		Offset:    *offset,
		Verify:    *verify,
		BatchFile: *batchFile,
		Parallel:  *parallel,
		RateLimit: *rateLimit,
		Logging: logging.Options{
			Debug: *debug,
			File:  *logFile,
			Level: *logLevel,
		},
	}

	var err error
	switch {
	case config.File == "" && config.BatchFile == "":
		err = ErrMissingInput
	case config.File != "" && config.BatchFile != "":
		err = ErrConflictingInput
	case config.IsBatch():
		err = config.parseBatch(set, *report)
	default:
		err = config.parseSingle(set, *position, *mode, *format)
	}
	if err != nil {
		return nil, usageError(err)
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}

	return config, nil
}

func (c *Config) parseSingle(set map[string]bool, position, mode, format string) error {
	switch {
	case !set["offset"] && !set["position"]:
		return ErrMissingLocation
	case set["offset"] && set["position"]:
		return ErrConflictingLocation
	case set["offset"] && c.Offset < 0:
		return fmt.Errorf("%w, got: %d", ErrNegativeOffset, c.Offset)
	case set["position"]:
		pos, err := document.ParsePosition(position)
		if err != nil {
			return err
		}
		c.Position = &pos
	}

	parsedMode, err := resolve.ParseMode(mode)
	if err != nil {
		return err
	}
	c.Mode = parsedMode

	parsedFormat, err := parseOutputFormat(format)
	if err != nil {
		return err
	}
	c.Format = parsedFormat

	return nil
}

func (c *Config) parseBatch(set map[string]bool, report string) error {
	for _, name := range []string{"offset", "position", "mode", "format", "verify"} {
		if set[name] {
			return ErrSingleOnlyFlag
		}
	}

	if c.Parallel < 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidParallel, c.Parallel)
	}

	parsedReport, err := batch.ParseFormat(report)
	if err != nil {
		return fmt.Errorf("%w, got: %s", ErrInvalidReportFormat, report)
	}
	c.Report = parsedReport

	return nil
}

// Validate checks that input files are accessible.
func (c *Config) Validate() error {
	if c.File != "" {
		if _, err := os.Stat(c.File); err != nil {
			return fmt.Errorf("file %s not accessible: %w", c.File, err)
		}
	}
	if c.BatchFile != "" {
		if _, err := os.Stat(c.BatchFile); err != nil {
			return fmt.Errorf("batch file %s not accessible: %w", c.BatchFile, err)
		}
	}
	return nil
}

func parseOutputFormat(input string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(input))); format {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON, OutputYAML, OutputJSONPath:
		return format, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidOutputFormat, input)
	}
}

func usageError(err error) *exit.Result {
	return exit.Errorf("Error: %v\n\n%s\n", err, Usage())
}

// Usage returns command usage text.
func Usage() string {
	return `hoverpath - print the key/index path at a cursor position in JSON or script source

Usage:
  hoverpath --file FILE (--offset N | --position L:C) [--mode MODE] [--format FORMAT] [--verify]
  hoverpath --batch CASES.yaml [--parallel N] [--rate-limit N] [--report FORMAT]

Options:
  --file FILE         JSON, JavaScript or TypeScript file to inspect
  --offset N          Byte offset of the cursor, 0-based
  --position L:C      Cursor line and column, 1-based, column in characters
  --mode MODE         Resolution mode: auto, json or script (default: auto)
  --format FORMAT     Output format: text, json, yaml or jsonpath (default: text)
  --verify            Check the path against the JSON document with a JSONPath query
  --batch FILE        YAML list of cases to resolve
  --parallel N        Maximum concurrent cases, 0 for unbounded (default: 0)
  --rate-limit N      Cases started per second, 0 for unlimited (default: 0)
  --report FORMAT     Batch report format: text, json or yaml (default: text)
  --debug             Log debug output to stderr
  --log-file FILE     Write logs to a rotating file
  --log-level LEVEL   Log level: debug, info, warn or error (default: info)
  -h, --help          Show this help message

Exit codes:
  0  path found, or every batch case passed
  1  error, or a batch case mismatched or failed
  2  no path at the given position`
}
