package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/hover"
	"github.com/jacoelho/hoverpath/internal/ratelimit"
	"github.com/jacoelho/hoverpath/internal/resolve"
)

// Options configures a batch run.
type Options struct {
	// Parallel bounds concurrent cases; 0 or less means unbounded.
	Parallel int
	// RateLimit is cases started per second; 0 or less disables pacing.
	RateLimit float64
	Logger    *slog.Logger
}

// cachedFile is a document read once before evaluation starts.
type cachedFile struct {
	doc *document.Document
	err error
}

// Run evaluates cases and returns the summary in case order. It fails only
// when ctx is cancelled; per-case problems are reported as OutcomeError.
func Run(ctx context.Context, cases []Case, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	summary := Summary{RunID: uuid.NewString()}
	logger = logger.With("run_id", summary.RunID)
	logger.Debug("batch started", "cases", len(cases), "parallel", opts.Parallel, "rate_limit", opts.RateLimit)

	files := loadFiles(cases)
	limiter := ratelimit.New(opts.RateLimit)
	results := make([]CaseResult, len(cases))

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		group.SetLimit(opts.Parallel)
	}

	for index, c := range cases {
		group.Go(func() error {
			if err := limiter.Wait(groupCtx); err != nil {
				return fmt.Errorf("case %s: %w", c.Label(), err)
			}

			results[index] = evaluate(c, files[c.File])
			logger.Debug("case evaluated",
				"case", results[index].Name,
				"offset", results[index].Offset,
				"outcome", results[index].Outcome)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	for _, result := range results {
		summary.Add(result)
	}
	logger.Debug("batch finished", "matched", summary.Matched, "mismatched", summary.Mismatched, "errors", summary.Errors)

	return summary, nil
}

// loadFiles reads every distinct case file. Workers only read the map.
func loadFiles(cases []Case) map[string]cachedFile {
	files := make(map[string]cachedFile)
	for _, c := range cases {
		if _, ok := files[c.File]; ok {
			continue
		}
		content, err := os.ReadFile(c.File)
		if err != nil {
			files[c.File] = cachedFile{err: fmt.Errorf("read file: %w", err)}
			continue
		}
		files[c.File] = cachedFile{doc: document.New(c.File, string(content))}
	}
	return files
}

func evaluate(c Case, file cachedFile) CaseResult {
	mode := c.mode()
	result := CaseResult{
		Name:   c.Label(),
		File:   c.File,
		Mode:   mode.String(),
		Expect: c.Expect,
	}

	fail := func(err error) CaseResult {
		result.Outcome = OutcomeError
		result.Error = err.Error()
		return result
	}

	if err := c.Validate(); err != nil {
		return fail(err)
	}
	if file.err != nil {
		return fail(file.err)
	}

	offset, err := c.offset(file.doc)
	if err != nil {
		return fail(err)
	}
	result.Offset = offset

	path, found, err := resolve.ResolveChecked(file.doc.Text, offset, mode)
	if err != nil {
		return fail(err)
	}

	result.Found = found
	if found {
		result.Path = path.String()
		result.JSONPath = path.JSONPath()
	}
	result.Outcome = outcome(result, c.Expect)

	return result
}

func (c Case) offset(doc *document.Document) (int, error) {
	if c.Offset != nil {
		return *c.Offset, nil
	}
	pos, err := document.ParsePosition(c.Position)
	if err != nil {
		return 0, err
	}
	return doc.OffsetAt(pos)
}

func outcome(result CaseResult, expect *string) Outcome {
	if expect == nil {
		if result.Found {
			return OutcomeResolved
		}
		return OutcomeNoResult
	}

	want := *expect
	switch {
	case want == NoResult:
		if !result.Found {
			return OutcomeMatched
		}
	case !result.Found:
	case want == result.Path:
		return OutcomeMatched
	case result.Path == "" && want == hover.RootLabel:
		return OutcomeMatched
	}
	return OutcomeMismatched
}
