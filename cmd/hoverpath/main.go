package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacoelho/hoverpath/internal/batch"
	"github.com/jacoelho/hoverpath/internal/config"
	"github.com/jacoelho/hoverpath/internal/document"
	"github.com/jacoelho/hoverpath/internal/exit"
	"github.com/jacoelho/hoverpath/internal/logging"
	"github.com/jacoelho/hoverpath/internal/resolve"
	"github.com/jacoelho/hoverpath/internal/verify"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	logger, closer, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exit.CodeError
	}
	defer closer.Close()

	if cfg.IsBatch() {
		exitResult = runBatch(ctx, cfg, logger)
	} else {
		exitResult = runSingle(cfg, logger)
	}

	exitResult.Print(stdout, stderr)
	return exitResult.ExitCode
}

func runSingle(cfg *config.Config, logger *slog.Logger) *exit.Result {
	content, err := os.ReadFile(cfg.File)
	if err != nil {
		return exit.Errorf("Error: failed to read file: %v\n", err)
	}
	doc := document.New(cfg.File, string(content))

	offset := cfg.Offset
	if cfg.Position != nil {
		offset, err = doc.OffsetAt(*cfg.Position)
		if err != nil {
			return exit.Errorf("Error: %v\n", err)
		}
	}

	mode := cfg.Mode
	if mode == resolve.ModeAuto {
		mode = resolve.ModeForFile(cfg.File)
	}
	if mode == resolve.ModeAuto {
		mode = resolve.Detect(doc.Text)
	}

	path, found, err := resolve.ResolveChecked(doc.Text, offset, mode)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}
	logger.Debug("resolved", "file", cfg.File, "offset", offset, "mode", mode.String(), "found", found, "path", path.String())

	out := newOutput(doc, offset, mode, path, found)

	if cfg.Verify && found {
		value, err := verify.Container(doc.Text, path)
		if err != nil {
			if errors.Is(err, verify.ErrNotJSON) {
				return exit.Errorf("Error: cannot verify %s: %v\n", cfg.File, err)
			}
			return exit.Errorf("Error: verification failed: %v\n", err)
		}
		out.Verified = true
		out.Value = value
		logger.Debug("verified", "jsonpath", out.JSONPath)
	}

	message, err := out.render(cfg.Format)
	if err != nil {
		return exit.Errorf("Error: failed to write output: %v\n", err)
	}

	if !found {
		return exit.NoResult(message)
	}
	return exit.Success(message)
}

func runBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger) *exit.Result {
	cases, err := batch.Load(cfg.BatchFile)
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	summary, err := batch.Run(ctx, cases, batch.Options{
		Parallel:  cfg.Parallel,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		return exit.Errorf("Error: %v\n", err)
	}

	var report bytes.Buffer
	if err := summary.Write(&report, cfg.Report); err != nil {
		return exit.Errorf("Error: failed to write report: %v\n", err)
	}

	result := exit.Success(report.String())
	if summary.HasFailures() {
		result.ExitCode = exit.CodeError
	}
	return result
}
