package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/pipeline"
	"github.com/microbridge/microbridge/internal/worker"
)

const rule = "═══════════════════════════════════════════════════════════"

// stderr is where all human-readable output goes
var stderr io.Writer = os.Stderr

func printBanner(title string, lines ...string) {
	fmt.Fprintf(stderr, "\n%s\n  %s\n%s\n\n", rule, title, rule)
	for _, l := range lines {
		fmt.Fprintf(stderr, "  %s\n", l)
	}
	if len(lines) > 0 {
		fmt.Fprintln(stderr)
	}
}

func printPreflight(problems []pipeline.Problem) {
	fmt.Fprintf(stderr, "⚠️  Preflight found %d problem(s):\n", len(problems))
	for _, p := range problems {
		glyph := "⚠️ "
		if p.Fatal() {
			glyph = "✗"
		}
		fmt.Fprintf(stderr, "  %s %s\n", glyph, p)
	}
	fmt.Fprintln(stderr)
}

// printResult renders one file's outcome: a status line, warnings always,
// the info trail with verbose, cause and remedy on failure, and the wrapped
// chain and stack with debug
func printResult(res *model.FileResult, verbose, debug bool) {
	name := filepath.Base(res.Input)

	switch res.Status {
	case model.StatusConverted:
		fmt.Fprintf(stderr, "✓ %s → %s (%s)\n", name, res.Output, shapeSummary(res))
	case model.StatusDryRun:
		fmt.Fprintf(stderr, "✓ %s: dry run, %s\n", name, shapeSummary(res))
	case model.StatusSkipped:
		fmt.Fprintf(stderr, "✓ %s: unchanged, skipped\n", name)
	default:
		fmt.Fprintf(stderr, "✗ %s: %s\n", name, res.ErrorKind)
	}

	for _, e := range res.Trail {
		switch {
		case e.Level == model.LevelWarn:
			fmt.Fprintf(stderr, "    ⚠️  %s\n", e.Message)
		case verbose:
			fmt.Fprintf(stderr, "    %s\n", e.Message)
		}
	}

	if res.OK() {
		return
	}

	var ce *model.ConversionError
	if !errors.As(res.Err, &ce) {
		fmt.Fprintf(stderr, "    Cause: %v\n", res.Err)
		return
	}

	if ce.Detail != "" {
		fmt.Fprintf(stderr, "    Cause: %s\n", ce.Detail)
	}
	fmt.Fprintf(stderr, "    Fix:   %s\n", ce.Remedy())

	if debug {
		fmt.Fprintf(stderr, "    File:  %s\n", ce.Path)
		for err := ce.Err; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(stderr, "    Error: %v\n", err)
		}
		if len(ce.Stack) > 0 {
			fmt.Fprintf(stderr, "    Stack:\n")
			for _, line := range strings.Split(strings.TrimRight(string(ce.Stack), "\n"), "\n") {
				fmt.Fprintf(stderr, "      %s\n", line)
			}
		}
	}
}

func shapeSummary(res *model.FileResult) string {
	s := fmt.Sprintf("%d shape(s)", res.ShapeCount)
	if res.ShapesDropped > 0 {
		s += fmt.Sprintf(", %d dropped", res.ShapesDropped)
	}
	if res.RulersSkipped > 0 {
		s += fmt.Sprintf(", %d ruler(s) skipped", res.RulersSkipped)
	}
	return s
}

func printSummary(title string, s *worker.Summary, elapsed time.Duration) {
	printBanner(title,
		fmt.Sprintf("Converted: %d/%d", s.Converted, s.Total),
		fmt.Sprintf("Skipped:   %d", s.Skipped),
		fmt.Sprintf("Failed:    %d", s.Failed),
		fmt.Sprintf("Cancelled: %d", s.Cancelled),
		fmt.Sprintf("Elapsed:   %v", elapsed.Round(time.Millisecond)),
	)
	if s.Stopped {
		fmt.Fprintf(stderr, "⚠️  Run was stopped before every file was converted\n\n")
	}
}

// fileReport is the JSON document written with --report
type fileReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Version     string              `json:"version"`
	Total       int                 `json:"total"`
	Converted   int                 `json:"converted"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	Cancelled   int                 `json:"cancelled"`
	Files       []*model.FileResult `json:"files"`
}

// writeReport writes the run's results as indented JSON
func writeReport(path string, s *worker.Summary) error {
	report := fileReport{
		GeneratedAt: time.Now().UTC(),
		Version:     Version,
		Total:       s.Total,
		Converted:   s.Converted,
		Skipped:     s.Skipped,
		Failed:      s.Failed,
		Cancelled:   s.Cancelled,
		Files:       s.Results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// finish writes the report and turns failures into the command's error
func finish(cfg *model.Config, s *worker.Summary) error {
	if cfg.Output.Report != "" {
		if err := writeReport(cfg.Output.Report, s); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "✓ Wrote report: %s\n", cfg.Output.Report)
	}

	if s.Failed > 0 || s.Cancelled > 0 {
		return fmt.Errorf("%d of %d file(s) not converted", s.Failed+s.Cancelled, s.Total)
	}
	return nil
}
