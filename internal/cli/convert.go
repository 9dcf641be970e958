package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/microbridge/microbridge/internal/worker"
	"github.com/spf13/cobra"
)

var convertFlags runFlags

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file-or-folder>...",
	Short: "Convert annotation files one at a time with live progress",
	Long: `Convert processes files sequentially on a background worker and reports
progress as it goes. Folders are expanded to the .ndpa/.csv files directly
inside them.

Interrupting (Ctrl-C) lets the current file finish and skips the rest. If the
current file does not finish within the shutdown timeout it is abandoned and
no output is written for it.

Example:
  microbridge convert slide1.ndpa slide2.ndpa
  microbridge convert ./annotations --output-dir ./lmd
  microbridge convert cells.csv --force --report report.json`,
	Args: cobra.ArbitraryArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addRunFlags(convertCmd, &convertFlags)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	convertFlags.apply(cmd, cfg)

	opts, err := convertFlags.options(cfg)
	if err != nil {
		return err
	}
	paths, err := convertFlags.inputs(args, opts.Format)
	if err != nil {
		return err
	}

	printBanner("MicroBridge Conversion",
		fmt.Sprintf("Files:        %d", len(paths)),
		fmt.Sprintf("Format:       %s", cfg.Conversion.Format),
		fmt.Sprintf("Output dir:   %s", outputLabel(cfg.Output.Dir)),
		fmt.Sprintf("Force:        %v", cfg.Conversion.Force),
	)

	if err := preflight(paths, opts); err != nil {
		return err
	}

	conv, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := worker.NewRunner(conv, opts, cfg.Concurrency.ProgressPerSec)
	start := time.Now()
	runner.Start(context.Background(), paths)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-done:
			return
		case <-sigCtx.Done():
			// stop() also ends sigCtx once the run is over
			select {
			case <-done:
				return
			default:
			}
		}
		fmt.Fprintf(stderr, "\n⚠️  Interrupt received: finishing the current file (up to %v)\n", cfg.Concurrency.ShutdownTimeout)
		if !runner.Shutdown(cfg.Concurrency.ShutdownTimeout) {
			fmt.Fprintf(stderr, "⚠️  Current file abandoned after %v; no partial output was written\n", cfg.Concurrency.ShutdownTimeout)
		}
	}()

	var summary *worker.Summary
	for ev := range runner.Events() {
		switch ev.Kind {
		case worker.EventFileStarted:
			if cfg.Output.Verbose {
				fmt.Fprintf(stderr, "⚙️  [%d/%d] %s\n", ev.Index+1, ev.Total, ev.Path)
			}
		case worker.EventShapeProgress:
			if cfg.Output.Verbose && ev.ShapesTotal > 0 {
				fmt.Fprintf(stderr, "    shapes %d/%d\n", ev.ShapesDone, ev.ShapesTotal)
			}
		case worker.EventFileFinished:
			printResult(ev.Result, cfg.Output.Verbose, cfg.Output.Debug)
		case worker.EventLog:
			fmt.Fprintf(stderr, "⚠️  %s\n", ev.Message)
		case worker.EventBatchDone:
			summary = ev.Summary
		}
	}
	if summary == nil {
		summary = runner.Wait()
	}

	printSummary("Conversion Complete", summary, time.Since(start))
	return finish(cfg, summary)
}

func outputLabel(dir string) string {
	if dir == "" {
		return "(next to each input)"
	}
	return dir
}
