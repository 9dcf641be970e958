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

var (
	batchFlags  runFlags
	concurrency int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file-or-folder>...",
	Short: "Convert many annotation files in parallel",
	Long: `Batch converts files concurrently with a fixed number of workers and
prints the results in input order once every file is done. Conversions are
identical to the convert command; only the scheduling differs.

Example:
  microbridge batch ./annotations
  microbridge batch --list inputs.txt --concurrency 8 --output-dir ./lmd
  microbridge batch ./annotations --incremental --report report.json`,
	Args: cobra.ArbitraryArgs,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addRunFlags(batchCmd, &batchFlags)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	batchFlags.apply(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	opts, err := batchFlags.options(cfg)
	if err != nil {
		return err
	}
	paths, err := batchFlags.inputs(args, opts.Format)
	if err != nil {
		return err
	}

	printBanner("MicroBridge Batch Conversion",
		fmt.Sprintf("Files:        %d", len(paths)),
		fmt.Sprintf("Workers:      %d", cfg.Concurrency.Workers),
		fmt.Sprintf("Format:       %s", cfg.Conversion.Format),
		fmt.Sprintf("Output dir:   %s", outputLabel(cfg.Output.Dir)),
	)

	if err := preflight(paths, opts); err != nil {
		return err
	}

	conv, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	processor := worker.NewBatchProcessor(conv, cfg.Concurrency.Workers, opts)

	// First interrupt: start nothing new. After the shutdown timeout the
	// in-flight conversions are cancelled.
	hardCtx, hardCancel := context.WithCancel(context.Background())
	defer hardCancel()
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
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
		fmt.Fprintf(stderr, "\n⚠️  Interrupt received: finishing in-flight files (up to %v)\n", cfg.Concurrency.ShutdownTimeout)
		processor.Stop()

		select {
		case <-done:
		case <-time.After(cfg.Concurrency.ShutdownTimeout):
			hardCancel()
		}
	}()

	fmt.Fprintf(stderr, "⚙️  Converting %d file(s) with %d workers...\n\n", len(paths), cfg.Concurrency.Workers)

	start := time.Now()
	results := processor.ProcessFiles(hardCtx, paths)
	close(done)

	for _, res := range results {
		printResult(res, cfg.Output.Verbose, cfg.Output.Debug)
	}

	summary := worker.Summarize(results)
	printSummary("Batch Complete", summary, time.Since(start))
	return finish(cfg, summary)
}
