package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/microbridge/microbridge/internal/cache"
	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/pipeline"
	"github.com/microbridge/microbridge/internal/worker"
	"github.com/spf13/cobra"
)

// runFlags are shared by convert and batch
type runFlags struct {
	outputDir   string
	force       bool
	formatName  string
	dryRun      bool
	incremental bool
	report      string
	listFile    string
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "write outputs here instead of next to each input")
	cmd.Flags().BoolVar(&f.force, "force", false, "write (0, 0) placeholders for unresolvable calibration points")
	cmd.Flags().StringVar(&f.formatName, "format", "auto", "input format: auto, ndpa, csv")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "resolve and assemble without writing outputs")
	cmd.Flags().BoolVar(&f.incremental, "incremental", false, "skip inputs unchanged since their last conversion")
	cmd.Flags().StringVar(&f.report, "report", "", "write a JSON report of every file to this path")
	cmd.Flags().StringVar(&f.listFile, "list", "", "read additional input paths from a file (one per line)")
}

// apply overlays flags the user actually set onto cfg
func (f *runFlags) apply(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Output.Dir = f.outputDir
	}
	if flags.Changed("force") {
		cfg.Conversion.Force = f.force
	}
	if flags.Changed("format") {
		cfg.Conversion.Format = f.formatName
	}
	if flags.Changed("incremental") {
		cfg.Cache.Enabled = f.incremental
	}
	if flags.Changed("report") {
		cfg.Output.Report = f.report
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	cfg.Output.Debug = cfg.Output.Debug || debug
}

// options builds the conversion options from the effective configuration
func (f *runFlags) options(cfg *model.Config) (pipeline.Options, error) {
	fmtID, ok := format.Parse(cfg.Conversion.Format)
	if !ok {
		return pipeline.Options{}, fmt.Errorf("unknown format %q (want auto, ndpa or csv)", cfg.Conversion.Format)
	}

	return pipeline.Options{
		Format:      fmtID,
		Force:       cfg.Conversion.Force,
		DryRun:      f.dryRun,
		Incremental: cfg.Cache.Enabled,
		OutputDir:   cfg.Output.Dir,
	}, nil
}

// inputs collects args and the list file and expands directories
func (f *runFlags) inputs(args []string, fmtID format.Format) ([]string, error) {
	paths := append([]string(nil), args...)
	if f.listFile != "" {
		listed, err := worker.ReadPathsFromFile(f.listFile)
		if err != nil {
			return nil, fmt.Errorf("read input list: %w", err)
		}
		paths = append(paths, listed...)
	}

	expanded, err := worker.ExpandInputs(paths, fmtID)
	if err != nil {
		return nil, fmt.Errorf("expand inputs: %w", err)
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("no input files (give .ndpa/.csv files or folders containing them)")
	}
	return expanded, nil
}

// newPipeline builds the converter, with an incremental ledger when enabled
func newPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	if !cfg.Cache.Enabled {
		return pipeline.NewPipeline(nil), nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		base, err := configDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "cache")
	}

	store := cache.NewLayeredStore(time.Hour, dir, cfg.Cache.TTL)
	return pipeline.NewPipeline(cache.NewLedger(store, cfg.Cache.TTL)), nil
}

// preflight reports every problem up front. Per-file problems are warnings;
// the affected files still run and fail with their own result.
func preflight(paths []string, opts pipeline.Options) error {
	problems := pipeline.Preflight(paths, opts)
	if len(problems) == 0 {
		return nil
	}

	fatal := 0
	printPreflight(problems)
	for _, p := range problems {
		if p.Fatal() {
			fatal++
		}
	}
	if fatal > 0 {
		return fmt.Errorf("preflight: %d output location(s) not writable", fatal)
	}
	return nil
}
