// Package pipeline converts one annotation file into one LMD document.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/microbridge/microbridge/internal/cache"
	"github.com/microbridge/microbridge/internal/extract"
	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/render"
	"github.com/microbridge/microbridge/internal/resolve"
)

// Options controls a single conversion
type Options struct {
	Format      format.Format // Unknown: detect per file
	Force       bool          // Write (0, 0) placeholders instead of failing
	DryRun      bool          // Resolve and assemble, write nothing
	Incremental bool          // Skip inputs the ledger has already converted
	OutputDir   string        // Empty: next to the input

	// Progress, when set, is called after each shape candidate
	Progress func(done, total int)

	// HardStopThreshold overrides render.DefaultHardStopThreshold when > 0
	HardStopThreshold int
}

// fingerprint lists every option that changes the written document
func (o Options) fingerprint() []string {
	return []string{
		"format=" + o.Format.String(),
		"force=" + strconv.FormatBool(o.Force),
		"outdir=" + o.OutputDir,
	}
}

// Pipeline orchestrates load, parse, partition, resolve, assemble and commit
type Pipeline struct {
	registry   *extract.Registry
	strategies []resolve.Strategy
	ledger     *cache.Ledger // nil unless incremental conversion is configured
}

// NewPipeline creates a pipeline with the built-in readers and calibration
// chain. ledger may be nil, in which case Options.Incremental is ignored.
func NewPipeline(ledger *cache.Ledger) *Pipeline {
	return &Pipeline{
		registry:   extract.NewRegistry(),
		strategies: resolve.DefaultStrategies(),
		ledger:     ledger,
	}
}

// Convert runs the whole conversion for path. It never returns nil and never
// panics; failures are recorded on the result with a ConversionError.
func (p *Pipeline) Convert(ctx context.Context, path string, opts Options) (res *model.FileResult) {
	start := time.Now()
	res = &model.FileResult{Input: path}

	defer func() {
		if r := recover(); r != nil {
			res.Fail(&model.ConversionError{
				Kind:   model.ErrUnexpected,
				Path:   path,
				Detail: fmt.Sprintf("internal error: %v", r),
				Stack:  debug.Stack(),
			})
		}
		res.Duration = time.Since(start)
	}()

	if err := p.convert(ctx, path, opts, res); err != nil {
		res.Fail(withPath(err, path))
	}

	return res
}

func (p *Pipeline) convert(ctx context.Context, path string, opts Options, res *model.FileResult) error {
	// 1. Load bytes and settle the format
	in, err := load(path, opts.Format)
	if err != nil {
		return err
	}
	res.Format = in.Format.String()
	res.Output = render.OutputPath(path, opts.OutputDir)

	var fingerprint string
	if opts.Incremental && p.ledger != nil && !opts.DryRun {
		fingerprint = cache.Fingerprint(in.Data, opts.fingerprint()...)
		if rec, ok := p.ledger.Lookup(path, fingerprint); ok && rec.Output == res.Output {
			res.Status = model.StatusSkipped
			res.ShapeCount = rec.ShapeCount
			res.Trail.Infof("Unchanged since %s; keeping %s", rec.ConvertedAt.Format(time.RFC3339), rec.Output)
			return nil
		}
	}

	// 2. Parse into classified regions
	reader, ok := p.registry.Lookup(in.Format)
	if !ok {
		return model.Errorf(model.ErrMalformedDocument, path, "no reader for format %s", in.Format)
	}
	parsed, err := reader.Read(bytes.NewReader(in.Data))
	if err != nil {
		return model.NewError(model.ErrMalformedDocument, path, "could not parse "+in.Format.String()+" document", err)
	}
	res.Trail = append(res.Trail, parsed.Trail...)
	res.Trail.Infof("Read %d region(s) from %s input", len(parsed.Regions), in.Format)

	// 3. Partition into calibration, shapes and rulers
	part, err := resolve.Split(parsed.Regions, &res.Trail)
	if err != nil {
		return err
	}
	res.RulersSkipped = len(part.Rulers)

	// 4. Resolve calibration points
	scale := resolve.ScaleFor(in.Format)
	cal := resolve.NewResolver(scale, p.strategies...).Calibrate(part.Calibration, &res.Trail)
	res.Calibration = &cal

	// 5. Assemble shapes
	asm := render.NewAssembler(scale)
	asm.Progress = opts.Progress
	if opts.HardStopThreshold > 0 {
		asm.HardStopThreshold = opts.HardStopThreshold
	}
	doc, dropped, err := asm.Assemble(ctx, cal, part.Shapes, &res.Trail)
	if err != nil {
		return model.NewError(model.ErrCancelled, path, "conversion stopped before the output was written", err)
	}
	res.ShapesDropped = dropped
	res.ShapeCount = doc.ShapeCount()

	if err := resolve.CheckCalibration(cal, opts.Force); err != nil {
		return err
	}
	if slots := cal.MissingSlots(); len(slots) > 0 {
		res.Trail.Warnf("Writing (0, 0) placeholders for calibration point(s) %v because force is set", slots)
	}

	if opts.DryRun {
		res.Status = model.StatusDryRun
		res.Trail.Infof("Dry run: %d shape(s) assembled, %s not written", doc.ShapeCount(), res.Output)
		return nil
	}

	// 6. Commit
	if err := ctx.Err(); err != nil {
		return model.NewError(model.ErrCancelled, path, "conversion stopped before the output was written", err)
	}
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return model.NewError(model.ErrOutputWriteFailure, opts.OutputDir, "could not create output folder", err)
		}
	}
	if err := render.WriteFile(doc, res.Output); err != nil {
		return model.NewError(model.ErrOutputWriteFailure, res.Output, "could not write output file", err)
	}

	res.Status = model.StatusConverted
	res.Trail.Infof("Wrote %d shape(s) to %s", doc.ShapeCount(), res.Output)

	if fingerprint != "" {
		rec := cache.Record{Fingerprint: fingerprint, Output: res.Output, ShapeCount: doc.ShapeCount()}
		if err := p.ledger.Remember(path, rec); err != nil {
			res.Trail.Warnf("Could not record conversion for incremental runs: %v", err)
		}
	}

	return nil
}

// withPath fills in the file a ConversionError refers to when the stage that
// raised it did not know
func withPath(err error, path string) error {
	var ce *model.ConversionError
	if errors.As(err, &ce) {
		if ce.Path == "" {
			ce.Path = path
		}
		return err
	}
	return model.NewError(model.ErrUnexpected, path, "", err)
}
