package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/pipeline"
)

// Converter converts one file
type Converter interface {
	Convert(ctx context.Context, path string, opts pipeline.Options) *model.FileResult
}

// FileJob converts one input as part of a batch
type FileJob struct {
	Index     int
	Path      string
	Options   pipeline.Options
	Converter Converter
}

// Execute runs the conversion
func (j *FileJob) Execute(ctx context.Context) Result {
	return &FileOutcome{
		Index:  j.Index,
		Result: j.Converter.Convert(ctx, j.Path, j.Options),
	}
}

// FileOutcome is a FileJob's result tagged with its input position
type FileOutcome struct {
	Index  int
	Result *model.FileResult
}

// GetError returns the conversion error, if any
func (o *FileOutcome) GetError() error {
	return o.Result.Err
}

// BatchProcessor converts many files concurrently
type BatchProcessor struct {
	converter   Converter
	concurrency int
	opts        pipeline.Options

	mu      sync.Mutex
	pool    *Pool
	stopped bool
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(converter Converter, concurrency int, opts pipeline.Options) *BatchProcessor {
	return &BatchProcessor{
		converter:   converter,
		concurrency: concurrency,
		opts:        opts,
	}
}

// ProcessFiles converts every path and returns one result per path, in input
// order. Files that never started because of Stop or ctx carry ErrCancelled.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*model.FileResult {
	results := make([]*model.FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	pool := NewPool(ctx, b.concurrency)
	b.mu.Lock()
	b.pool = pool
	if b.stopped {
		pool.Stop()
	}
	b.mu.Unlock()

	pool.Start()

	for i, path := range paths {
		job := &FileJob{
			Index:     i,
			Path:      path,
			Options:   b.opts,
			Converter: b.converter,
		}
		if !pool.Submit(job) {
			break
		}
	}

	for _, r := range pool.Wait() {
		outcome := r.(*FileOutcome)
		results[outcome.Index] = outcome.Result
	}

	for i, res := range results {
		if res == nil {
			results[i] = notStarted(paths[i])
		}
	}

	return results
}

// Stop lets in-flight conversions finish and starts no new ones
func (b *BatchProcessor) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	if b.pool != nil {
		b.pool.Stop()
	}
}

func notStarted(path string) *model.FileResult {
	res := &model.FileResult{Input: path}
	res.Fail(model.Errorf(model.ErrCancelled, path, "stopped before this file was started"))
	return res
}

// ExpandInputs replaces each directory with the supported files directly
// inside it, sorted by name. Files are passed through as given so missing
// paths are reported by the conversion itself. Duplicates are dropped.
func ExpandInputs(paths []string, f format.Format) ([]string, error) {
	exts := make(map[string]bool)
	for _, candidate := range []format.Format{format.NDPA, format.CSV} {
		if f != format.Unknown && f != candidate {
			continue
		}
		for _, ext := range candidate.Extensions() {
			exts[ext] = true
		}
	}

	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			add(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", path, err)
		}
		for _, e := range entries {
			if e.IsDir() || !exts[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			add(filepath.Join(path, e.Name()))
		}
	}

	return out, nil
}

// ReadPathsFromFile reads input paths from a list file (one per line).
// Blank lines and # comments are skipped.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
