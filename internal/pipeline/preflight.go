package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/microbridge/microbridge/internal/format"
	"github.com/microbridge/microbridge/internal/model"
)

// Problem is one issue found before a run starts
type Problem struct {
	Path   string
	Kind   model.ErrorKind
	Detail string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.Path, p.Detail, p.Kind)
}

// Fatal reports whether the problem stops the whole run rather than one file
func (p Problem) Fatal() bool {
	return p.Kind == model.ErrOutputWriteFailure
}

// Preflight checks every input and output location in one pass so all issues
// can be reported together. It leaves nothing behind on disk.
func Preflight(paths []string, opts Options) []Problem {
	var problems []Problem
	targets := make(map[string]bool)

	for _, path := range paths {
		if p, ok := checkInput(path, opts.Format); !ok {
			problems = append(problems, p)
			continue
		}
		if opts.OutputDir == "" {
			targets[filepath.Dir(path)] = true
		}
	}

	if opts.OutputDir != "" {
		targets[opts.OutputDir] = true
	}
	if opts.DryRun {
		return problems
	}

	dirs := make([]string, 0, len(targets))
	for dir := range targets {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for _, dir := range dirs {
		if err := checkWritable(dir); err != nil {
			problems = append(problems, Problem{
				Path:   dir,
				Kind:   model.ErrOutputWriteFailure,
				Detail: "output folder is not writable: " + err.Error(),
			})
		}
	}

	return problems
}

func checkInput(path string, forced format.Format) (Problem, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Problem{Path: path, Kind: model.ErrInputNotFound, Detail: "file does not exist"}, false
		}
		return Problem{Path: path, Kind: model.ErrInputUnreadable, Detail: err.Error()}, false
	}
	if info.IsDir() {
		return Problem{Path: path, Kind: model.ErrInputUnreadable, Detail: "path is a directory"}, false
	}

	head, err := readHead(path)
	if err != nil {
		return Problem{Path: path, Kind: model.ErrInputUnreadable, Detail: "cannot read file: " + err.Error()}, false
	}

	if forced == format.Unknown {
		if msg := format.Mismatch(path, head); msg != "" {
			return Problem{Path: path, Kind: model.ErrMalformedDocument, Detail: "file " + msg}, false
		}
	}
	if format.Resolve(forced, path, head) == format.Unknown {
		return Problem{Path: path, Kind: model.ErrMalformedDocument, Detail: "unrecognised file type"}, false
	}

	return Problem{}, true
}

// checkWritable probes dir, or its nearest existing parent when dir will be
// created by the run, by creating and removing a temporary file
func checkWritable(dir string) error {
	if dir == "" {
		dir = "."
	}
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return err
		}
		dir = parent
	}

	f, err := os.CreateTemp(dir, ".microbridge-preflight-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
