package model

import (
	"fmt"
	"time"
)

// Status is the outcome of one file conversion
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped" // Unchanged since the last incremental run
	StatusDryRun    Status = "dry_run" // Resolved and assembled, nothing written
	StatusFailed    Status = "failed"
)

// FileResult is the per-file result handed back to the front-ends
type FileResult struct {
	Input         string          `json:"input"`
	Output        string          `json:"output,omitempty"`
	Format        string          `json:"format"`
	Status        Status          `json:"status"`
	Calibration   *CalibrationSet `json:"calibration,omitempty"`
	ShapeCount    int             `json:"shape_count"`
	ShapesDropped int             `json:"shapes_dropped"`
	RulersSkipped int             `json:"rulers_skipped"`
	Trail         Trail           `json:"trail"`
	Error         string          `json:"error,omitempty"`
	ErrorKind     ErrorKind       `json:"error_kind,omitempty"`
	Duration      time.Duration   `json:"duration_ns"`

	Err error `json:"-"`
}

// OK reports whether the file counts as a success
func (r *FileResult) OK() bool {
	return r.Err == nil
}

// Fail records err on the result
func (r *FileResult) Fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
	r.ErrorKind = KindOf(err)
}

// Level is the severity of a trail entry
type Level string

const (
	LevelInfo Level = "info"
	LevelWarn Level = "warning"
)

// TrailEntry is one line of the diagnostic trail
type TrailEntry struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Trail is the human-readable record of decisions made during a conversion
type Trail []TrailEntry

// Infof appends an informational entry
func (t *Trail) Infof(format string, args ...interface{}) {
	*t = append(*t, TrailEntry{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning entry
func (t *Trail) Warnf(format string, args ...interface{}) {
	*t = append(*t, TrailEntry{Level: LevelWarn, Message: fmt.Sprintf(format, args...)})
}

// Warnings returns only the warning entries
func (t Trail) Warnings() Trail {
	var out Trail
	for _, e := range t {
		if e.Level == LevelWarn {
			out = append(out, e)
		}
	}
	return out
}
