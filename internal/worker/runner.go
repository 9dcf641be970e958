package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/microbridge/microbridge/internal/model"
	"github.com/microbridge/microbridge/internal/pipeline"
)

// EventKind identifies a runner event
type EventKind int

const (
	EventFileStarted EventKind = iota
	EventShapeProgress
	EventFileFinished
	EventBatchDone
	EventLog
)

func (k EventKind) String() string {
	switch k {
	case EventFileStarted:
		return "file_started"
	case EventShapeProgress:
		return "shape_progress"
	case EventFileFinished:
		return "file_finished"
	case EventBatchDone:
		return "batch_done"
	case EventLog:
		return "log"
	default:
		return "unknown"
	}
}

// Event is published by the runner goroutine. Which fields are set depends
// on Kind.
type Event struct {
	Kind  EventKind
	Index int // 0-based file position
	Total int // Number of files in the run
	Path  string

	ShapesDone  int // EventShapeProgress
	ShapesTotal int // EventShapeProgress

	Result  *model.FileResult // EventFileFinished
	Summary *Summary          // EventBatchDone
	Message string            // EventLog
}

// eventBuffer is how far the runner may get ahead of its consumer
const eventBuffer = 64

// Runner converts files one at a time on a dedicated goroutine and
// publishes its progress as events
type Runner struct {
	converter Converter
	opts      pipeline.Options
	throttle  *ProgressThrottle

	events chan Event
	done   chan struct{}

	stopped    atomic.Bool
	hardCtx    context.Context
	hardCancel context.CancelFunc

	startOnce sync.Once
	summary   *Summary
}

// NewRunner creates a runner. progressPerSec bounds shape progress events;
// file-level events are never dropped.
func NewRunner(converter Converter, opts pipeline.Options, progressPerSec float64) *Runner {
	return &Runner{
		converter: converter,
		opts:      opts,
		throttle:  NewProgressThrottle(progressPerSec, 1),
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
	}
}

// Events returns the event stream. It is closed after EventBatchDone. The
// consumer must drain it until closed.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Start begins converting paths. Cancelling ctx is a hard stop.
func (r *Runner) Start(ctx context.Context, paths []string) {
	r.startOnce.Do(func() {
		r.hardCtx, r.hardCancel = context.WithCancel(ctx)
		go r.run(paths)
	})
}

// Stop asks the runner to finish the file in progress and start no more
func (r *Runner) Stop() {
	r.stopped.Store(true)
}

// Stopping reports whether Stop was called
func (r *Runner) Stopping() bool {
	return r.stopped.Load()
}

// Shutdown stops the runner and waits up to timeout for the current file.
// After the deadline the in-flight conversion is cancelled and abandoned
// without writing output. It reports whether the runner finished in time.
func (r *Runner) Shutdown(timeout time.Duration) bool {
	r.Stop()

	// Never started: finish immediately with an empty summary
	r.startOnce.Do(func() {
		r.summary = &Summary{}
		close(r.events)
		close(r.done)
	})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-r.done:
		return true
	case <-timer.C:
	}

	if r.hardCancel != nil {
		r.hardCancel()
	}
	<-r.done
	return false
}

// Wait blocks until the run has finished and returns its summary
func (r *Runner) Wait() *Summary {
	<-r.done
	return r.summary
}

func (r *Runner) run(paths []string) {
	summary := &Summary{}

	defer func() {
		r.hardCancel()
		r.summary = summary
		close(r.done)
	}()
	defer close(r.events)

	total := len(paths)
	for i, path := range paths {
		if r.stopped.Load() {
			for _, rest := range paths[i:] {
				summary.Add(notStarted(rest))
			}
			summary.Stopped = true
			r.emit(Event{Kind: EventLog, Total: total, Message: fmt.Sprintf("Stopped: %d of %d file(s) not started", total-i, total)})
			break
		}

		r.emit(Event{Kind: EventFileStarted, Index: i, Total: total, Path: path})

		opts := r.opts
		opts.Progress = func(done, shapes int) {
			if r.throttle.Allow(done, shapes) {
				r.offer(Event{Kind: EventShapeProgress, Index: i, Total: total, Path: path, ShapesDone: done, ShapesTotal: shapes})
			}
		}

		res := r.converter.Convert(r.hardCtx, path, opts)
		summary.Add(res)
		if res.ErrorKind == model.ErrCancelled {
			summary.Stopped = true
		}

		r.emit(Event{Kind: EventFileFinished, Index: i, Total: total, Path: path, Result: res})
	}

	r.emit(Event{Kind: EventBatchDone, Total: total, Summary: summary})
}

// emit delivers an event the consumer must see
func (r *Runner) emit(ev Event) {
	r.events <- ev
}

// offer delivers an event only if there is room, so progress never stalls
// the conversion
func (r *Runner) offer(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
