package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers. Jobs receive the pool's
// context; Stop only prevents queued jobs from starting.
type Pool struct {
	workers  int
	jobQueue chan Job
	results  chan Result

	collected   []Result
	collectDone chan struct{}

	wg       sync.WaitGroup
	ctx      context.Context
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPool creates a pool whose jobs run under ctx
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:     workers,
		jobQueue:    make(chan Job, workers*2),
		results:     make(chan Result, workers*2),
		collectDone: make(chan struct{}),
		ctx:         ctx,
		stop:        make(chan struct{}),
	}
}

// Start launches the workers and the result collector
func (p *Pool) Start() {
	go func() {
		defer close(p.collectDone)
		for r := range p.results {
			p.collected = append(p.collected, r)
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		// A stop that races with a ready job wins
		select {
		case <-p.stop:
			return
		case <-p.ctx.Done():
			return
		default:
		}

		select {
		case <-p.stop:
			return
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- job.Execute(p.ctx)
		}
	}
}

// Submit queues a job. It returns false when the pool was stopped or its
// context ended before the job could be queued.
func (p *Pool) Submit(job Job) bool {
	select {
	case <-p.stop:
		return false
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case <-p.stop:
		return false
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Stop lets running jobs finish and discards the ones still queued
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// Wait closes the queue, waits for the workers and returns every result in
// completion order. No job may be submitted after Wait.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)
	p.wg.Wait()
	close(p.results)
	<-p.collectDone
	return p.collected
}
