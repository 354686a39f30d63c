// Package worker replays many game transcripts in parallel. Each item is
// replayed on its own position, so games share no state.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/pgn-san-go/internal/game"
)

// WorkItem is one game transcript to replay.
type WorkItem struct {
	Transcript string
	Index      int // Position of the game in its source file, from 0
}

// ProcessResult is the outcome of replaying one transcript. Result may be
// non-nil alongside Error and then holds the plies applied before it.
type ProcessResult struct {
	Index  int
	Result *game.Result
	Error  error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel replays.
type Pool struct {
	numWorkers int
	bufferSize int
	work       chan WorkItem
	results    chan ProcessResult
	process    ProcessFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool running process on numWorkers goroutines.
// Defaults: 1 worker, buffer size of 10.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 10,
		process:    process,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.bufferSize)
	p.results = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.work {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.results <- p.process(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.work <- item:
		return true
	default:
		return false
	}
}

// Run starts the pool, submits one item per transcript from a separate
// goroutine and closes the pool once all are submitted or ctx is done.
// Items left unsubmitted on cancellation produce no result.
func (p *Pool) Run(ctx context.Context, transcripts []string) <-chan ProcessResult {
	p.Start()
	go func() {
		defer p.Close()
		for i, t := range transcripts {
			select {
			case <-ctx.Done():
				p.Stop()
				return
			case p.work <- WorkItem{Transcript: t, Index: i}:
			}
		}
	}()
	return p.results
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker is done.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
