package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	pgnerrors "github.com/lgbarn/pgn-san-go/internal/errors"
	"github.com/lgbarn/pgn-san-go/internal/oracle"
	"github.com/lgbarn/pgn-san-go/internal/testutil"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Transcript: "\n1. e4\n", Index: i})
	}

	go pool.Close()

	resultCount := collectResults(pool)
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(2))
	pool.Start()

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestPoolTrySubmit tests non-blocking submission.
func TestPoolTrySubmit(t *testing.T) {
	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(100 * time.Millisecond)
		return ProcessResult{}
	}

	pool := NewPool(slowProcessFunc, WithBufferSize(2))
	pool.Start()

	if !pool.TrySubmit(WorkItem{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}
	if !pool.TrySubmit(WorkItem{Index: 1}) {
		t.Error("second TrySubmit should succeed")
	}

	// Third might fail if buffer is full (timing-dependent, just verify no panic)
	pool.TrySubmit(WorkItem{Index: 2})

	pool.Stop()
	if pool.TrySubmit(WorkItem{Index: 3}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

// TestNewPoolOptions tests the functional options.
func TestNewPoolOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"negative workers ignored", []PoolOption{WithWorkers(-1)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolRunReplaysInOrder replays fixtures on several workers and checks
// Ordered hands them back by index.
func TestPoolRunReplaysInOrder(t *testing.T) {
	var transcripts []string
	var want [][]string
	for i := 0; i < 6; i++ {
		fx := testutil.Fixtures[i%len(testutil.Fixtures)]
		transcripts = append(transcripts, fx.Transcript)
		want = append(want, fx.Coordinates)
	}
	transcripts = append(transcripts, testutil.Transcript("1. e4 e5 2. Ke3"))

	pool := NewPool(ReplayProcessor(oracle.DefaultKind), WithWorkers(3), WithBufferSize(2))
	var got []ProcessResult
	err := Ordered(pool.Run(context.Background(), transcripts), func(r ProcessResult) error {
		got = append(got, r)
		return nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), len(transcripts))

	for i, r := range got[:len(want)] {
		testutil.AssertEqual(t, r.Index, i)
		testutil.AssertNoError(t, r.Error)
		testutil.AssertEqual(t, r.Result.Moves, want[i])
	}

	last := got[len(got)-1]
	testutil.AssertErrorIs(t, last.Error, pgnerrors.ErrNoMatchingMove)
	testutil.AssertEqual(t, last.Result.Moves, []string{"e2e4", "e7e5"})
}

// TestPoolRunCancelled verifies a cancelled context still closes results.
func TestPoolRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(noopProcessFunc())
	count := 0
	for range pool.Run(ctx, make([]string, 100)) {
		count++
	}
	if count >= 100 {
		t.Errorf("cancelled run produced %d results", count)
	}
}

func TestReplayProcessorBadFEN(t *testing.T) {
	process := ReplayProcessor(oracle.KindMailbox)
	r := process(WorkItem{Index: 7, Transcript: testutil.Transcript("1. e4", "FEN", "8/8/8/8/8/8/8/8 w - - 0 1")})
	testutil.AssertEqual(t, r.Index, 7)
	testutil.AssertTrue(t, r.Result == nil, "got %+v", r.Result)
	testutil.AssertErrorIs(t, r.Error, pgnerrors.ErrInvalidFEN)
}

func TestOrdered(t *testing.T) {
	results := make(chan ProcessResult, 5)
	for _, i := range []int{2, 0, 4, 1, 6} {
		results <- ProcessResult{Index: i}
	}
	close(results)

	var order []int
	err := Ordered(results, func(r ProcessResult) error {
		order = append(order, r.Index)
		return nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, order, []int{0, 1, 2, 4, 6})
}

func TestOrderedStopsOnError(t *testing.T) {
	results := make(chan ProcessResult, 3)
	for i := 0; i < 3; i++ {
		results <- ProcessResult{Index: i}
	}
	close(results)

	boom := errors.New("write failed")
	calls := 0
	err := Ordered(results, func(r ProcessResult) error {
		calls++
		return boom
	})
	testutil.AssertErrorIs(t, err, boom)
	testutil.AssertEqual(t, calls, 1)
}
