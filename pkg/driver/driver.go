// Package driver fans work units for the alignment kernels out across a
// worker pool of goroutines joined by a sync.WaitGroup. Kernels themselves
// are pure and single-threaded; all concurrency across invocations lives
// here.
package driver

import (
	"context"
	"sync"
)

// ProgressCallback reports how many of the total work units have completed.
// Implementations must be safe to call from multiple goroutines.
type ProgressCallback func(done, total int)

// State is a driver's own lifecycle, tracked only for progress reporting;
// kernels never consult it.
type State int

const (
	StateIdle State = iota
	StateDispatching
	StateAggregating
	StateDone
)

// Driver runs work units across a worker pool and tracks the dispatch
// lifecycle described by State so a caller can observe it (e.g. to render
// a spinner) concurrently with Run.
type Driver struct {
	mu    sync.Mutex
	state State
}

// NewDriver returns an idle Driver.
func NewDriver() *Driver {
	return &Driver{state: StateIdle}
}

// State reports the driver's current lifecycle stage. Safe to call from any
// goroutine, including while Run is in progress.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// Run partitions [0,gridSize) into numWorkers contiguous ranges and runs
// work(unit) for every unit, each range in its own goroutine. It returns
// once every unit has completed, or early with ctx.Err() if ctx is
// cancelled before some range is launched (a range already dispatched
// always runs to completion). While it runs, d.State() moves
// Idle -> Dispatching -> Aggregating -> Done.
//
// Static range partitioning, not work-stealing: grid_size units are
// uniform cost in this kernel family, so a fixed split already balances
// load without a scheduler. Every unit's output lands in a disjoint slice
// of the caller's output buffer, so no synchronization is required beyond
// the final join.
func (d *Driver) Run(ctx context.Context, gridSize, numWorkers int, work func(unit int), progress ProgressCallback) error {
	d.setState(StateDispatching)
	if gridSize <= 0 {
		d.setState(StateDone)
		return nil
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if numWorkers > gridSize {
		numWorkers = gridSize
	}

	var doneCount int
	var mu sync.Mutex
	report := func(n int) {
		if progress == nil {
			return
		}
		mu.Lock()
		doneCount += n
		d := doneCount
		mu.Unlock()
		progress(d, gridSize)
	}

	chunk := (gridSize + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= gridSize {
			break
		}
		if end > gridSize {
			end = gridSize
		}

		select {
		case <-ctx.Done():
			wg.Wait()
			d.setState(StateDone)
			return ctx.Err()
		default:
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for unit := start; unit < end; unit++ {
				work(unit)
			}
			report(end - start)
		}(start, end)
	}

	d.setState(StateAggregating)
	wg.Wait()
	d.setState(StateDone)
	return nil
}

// Run dispatches a single one-shot call across a fresh Driver, for callers
// that don't need to observe the lifecycle themselves.
func Run(ctx context.Context, gridSize, numWorkers int, work func(unit int), progress ProgressCallback) error {
	return NewDriver().Run(ctx, gridSize, numWorkers, work, progress)
}
