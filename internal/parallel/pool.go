// Package parallel distributes per-pixel work across worker goroutines.
//
// Escape-time computation is embarrassingly parallel: every point is
// independent, so the package only needs band splitting and a small
// persistent pool, not work stealing.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines consuming a shared queue.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// Workers start immediately and wait for work.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Buffer a few items per worker so submitters rarely block.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain remaining work before exiting.
			for {
				select {
				case work := <-p.queue:
					if work != nil {
						work()
					}
				default:
					return
				}
			}
		case work := <-p.queue:
			if work != nil {
				work()
			}
		}
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Submit enqueues one work item. Submitting to a closed pool runs the item
// inline; dropping work would leave a WaitGroup hanging.
func (p *Pool) Submit(work func()) {
	if work == nil {
		return
	}
	if !p.running.Load() {
		work()
		return
	}
	select {
	case p.queue <- work:
	case <-p.done:
		work()
	}
}

// Close stops the workers after draining queued work. Close is idempotent.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// ForEach splits [0, n) into contiguous bands, one per available CPU, and
// runs fn(lo, hi) for each band concurrently. It returns when every band
// has completed. fn must not panic.
func ForEach(n int, fn func(lo, hi int)) {
	ForEachBands(n, runtime.GOMAXPROCS(0), fn)
}

// ForEachBands is ForEach with an explicit band count.
func ForEachBands(n, bands int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if bands <= 1 || n < bands {
		fn(0, n)
		return
	}

	size := (n + bands - 1) / bands
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
