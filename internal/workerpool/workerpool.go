// Copyright 2025 go-spmd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workerpool splits the spmdinfo self-check across a fixed set of
// goroutines. Ranges handed to workers start on a multiple of a grain,
// normally the vector width, so only the last range has a masked tail.
//
// Usage:
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	pool.ParallelFor(len(src), spmd.Width[A](), func(start, end int) {
//	    math.ExpSlice[A](dst[start:end], src[start:end])
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/lanewise/go-spmd/internal/logging"
)

// Pool is a set of persistent workers. It is safe for concurrent use.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New starts a pool of numWorkers goroutines, or GOMAXPROCS of them when
// numWorkers <= 0. Workers run until Close.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	logging.Debugf("workerpool: started %d workers", numWorkers)
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers once queued work drains. Later calls to the
// Parallel methods run on the calling goroutine. Close is idempotent.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// alignUp rounds n up to a multiple of grain.
func alignUp(n, grain int) int {
	return (n + grain - 1) / grain * grain
}

// ParallelFor calls fn on disjoint ranges covering [0, n), at most one
// per worker, and waits for all of them. Every range except the last
// starts and ends on a multiple of grain; grain <= 0 means 1.
func (p *Pool) ParallelFor(n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	grain = max(grain, 1)
	chunk := alignUp((n+p.numWorkers-1)/p.numWorkers, grain)
	if p.closed.Load() || chunk >= n {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- task{fn: func() { fn(start, end) }, done: &wg}
	}
	wg.Wait()
}

// ParallelForBatched hands out ranges of batch elements, rounded up to
// a multiple of grain, to whichever worker is free. It balances better
// than ParallelFor when the cost per element varies.
func (p *Pool) ParallelForBatched(n, batch, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batch = alignUp(max(batch, 1), max(grain, 1))
	batches := (n + batch - 1) / batch
	workers := min(p.numWorkers, batches)
	if p.closed.Load() || workers == 1 {
		fn(0, n)
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- task{
			fn: func() {
				for {
					start := int(next.Add(1)-1) * batch
					if start >= n {
						return
					}
					fn(start, min(start+batch, n))
				}
			},
			done: &wg,
		}
	}
	wg.Wait()
}
