// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs lane groups on a persistent set of goroutines.
//
// A Pool is created once per process and reused for every batch, so a
// launch costs one channel send per worker rather than a goroutine per
// group.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, batch := range batches {
//	    pool.Groups(numGroups, func(group int) {
//	        runGroup(batch, group)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned by New and exit on
// Close.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
	wg         sync.WaitGroup
}

type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines. If numWorkers <= 0 it uses
// GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers),
	}
	p.wg.Add(numWorkers)
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.workC {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after pending work completes and waits for them
// to exit. It is safe to call more than once. Work submitted after Close
// runs on the caller's goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
	p.wg.Wait()
}

// Groups calls fn once for every group in [0, n). Workers claim group
// indices from a shared counter, so uneven groups balance themselves.
// Groups blocks until every call has returned.
func (p *Pool) Groups(n int, fn func(group int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for g := range n {
			fn(g)
		}
		return
	}

	var next atomic.Int64
	var done sync.WaitGroup
	done.Add(workers)
	for range workers {
		p.workC <- task{
			fn: func() {
				for {
					g := int(next.Add(1)) - 1
					if g >= n {
						return
					}
					fn(g)
				}
			},
			done: &done,
		}
	}
	done.Wait()
}

// Range splits [0, n) into one contiguous chunk per worker and calls
// fn(start, end) for each. Range blocks until every call has returned.
func (p *Pool) Range(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var done sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		done.Add(1)
		p.workC <- task{
			fn:   func() { fn(start, end) },
			done: &done,
		}
	}
	done.Wait()
}
