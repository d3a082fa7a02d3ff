// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	"github.com/ava-labs/provisionvm/state"
)

// Metrics records how tasks were scheduled. It may be nil.
type Metrics interface {
	RecordBlocked()
	RecordExecutable()
}

// Executor sequences the concurrent execution of
// tasks with arbitrary conflicts on-the-fly.
//
// Executor ensures that conflicting tasks
// are executed in the order they were queued.
// Tasks with no conflicts are executed immediately.
//
// Two tasks conflict on a key when at least one of them may write or
// allocate it. Tasks that only read a key run concurrently.
type Executor struct {
	metrics Metrics
	sem     *semaphore.Weighted

	added int
	tasks []*task
	keys  map[string]*keyHistory

	outstanding sync.WaitGroup

	err atomic.Error
}

// keyHistory tracks the last writer of a key and every reader
// enqueued since.
type keyHistory struct {
	writer  int // -1 if none
	readers []int
}

// New creates a new [Executor] that accepts up to [items] tasks and runs
// at most [concurrency] of them at once.
func New(items, concurrency int, metrics Metrics) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		metrics: metrics,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		tasks:   make([]*task, items),
		keys:    make(map[string]*keyHistory, items*2),
	}
}

type task struct {
	f func() error

	l        sync.Mutex
	waiters  map[int]*sync.WaitGroup
	executed bool
}

// dependOn blocks task [id] on the task at [dep] if it has not yet executed.
func (e *Executor) dependOn(id, dep int, wg *sync.WaitGroup) bool {
	lt := e.tasks[dep]
	lt.l.Lock()
	defer lt.l.Unlock()

	if lt.executed {
		return false
	}
	if _, ok := lt.waiters[id]; ok {
		// Already waiting on this task through another key
		return true
	}
	wg.Add(1)
	lt.waiters[id] = wg
	return true
}

// Run executes [f] after all previously enqueued [f] with
// overlapping [conflicts] are executed.
//
// Run is not safe to call concurrently.
func (e *Executor) Run(conflicts state.Keys, f func() error) {
	// Ensure too many transactions not enqueued
	if e.added >= len(e.tasks) {
		e.err.CompareAndSwap(nil, errors.New("too many transactions created"))
		return
	}

	// Generate task
	id := e.added
	e.added++
	t := &task{
		f:       f,
		waiters: map[int]*sync.WaitGroup{},
	}
	e.tasks[id] = t
	e.outstanding.Add(1)

	// Record dependencies
	var (
		wg      = &sync.WaitGroup{}
		blocked bool
	)
	for k, perm := range conflicts {
		h, ok := e.keys[k]
		if !ok {
			h = &keyHistory{writer: -1}
			e.keys[k] = h
		}
		if h.writer >= 0 && e.dependOn(id, h.writer, wg) {
			blocked = true
		}
		if perm.Has(state.Write) || perm.Has(state.Allocate) {
			for _, reader := range h.readers {
				if e.dependOn(id, reader, wg) {
					blocked = true
				}
			}
			h.writer = id
			h.readers = h.readers[:0]
			continue
		}
		h.readers = append(h.readers, id)
	}
	if e.metrics != nil {
		if blocked {
			e.metrics.RecordBlocked()
		} else {
			e.metrics.RecordExecutable()
		}
	}

	// Wait for the scheduler to execute us
	go func() {
		// Block until our dependencies have been executed
		wg.Wait()

		// Ensure we unblock our dependencies
		defer func() {
			t.l.Lock()
			for _, w := range t.waiters {
				w.Done()
			}
			t.waiters = nil
			t.executed = true
			t.l.Unlock()
			e.outstanding.Done()
		}()

		// Stop early if executor is stopped
		if e.err.Load() != nil {
			return
		}

		// Execute task once we aren't too busy
		_ = e.sem.Acquire(context.Background(), 1)
		defer e.sem.Release(1)
		if err := t.f(); err != nil {
			e.err.CompareAndSwap(nil, err)
			return
		}
	}()
}

func (e *Executor) Stop() {
	e.err.CompareAndSwap(nil, ErrStopped)
}

// Wait returns as soon as all enqueued [f] are executed.
//
// You should not call [Run] after [Wait] is called.
func (e *Executor) Wait() error {
	e.outstanding.Wait()
	return e.err.Load()
}
