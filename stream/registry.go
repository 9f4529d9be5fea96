// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package stream

import (
	"fmt"
	"sync"
)

// ID identifies one live subscription for the lifetime of its worker.
// Unlike the source's process-wide child pid, it has no meaning outside
// the Registry that issued it.
type ID uint64

// record is one entry in the Registry: the running worker plus whatever
// release hook tears down its resources.
type record struct {
	worker  *Worker
	release func()
}

// Registry tracks live subscriptions the way the source tracks forked
// children awaiting reaping, re-architected per §9 "Global subscription
// list" as a value a RESTCONF gateway instance owns rather than a package
// singleton. It enforces "at most one record per id" and "release exactly
// once" (§8).
type Registry struct {
	mu      sync.Mutex
	next    ID
	entries map[ID]*record
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]*record)}
}

// Add starts w.Run in its own goroutine and records it under a freshly
// issued ID. release is called exactly once, when the subscription is
// torn down via Remove or because the worker exits on its own.
func (r *Registry) Add(w *Worker, release func()) ID {
	r.mu.Lock()
	r.next++
	id := r.next
	r.entries[id] = &record{worker: w, release: release}
	r.mu.Unlock()

	go func() {
		w.Run()
		r.reap(id)
	}()

	return id
}

// reap removes id's record if still present and runs its release hook.
// Safe to race against an explicit Remove: only one of the two actually
// fires the hook.
func (r *Registry) reap(id ID) {
	r.mu.Lock()
	rec, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if ok && rec.release != nil {
		rec.release()
	}
}

// Remove stops id's worker and releases its record immediately, for a
// client-initiated unsubscribe or gateway shutdown. If id is unknown
// (already reaped or removed) it releases nothing and returns an error.
func (r *Registry) Remove(id ID) error {
	r.mu.Lock()
	rec, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("stream: subscription %d not found", id)
	}
	rec.worker.Stop()
	if rec.release != nil {
		rec.release()
	}
	return nil
}

// Len reports the number of live subscriptions, for tests and diagnostics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
