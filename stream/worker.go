// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package stream implements the Subscription Worker (C5): the per-stream
// event loop that relays backend notifications to a client, and the
// Registry that tracks live subscriptions the way the source's
// process-wide child-pid list does, re-architected per §9 "Global
// subscription list" as state owned by whatever handler forked the
// worker rather than a singleton.
package stream

import (
	"sync"
	"time"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/internal/corelog"
	"github.com/danos/netconfd/xmltree"
)

// liveness is how often the worker checks the client sink's error state,
// mirroring the source's 1-second timer (§4.5).
const liveness = time.Second

// Sink is the client-facing half of a subscription: something that can
// accept one serialized notification at a time and report a permanent
// failure. The RESTCONF gateway (C7) implements this over an SSE response
// writer; tests implement it directly.
type Sink interface {
	// Send delivers one already-XML-serialized <notification> element.
	// A non-nil error marks the sink permanently failed.
	Send(notification *xmltree.Node) error
}

// Worker is the C5 event loop: one per active subscription, reading
// <notification> frames off a backend.Channel and relaying them to a Sink
// until either side closes or the sink stops accepting.
type Worker struct {
	ch   *backend.Channel
	sink Sink
	log  corelog.Logger

	done chan struct{}
	once sync.Once
}

// NewWorker builds a Worker bound to an already-established subscription
// channel and its client sink.
func NewWorker(ch *backend.Channel, sink Sink, logger corelog.Logger) *Worker {
	if logger == nil {
		logger = corelog.Discard
	}
	return &Worker{ch: ch, sink: sink, log: logger, done: make(chan struct{})}
}

// Run drives the event loop until the backend channel closes, the sink
// reports a failure, or Stop is called. It registers the same three event
// sources as the source's fork-per-subscription child (§4.5): the backend
// notification read, the sink's own liveness, and a periodic timer — here
// expressed as goroutines feeding a single select rather than OS-level
// event-source registration, per §9 "Fork-based worker".
func (w *Worker) Run() {
	defer w.ch.Close()

	notifications := make(chan *xmltree.Node)
	readErr := make(chan error, 1)
	go func() {
		err := w.ch.Notifications(func(n *xmltree.Node) error {
			select {
			case notifications <- n:
				return nil
			case <-w.done:
				return backend.ErrShutdown
			}
		})
		readErr <- err
	}()

	ticker := time.NewTicker(liveness)
	defer ticker.Stop()

	sinkFailed := false
	for {
		select {
		case n := <-notifications:
			if sinkFailed {
				continue
			}
			if err := w.sink.Send(n); err != nil {
				w.log.Info("subscription sink failed, ending stream", "error", err)
				sinkFailed = true
				w.Stop()
			}

		case err := <-readErr:
			if err != nil {
				w.log.Info("subscription backend closed", "error", err)
			}
			return

		case <-ticker.C:
			if sinkFailed {
				return
			}

		case <-w.done:
			return
		}
	}
}

// Stop signals Run to exit at its next opportunity. Safe to call more than
// once and from any goroutine.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.done) })
}
