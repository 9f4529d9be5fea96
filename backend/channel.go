// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package backend

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/danos/netconfd/xmltree"
)

// Channel is one backend connection (B in the spec's data model): for
// unary RPCs it is opened, used once, and closed before the reply returns
// to the NETCONF dispatcher; for create-subscription it stays open for the
// lifetime of the subscription so Notifications can keep reading frames
// off it.
type Channel struct {
	conn   io.ReadWriteCloser
	reader *bufio.Reader
	pid    RequestID

	mu sync.Mutex

	log *log.Logger
}

// New wraps an already-connected transport (typically a Unix socket to the
// backend datastore process) as a Channel.
func New(conn io.ReadWriteCloser, logger *log.Logger) *Channel {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Channel{conn: conn, reader: bufio.NewReader(conn), log: logger}
}

// Call performs the strictly-paired send-then-receive described in §4.4:
// send req, block until the matching reply frame arrives. Used by every
// built-in NETCONF operation except create-subscription.
func (c *Channel) Call(req *xmltree.Node) (*xmltree.Node, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reqID := NewRequestID()
	c.pid = reqID

	body, err := encodeXML(req)
	if err != nil {
		return nil, err
	}
	if err := writeEnvelope(c.conn, frameReply, body); err != nil {
		return nil, fmt.Errorf("backend: send: %w", err)
	}

	for {
		kind, replyBody, err := readEnvelope(c.reader)
		if err != nil {
			return nil, err
		}
		if kind == frameNotification {
			// A notification arriving out of band on a unary channel is
			// unexpected (§4.4 only promises this on a subscription's
			// secondary socket) but not fatal; log and keep waiting.
			c.log.Printf("backend: discarding unexpected notification on unary channel")
			continue
		}
		reply, err := xmltree.ParseString(string(replyBody))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		return reply, nil
	}
}

// CreateSubscription sends the create-subscription request and returns the
// reply. On success the Channel remains open and readable for
// notifications (§4.3 "on success register the returned secondary socket
// for asynchronous notification reception"); on failure the caller is
// expected to Close the channel since no subscription was registered.
func (c *Channel) CreateSubscription(req *xmltree.Node) (*xmltree.Node, error) {
	return c.Call(req)
}

// Notifications reads one notification frame at a time off a subscription
// channel, delivering each via deliver until the channel closes or deliver
// returns an error, which Notifications then returns. It always returns a
// non-nil error: a closed connection, clean or not, is reported as
// ErrShutdown, so callers distinguish "upstream closed" from "real error"
// by checking for ErrShutdown specifically (§4.5's worker treats both the
// same way: exit the loop).
func (c *Channel) Notifications(deliver func(*xmltree.Node) error) error {
	for {
		kind, body, err := readEnvelope(c.reader)
		if err != nil {
			return err
		}
		if kind != frameNotification {
			c.log.Printf("backend: discarding non-notification frame on subscription channel")
			continue
		}
		notif, err := xmltree.ParseString(string(body))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		if err := deliver(notif); err != nil {
			return err
		}
	}
}

// Conn exposes the underlying connection for callers (C5's worker) that
// need it as one of several concurrently-registered event sources.
func (c *Channel) Conn() io.ReadWriteCloser { return c.conn }

// Close releases the backend socket. Safe to call more than once.
func (c *Channel) Close() error {
	return c.conn.Close()
}
