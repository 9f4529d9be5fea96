// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package netconf

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/xmltree"
	"github.com/danos/netconfd/yangschema"
)

// Dispatcher is the NETCONF RPC Dispatcher (C6): it holds one
// backend.Channel factory, serves each client transport passed to Handle,
// and implements the one-reply-per-child loop described in §4.2.
type Dispatcher struct {
	idx  *yangschema.Index
	dial func() (*backend.Channel, error)
	log  *log.Logger

	Subscribe func(ch *backend.Channel, req *xmltree.Node) // hook for C7/C5 hand-off
}

// NewDispatcher builds a Dispatcher. dial opens a fresh backend.Channel for
// each unary call; idx may be nil if no YANG-declared RPCs are served.
func NewDispatcher(idx *yangschema.Index, dial func() (*backend.Channel, error), logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{idx: idx, dial: dial, log: logger}
}

// Handle services one client connection until it closes or reading a frame
// from it or writing a reply to it fails. Backend failures, ErrShutdown and
// ErrMalformedFrame included, are answered with an <rpc-error> for the
// child concerned and do not end the session. username, when non-empty, is
// attached to the username attribute of the <rpc> root before any of its children are forwarded to
// the backend, and scrubbed again once the backend has seen them (§4.2
// "username attribute attach/scrub").
func (d *Dispatcher) Handle(conn io.ReadWriteCloser, username string) error {
	defer conn.Close()

	frames := newFrameReader(conn)
	for {
		raw, err := frames.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("netconf: reading client frame: %w", err)
		}

		doc, err := xmltree.Parse(bytes.NewReader(raw))
		if err != nil {
			d.log.Printf("netconf: discarding malformed frame: %v", err)
			continue
		}
		if doc.Name != "rpc" {
			d.log.Printf("netconf: ignoring non-rpc top-level element %q", doc.Name)
			continue
		}

		msgID, _ := doc.Attr("message-id")

		if username != "" {
			doc.SetAttr("username", username)
		}

		// §4.2: exactly one reply is produced per <rpc> child, in document
		// order, regardless of how many children a single <rpc> carries.
		for _, child := range doc.Children {
			reply := d.dispatchOne(child)
			env := wrapReply(msgID, reply)

			var buf bytes.Buffer
			if err := env.Encode(&buf); err != nil {
				return fmt.Errorf("netconf: encoding reply: %w", err)
			}
			if err := writeFramed(conn, buf.Bytes()); err != nil {
				return fmt.Errorf("netconf: writing reply: %w", err)
			}
		}

		if username != "" {
			doc.RemoveAttr("username")
		}
	}
}

// dispatchOne decodes and routes a single <rpc> child, returning its
// <rpc-reply> or <rpc-error> element (already shaped for transmission).
func (d *Dispatcher) dispatchOne(child *xmltree.Node) *xmltree.Node {
	op, err := Decode(d.idx, child)
	if err != nil {
		return errorReply(err)
	}

	ch, err := d.dial()
	if err != nil {
		return errorReply(fmt.Errorf("netconf: connecting to backend: %w", err))
	}
	defer func() {
		// create-subscription keeps its channel open for C5; every other
		// operation is strictly request/response and closes immediately.
		if op.Kind != OpCreateSubscription {
			ch.Close()
		}
	}()

	switch op.Kind {
	case OpCreateSubscription:
		reply, err := ch.CreateSubscription(op.Raw)
		if err != nil {
			return errorReply(err)
		}
		if d.Subscribe != nil {
			d.Subscribe(ch, op.Raw)
		}
		return reply

	case OpGetConfig, OpGet:
		reply, err := ch.Call(op.Raw)
		if err != nil {
			return errorReply(err)
		}
		if op.Filter != nil && op.Filter.Type == FilterSubtree {
			if data := reply.Child("data"); data != nil {
				pruned := PruneSubtree(data, op.Filter.Subtree)
				reply.ReplaceChild("data", pruned)
			}
		}
		return reply

	default:
		reply, err := ch.Call(op.Raw)
		if err != nil {
			return errorReply(err)
		}
		return reply
	}
}

// wrapReply builds the transmitted document: an <rpc-reply> (or passthrough
// of a backend-supplied one) carrying the original message-id.
func wrapReply(msgID string, reply *xmltree.Node) *xmltree.Node {
	if reply.Name != "rpc-reply" {
		wrapped := &xmltree.Node{Name: "rpc-reply"}
		wrapped.AddChild(reply)
		reply = wrapped
	}
	if msgID != "" {
		reply.SetAttr("message-id", msgID)
	}
	return reply
}

// errorReply renders err as an <rpc-error> element.
func errorReply(err error) *xmltree.Node {
	return ErrorToXML(err)
}
