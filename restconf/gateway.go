// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package restconf implements the RESTCONF Stream Gateway (C7): it maps an
// HTTP GET on a stream URL to a backend <create-subscription>, and on
// success relays notifications to the client as Server-Sent Events via a
// stream.Worker. URL layout follows the path/stream-name split
// freeconf-manage/client's Address parsing uses for its own stream URLs.
package restconf

import (
	"net/http"
	"strings"

	"github.com/danos/mgmterror"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/internal/corelog"
	"github.com/danos/netconfd/netconf"
	"github.com/danos/netconfd/stream"
	"github.com/danos/netconfd/xmltree"
)

// Authenticator resolves the caller of an HTTP request against the host's
// authentication chain. A false ok means unauthenticated (§4.7). A true ok
// with an empty username means "authenticated, identity not asserted";
// Gateway substitutes the placeholder "none" per §4.7.
type Authenticator func(r *http.Request) (username string, ok bool)

// Gateway is the RESTCONF stream HTTP handler.
type Gateway struct {
	// StreamPath is the single path segment preceding the stream name,
	// e.g. "streams" for GET /streams/NETCONF.
	StreamPath string

	Dial         func() (*backend.Channel, error)
	Authenticate Authenticator
	Registry     *stream.Registry
	Pretty       bool // CLICON_RESTCONF_PRETTY
	ForkDisabled bool // STREAM_FORK unset: run the worker in-request, blocking
	Log          corelog.Logger
}

func (g *Gateway) logger() corelog.Logger {
	if g.Log == nil {
		return corelog.Discard
	}
	return g.Log
}

// ServeHTTP implements the GET /<StreamPath>/<stream-name> surface of §4.7.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name, ok := parseStreamName(r.URL.Path, g.StreamPath)
	if !ok {
		http.NotFound(w, r)
		return
	}

	username, ok := g.Authenticate(r)
	if !ok {
		g.writeErrorDocument(w, accessDenied())
		return
	}
	if username == "" {
		username = "none"
	}

	req := createSubscriptionRequest(name, r.URL.Query())
	if username != "" {
		req.SetAttr("username", username)
	}

	ch, err := g.Dial()
	if err != nil {
		g.writeErrorDocument(w, err)
		return
	}

	reply, err := ch.CreateSubscription(req)
	if err != nil {
		ch.Close()
		g.writeErrorDocument(w, err)
		return
	}
	if rpcErr := reply.Child("rpc-error"); rpcErr != nil {
		ch.Close()
		g.writeErrorDocument(w, backendRPCError(rpcErr))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		ch.Close()
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusCreated)
	flusher.Flush()

	sink := &sseSink{w: w, flusher: flusher, pretty: g.Pretty}
	worker := stream.NewWorker(ch, sink, g.logger())

	if g.ForkDisabled {
		// No fork/task substitute available: run inline, blocking this
		// request goroutine for the stream's lifetime (§4.7).
		worker.Run()
		return
	}

	closed := make(chan struct{})
	id := g.Registry.Add(worker, func() { close(closed) })
	select {
	case <-r.Context().Done():
		g.Registry.Remove(id)
	case <-closed:
	}
}

// parseStreamName validates the URL grammar of §4.7: the path must split
// into exactly ["", streamPath, name].
func parseStreamName(path, streamPath string) (string, bool) {
	segs := strings.Split(path, "/")
	if len(segs) != 3 || segs[0] != "" || segs[1] != streamPath || segs[2] == "" {
		return "", false
	}
	return segs[2], true
}

// createSubscriptionRequest builds the <create-subscription> RPC body C4
// forwards to the backend, translating start-time/stop-time/filter query
// parameters per §4.7.
func createSubscriptionRequest(streamName string, q map[string][]string) *xmltree.Node {
	rpc := &xmltree.Node{Name: "create-subscription"}
	rpc.AddChild(&xmltree.Node{Name: "stream", Body: streamName})
	if v := first(q, "start-time"); v != "" {
		rpc.AddChild(&xmltree.Node{Name: "startTime", Body: v})
	}
	if v := first(q, "stop-time"); v != "" {
		rpc.AddChild(&xmltree.Node{Name: "stopTime", Body: v})
	}
	if v := first(q, "filter"); v != "" {
		rpc.AddChild(&xmltree.Node{Name: "filter", Body: v})
	}
	return rpc
}

func first(q map[string][]string, key string) string {
	vs := q[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// accessDenied reports the unauthenticated case of §4.7 ("protocol" /
// "access-denied"). mgmterror only exposes an application-typed access-denied
// constructor (danos-configd/server/dispatcher.go calls it throughout); the
// Type is overridden the same way netconf/decode.go's notRecognized does for
// the rpc-typed case it needs and mgmterror doesn't provide directly.
func accessDenied() *mgmterror.Error {
	err := mgmterror.NewAccessDeniedApplicationError()
	err.Type = "protocol"
	return err
}

// backendRPCError turns a backend-supplied <rpc-error> into a Go error so
// it flows through the same writeErrorDocument path as a local mgmterror.
func backendRPCError(rpcErr *xmltree.Node) error {
	e := &mgmterror.Error{}
	if tag := rpcErr.Child("error-tag"); tag != nil {
		e.Tag = tag.Body
	}
	if typ := rpcErr.Child("error-type"); typ != nil {
		e.Type = typ.Body
	}
	if msg := rpcErr.Child("error-message"); msg != nil {
		e.Message = msg.Body
	}
	return e
}

// writeErrorDocument renders err as a RESTCONF error document (RFC 8040
// §7.1's <errors><error>…</error></errors> wrapper around the same
// error-tag vocabulary netconf.ErrorToXML already renders).
func (g *Gateway) writeErrorDocument(w http.ResponseWriter, err error) {
	inner := netconf.ErrorToXML(err)
	inner.Name = "error"

	doc := &xmltree.Node{Name: "errors"}
	doc.AddChild(inner)

	status := http.StatusInternalServerError
	if tag := inner.Child("error-tag"); tag != nil {
		switch tag.Body {
		case "access-denied":
			status = http.StatusUnauthorized
		case "missing-element", "invalid-value", "unknown-element":
			status = http.StatusBadRequest
		case "operation-not-supported":
			status = http.StatusNotImplemented
		}
	}

	w.Header().Set("Content-Type", "application/yang-data+xml")
	w.WriteHeader(status)
	if g.Pretty {
		doc.EncodeIndent(w, "", "  ")
	} else {
		doc.Encode(w)
	}
}
