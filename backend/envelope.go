// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package backend implements the Backend Channel (C4): encoding/decoding of
// framed messages to and from the configuration backend, reply
// correlation, and the secondary socket a subscription keeps open for
// asynchronous notifications. The wire shape — a length-delimited envelope
// carrying an opaque XML body — is a simplified cousin of the chunked
// NETCONF 1.1 framing cisco-ie-netgonf's netconf package implements for the
// client side of the same protocol family.
package backend

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/danos/netconfd/xmltree"
)

// ErrShutdown is raised when the backend closes its socket unexpectedly
// mid-conversation. A subscription worker ends its stream on it; the
// NETCONF dispatcher answers it with an <rpc-error> and keeps the client
// session open.
var ErrShutdown = errors.New("backend: unexpected shutdown (ESHUTDOWN)")

// ErrMalformedFrame is raised when a length prefix or body fails to decode.
var ErrMalformedFrame = errors.New("backend: malformed frame")

// frameKind tags what an envelope carries, so the receiving side can route
// it: a reply to a prior request, or an unsolicited notification.
type frameKind byte

const (
	frameReply        frameKind = 1
	frameNotification frameKind = 2
)

// writeEnvelope writes a length-delimited frame: 1 byte kind, 4 byte
// big-endian body length, then body.
func writeEnvelope(w io.Writer, kind frameKind, body []byte) error {
	header := make([]byte, 5)
	header[0] = byte(kind)
	binary.BigEndian.PutUint32(header[1:], uint32(len(body)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// readEnvelope reads one frame from r.
func readEnvelope(r *bufio.Reader) (frameKind, []byte, error) {
	header := make([]byte, 5)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, ErrShutdown
		}
		return 0, nil, err
	}
	kind := frameKind(header[0])
	n := binary.BigEndian.Uint32(header[1:])
	if n > 64*1024*1024 {
		return 0, nil, ErrMalformedFrame
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, ErrShutdown
		}
		return 0, nil, err
	}
	return kind, body, nil
}

// RequestID names one request; Call generates one per call via uuid, the
// way bassosimone-nop tags spans, and keeps it as the channel's pending
// request id. The id is not written into the envelope: replies are matched
// to requests by the strict send-then-receive pairing of Call.
type RequestID string

// NewRequestID returns a fresh correlation id.
func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func encodeXML(n *xmltree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		return nil, fmt.Errorf("backend: encoding request: %w", err)
	}
	return buf.Bytes(), nil
}
