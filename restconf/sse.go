// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package restconf

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/danos/netconfd/xmltree"
)

// sseSink adapts an http.ResponseWriter to stream.Sink, framing each
// notification as a Server-Sent Event. Only the data: field is emitted —
// no id: or event: lines, per §4.5/§9.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	pretty  bool
}

func (s *sseSink) Send(n *xmltree.Node) error {
	var body bytes.Buffer
	var err error
	if s.pretty {
		err = n.EncodeIndent(&body, "", "  ")
	} else {
		err = n.Encode(&body)
	}
	if err != nil {
		return fmt.Errorf("restconf: encoding notification: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", body.String()); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
