// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
)

// Parse decodes a single already-framed XML document into a Node tree.
// Framing (end-of-message marker or RFC 6242 chunking) is consumed by the
// host before this is called; Parse only ever sees one complete document.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var root *Node
	var stack []*Node
	var nsStack []string // default xmlns in scope, parallel to stack

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			defaultNS := ""
			if len(nsStack) > 0 {
				defaultNS = nsStack[len(nsStack)-1]
			}
			if t.Name.Space != "" {
				n.Namespace = t.Name.Space
			}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					if a.Name.Local == "xmlns" {
						defaultNS = a.Value
						if n.Namespace == "" {
							n.Namespace = a.Value
						}
					}
					continue
				}
				n.Attrs = append(n.Attrs, a)
			}
			if n.Namespace == "" {
				n.Namespace = defaultNS
			}
			if len(stack) == 0 {
				root = n
			} else {
				stack[len(stack)-1].AddChild(n)
			}
			stack = append(stack, n)
			nsStack = append(nsStack, defaultNS)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			nsStack = nsStack[:len(nsStack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				text := strings.TrimSpace(string(t))
				if text != "" {
					stack[len(stack)-1].Body += text
				}
			}
		}
	}
	return root, nil
}

// ParseString is a convenience wrapper around Parse for literal XML, used
// heavily by tests.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}
