// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package xmltree provides the in-memory XML tree shared by the NETCONF
// request (X) and reply (R) paths. Nodes carry a name, optional body text,
// ordered children, attributes, and a non-owning schema attachment resolved
// by yangschema. A tree is created by the receiver of a message and
// released after the reply is written; schema attachments outlive the tree
// since they are references into the immutable Schema Index.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Attachable is implemented by whatever yangschema resolves onto a Node
// (normally *yangschema.Node). Kept as an empty interface here so xmltree
// never imports yangschema; schema attachment is non-owning by design.
type Attachable interface{}

// Node is one element of a request or reply tree.
type Node struct {
	Name      string
	Namespace string // explicit xmlns on this element, if any
	Body      string
	Attrs     []xml.Attr
	Children  []*Node
	Parent    *Node

	Schema Attachable
}

// NewNode creates a detached node with the given local name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// LocalName implements yangschema.Element.
func (n *Node) LocalName() string { return n.Name }

// EffectiveNamespace implements yangschema.Element. It reports the
// namespace in scope for n: its own xmlns if set at parse time, otherwise
// the nearest ancestor's default namespace (already resolved by Parse).
func (n *Node) EffectiveNamespace() (string, bool) {
	return n.Namespace, n.Namespace != ""
}

// ParentElement returns n's parent, or nil for a root. It is not part of
// yangschema.Element.
func (n *Node) ParentElement() interface{ LocalName() string } {
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

// AddChild appends child to n's children and sets its parent pointer.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Child returns the first child with the given local name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given local name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets (or replaces) an attribute on n.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

// RemoveAttr deletes the named attribute, if present, and reports whether it
// was found. Used to scrub the dispatcher-internal `username` attribute
// before a request tree is handed back to its caller.
func (n *Node) RemoveAttr(name string) bool {
	for i, a := range n.Attrs {
		if a.Name.Local == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceChild replaces the first child named name with replacement,
// preserving its position, and reparents replacement onto n. It is a no-op
// if no child of that name exists.
func (n *Node) ReplaceChild(name string, replacement *Node) {
	for i, c := range n.Children {
		if c.Name == name {
			replacement.Parent = n
			n.Children[i] = replacement
			return
		}
	}
}

// FindDescendant performs a depth-first search for the first descendant
// (including n itself) with the given local name, used for the
// `kill-session` "//session-id" style lookups that may occur anywhere in a
// subtree.
func (n *Node) FindDescendant(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindDescendant(name); found != nil {
			return found
		}
	}
	return nil
}

// Clone returns a deep copy of n, detached from any parent.
func (n *Node) Clone() *Node {
	clone := &Node{
		Name:      n.Name,
		Namespace: n.Namespace,
		Body:      n.Body,
		Attrs:     append([]xml.Attr(nil), n.Attrs...),
		Schema:    n.Schema,
	}
	for _, c := range n.Children {
		cc := c.Clone()
		clone.AddChild(cc)
	}
	return clone
}

// Encode serializes n (and its subtree) as XML to w.
func (n *Node) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	if err := n.encode(enc); err != nil {
		return err
	}
	return enc.Flush()
}

// EncodeIndent serializes n as XML to w with the given prefix/indent applied
// between elements, for callers honoring CLICON_RESTCONF_PRETTY.
func (n *Node) EncodeIndent(w io.Writer, prefix, indent string) error {
	enc := xml.NewEncoder(w)
	enc.Indent(prefix, indent)
	if err := n.encode(enc); err != nil {
		return err
	}
	return enc.Flush()
}

func (n *Node) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}, Attr: n.Attrs}
	if n.Namespace != "" {
		start.Name.Space = n.Namespace
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Body != "" {
		if err := enc.EncodeToken(xml.CharData(n.Body)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// String renders n as XML text, for logging and tests.
func (n *Node) String() string {
	var b strings.Builder
	if err := n.Encode(&b); err != nil {
		return fmt.Sprintf("<%s: encode error: %v>", n.Name, err)
	}
	return b.String()
}
