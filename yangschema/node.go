// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema

import "sync"

// Flags carries the small set of per-node facts C2/C3 need beyond keyword
// and argument: whether a leaf is mandatory, whether it is a list key,
// and its default value (leaves only).
type Flags struct {
	Mandatory bool
	IsKey     bool
	HasDefault bool
	Default    string
	Type       string // leaf/leaf-list base type name, e.g. "string", "uint32", "boolean"
}

// Node is one element of the schema tree (Y in the spec's data model): a
// labeled node with keyword, argument, parent, children, flags and a
// memoized child-lookup cache. The tree is acyclic and built once at
// startup by Load; it is treated as an immutable, shared handle afterwards
// (§9 Design Notes, "backend-spec coupling").
type Node struct {
	Keyword  Keyword
	Argument string
	Parent   *Node
	Children []*Node
	Flags    Flags

	// Namespace is set on module nodes (and copied onto their RPC/data
	// children for convenience) to the module's XML namespace URI.
	Namespace string
	// Prefix is the module's local prefix, used for prefix-qualified
	// argument resolution (e.g. "if:type").
	Prefix string
	// Musts holds raw `must`/`when` XPath expression text attached to
	// this node, for evaluation via yangschema's gval-backed EvalMust.
	// Load does not fill it.
	Musts []string

	mu    sync.Mutex
	cache map[string]*Node
}

// addChild appends a child and sets its parent pointer.
func (n *Node) addChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Find performs the linear search over n's children described in §4.1: a
// match on keyword, and argument compared by byte equality, unless
// argument is empty in which case the first node with the keyword matches.
func (n *Node) Find(keyword Keyword, argument string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Keyword != keyword {
			continue
		}
		if argument == "" || c.Argument == argument {
			return c
		}
	}
	return nil
}

// FindCached is Find with memoization keyed on keyword+argument: the first
// result for each key, a nil miss included, is kept for the node's
// lifetime.
func (n *Node) FindCached(keyword Keyword, argument string) *Node {
	if n == nil {
		return nil
	}
	key := string(keyword) + "\x00" + argument
	n.mu.Lock()
	if n.cache == nil {
		n.cache = make(map[string]*Node)
	}
	if found, ok := n.cache[key]; ok {
		n.mu.Unlock()
		return found
	}
	n.mu.Unlock()

	found := n.Find(keyword, argument)
	n.mu.Lock()
	n.cache[key] = found
	n.mu.Unlock()
	return found
}

// IsDataNode reports whether n is a data node per RFC 7950 §3.
func (n *Node) IsDataNode() bool { return n != nil && dataNodeKeywords[n.Keyword] }

// IsDataDefinition reports whether n is a data-definition statement.
func (n *Node) IsDataDefinition() bool { return n != nil && dataDefinitionKeywords[n.Keyword] }

// IsSchemaNode reports whether n occupies a position in the schema tree's
// namespace (data nodes, choice/case, and rpc/notification).
func (n *Node) IsSchemaNode() bool { return n != nil && schemaNodeKeywords[n.Keyword] }

// Module walks up to the nearest ancestor module node (or n itself).
func (n *Node) Module() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Keyword == KeywordModule {
			return cur
		}
	}
	return nil
}
