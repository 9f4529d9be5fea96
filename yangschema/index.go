// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema

import "github.com/danos/mgmterror"

// Element is the minimal view of a request-tree node the Schema Index
// needs in order to resolve a YANG module. *xmltree.Node implements this;
// the dependency runs the other way (xmltree never imports yangschema) so
// that schema attachment stays a non-owning reference.
type Element interface {
	LocalName() string
	EffectiveNamespace() (string, bool)
}

// Index is the Schema Index (C1): an immutable, shared handle over the
// loaded YANG modules, built once at startup by Load.
type Index struct {
	Root *Node // keyword == spec; children are modules, in load order

	// NonStrictNamespace mirrors the "non-strict namespace" compatibility
	// flag in §4.1: when set, a top-level element with no namespace match
	// resolves to the first same-named module by insertion order instead
	// of failing.
	NonStrictNamespace bool
}

// NewIndex creates an empty index with just the spec pseudo-root.
func NewIndex() *Index {
	return &Index{Root: &Node{Keyword: KeywordSpec}}
}

// AddModule inserts a fully-built module node, preserving insertion order
// for the non-strict namespace tie-break.
func (idx *Index) AddModule(m *Node) {
	idx.Root.addChild(m)
}

// ModuleByXML resolves the YANG module owning the given request element,
// per §4.1: use the element's namespace if present, otherwise the default
// namespace of the nearest ancestor (already folded into EffectiveNamespace
// by xmltree.Parse); otherwise none.
func (idx *Index) ModuleByXML(el Element) (*Node, error) {
	name := el.LocalName()
	ns, hasNS := el.EffectiveNamespace()

	var candidates []*Node
	for _, m := range idx.Root.Children {
		if m.Keyword != KeywordModule {
			continue
		}
		// A module "contains" a top-level element if name resolves as an
		// RPC, notification or top-level data node within it.
		if idx.moduleDeclares(m, name) {
			candidates = append(candidates, m)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}
	if hasNS {
		for _, m := range candidates {
			if m.Namespace == ns {
				return m, nil
			}
		}
		if idx.NonStrictNamespace {
			return candidates[0], nil
		}
		return nil, mgmterror.NewUnknownNamespaceProtocolError(name, ns)
	}
	if idx.NonStrictNamespace || len(candidates) == 1 {
		return candidates[0], nil
	}
	return nil, mgmterror.NewMissingElementProtocolError(name)
}

// moduleDeclares reports whether module m declares a top-level rpc,
// notification or data node named name.
func (idx *Index) moduleDeclares(m *Node, name string) bool {
	for _, c := range m.Children {
		if c.Argument == name && (c.IsSchemaNode() || c.Keyword == KeywordRPC) {
			return true
		}
	}
	return false
}

// FindRPC resolves the Y_RPC node for a YANG-declared RPC by name, after
// the module has already been resolved via ModuleByXML.
func (idx *Index) FindRPC(module *Node, name string) *Node {
	return module.Find(KeywordRPC, name)
}
