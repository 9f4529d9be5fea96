// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/openconfig/goyang/pkg/yang"
)

// Load parses the YANG modules found under dir (and any files named
// explicitly) using goyang's grammar parser and builds an Index over the
// result. YANG grammar parsing itself is out of scope for this core
// (spec.md §1); goyang is the boundary that produces the populated tree
// this package's Find/ModuleByXML/classification predicates then consume.
func Load(dir string, files ...string) (*Index, error) {
	ms := yang.NewModules()

	if dir != "" {
		if err := ms.AddPath(dir); err != nil {
			return nil, fmt.Errorf("yangschema: add path %s: %w", dir, err)
		}
		found, err := filepath.Glob(filepath.Join(dir, "*.yang"))
		if err != nil {
			return nil, fmt.Errorf("yangschema: listing %s: %w", dir, err)
		}
		files = append(found, files...)
	}
	for _, f := range files {
		if err := ms.Read(f); err != nil {
			return nil, fmt.Errorf("yangschema: read %s: %w", f, err)
		}
	}
	if errs := ms.Process(); len(errs) > 0 {
		return nil, fmt.Errorf("yangschema: process modules: %v", errs)
	}

	idx := NewIndex()

	var names []string
	for name := range ms.Modules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mod := ms.Modules[name]
		root := yang.ToEntry(mod)
		modNode := convertModule(mod, root)
		idx.AddModule(modNode)
	}
	return idx, nil
}

func convertModule(mod *yang.Module, root *yang.Entry) *Node {
	m := &Node{
		Keyword:   KeywordModule,
		Argument:  mod.Name,
		Namespace: namespaceOf(mod),
		Prefix:    prefixOf(mod),
	}
	var childNames []string
	for name := range root.Dir {
		childNames = append(childNames, name)
	}
	sort.Strings(childNames)
	for _, name := range childNames {
		e := root.Dir[name]
		switch statementKind(e) {
		case string(KeywordRPC):
			m.addChild(convertRPC(name, e, m.Namespace, m.Prefix))
		case string(KeywordNotification):
			m.addChild(convertNotification(name, e, m.Namespace, m.Prefix))
		default:
			m.addChild(convertEntry(e, m.Namespace, m.Prefix))
		}
	}
	return m
}

// statementKind returns the original YANG statement keyword for e (e.g.
// "rpc", "notification", "container") via goyang's underlying Node, which
// is the authoritative source — Entry.Kind only distinguishes
// directory/leaf/leaf-list shape, not rpc vs. container.
func statementKind(e *yang.Entry) string {
	if e.Node == nil {
		return ""
	}
	return e.Node.Kind()
}

func namespaceOf(mod *yang.Module) string {
	if mod.Namespace != nil {
		return mod.Namespace.Name
	}
	return ""
}

func prefixOf(mod *yang.Module) string {
	if mod.Prefix != nil {
		return mod.Prefix.Name
	}
	return ""
}

func convertRPC(name string, e *yang.Entry, ns, prefix string) *Node {
	rpc := &Node{Keyword: KeywordRPC, Argument: name, Namespace: ns, Prefix: prefix}
	if in, ok := e.Dir["input"]; ok {
		input := &Node{Keyword: KeywordInput, Namespace: ns, Prefix: prefix}
		addChildren(input, in, ns, prefix)
		rpc.addChild(input)
	}
	if out, ok := e.Dir["output"]; ok {
		output := &Node{Keyword: KeywordOutput, Namespace: ns, Prefix: prefix}
		addChildren(output, out, ns, prefix)
		rpc.addChild(output)
	}
	return rpc
}

func convertNotification(name string, e *yang.Entry, ns, prefix string) *Node {
	n := &Node{Keyword: KeywordNotification, Argument: name, Namespace: ns, Prefix: prefix}
	addChildren(n, e, ns, prefix)
	return n
}

func addChildren(parent *Node, e *yang.Entry, ns, prefix string) {
	var names []string
	for name := range e.Dir {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parent.addChild(convertEntry(e.Dir[name], ns, prefix))
	}
}

// convertEntry maps a goyang *yang.Entry onto our Node shape, classifying
// its keyword from Entry.Kind/ListAttr/Dir per the usual goyang
// conventions (leaf vs. leaf-list vs. container vs. list vs. choice/case).
func convertEntry(e *yang.Entry, ns, prefix string) *Node {
	n := &Node{Namespace: ns, Prefix: prefix, Argument: e.Name}

	switch {
	case e.IsChoice():
		n.Keyword = KeywordChoice
	case e.IsCase():
		n.Keyword = KeywordCase
	case e.IsList():
		n.Keyword = KeywordList
	case e.IsLeafList():
		n.Keyword = KeywordLeafList
	case e.IsDir():
		n.Keyword = KeywordContainer
	case e.IsAnyXML():
		n.Keyword = KeywordAnyxml
	default:
		n.Keyword = KeywordLeaf
	}

	if n.Keyword == KeywordLeaf || n.Keyword == KeywordLeafList {
		n.Flags.Mandatory = e.Mandatory != nil && e.Mandatory.Value()
		if e.Default != "" {
			n.Flags.HasDefault = true
			n.Flags.Default = e.Default
		}
		if e.Type != nil {
			n.Flags.Type = e.Type.Name
		}
	}
	addChildren(n, e, ns, prefix)

	if n.Keyword == KeywordList {
		for _, key := range keysOf(e) {
			if child := n.Find(KeywordLeaf, key); child != nil {
				child.Flags.IsKey = true
			}
		}
	}
	return n
}

func keysOf(e *yang.Entry) []string {
	if e.Key == "" {
		return nil
	}
	var keys []string
	start := 0
	for i := 0; i <= len(e.Key); i++ {
		if i == len(e.Key) || e.Key[i] == ' ' {
			if i > start {
				keys = append(keys, e.Key[start:i])
			}
			start = i + 1
		}
	}
	return keys
}
