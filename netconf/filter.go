// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package netconf

import (
	"encoding/xml"

	"github.com/danos/netconfd/xmltree"
)

// FilterType enumerates the `type` attribute of a <filter> element.
type FilterType string

const (
	FilterXPath    FilterType = "xpath"
	FilterSubtree  FilterType = "subtree"
	FilterRestconf FilterType = "restconf" // non-standard edit-config pass-through, §4.3
)

// Filter is the decoded <filter> child of get/get-config. The
// create-subscription and edit-config decoders only check a filter's type
// and do not build a Filter.
type Filter struct {
	Type    FilterType
	Select  string     // xpath select= attribute
	Subtree *xmltree.Node // subtree filter body (only for FilterSubtree)
}

// PruneSubtree implements the subtree-filter compatibility shim described
// in §4.3 and confirmed against original_source/apps/netconf/netconf_rpc.c:
// the backend is sent the full get/get-config request unchanged, and on
// reply the returned <data> is intersected in-process with the filter's
// <configuration> subtree by name-level matching at the root, then
// recursive element-name pruning.
//
// PruneSubtree is idempotent (§8 "Subtree prune idempotence"): pruning an
// already-pruned tree with the same filter yields the identical tree,
// because pruning only ever removes data children whose name is absent
// from the filter subtree at the same nesting level — a second pass finds
// nothing left to remove.
func PruneSubtree(data *xmltree.Node, filterRoot *xmltree.Node) *xmltree.Node {
	if filterRoot == nil || len(filterRoot.Children) == 0 {
		return data
	}
	return pruneByName(data, filterRoot)
}

// pruneByName keeps only data's children whose name also appears among
// filter's children (name-level match), recursing into children present in
// both so deeper filter constraints are applied the same way.
func pruneByName(data *xmltree.Node, filter *xmltree.Node) *xmltree.Node {
	pruned := &xmltree.Node{
		Name:      data.Name,
		Namespace: data.Namespace,
		Body:      data.Body,
		Attrs:     append([]xml.Attr(nil), data.Attrs...),
	}

	allowed := make(map[string]*xmltree.Node)
	for _, fc := range filter.Children {
		allowed[fc.Name] = fc
	}

	for _, dc := range data.Children {
		fc, ok := allowed[dc.Name]
		if !ok {
			continue
		}
		if len(fc.Children) == 0 {
			// Leaf-level selection: keep dc as-is (no deeper filter
			// constraint to apply).
			clone := dc.Clone()
			pruned.AddChild(clone)
			continue
		}
		pruned.AddChild(pruneByName(dc, fc))
	}
	return pruned
}
