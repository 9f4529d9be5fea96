// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package yangvalidate implements the Payload Validator (C2): two passes
// over a subtree rooted at an RPC input or output node. Populate attaches
// schema and fills in leaf defaults; Validate checks mandatory presence,
// list-key uniqueness, leaf typing and choice/case disjointness,
// accumulating any violations into an mgmterror.MgmtErrorList.
package yangvalidate

import (
	"github.com/danos/netconfd/xmltree"
	"github.com/danos/netconfd/yangschema"
)

// Populate attaches schema to every element under el (rooted at schemaRoot)
// and fills in leaf defaults for leaves whose body is empty, per §4.2 pass
// one. A defaulted leaf that is absent from el is not added.
func Populate(schemaRoot *yangschema.Node, el *xmltree.Node) {
	el.Schema = schemaRoot
	populateChildren(schemaRoot, el)
}

func populateChildren(schemaParent *yangschema.Node, el *xmltree.Node) {
	for _, child := range el.Children {
		schemaChild := resolveChildSchema(schemaParent, child.Name)
		child.Schema = schemaChild
		if schemaChild == nil {
			continue
		}
		if isLeafKeyword(schemaChild.Keyword) && child.Body == "" && schemaChild.Flags.HasDefault {
			child.Body = schemaChild.Flags.Default
		}
		populateChildren(schemaChild, child)
	}
}

// resolveChildSchema finds the schema node for a child named name under
// schemaParent, looking through transparent choice/case wrapper nodes the
// way RFC 7950 §3 treats them (a choice/case never appears in the data
// tree itself).
func resolveChildSchema(schemaParent *yangschema.Node, name string) *yangschema.Node {
	if schemaParent == nil {
		return nil
	}
	for _, candidate := range []yangschema.Keyword{
		yangschema.KeywordContainer, yangschema.KeywordLeaf, yangschema.KeywordLeafList,
		yangschema.KeywordList, yangschema.KeywordAnyxml, yangschema.KeywordAnydata,
	} {
		if n := schemaParent.Find(candidate, name); n != nil {
			return n
		}
	}
	for _, c := range schemaParent.Children {
		if c.Keyword == yangschema.KeywordChoice {
			for _, cs := range c.Children {
				if cs.Keyword == yangschema.KeywordCase {
					if found := resolveChildSchema(cs, name); found != nil {
						return found
					}
				}
			}
		}
	}
	return nil
}

func isLeafKeyword(k yangschema.Keyword) bool {
	return k == yangschema.KeywordLeaf || k == yangschema.KeywordLeafList
}
