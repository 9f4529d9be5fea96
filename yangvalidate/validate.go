// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangvalidate

import (
	"strconv"

	"github.com/danos/mgmterror"

	"github.com/danos/netconfd/xmltree"
	"github.com/danos/netconfd/yangschema"
)

// Strictness controls whether an element with no matching schema child is
// an error (inbound requests, per §7 "inbound YANG validation is strict")
// or skipped without an error (outbound replies, "outbound YANG
// validation is advisory").
type Strictness int

const (
	Strict Strictness = iota
	Advisory
)

// Validate runs pass two of §4.2 over el (already Populate-d against
// schemaRoot): mandatory child presence, list key presence/uniqueness,
// leaf type parsing, and choice/case disjointness. Violations accumulate
// into the returned MgmtErrorList; a nil/empty list means success.
func Validate(schemaRoot *yangschema.Node, el *xmltree.Node, strictness Strictness) mgmterror.MgmtErrorList {
	var errs mgmterror.MgmtErrorList
	validateNode(schemaRoot, el, strictness, &errs)
	return errs
}

func validateNode(schema *yangschema.Node, el *xmltree.Node, strictness Strictness, errs *mgmterror.MgmtErrorList) {
	if schema == nil {
		return
	}

	checkMandatoryChildren(schema, el, errs)
	checkChoiceDisjointness(schema, el, errs)

	seenKeys := make(map[string]map[string]bool) // list name -> key tuple -> seen
	for _, child := range el.Children {
		childSchema, _ := child.Schema.(*yangschema.Node)
		if childSchema == nil {
			childSchema = resolveChildSchema(schema, child.Name)
		}
		if childSchema == nil {
			if strictness == Strict {
				errs.MgmtErrorListAppend(mgmterror.NewUnknownElementApplicationError(child.Name))
			}
			continue
		}

		switch childSchema.Keyword {
		case yangschema.KeywordLeaf, yangschema.KeywordLeafList:
			if err := validateLeafType(childSchema, child); err != nil {
				errs.MgmtErrorListAppend(err)
			}
		case yangschema.KeywordList:
			checkListKeyUnique(childSchema, el, child, seenKeys, errs)
			validateNode(childSchema, child, strictness, errs)
		default:
			validateNode(childSchema, child, strictness, errs)
		}
	}
}

// checkMandatoryChildren verifies every mandatory data-node child of schema
// appears under el, per §4.2(a).
func checkMandatoryChildren(schema *yangschema.Node, el *xmltree.Node, errs *mgmterror.MgmtErrorList) {
	for _, schemaChild := range schema.Children {
		if !schemaChild.IsDataNode() || !schemaChild.Flags.Mandatory {
			continue
		}
		if el.Child(schemaChild.Argument) == nil {
			errs.MgmtErrorListAppend(mgmterror.NewMissingElementApplicationError(schemaChild.Argument))
		}
	}
}

// checkChoiceDisjointness verifies that at most one case of each choice
// under schema is represented among el's children, per §4.2(d).
func checkChoiceDisjointness(schema *yangschema.Node, el *xmltree.Node, errs *mgmterror.MgmtErrorList) {
	for _, choice := range schema.Children {
		if choice.Keyword != yangschema.KeywordChoice {
			continue
		}
		var selected *yangschema.Node
		for _, cas := range choice.Children {
			if cas.Keyword != yangschema.KeywordCase {
				continue
			}
			for _, caseChild := range cas.Children {
				if el.Child(caseChild.Argument) != nil {
					if selected != nil && selected != cas {
						errs.MgmtErrorListAppend(mgmterror.NewOperationFailedApplicationError())
					}
					selected = cas
				}
			}
		}
	}
}

// checkListKeyUnique verifies entry carries every key leaf of the list
// schema and that the resulting key tuple is unique among entry's siblings
// with the same list name, per §4.2(b).
func checkListKeyUnique(
	listSchema *yangschema.Node,
	parent *xmltree.Node,
	entry *xmltree.Node,
	seenKeys map[string]map[string]bool,
	errs *mgmterror.MgmtErrorList,
) {
	var keyTuple string
	for _, keySchema := range listSchema.Children {
		if !keySchema.Flags.IsKey {
			continue
		}
		keyEl := entry.Child(keySchema.Argument)
		if keyEl == nil {
			errs.MgmtErrorListAppend(mgmterror.NewMissingElementApplicationError(keySchema.Argument))
			return
		}
		keyTuple += "\x00" + keyEl.Body
	}

	seen, ok := seenKeys[listSchema.Argument]
	if !ok {
		seen = make(map[string]bool)
		seenKeys[listSchema.Argument] = seen
	}
	if seen[keyTuple] {
		errs.MgmtErrorListAppend(mgmterror.NewDataNotUniqueError(listSchema.Argument))
		return
	}
	seen[keyTuple] = true
}

// validateLeafType parses leaf's body against its declared YANG base type,
// per §4.2(c). Only the scalar built-in types are checked directly; other
// named/derived types are accepted as opaque strings (full type-restriction
// checking belongs to the backend datastore, which is out of scope per
// spec.md §1).
func validateLeafType(schema *yangschema.Node, el *xmltree.Node) error {
	switch schema.Flags.Type {
	case "boolean":
		if _, err := strconv.ParseBool(el.Body); err != nil {
			return mgmterror.NewInvalidValueApplicationError()
		}
	case "int8", "int16", "int32", "int64":
		if _, err := strconv.ParseInt(el.Body, 10, 64); err != nil {
			return mgmterror.NewInvalidValueApplicationError()
		}
	case "uint8", "uint16", "uint32", "uint64":
		if _, err := strconv.ParseUint(el.Body, 10, 64); err != nil {
			return mgmterror.NewInvalidValueApplicationError()
		}
	case "":
		// Untyped (e.g. anyxml) or unresolved; nothing to validate.
	default:
		// string, enumeration, identityref, leafref, decimal64, etc: the
		// lexical space is backend- or type-statement-defined, not checked
		// here.
	}
	if schema.Flags.Mandatory && el.Body == "" && schema.Keyword == yangschema.KeywordLeaf {
		return mgmterror.NewMissingElementApplicationError(schema.Argument)
	}
	return nil
}
