// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangvalidate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/xmltree"
	"github.com/danos/netconfd/yangschema"
	"github.com/danos/netconfd/yangvalidate"
)

func inputSchema() *yangschema.Node {
	input := &yangschema.Node{Keyword: yangschema.KeywordInput}
	name := &yangschema.Node{Keyword: yangschema.KeywordLeaf, Argument: "name",
		Flags: yangschema.Flags{Mandatory: true, Type: "string"}}
	count := &yangschema.Node{Keyword: yangschema.KeywordLeaf, Argument: "count",
		Flags: yangschema.Flags{Type: "uint32", HasDefault: true, Default: "1"}}
	input.Children = []*yangschema.Node{name, count}
	name.Parent, count.Parent = input, input
	return input
}

func TestPopulateFillsLeafDefault(t *testing.T) {
	el, err := xmltree.ParseString(`<input><name>eth0</name><count/></input>`)
	require.NoError(t, err)

	schema := inputSchema()
	yangvalidate.Populate(schema, el)

	count := el.Child("count")
	require.NotNil(t, count)
	assert.Equal(t, "1", count.Body)
}

func TestValidateMissingMandatoryLeaf(t *testing.T) {
	el, err := xmltree.ParseString(`<input><count>4</count></input>`)
	require.NoError(t, err)

	schema := inputSchema()
	yangvalidate.Populate(schema, el)
	errs := yangvalidate.Validate(schema, el, yangvalidate.Strict)

	require.Len(t, errs, 1)
}

func TestValidateBadLeafType(t *testing.T) {
	el, err := xmltree.ParseString(`<input><name>eth0</name><count>notanumber</count></input>`)
	require.NoError(t, err)

	schema := inputSchema()
	yangvalidate.Populate(schema, el)
	errs := yangvalidate.Validate(schema, el, yangvalidate.Strict)

	require.Len(t, errs, 1)
}

func TestValidateUnknownElementStrict(t *testing.T) {
	el, err := xmltree.ParseString(`<input><name>eth0</name><bogus>x</bogus></input>`)
	require.NoError(t, err)

	schema := inputSchema()
	yangvalidate.Populate(schema, el)
	errs := yangvalidate.Validate(schema, el, yangvalidate.Strict)

	require.Len(t, errs, 1)
}

func TestValidateUnknownElementAdvisoryIsIgnored(t *testing.T) {
	el, err := xmltree.ParseString(`<input><name>eth0</name><bogus>x</bogus></input>`)
	require.NoError(t, err)

	schema := inputSchema()
	yangvalidate.Populate(schema, el)
	errs := yangvalidate.Validate(schema, el, yangvalidate.Advisory)

	assert.Empty(t, errs)
}

func TestValidateDuplicateListKey(t *testing.T) {
	listSchema := &yangschema.Node{Keyword: yangschema.KeywordList, Argument: "iface"}
	key := &yangschema.Node{Keyword: yangschema.KeywordLeaf, Argument: "name",
		Flags: yangschema.Flags{IsKey: true, Type: "string"}}
	listSchema.Children = []*yangschema.Node{key}
	key.Parent = listSchema

	parent := &yangschema.Node{Keyword: yangschema.KeywordContainer, Argument: "interfaces"}
	parent.Children = []*yangschema.Node{listSchema}
	listSchema.Parent = parent

	el, err := xmltree.ParseString(
		`<interfaces><iface><name>eth0</name></iface><iface><name>eth0</name></iface></interfaces>`)
	require.NoError(t, err)

	yangvalidate.Populate(parent, el)
	errs := yangvalidate.Validate(parent, el, yangvalidate.Strict)

	require.Len(t, errs, 1)
}
