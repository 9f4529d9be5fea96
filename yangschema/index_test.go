// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/yangschema"
)

type testElement struct {
	name string
	ns   string
}

func (e testElement) LocalName() string { return e.name }
func (e testElement) EffectiveNamespace() (string, bool) {
	return e.ns, e.ns != ""
}

func buildIndex() *yangschema.Index {
	idx := yangschema.NewIndex()

	ifaces := &yangschema.Node{
		Keyword:   yangschema.KeywordModule,
		Argument:  "ietf-interfaces",
		Namespace: "urn:ietf:params:xml:ns:yang:ietf-interfaces",
	}
	interfacesContainer := &yangschema.Node{Keyword: yangschema.KeywordContainer, Argument: "interfaces"}
	ifaces.Children = append(ifaces.Children, interfacesContainer)
	interfacesContainer.Parent = ifaces

	rpc := &yangschema.Node{Keyword: yangschema.KeywordRPC, Argument: "reboot"}
	input := &yangschema.Node{Keyword: yangschema.KeywordInput}
	sessionID := &yangschema.Node{Keyword: yangschema.KeywordLeaf, Argument: "delay", Flags: yangschema.Flags{Mandatory: true}}
	input.Children = []*yangschema.Node{sessionID}
	sessionID.Parent = input
	rpc.Children = []*yangschema.Node{input}
	input.Parent = rpc
	ifaces.Children = append(ifaces.Children, rpc)
	rpc.Parent = ifaces

	idx.AddModule(ifaces)
	return idx
}

func TestModuleByXMLResolvesByNamespace(t *testing.T) {
	idx := buildIndex()

	m, err := idx.ModuleByXML(testElement{name: "interfaces", ns: "urn:ietf:params:xml:ns:yang:ietf-interfaces"})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "ietf-interfaces", m.Argument)
}

func TestModuleByXMLUnknownElement(t *testing.T) {
	idx := buildIndex()

	m, err := idx.ModuleByXML(testElement{name: "frobnicate"})
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestModuleByXMLNamespaceMismatchStrict(t *testing.T) {
	idx := buildIndex()

	_, err := idx.ModuleByXML(testElement{name: "interfaces", ns: "urn:example:other"})
	assert.Error(t, err)
}

func TestModuleByXMLNonStrictFallsBackToInsertionOrder(t *testing.T) {
	idx := buildIndex()
	idx.NonStrictNamespace = true

	m, err := idx.ModuleByXML(testElement{name: "interfaces"})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "ietf-interfaces", m.Argument)
}

func TestFindRPCByName(t *testing.T) {
	idx := buildIndex()
	m, err := idx.ModuleByXML(testElement{name: "reboot"})
	require.NoError(t, err)
	require.NotNil(t, m)

	rpc := idx.FindRPC(m, "reboot")
	require.NotNil(t, rpc)
	assert.Equal(t, yangschema.KeywordRPC, rpc.Keyword)

	input := rpc.Find(yangschema.KeywordInput, "")
	require.NotNil(t, input)
	delay := input.Find(yangschema.KeywordLeaf, "delay")
	require.NotNil(t, delay)
	assert.True(t, delay.Flags.Mandatory)
}

func TestNodeClassification(t *testing.T) {
	container := &yangschema.Node{Keyword: yangschema.KeywordContainer}
	leaf := &yangschema.Node{Keyword: yangschema.KeywordLeaf}
	choice := &yangschema.Node{Keyword: yangschema.KeywordChoice}
	rpc := &yangschema.Node{Keyword: yangschema.KeywordRPC}

	assert.True(t, container.IsDataNode())
	assert.True(t, leaf.IsDataNode())
	assert.False(t, choice.IsDataNode())

	assert.True(t, choice.IsDataDefinition())
	assert.False(t, choice.IsDataNode())

	assert.True(t, rpc.IsSchemaNode())
	assert.False(t, rpc.IsDataNode())
}
