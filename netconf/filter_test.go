// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package netconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/netconf"
	"github.com/danos/netconfd/xmltree"
)

func TestPruneSubtreeKeepsOnlyFilteredChildren(t *testing.T) {
	data, err := xmltree.ParseString(
		`<data><interfaces><name>eth0</name></interfaces><routing><table>main</table></routing></data>`)
	require.NoError(t, err)

	filterEl, err := xmltree.ParseString(
		`<filter type="subtree"><configuration><interfaces/></configuration></filter>`)
	require.NoError(t, err)

	pruned := netconf.PruneSubtree(data, filterEl.Child("configuration"))
	require.NotNil(t, pruned)
	assert.NotNil(t, pruned.Child("interfaces"))
	assert.Nil(t, pruned.Child("routing"))
	assert.Equal(t, "eth0", pruned.Child("interfaces").Child("name").Body)
}

func TestPruneSubtreeIsIdempotent(t *testing.T) {
	data, err := xmltree.ParseString(
		`<data><interfaces><name>eth0</name></interfaces><routing><table>main</table></routing></data>`)
	require.NoError(t, err)

	filterEl, err := xmltree.ParseString(
		`<filter type="subtree"><configuration><interfaces/></configuration></filter>`)
	require.NoError(t, err)

	configuration := filterEl.Child("configuration")
	once := netconf.PruneSubtree(data, configuration)
	twice := netconf.PruneSubtree(once, configuration)

	var onceBuf, twiceBuf []byte
	onceBuf, err = encode(once)
	require.NoError(t, err)
	twiceBuf, err = encode(twice)
	require.NoError(t, err)
	assert.Equal(t, string(onceBuf), string(twiceBuf))
}

func TestGetConfigPrunesBackendReplyToFilteredSubtree(t *testing.T) {
	reply := roundTripWithBackendReply(t,
		`<rpc message-id="1"><get-config><source><running/></source>`+
			`<filter type="subtree"><configuration><interfaces/></configuration></filter>`+
			`</get-config></rpc>`,
		`<rpc-reply><data><interfaces><name>eth0</name></interfaces>`+
			`<routing><table>main</table></routing></data></rpc-reply>`)

	data := reply.Child("data")
	require.NotNil(t, data)
	assert.NotNil(t, data.Child("interfaces"))
	assert.Nil(t, data.Child("routing"))
}

func encode(n *xmltree.Node) ([]byte, error) {
	var buf []byte
	w := &sliceWriter{&buf}
	if err := n.Encode(w); err != nil {
		return nil, err
	}
	return buf, nil
}

type sliceWriter struct{ buf *[]byte }

func (w *sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
