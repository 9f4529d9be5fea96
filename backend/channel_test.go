// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package backend_test

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/xmltree"
)

// pipePair returns both ends of an in-memory net.Pipe; either end is an
// io.ReadWriteCloser, which is all backend.Channel needs.
func pipePair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	return client, server
}

func TestCallRoundTrip(t *testing.T) {
	client, server := pipePair(t)
	defer client.Close()
	defer server.Close()

	ch := backend.New(client, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Minimal server-side: read the length-delimited request frame and
		// answer with a canned reply frame, mirroring what a real backend
		// would do for an rpc-reply.
		r := bufio.NewReader(server)
		header := make([]byte, 5)
		_, err := r.Read(header)
		require.NoError(t, err)

		n := int(header[1])<<24 | int(header[2])<<16 | int(header[3])<<8 | int(header[4])
		body := make([]byte, n)
		_, err = r.Read(body)
		require.NoError(t, err)

		reply := []byte(`<rpc-reply><ok/></rpc-reply>`)
		out := make([]byte, 5+len(reply))
		out[0] = 1
		out[1] = byte(len(reply) >> 24)
		out[2] = byte(len(reply) >> 16)
		out[3] = byte(len(reply) >> 8)
		out[4] = byte(len(reply))
		copy(out[5:], reply)
		_, err = server.Write(out)
		require.NoError(t, err)
	}()

	req, err := xmltree.ParseString(`<get/>`)
	require.NoError(t, err)

	reply, err := ch.Call(req)
	require.NoError(t, err)
	assert.Equal(t, "rpc-reply", reply.Name)
	assert.NotNil(t, reply.Child("ok"))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("server goroutine did not finish")
	}
}

func TestNotificationsDeliversInOrder(t *testing.T) {
	client, server := pipePair(t)
	defer client.Close()
	defer server.Close()

	ch := backend.New(client, nil)

	go func() {
		for _, ev := range []string{"one", "two", "three"} {
			body := []byte(`<notification><event>` + ev + `</event></notification>`)
			out := make([]byte, 5+len(body))
			out[0] = 2
			out[1] = byte(len(body) >> 24)
			out[2] = byte(len(body) >> 16)
			out[3] = byte(len(body) >> 8)
			out[4] = byte(len(body))
			copy(out[5:], body)
			server.Write(out)
		}
		server.Close()
	}()

	var got []string
	err := ch.Notifications(func(n *xmltree.Node) error {
		got = append(got, n.Child("event").Body)
		if len(got) == 3 {
			return nil
		}
		return nil
	})
	assert.ErrorIs(t, err, backend.ErrShutdown)
	assert.Equal(t, []string{"one", "two", "three"}, got)
}
