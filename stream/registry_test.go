// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package stream_test

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/stream"
)

func TestRegistryAddAssignsDistinctIDs(t *testing.T) {
	reg := stream.NewRegistry()

	c1, s1 := net.Pipe()
	defer c1.Close()
	defer s1.Close()
	c2, s2 := net.Pipe()
	defer c2.Close()
	defer s2.Close()

	w1 := stream.NewWorker(backend.New(c1, nil), &recordingSink{}, nil)
	w2 := stream.NewWorker(backend.New(c2, nil), &recordingSink{}, nil)

	id1 := reg.Add(w1, nil)
	id2 := reg.Add(w2, nil)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, reg.Len())

	require.NoError(t, reg.Remove(id1))
	require.NoError(t, reg.Remove(id2))
}

func TestRegistryReleaseFiresExactlyOnceOnRemove(t *testing.T) {
	reg := stream.NewRegistry()
	backendClient, backendServer := net.Pipe()
	defer backendServer.Close()

	var released int32
	w := stream.NewWorker(backend.New(backendClient, nil), &recordingSink{}, nil)
	id := reg.Add(w, func() { atomic.AddInt32(&released, 1) })

	require.NoError(t, reg.Remove(id))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&released) == 1 }, time.Second, 5*time.Millisecond)

	// A second Remove finds nothing left to release.
	err := reg.Remove(id)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
}

func TestRegistryReleaseFiresExactlyOnceOnNaturalExit(t *testing.T) {
	reg := stream.NewRegistry()
	backendClient, backendServer := net.Pipe()

	var released int32
	w := stream.NewWorker(backend.New(backendClient, nil), &recordingSink{}, nil)
	reg.Add(w, func() { atomic.AddInt32(&released, 1) })

	backendServer.Close()

	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&released))
}
