// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package restconf_test

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/restconf"
	"github.com/danos/netconfd/stream"
)

func notAuthenticated(*http.Request) (string, bool) { return "", false }
func anonymous(*http.Request) (string, bool)        { return "", true }

func TestGatewayBadPathIs404(t *testing.T) {
	gw := &restconf.Gateway{StreamPath: "streams", Authenticate: anonymous}
	req := httptest.NewRequest(http.MethodGet, "/wrong/NETCONF", nil)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGatewayUnauthenticatedIsAccessDenied(t *testing.T) {
	gw := &restconf.Gateway{StreamPath: "streams", Authenticate: notAuthenticated}
	req := httptest.NewRequest(http.MethodGet, "/streams/NETCONF", nil)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access-denied")
	assert.Contains(t, rec.Body.String(), "protocol")
}

func TestGatewayMethodNotAllowed(t *testing.T) {
	gw := &restconf.Gateway{StreamPath: "streams", Authenticate: anonymous}
	req := httptest.NewRequest(http.MethodPost, "/streams/NETCONF", nil)
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func writeSubscriptionReply(t *testing.T, conn net.Conn, body string) {
	t.Helper()
	header := make([]byte, 5)
	header[0] = 1 // frameReply
	n := len(body)
	header[1] = byte(n >> 24)
	header[2] = byte(n >> 16)
	header[3] = byte(n >> 8)
	header[4] = byte(n)
	_, err := conn.Write(append(header, []byte(body)...))
	require.NoError(t, err)
}

func writeNotificationFrame(t *testing.T, conn net.Conn, body string) {
	t.Helper()
	header := make([]byte, 5)
	header[0] = 2 // frameNotification
	n := len(body)
	header[1] = byte(n >> 24)
	header[2] = byte(n >> 16)
	header[3] = byte(n >> 8)
	header[4] = byte(n)
	_, err := conn.Write(append(header, []byte(body)...))
	require.NoError(t, err)
}

func TestGatewayStreamsNotificationsAsSSE(t *testing.T) {
	backendClient, backendServer := net.Pipe()

	gw := &restconf.Gateway{
		StreamPath: "streams",
		Authenticate: func(*http.Request) (string, bool) {
			return "alice", true
		},
		Dial: func() (*backend.Channel, error) {
			return backend.New(backendClient, nil), nil
		},
		Registry:     stream.NewRegistry(),
		ForkDisabled: true,
	}

	go func() {
		// Consume the create-subscription request envelope first: net.Pipe
		// is unbuffered, so the channel's write blocks until it is read.
		header := make([]byte, 5)
		if _, err := io.ReadFull(backendServer, header); err != nil {
			return
		}
		n := int(header[1])<<24 | int(header[2])<<16 | int(header[3])<<8 | int(header[4])
		if _, err := io.ReadFull(backendServer, make([]byte, n)); err != nil {
			return
		}
		writeSubscriptionReply(t, backendServer, `<rpc-reply><ok/></rpc-reply>`)
		writeNotificationFrame(t, backendServer, `<notification><eventTime>1</eventTime></notification>`)
		time.Sleep(20 * time.Millisecond)
		backendServer.Close()
	}()

	req := httptest.NewRequest(http.MethodGet, "/streams/NETCONF?start-time=2026-01-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() { gw.ServeHTTP(rec, req); close(done) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("gateway did not return after backend closed")
	}

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rec.Header().Get("Connection"))
	assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "))
	assert.Contains(t, body, "<notification>")
	assert.NotContains(t, body, "id:")
	assert.NotContains(t, body, "event:")
}
