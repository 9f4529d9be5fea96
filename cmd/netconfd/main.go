// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

/*
netconfd mediates between NETCONF/RESTCONF management clients and a
configuration backend.

Usage:

	-socketfile=<filename>
		Unix socket netconfd listens on for framed NETCONF sessions
		(default: /run/netconfd/main.sock).

	-backendsocket=<filename>
		Unix socket netconfd dials to reach the configuration backend
		(default: /run/netconfd/backend.sock).

	-yangdir=<dir>
		Directory netconfd loads YANG modules from (default:
		/usr/share/netconfd/yang).

	-restconf=<addr>
		Address the RESTCONF stream gateway listens on (default:
		127.0.0.1:8080). Empty disables the gateway.

	-streampath=<name>
		URL path segment preceding the stream name, e.g. "streams" for
		GET /streams/NETCONF (default: streams).

	-group=<name>
		Group that owns the NETCONF socket (default: netconfd).

	-streamfork=<bool>
		Corresponds to the source's STREAM_FORK build flag: when false,
		a RESTCONF stream blocks its request goroutine for its lifetime
		instead of being handed to the subscription registry (default:
		true).
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"log/syslog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/coreos/go-systemd/v22/activation"

	"github.com/danos/utils/os/group"

	"github.com/danos/netconfd/backend"
	"github.com/danos/netconfd/netconf"
	"github.com/danos/netconfd/restconf"
	"github.com/danos/netconfd/stream"
	"github.com/danos/netconfd/yangschema"
)

var basepath = "/run/netconfd"

var (
	socket        = flag.String("socketfile", basepath+"/main.sock", "Path to socket clients connect to.")
	backendSocket = flag.String("backendsocket", basepath+"/backend.sock", "Path to the configuration backend's socket.")
	yangdir       = flag.String("yangdir", "/usr/share/netconfd/yang", "Load YANG from specified directory.")
	restconfAddr  = flag.String("restconf", "127.0.0.1:8080", "Address the RESTCONF stream gateway listens on; empty disables it.")
	streamPath    = flag.String("streampath", "streams", "URL path segment preceding the stream name.")
	groupname     = flag.String("group", "netconfd", "Group that owns the NETCONF socket.")
	streamFork    = flag.Bool("streamfork", true, "Fork (task) per RESTCONF subscription; false runs the worker inline.")
)

func fatal(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// newSyslogLogger mirrors configd.go's NewLogger: a syslog.Writer tagged
// with the program's base name, wrapped in a standard *log.Logger.
func newSyslogLogger(p syslog.Priority) (*log.Logger, error) {
	tag := filepath.Base(os.Args[0])
	s, err := syslog.New(p, tag)
	if err != nil {
		return nil, err
	}
	return log.New(s, "", 0), nil
}

// initialiseLogging opens the daemon's syslog connection, the way
// cmd/configd/main.go's initialiseLogging retries for a few milliseconds
// since rsyslog may not be up yet even though init has already started us,
// falling back to stderr if it never comes up.
func initialiseLogging() *log.Logger {
	var elog *log.Logger
	var err error
	for i := 0; i < 5; i++ {
		elog, err = newSyslogLogger(syslog.LOG_ERR | syslog.LOG_DAEMON)
		if err == nil {
			return elog
		}
		time.Sleep(10 * time.Millisecond)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

func getGID(name string) int {
	g, err := group.Lookup(name)
	if err != nil {
		return 0
	}
	return int(g.Gid)
}

// netconfListener resolves the listener for client NETCONF sessions,
// preferring a systemd-activated socket the way cmd/configd/main.go does.
func netconfListener() net.Listener {
	listeners, err := activation.Listeners()
	fatal(err)
	if len(listeners) > 0 {
		return listeners[0]
	}

	os.Remove(*socket)
	ua, err := net.ResolveUnixAddr("unix", *socket)
	fatal(err)
	l, err := net.ListenUnix("unix", ua)
	fatal(err)
	fatal(os.Chmod(*socket, 0770))
	fatal(os.Chown(*socket, -1, getGID(*groupname)))
	return l
}

func dialBackend() (*backend.Channel, error) {
	conn, err := net.Dial("unix", *backendSocket)
	if err != nil {
		return nil, fmt.Errorf("netconfd: dialing backend: %w", err)
	}
	return backend.New(conn, nil), nil
}

// serveNetconf accepts client connections and runs the dispatcher loop on
// each one, the way server/server.go's accept loop hands each connection to
// its own Handle goroutine.
func serveNetconf(l net.Listener, disp *netconf.Dispatcher, elog *log.Logger) {
	for {
		conn, err := l.Accept()
		if err != nil {
			elog.Printf("netconfd: accept: %v", err)
			continue
		}
		go func() {
			if err := disp.Handle(conn, ""); err != nil {
				elog.Printf("netconfd: session ended: %v", err)
			}
		}()
	}
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	elog := initialiseLogging()

	idx, err := yangschema.Load(*yangdir)
	fatal(err)

	disp := netconf.NewDispatcher(idx, dialBackend, elog)

	// The only described notification relay path is RESTCONF's SSE stream
	// (C5/C7); a create-subscription issued directly over a NETCONF
	// session is accepted and forwarded but its secondary socket is left
	// unconsumed here; callers that need NETCONF-session-native streaming
	// would wire disp.Subscribe to their own transport.
	registry := stream.NewRegistry()

	l := netconfListener()
	go serveNetconf(l, disp, elog)

	if *restconfAddr != "" {
		gw := &restconf.Gateway{
			StreamPath:   *streamPath,
			Dial:         dialBackend,
			Authenticate: allowAll,
			Registry:     registry,
			ForkDisabled: !*streamFork,
		}
		go func() {
			fatal(http.ListenAndServe(*restconfAddr, gw))
		}()
	}

	select {}
}

// allowAll is a placeholder Authenticator until an external auth plugin is
// wired in, per §4.7's "authentication headers consumed by external auth
// plugin" — real deployments replace this with a call into that plugin.
func allowAll(r *http.Request) (string, bool) {
	return "", true
}
