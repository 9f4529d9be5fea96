// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package netconf

import (
	"github.com/danos/mgmterror"

	"github.com/danos/netconfd/xmltree"
)

// badElementError pairs an mgmterror value with the element name the
// decoder wants reported as <error-info><bad-element>. mgmterror's own
// MgmtErrorInfoTag plumbing isn't exercised here since none of the
// constructors the decoder calls are observed to populate it for the
// missing-element case; wrapping the name alongside the cause keeps the
// rendering grounded in what the decoder actually knows rather than
// guessing at an unverified internal field layout.
type badElementError struct {
	cause   *mgmterror.Error
	element string
}

func (e *badElementError) Error() string { return e.cause.Error() }

func missingElementWithInfo(name string) error {
	return &badElementError{cause: mgmterror.NewMissingElementProtocolError(name), element: name}
}

// mgmtErrorToXML renders a *mgmterror.Error's Type/Tag/Path/Message fields
// (the same fields server/dispatcher.go throughout danos-configd sets
// directly, e.g. `err.Message = ...`) as an RFC 6241 <rpc-error> element,
// matching the field set cisco-ie-netgonf's client-side RPCError models on
// the decode path.
func mgmtErrorToXML(e *mgmterror.Error) *xmltree.Node {
	el := &xmltree.Node{Name: "rpc-error"}
	el.AddChild(&xmltree.Node{Name: "error-type", Body: e.Type})
	el.AddChild(&xmltree.Node{Name: "error-tag", Body: e.Tag})
	el.AddChild(&xmltree.Node{Name: "error-severity", Body: "error"})
	if e.Path != "" {
		el.AddChild(&xmltree.Node{Name: "error-path", Body: e.Path})
	}
	if e.Message != "" {
		el.AddChild(&xmltree.Node{Name: "error-message", Body: e.Message})
	}
	return el
}

// ErrorToXML dispatches on whether err carries a bad-element hint before
// falling back to the plain mgmterror rendering. Exported so the RESTCONF
// gateway can render the same error vocabulary into a RESTCONF error
// document instead of an <rpc-error>.
func ErrorToXML(err error) *xmltree.Node {
	if be, ok := err.(*badElementError); ok {
		el := mgmtErrorToXML(be.cause)
		info := &xmltree.Node{Name: "error-info"}
		info.AddChild(&xmltree.Node{Name: "bad-element", Body: be.element})
		el.AddChild(info)
		return el
	}
	if me, ok := err.(*mgmterror.Error); ok {
		return mgmtErrorToXML(me)
	}
	generic := mgmterror.NewOperationFailedApplicationError()
	generic.Message = err.Error()
	return mgmtErrorToXML(generic)
}
