// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package netconf implements the Operation Decoder (C3) and NETCONF
// Dispatcher (C6): parsing NETCONF RPC children into a tagged operation
// variant, routing each to the backend over a backend.Channel, and
// marshalling the result back into an <rpc-reply> or <rpc-error>.
package netconf

// EditOperation is the `operation` attribute/element of an edit-config
// request, per §3 "Edit options (O)".
type EditOperation string

const (
	OperationMerge   EditOperation = "merge"
	OperationReplace EditOperation = "replace"
	OperationNone    EditOperation = "none"
	OperationCreate  EditOperation = "create"
	OperationDelete  EditOperation = "delete"
	OperationRemove  EditOperation = "remove"
)

// TestOption is edit-config's `test-option`.
type TestOption string

const (
	TestSet     TestOption = "set"
	TestThenSet TestOption = "test-then-set"
	TestOnly    TestOption = "test-only"
)

// ErrorOption is edit-config's `error-option`.
type ErrorOption string

const (
	StopOnError     ErrorOption = "stop-on-error"
	ContinueOnError ErrorOption = "continue-on-error"
)

// EditOptions is O from §3: {operation, test-option, error-option}. The
// decoder rejects a test-option or error-option other than the default
// with operation-not-supported; a default-operation value is taken as
// given.
type EditOptions struct {
	Operation   EditOperation
	TestOption  TestOption
	ErrorOption ErrorOption
}

// DefaultEditOptions returns {merge, test-then-set, stop-on-error}, the
// defaults of §3.
func DefaultEditOptions() EditOptions {
	return EditOptions{
		Operation:   OperationMerge,
		TestOption:  TestThenSet,
		ErrorOption: StopOnError,
	}
}
