// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

// Package corelog is the ambient logging layer shared by the NETCONF
// dispatcher, the RESTCONF gateway, and the subscription worker: a
// [Logger] abstraction over [*slog.Logger] plus the same Level/Component
// dynamic-debug-toggle idiom common/configd_log.go exposes for configd.
package corelog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Logger abstracts the *slog.Logger behavior the core depends on. This
// package uses two levels: Info for lifecycle and protocol events (session
// open/close, subscription created/reaped), and Debug for per-message
// events (rpc decoded, notification relayed). *slog.Logger satisfies this
// interface directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Discard is a no-op Logger, the default until a caller supplies its own.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}

// Level is a coarse, dynamically toggleable logging level, named the way
// common.LogLevel names configd's.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelDebug
	levelLast
)

// MapLevelName parses the CLI/config spelling of a level.
func MapLevelName(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug, nil
	case "error":
		return LevelError, nil
	case "none":
		return LevelNone, nil
	}
	return LevelNone, fmt.Errorf("log level %q not recognized; use <none|error|debug>", name)
}

// Component is a dynamically toggleable logging area, named the way
// common.LogType separates configd's commit/state debug switches.
type Component int

const (
	ComponentNone Component = iota
	ComponentDispatch
	ComponentSubscription
	ComponentStream
	componentLast
)

func MapComponentName(name string) (Component, error) {
	switch strings.ToLower(name) {
	case "dispatch":
		return ComponentDispatch, nil
	case "subscription":
		return ComponentSubscription, nil
	case "stream":
		return ComponentStream, nil
	}
	return ComponentNone, fmt.Errorf(
		"log component %q not recognized; use <dispatch|subscription|stream>", name)
}

// Levels holds the current per-component debug level, mutable at runtime the
// same way configd's cfgDebugSettings is adjusted by its set-debug RPC.
type Levels struct {
	settings [componentLast]Level
}

// NewLevels returns a Levels with every component at LevelError.
func NewLevels() *Levels {
	l := &Levels{}
	for i := range l.settings {
		l.settings[i] = LevelError
	}
	return l
}

// Enabled reports whether logging at level for component is currently on.
func (l *Levels) Enabled(component Component, level Level) bool {
	if component <= ComponentNone || component >= componentLast || level >= levelLast {
		return false
	}
	return l.settings[component] >= level
}

// Set updates the debug level for component.
func (l *Levels) Set(component Component, level Level) {
	if component <= ComponentNone || component >= componentLast {
		return
	}
	l.settings[component] = level
}

// slogLogger turns a *slog.Logger into a Logger by forwarding Debug, Info
// and Error to the methods of the same name.
type slogLogger struct{ l *slog.Logger }

// Wrap adapts a *slog.Logger to Logger.
func Wrap(l *slog.Logger) Logger {
	return slogLogger{l: l}
}

func (s slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }
