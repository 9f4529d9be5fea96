// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package corelog_test

import (
	"testing"

	"github.com/danos/netconfd/internal/corelog"
)

func TestMapLevelNameInvalid(t *testing.T) {
	if _, err := corelog.MapLevelName("bogus"); err == nil {
		t.Fatalf("expected error for invalid level name")
	}
}

func TestLevelsDefaultsToError(t *testing.T) {
	l := corelog.NewLevels()
	if !l.Enabled(corelog.ComponentDispatch, corelog.LevelError) {
		t.Fatalf("expected error level enabled by default")
	}
	if l.Enabled(corelog.ComponentDispatch, corelog.LevelDebug) {
		t.Fatalf("expected debug level disabled by default")
	}
}

func TestLevelsSetRaisesThreshold(t *testing.T) {
	l := corelog.NewLevels()
	l.Set(corelog.ComponentStream, corelog.LevelDebug)

	if !l.Enabled(corelog.ComponentStream, corelog.LevelDebug) {
		t.Fatalf("expected debug level enabled after Set")
	}
	if l.Enabled(corelog.ComponentDispatch, corelog.LevelDebug) {
		t.Fatalf("Set on one component must not affect another")
	}
}

func TestDiscardLoggerIsSafe(t *testing.T) {
	corelog.Discard.Debug("msg", "k", "v")
	corelog.Discard.Info("msg")
	corelog.Discard.Error("msg")
}
