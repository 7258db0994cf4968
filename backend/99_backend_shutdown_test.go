// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/99_backend_shutdown_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 22:23:10 krylon>

package backend

import "testing"

func TestBanish(t *testing.T) {
	if back == nil {
		t.SkipNow()
	} else if !back.IsAlive() {
		t.SkipNow()
	}

	var err error

	if err = back.Banish(); err != nil {
		t.Errorf("Failed to banish Daemon: %s", err.Error())
	}

	if back.IsAlive() {
		t.Error("Daemon should not be alive after Banish")
	}
} // func TestBanish(t *testing.T)
