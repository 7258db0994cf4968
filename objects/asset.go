// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/asset.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-28 16:32:56 krylon>

package objects

import (
	"time"

	"github.com/blicero/mnemosyne/objects/origin"
)

//go:generate ffjson asset.go

// AudioAsset describes one sound file known to the application.
// Built-in assets ship with the application and cannot be deleted,
// uploaded assets belong to the user.
type AudioAsset struct {
	ID      int64
	File    string
	Origin  origin.Origin
	Changed time.Time
}

// AudioInventory is what the backend hands to a client asking which
// sounds are available.
type AudioInventory struct {
	BuiltIn  []string
	Uploaded []string
}
