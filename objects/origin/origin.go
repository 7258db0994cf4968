// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/origin/origin.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-05 17:21:44 krylon>

//go:generate stringer -type=Origin

// Package origin contains symbolic constants to tell apart the sound
// files that ship with the application from those the user uploaded.
package origin

// Origin says where an audio file came from.
type Origin uint8

// None means no sound was chosen, the default is used.
// BuiltIn identifies the read-only sounds that ship with the application.
// Uploaded identifies sounds the user has uploaded; these can be deleted.
const (
	None Origin = iota
	BuiltIn
	Uploaded
)

// FromString returns the Origin named by the given string.
// Unknown strings yield None.
func FromString(s string) Origin {
	switch s {
	case "builtin", "BuiltIn":
		return BuiltIn
	case "upload", "uploaded", "Uploaded":
		return Uploaded
	default:
		return None
	}
} // func FromString(s string) Origin
