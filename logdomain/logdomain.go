// /home/krylon/go/src/github.com/blicero/mnemosyne/logdomain/logdomain.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-04 21:02:47 krylon>

// Package logdomain provides symbolic constants that identify the
// various pieces of the application that need to do logging.
package logdomain

//go:generate stringer -type=ID

// ID represents a log source.
type ID uint8

// These constants identify the log sources.
const (
	Common ID = iota
	Backend
	Broker
	Catalog
	Client
	Database
	DBus
	DNSSD
	Scheduler
)

// AllDomains returns a slice of all the valid log sources.
func AllDomains() []ID {
	return []ID{
		Common,
		Backend,
		Broker,
		Catalog,
		Client,
		Database,
		DBus,
		DNSSD,
		Scheduler,
	}
} // func AllDomains() []ID
