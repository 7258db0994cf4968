// /home/krylon/go/src/github.com/blicero/mnemosyne/database/query/query.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-06 18:30:12 krylon>

// Package query provides symbolic constants for identifying SQL queries.
package query

//go:generate stringer -type=ID

type ID uint8

const (
	ReminderAdd ID = iota
	ReminderDelete
	ReminderDueClaim
	ReminderGetPending
	ReminderGetFired
	ReminderGetByID
	ReminderGetAll
	AudioAdd
	AudioDelete
	AudioGetByFile
	AudioGetAll
)
