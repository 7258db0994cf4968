// /home/krylon/go/src/github.com/blicero/mnemosyne/database/initqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-28 17:05:21 krylon>

package database

var initQueries = []string{
	`
CREATE TABLE reminder (
    id           INTEGER PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    due          INTEGER NOT NULL,
    audio_file   TEXT NOT NULL DEFAULT '',
    audio_origin INTEGER NOT NULL DEFAULT 0,
    fired        INTEGER NOT NULL DEFAULT 0,
    uuid         TEXT UNIQUE NOT NULL,
    changed      INTEGER NOT NULL,
    CHECK (title <> '')
)
`,
	"CREATE INDEX reminder_due_idx ON reminder (due)",
	"CREATE INDEX reminder_fired_idx ON reminder (fired)",
	`
CREATE TABLE audio (
    id      INTEGER PRIMARY KEY,
    file    TEXT UNIQUE NOT NULL,
    changed INTEGER NOT NULL,
    CHECK (file <> '')
)
`,
}
