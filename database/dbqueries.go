// /home/krylon/go/src/github.com/blicero/mnemosyne/database/dbqueries.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-06 18:34:56 krylon>

package database

import "github.com/blicero/mnemosyne/database/query"

var dbQueries = map[query.ID]string{
	query.ReminderAdd: `
INSERT INTO reminder (title, description, due, audio_file, audio_origin, uuid, changed)
VALUES               (    ?,           ?,   ?,          ?,            ?,    ?,       ?)
`,
	query.ReminderDelete: "DELETE FROM reminder WHERE id = ?",
	// The claim has to happen in one step, so that no two scans can
	// walk away with the same Reminder.
	query.ReminderDueClaim: `
UPDATE reminder
SET fired = 1, changed = ?
WHERE fired = 0 AND due <= ?
RETURNING id, title, description, due, audio_file, audio_origin, uuid
`,
	query.ReminderGetPending: `
SELECT
    id,
    title,
    description,
    due,
    audio_file,
    audio_origin,
    uuid,
    changed
FROM reminder
WHERE fired = 0
ORDER BY due, title
`,
	query.ReminderGetFired: `
SELECT
    id,
    title,
    description,
    due,
    audio_file,
    audio_origin,
    uuid,
    changed
FROM reminder
WHERE fired
ORDER BY due, title
`,
	query.ReminderGetByID: `
SELECT
    title,
    description,
    due,
    audio_file,
    audio_origin,
    fired,
    uuid,
    changed
FROM reminder
WHERE id = ?
`,
	query.ReminderGetAll: `
SELECT
    id,
    title,
    description,
    due,
    audio_file,
    audio_origin,
    fired,
    uuid,
    changed
FROM reminder
ORDER BY fired, due, title
`,
	query.AudioAdd:       "INSERT INTO audio (file, changed) VALUES (?, ?)",
	query.AudioDelete:    "DELETE FROM audio WHERE id = ?",
	query.AudioGetByFile: "SELECT id, changed FROM audio WHERE file = ?",
	query.AudioGetAll: `
SELECT
    id,
    file,
    changed
FROM audio
ORDER BY file
`,
}
