// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/batch.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-12 19:11:02 krylon>

package objects

import "time"

//go:generate ffjson batch.go

// DueReminder is one entry of a DueBatch: the Reminder that went off,
// with the sound to play resolved to a path a client can fetch.
type DueReminder struct {
	ID          int64
	Title       string
	Description string
	Timestamp   time.Time
	UUID        string
	AudioPath   string
}

// Due returns the due time of the Reminder that went off.
func (d *DueReminder) Due() time.Time {
	return d.Timestamp
} // func (d *DueReminder) Due() time.Time

// IsDue returns true. A DueReminder only exists because its Reminder
// came due.
func (d *DueReminder) IsDue() bool {
	return true
} // func (d *DueReminder) IsDue() bool

// Payload returns the DueReminder's Title and Description.
func (d *DueReminder) Payload() (string, string) {
	return d.Title, d.Description
} // func (d *DueReminder) Payload() (string, string)

// DueBatch is the set of Reminders that came due within a single
// scheduler tick. It is not persisted anywhere; clients that were not
// connected when the batch went out do not get it delivered later.
type DueBatch struct {
	Stamp     time.Time
	Reminders []DueReminder
}

// Size returns the number of Reminders in the batch.
func (b *DueBatch) Size() int {
	return len(b.Reminders)
} // func (b *DueBatch) Size() int
