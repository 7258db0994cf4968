// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/reminder.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-12 19:07:33 krylon>

package objects

import (
	"time"

	"github.com/blicero/mnemosyne/objects/origin"
)

//go:generate ffjson reminder.go

// AudioRef names the sound to play when a Reminder goes off.
// The zero value means "play the default sound".
type AudioRef struct {
	File   string
	Origin origin.Origin
}

// IsZero returns true if no sound was chosen.
func (a AudioRef) IsZero() bool {
	return a.File == "" || a.Origin == origin.None
} // func (a AudioRef) IsZero() bool

// Reminder is ... a reminder.
// Timestamp is fixed once the Reminder has been created; there is no
// rescheduling. Fired starts out false and is set exactly once, by the
// scheduler, when the due time has passed. It never reverts.
type Reminder struct {
	ID          int64
	Title       string
	Description string
	Timestamp   time.Time
	Audio       AudioRef
	Fired       bool
	UUID        string
	Changed     time.Time
}

// Due returns the Reminder's due time.
func (r *Reminder) Due() time.Time {
	return r.Timestamp
} // func (r *Reminder) Due() time.Time

// IsDue returns true if the Reminder's due time has passed.
func (r *Reminder) IsDue() bool {
	return r.Timestamp.Before(time.Now())
} // func (r *Reminder) IsDue() bool

// Payload returns the Reminder's Title and Description.
func (r *Reminder) Payload() (string, string) {
	return r.Title, r.Description
} // func (r *Reminder) Payload() (string, string)

// UniqueID returns an identifier that is unique across instances.
// I.e. a UUID.
func (r *Reminder) UniqueID() string {
	return r.UUID
} // func (r *Reminder) UniqueID() string

// IsNewer returns true if the receiver's Changed stamp is
// more recent than the argument's.
func (r *Reminder) IsNewer(other *Reminder) bool {
	return r.Changed.After(other.Changed)
} // func (r *Reminder) IsNewer(other *Reminder) bool
