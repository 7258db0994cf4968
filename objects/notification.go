// /home/krylon/go/src/github.com/blicero/mnemosyne/objects/notification.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-05 18:40:12 krylon>

// Package objects provides the data types used by the application.
package objects

import "time"

// Notification is the common interface for items the user should be
// notified about.
type Notification interface {
	Due() time.Time
	IsDue() bool
	Payload() (string, string)
}
