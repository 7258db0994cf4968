// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/notify.go
// -*- mode: go; coding: utf-8; -*-
// Created on 18. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 21:51:36 krylon>

package backend

import (
	"fmt"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/godbus/dbus/v5"
)

const (
	notifyObj    = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
	queueTimeout = time.Second * 2
)

// notifyLoop subscribes to the Broker and posts every due Reminder as
// a desktop notification. It only runs when a session bus was found.
func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var sub = d.broker.Subscribe()
	defer d.broker.Unsubscribe(sub)

	var tick = time.NewTicker(queueTimeout)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case batch, ok := <-sub.Queue:
			if !ok {
				return
			}

			for i := range batch.Reminders {
				var rem = &batch.Reminders[i]

				d.log.Printf("[DEBUG] Post desktop notification for %q\n",
					rem.Title)

				if err := d.notify(rem); err != nil {
					d.log.Printf("[ERROR] Failed to post Notification %q: %s\n",
						rem.Title,
						err.Error())
				}
			}
		}
	}
} // func (d *Daemon) notifyLoop()

func (d *Daemon) notify(n objects.Notification) error {
	var obj = d.bus.Object(notifyObj, notifyPath)

	if obj == nil {
		var err = fmt.Errorf("Did not find object %s (%s) on session bus",
			notifyObj,
			notifyPath)
		d.log.Printf("[ERROR] %s\n", err.Error())
		return err
	}

	var head, body = n.Payload()

	var res = obj.Call(
		notifyMethod,
		0,
		common.AppName,
		uint32(0),
		"",
		head,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(-1),
	)

	if res.Err != nil {
		d.log.Printf("[ERROR] Cannot send Notification %q: %s\n",
			head,
			res.Err.Error())
		return res.Err
	}

	return nil
} // func (d *Daemon) notify(n objects.Notification) error
