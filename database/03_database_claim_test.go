// /home/krylon/go/src/github.com/blicero/mnemosyne/database/03_database_claim_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-06 19:40:17 krylon>

package database

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
)

const dueCnt = 16

var overdue []*objects.Reminder

func TestReminderAddOverdue(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	// Reminders whose due time has long passed are perfectly legal,
	// they are picked up by the next scan.
	var now = time.Now()

	overdue = make([]*objects.Reminder, dueCnt)

	for i := range overdue {
		var r = &objects.Reminder{
			Title:     fmt.Sprintf("OVERDUE #%03d", i),
			Timestamp: now.Add(time.Minute * time.Duration(-(i + 1))),
			UUID:      common.GetUUID(),
		}

		if err := db.ReminderAdd(r); err != nil {
			t.Fatalf("Cannot add Reminder %q: %s",
				r.Title,
				err.Error())
		}

		overdue[i] = r
	}
} // func TestReminderAddOverdue(t *testing.T)

func TestReminderDueClaimConcurrent(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	// Two connections scan at the same time. Every overdue Reminder
	// must end up in exactly one of the two result sets.
	var (
		err     error
		db2     *Database
		wg      sync.WaitGroup
		results = make([][]objects.Reminder, 2)
		errs    = make([]error, 2)
	)

	if db2, err = Open(common.DbPath); err != nil {
		t.Fatalf("Cannot open second database connection: %s",
			err.Error())
	}
	defer db2.Close() // nolint: errcheck

	var conns = []*Database{db, db2}

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = conns[idx].ReminderDueClaim(time.Now())
		}(i)
	}
	wg.Wait()

	for i, e := range errs {
		if e != nil {
			t.Fatalf("Scan #%d failed: %s",
				i+1,
				e.Error())
		}
	}

	var seen = make(map[int64]int, dueCnt)

	for _, res := range results {
		for _, r := range res {
			seen[r.ID]++
			if !r.Fired {
				t.Errorf("Claimed Reminder %q is not marked as fired",
					r.Title)
			}
		}
	}

	for _, r := range overdue {
		switch seen[r.ID] {
		case 0:
			t.Errorf("Reminder %q was not claimed by either scan",
				r.Title)
		case 1:
			// The happy path.
		default:
			t.Errorf("Reminder %q was claimed %d times",
				r.Title,
				seen[r.ID])
		}
	}

	if len(seen) != dueCnt {
		t.Errorf("Unexpected number of claimed Reminders: %d (expected %d)",
			len(seen),
			dueCnt)
	}
} // func TestReminderDueClaimConcurrent(t *testing.T)

func TestReminderDueClaimIsFinal(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	// Once fired, a Reminder must never show up in a scan again.
	var (
		err   error
		due   []objects.Reminder
		fired []objects.Reminder
	)

	if due, err = db.ReminderDueClaim(time.Now()); err != nil {
		t.Fatalf("Scan failed: %s", err.Error())
	} else if len(due) != 0 {
		t.Errorf("Repeated scan claimed %d Reminders, should be none",
			len(due))
	}

	if fired, err = db.ReminderGetFired(); err != nil {
		t.Fatalf("Cannot fetch fired Reminders: %s",
			err.Error())
	} else if len(fired) != dueCnt {
		t.Errorf("Unexpected number of fired Reminders: %d (expected %d)",
			len(fired),
			dueCnt)
	}
} // func TestReminderDueClaimIsFinal(t *testing.T)

func TestReminderDeleteFired(t *testing.T) {
	if db == nil {
		t.SkipNow()
	}

	// Deletion does not care about the fired flag.
	var err error

	if err = db.ReminderDelete(overdue[0]); err != nil {
		t.Errorf("Cannot delete fired Reminder %q: %s",
			overdue[0].Title,
			err.Error())
	}
} // func TestReminderDeleteFired(t *testing.T)
