// /home/krylon/go/src/github.com/blicero/mnemosyne/broadcast/01_broker_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-06 20:28:17 krylon>

package broadcast

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
)

var brk *Broker

func init() {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("mnemosyne_broadcast_test_%d",
			time.Now().Unix()))

	if err := common.SetBaseDir(baseDir); err != nil {
		panic(err)
	}
} // func init()

func mkBatch(titles ...string) *objects.DueBatch {
	var batch = objects.DueBatch{
		Stamp:     time.Now(),
		Reminders: make([]objects.DueReminder, len(titles)),
	}

	for i, title := range titles {
		batch.Reminders[i] = objects.DueReminder{
			ID:        int64(i + 1),
			Title:     title,
			Timestamp: batch.Stamp,
			UUID:      common.GetUUID(),
			AudioPath: "/audio/file/builtin/" + common.DefaultAudioFile,
		}
	}

	return &batch
} // func mkBatch(titles ...string) *objects.DueBatch

func TestBrokerCreate(t *testing.T) {
	var err error

	if brk, err = New(); err != nil {
		brk = nil
		t.Fatalf("Cannot create Broker: %s",
			err.Error())
	}
} // func TestBrokerCreate(t *testing.T)

func TestBrokerPublish(t *testing.T) {
	if brk == nil {
		t.SkipNow()
	}

	var (
		s1 = brk.Subscribe()
		s2 = brk.Subscribe()
	)

	brk.Publish(mkBatch("Feed the cat"))

	// A subscriber that joins after the fact gets nothing.
	var late = brk.Subscribe()

	for i, sub := range []*Subscription{s1, s2} {
		select {
		case batch := <-sub.Queue:
			if batch.Size() != 1 {
				t.Errorf("Subscriber #%d got a batch of %d Reminders (expected 1)",
					i+1,
					batch.Size())
			} else if batch.Reminders[0].Title != "Feed the cat" {
				t.Errorf("Subscriber #%d got the wrong Reminder: %q",
					i+1,
					batch.Reminders[0].Title)
			}
		default:
			t.Errorf("Subscriber #%d did not receive the batch",
				i+1)
		}
	}

	select {
	case batch := <-late.Queue:
		t.Errorf("Late subscriber received a batch of %d Reminders",
			batch.Size())
	default:
		// Good.
	}

	brk.Unsubscribe(s1)
	brk.Unsubscribe(s2)
	brk.Unsubscribe(late)
} // func TestBrokerPublish(t *testing.T)

func TestBrokerOrdering(t *testing.T) {
	if brk == nil {
		t.SkipNow()
	}

	var sub = brk.Subscribe()
	defer brk.Unsubscribe(sub)

	var titles = []string{"one", "two", "three", "four"}

	for _, title := range titles {
		brk.Publish(mkBatch(title))
	}

	for _, want := range titles {
		select {
		case batch := <-sub.Queue:
			if batch.Reminders[0].Title != want {
				t.Errorf("Got batch %q out of order (expected %q)",
					batch.Reminders[0].Title,
					want)
			}
		default:
			t.Fatalf("Batch %q was not delivered",
				want)
		}
	}
} // func TestBrokerOrdering(t *testing.T)

func TestBrokerUnsubscribe(t *testing.T) {
	if brk == nil {
		t.SkipNow()
	}

	var (
		gone   = brk.Subscribe()
		stayer = brk.Subscribe()
	)
	defer brk.Unsubscribe(stayer)

	brk.Unsubscribe(gone)
	// Twice is fine, too.
	brk.Unsubscribe(gone)

	brk.Publish(mkBatch("Water the plants"))

	// The closed Queue must not yield a batch.
	if batch, ok := <-gone.Queue; ok {
		t.Errorf("Unsubscribed handle received a batch of %d Reminders",
			batch.Size())
	}

	select {
	case <-stayer.Queue:
		// Good.
	default:
		t.Error("Remaining subscriber did not receive the batch")
	}

	if cnt := brk.Count(); cnt != 1 {
		t.Errorf("Unexpected number of subscribers: %d (expected 1)",
			cnt)
	}
} // func TestBrokerUnsubscribe(t *testing.T)

func TestBrokerSlowSubscriber(t *testing.T) {
	if brk == nil {
		t.SkipNow()
	}

	var sub = brk.Subscribe()
	defer brk.Unsubscribe(sub)

	// Fill the queue past its depth; the excess is dropped, the
	// publisher does not block.
	for i := 0; i < queueDepth*2; i++ {
		brk.Publish(mkBatch(fmt.Sprintf("batch %02d", i)))
	}

	var got int

DRAIN:
	for {
		select {
		case <-sub.Queue:
			got++
		default:
			break DRAIN
		}
	}

	if got != queueDepth {
		t.Errorf("Slow subscriber got %d batches (expected %d)",
			got,
			queueDepth)
	}
} // func TestBrokerSlowSubscriber(t *testing.T)
