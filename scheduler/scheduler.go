// /home/krylon/go/src/github.com/blicero/mnemosyne/scheduler/scheduler.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 20:31:02 krylon>

// Package scheduler runs the loop that watches the clock.
// On a fixed cadence it claims all Reminders whose due time has
// passed and hands them to the Broker as a single batch.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/audio"
	"github.com/blicero/mnemosyne/broadcast"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
)

// CheckInterval is the pause between two scans. A Reminder fires at
// most this long after its due time.
const CheckInterval = time.Millisecond * 500

// Scheduler periodically scans the database for Reminders that have
// become due. It holds no Reminder state of its own; whatever a scan
// turns up is claimed in the database and passed on immediately.
type Scheduler struct {
	log    *log.Logger
	pool   *database.Pool
	cat    *audio.Catalog
	brk    *broadcast.Broker
	lock   sync.RWMutex
	active bool
}

// New creates a Scheduler.
func New(pool *database.Pool, cat *audio.Catalog, brk *broadcast.Broker) (*Scheduler, error) {
	var (
		err error
		s   = &Scheduler{
			pool: pool,
			cat:  cat,
			brk:  brk,
		}
	)

	if s.log, err = common.GetLogger(logdomain.Scheduler); err != nil {
		return nil, err
	}

	return s, nil
} // func New(pool *database.Pool, cat *audio.Catalog, brk *broadcast.Broker) (*Scheduler, error)

// Start sets the Scheduler running.
func (s *Scheduler) Start() {
	s.lock.Lock()
	s.active = true
	s.lock.Unlock()

	go s.loop()
} // func (s *Scheduler) Start()

// IsActive returns true if the Scheduler's loop is running.
func (s *Scheduler) IsActive() bool {
	s.lock.RLock()
	var active = s.active
	s.lock.RUnlock()

	return active
} // func (s *Scheduler) IsActive() bool

// Stop tells the Scheduler's loop to finish.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	s.active = false
	s.lock.Unlock()
} // func (s *Scheduler) Stop()

func (s *Scheduler) loop() {
	defer s.log.Println("[TRACE] Scheduler loop is quitting")

	var ticker = time.NewTicker(CheckInterval)
	defer ticker.Stop()

	s.log.Printf("[INFO] Scheduler is watching the clock, one scan every %s\n",
		CheckInterval)

	for s.IsActive() {
		<-ticker.C

		// One bad scan is no reason to stop scanning; the affected
		// Reminders are still unclaimed and get picked up by the
		// next tick.
		if err := s.check(); err != nil {
			s.log.Printf("[ERROR] Scan failed (retrying next tick): %s\n",
				err.Error())
		}
	}
} // func (s *Scheduler) loop()

func (s *Scheduler) check() error {
	var (
		err error
		db  *database.Database
		due []objects.Reminder
		now = time.Now()
	)

	db = s.pool.Get()
	defer s.pool.Put(db)

	if due, err = db.ReminderDueClaim(now); err != nil {
		return err
	} else if len(due) == 0 {
		return nil
	}

	var batch = objects.DueBatch{
		Stamp:     now,
		Reminders: make([]objects.DueReminder, len(due)),
	}

	for i, r := range due {
		batch.Reminders[i] = objects.DueReminder{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Timestamp:   r.Timestamp,
			UUID:        r.UUID,
			AudioPath:   s.cat.Resolve(r.Audio),
		}

		s.log.Printf("[INFO] Reminder %q (due %s) goes off\n",
			r.Title,
			r.Timestamp.Format(common.TimestampFormat))
	}

	s.brk.Publish(&batch)
	return nil
} // func (s *Scheduler) check() error
