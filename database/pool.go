// /home/krylon/go/src/github.com/blicero/mnemosyne/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 06. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-01-28 17:44:19 krylon>

package database

import (
	"sync"

	"github.com/blicero/mnemosyne/common"
)

// Pool is a pool of database connections. Database instances are not
// safe for concurrent use, so each goroutine grabs one from the Pool
// and returns it when done.
type Pool struct {
	lock sync.Mutex
	pool []*Database
}

// NewPool opens the given number of database connections and returns
// the resulting Pool.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, cnt),
		}
	)

	for i := 0; i < cnt; i++ {
		if pool.pool[i], err = Open(common.DbPath); err != nil {
			return nil, err
		}
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a database connection from the Pool.
// If the Pool has run dry, a fresh connection is opened.
func (p *Pool) Get() *Database {
	p.lock.Lock()

	var db *Database

	if len(p.pool) > 0 {
		db = p.pool[len(p.pool)-1]
		p.pool = p.pool[:len(p.pool)-1]
		p.lock.Unlock()
		return db
	}

	p.lock.Unlock()

	var err error

	if db, err = Open(common.DbPath); err != nil {
		// This is a bit rude, admittedly. But if we cannot open a
		// database connection, something is so wrong the process
		// cannot do anything useful anymore.
		panic(err)
	}

	return db
} // func (p *Pool) Get() *Database

// Put returns a database connection to the Pool.
func (p *Pool) Put(db *Database) {
	if db == nil {
		return
	}

	p.lock.Lock()
	p.pool = append(p.pool, db)
	p.lock.Unlock()
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	for _, db := range p.pool {
		if err = db.Close(); err != nil {
			return err
		}
	}

	p.pool = p.pool[:0]
	return nil
} // func (p *Pool) Close() error
