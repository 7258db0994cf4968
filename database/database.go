// /home/krylon/go/src/github.com/blicero/mnemosyne/database/database.go
// -*- mode: go; coding: utf-8; -*-
// Created on 05. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 19:21:08 krylon>

// Package database provides the persistence layer of the application.
// It wraps an SQLite database and exposes the operations the rest of
// the application performs on Reminders and audio assets.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/blicero/krylib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database/query"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/origin"
	"github.com/mattn/go-sqlite3"
)

var (
	openLock sync.Mutex
	idCnt    int64
)

// ErrTxInProgress indicates that an attempt to initiate a transaction
// failed because there is already one in progress.
var ErrTxInProgress = errors.New("A Transaction is already in progress")

// ErrNoTxInProgress indicates that an attempt was made to finish a
// transaction when none was active.
var ErrNoTxInProgress = errors.New("There is no transaction in progress")

// ErrObjectNotFound indicates that an operation named a Reminder or
// audio asset that does not exist in the database.
var ErrObjectNotFound = errors.New("The requested object was not found in the database")

const retryPause = time.Millisecond * 25

func worthARetry(e error) bool {
	var sqlErr sqlite3.Error
	if !errors.As(e, &sqlErr) {
		return false
	}

	switch sqlErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return true
	default:
		return false
	}
} // func worthARetry(e error) bool

func waitForRetry() {
	time.Sleep(retryPause)
} // func waitForRetry()

// Database is the storage backend for managing Reminders and audio
// assets.
//
// It is not safe to share a Database instance between goroutines,
// use the Pool for that.
type Database struct {
	id      int64
	db      *sql.DB
	tx      *sql.Tx
	log     *log.Logger
	path    string
	queries map[query.ID]*sql.Stmt
}

// Open opens a Database. If the database file does not exist, it is
// created and initialized.
func Open(path string) (*Database, error) {
	var (
		err      error
		dbExists bool
		db       = &Database{
			path:    path,
			queries: make(map[query.ID]*sql.Stmt, len(dbQueries)),
		}
	)

	openLock.Lock()
	defer openLock.Unlock()
	idCnt++
	db.id = idCnt

	if db.log, err = common.GetLogger(logdomain.Database); err != nil {
		return nil, err
	}

	var connstring = fmt.Sprintf("%s?_locking=NORMAL&_journal=WAL&_fk=1&recursive_triggers=0&_busy_timeout=100",
		path)

	if dbExists, err = krylib.Fexists(path); err != nil {
		db.log.Printf("[ERROR] Cannot check if database file %s exists: %s\n",
			path,
			err.Error())
		return nil, err
	} else if db.db, err = sql.Open("sqlite3", connstring); err != nil {
		db.log.Printf("[ERROR] Cannot open %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	db.db.SetMaxOpenConns(1)
	db.db.SetMaxIdleConns(1)

	if !dbExists {
		if err = db.initialize(); err != nil {
			var e2 error
			if e2 = db.db.Close(); e2 != nil {
				db.log.Printf("[CRITICAL] Cannot close database: %s\n",
					e2.Error())
				return nil, e2
			} else if e2 = os.Remove(path); e2 != nil {
				db.log.Printf("[CRITICAL] Cannot remove database file %s: %s\n",
					path,
					e2.Error())
			}
			return nil, err
		}
		db.log.Printf("[INFO] Initialized fresh database at %s\n",
			path)
	}

	return db, nil
} // func Open(path string) (*Database, error)

func (db *Database) initialize() error {
	var err error
	var tx *sql.Tx

	if tx, err = db.db.Begin(); err != nil {
		db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
			err.Error())
		return err
	}

	for _, q := range initQueries {
		if _, err = tx.Exec(q); err != nil {
			db.log.Printf("[ERROR] Cannot execute init query:\n%s\n%s\n",
				q,
				err.Error())
			if rbErr := tx.Rollback(); rbErr != nil {
				db.log.Printf("[CANTHAPPEN] Cannot rollback transaction: %s\n",
					rbErr.Error())
			}
			return err
		}
	}

	return tx.Commit()
} // func (db *Database) initialize() error

// Close closes the database connection.
func (db *Database) Close() error {
	var err error

	if db.tx != nil {
		if err = db.tx.Rollback(); err != nil {
			db.log.Printf("[CRITICAL] Cannot roll back pending transaction: %s\n",
				err.Error())
			return err
		}
		db.tx = nil
	}

	for key, stmt := range db.queries {
		if err = stmt.Close(); err != nil {
			db.log.Printf("[CRITICAL] Cannot close statement handle %s: %s\n",
				key,
				err.Error())
			return err
		}
		delete(db.queries, key)
	}

	if err = db.db.Close(); err != nil {
		db.log.Printf("[CRITICAL] Cannot close database: %s\n",
			err.Error())
		return err
	}

	db.db = nil
	return nil
} // func (db *Database) Close() error

func (db *Database) getQuery(id query.ID) (*sql.Stmt, error) {
	var (
		stmt *sql.Stmt
		ok   bool
		err  error
	)

	if stmt, ok = db.queries[id]; ok {
		return stmt, nil
	}

PREPARE_QUERY:
	if stmt, err = db.db.Prepare(dbQueries[id]); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto PREPARE_QUERY
		}

		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			id,
			err.Error())
		return nil, err
	}

	db.queries[id] = stmt
	return stmt, nil
} // func (db *Database) getQuery(id query.ID) (*sql.Stmt, error)

// Begin begins an explicit database transaction.
// Only one transaction can be in progress at once, attempting to start
// one, while another transaction is already in progress will yield
// ErrTxInProgress.
func (db *Database) Begin() error {
	var err error

	if db.tx != nil {
		return ErrTxInProgress
	}

BEGIN_TX:
	for db.tx == nil {
		if db.tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				continue BEGIN_TX
			}

			db.log.Printf("[ERROR] Cannot begin transaction: %s\n",
				err.Error())
			return err
		}
	}

	return nil
} // func (db *Database) Begin() error

// Commit ends the active transaction, making any changes made during
// that transaction permanent and visible to other connections.
func (db *Database) Commit() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if err = db.tx.Commit(); err != nil {
		db.log.Printf("[ERROR] Cannot commit transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Commit() error

// Rollback terminates a pending transaction, undoing any changes made
// during that transaction.
func (db *Database) Rollback() error {
	var err error

	if db.tx == nil {
		return ErrNoTxInProgress
	}

	if err = db.tx.Rollback(); err != nil {
		db.log.Printf("[ERROR] Cannot roll back transaction: %s\n",
			err.Error())
		return err
	}

	db.tx = nil
	return nil
} // func (db *Database) Rollback() error

// ReminderAdd adds a Reminder to the database. On success, the
// Reminder's ID and Changed stamp are filled in.
// The record is on disk by the time this method returns.
func (db *Database) ReminderAdd(r *objects.Reminder) error {
	const qid query.ID = query.ReminderAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot begin ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	var now = time.Now()
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(
		r.Title,
		r.Description,
		r.Timestamp.Unix(),
		r.Audio.File,
		r.Audio.Origin,
		r.UUID,
		now.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add Reminder %q to database: %s\n",
			r.Title,
			err.Error())
		return err
	}

	var id int64

	if id, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new Reminder %q: %s\n",
			r.Title,
			err.Error())
		return err
	}

	status = true
	r.ID = id
	r.Changed = now
	return nil
} // func (db *Database) ReminderAdd(r *objects.Reminder) error

// ReminderDelete removes the given Reminder from the database.
// Deleting a Reminder that does not exist yields ErrObjectNotFound.
func (db *Database) ReminderDelete(r *objects.Reminder) error {
	const qid query.ID = query.ReminderDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot begin ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(r.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete Reminder %d (%q): %s\n",
			r.ID,
			r.Title,
			err.Error())
		return err
	}

	var cnt int64

	if cnt, err = res.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot query number of affected rows: %s\n",
			err.Error())
		return err
	} else if cnt == 0 {
		db.log.Printf("[DEBUG] Reminder %d was not found in database\n",
			r.ID)
		return ErrObjectNotFound
	}

	status = true
	return nil
} // func (db *Database) ReminderDelete(r *objects.Reminder) error

// ReminderDueClaim returns all Reminders that are due as of the given
// deadline and have not fired yet, marking them as fired in the same
// statement. A Reminder can be claimed only once; two concurrent calls
// will never both return the same Reminder.
func (db *Database) ReminderDueClaim(deadline time.Time) ([]objects.Reminder, error) {
	const qid query.ID = query.ReminderDueClaim
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot begin ad-hoc transaction: %s\n",
				err.Error())
			return nil, err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	var (
		now  = time.Now()
		rows *sql.Rows
	)

EXEC_QUERY:
	if rows, err = stmt.Query(now.Unix(), deadline.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot claim due Reminders: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var reminders = make([]objects.Reminder, 0, 4)

	for rows.Next() {
		var (
			r        objects.Reminder
			due, ori int64
		)

		if err = rows.Scan(
			&r.ID,
			&r.Title,
			&r.Description,
			&due,
			&r.Audio.File,
			&ori,
			&r.UUID); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Timestamp = time.Unix(due, 0)
		r.Audio.Origin = origin.Origin(ori)
		r.Fired = true
		r.Changed = now
		reminders = append(reminders, r)
	}

	status = true
	return reminders, nil
} // func (db *Database) ReminderDueClaim(deadline time.Time) ([]objects.Reminder, error)

// ReminderGetPending returns all Reminders that have not fired yet.
func (db *Database) ReminderGetPending() ([]objects.Reminder, error) {
	return db.reminderGetList(query.ReminderGetPending)
} // func (db *Database) ReminderGetPending() ([]objects.Reminder, error)

// ReminderGetFired returns all Reminders that have already fired.
func (db *Database) ReminderGetFired() ([]objects.Reminder, error) {
	return db.reminderGetList(query.ReminderGetFired)
} // func (db *Database) ReminderGetFired() ([]objects.Reminder, error)

func (db *Database) reminderGetList(qid query.ID) ([]objects.Reminder, error) {
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query Reminders (%s): %s\n",
			qid,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var reminders = make([]objects.Reminder, 0, 16)

	for rows.Next() {
		var (
			r                 objects.Reminder
			due, ori, changed int64
		)

		if err = rows.Scan(
			&r.ID,
			&r.Title,
			&r.Description,
			&due,
			&r.Audio.File,
			&ori,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Timestamp = time.Unix(due, 0)
		r.Audio.Origin = origin.Origin(ori)
		r.Changed = time.Unix(changed, 0)
		r.Fired = qid == query.ReminderGetFired
		reminders = append(reminders, r)
	}

	return reminders, nil
} // func (db *Database) reminderGetList(qid query.ID) ([]objects.Reminder, error)

// ReminderGetAll returns all Reminders in the database.
func (db *Database) ReminderGetAll() ([]objects.Reminder, error) {
	const qid query.ID = query.ReminderGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query all Reminders: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var reminders = make([]objects.Reminder, 0, 16)

	for rows.Next() {
		var (
			r                 objects.Reminder
			due, ori, changed int64
		)

		if err = rows.Scan(
			&r.ID,
			&r.Title,
			&r.Description,
			&due,
			&r.Audio.File,
			&ori,
			&r.Fired,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Timestamp = time.Unix(due, 0)
		r.Audio.Origin = origin.Origin(ori)
		r.Changed = time.Unix(changed, 0)
		reminders = append(reminders, r)
	}

	return reminders, nil
} // func (db *Database) ReminderGetAll() ([]objects.Reminder, error)

// ReminderGetByID looks up a Reminder by its ID.
// If no such Reminder exists, it returns nil, but no error.
func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error) {
	const qid query.ID = query.ReminderGetByID
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(id); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up Reminder %d: %s\n",
			id,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			r                 = objects.Reminder{ID: id}
			due, ori, changed int64
		)

		if err = rows.Scan(
			&r.Title,
			&r.Description,
			&due,
			&r.Audio.File,
			&ori,
			&r.Fired,
			&r.UUID,
			&changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		r.Timestamp = time.Unix(due, 0)
		r.Audio.Origin = origin.Origin(ori)
		r.Changed = time.Unix(changed, 0)
		return &r, nil
	}

	return nil, nil
} // func (db *Database) ReminderGetByID(id int64) (*objects.Reminder, error)

// AudioAdd records an uploaded audio asset in the database.
func (db *Database) AudioAdd(a *objects.AudioAsset) error {
	const qid query.ID = query.AudioAdd
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot begin ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	var (
		now = time.Now()
		res sql.Result
	)

EXEC_QUERY:
	if res, err = stmt.Exec(a.File, now.Unix()); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot add audio asset %q to database: %s\n",
			a.File,
			err.Error())
		return err
	}

	var id int64

	if id, err = res.LastInsertId(); err != nil {
		db.log.Printf("[ERROR] Cannot get ID of new audio asset %q: %s\n",
			a.File,
			err.Error())
		return err
	}

	status = true
	a.ID = id
	a.Origin = origin.Uploaded
	a.Changed = now
	return nil
} // func (db *Database) AudioAdd(a *objects.AudioAsset) error

// AudioDelete removes an uploaded audio asset from the database.
func (db *Database) AudioDelete(a *objects.AudioAsset) error {
	const qid query.ID = query.AudioDelete
	var (
		err    error
		stmt   *sql.Stmt
		tx     *sql.Tx
		status bool
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return err
	}

	if db.tx != nil {
		tx = db.tx
	} else {
	BEGIN_AD_HOC:
		if tx, err = db.db.Begin(); err != nil {
			if worthARetry(err) {
				waitForRetry()
				goto BEGIN_AD_HOC
			}

			db.log.Printf("[ERROR] Cannot begin ad-hoc transaction: %s\n",
				err.Error())
			return err
		}

		defer func() {
			if status {
				tx.Commit() // nolint: errcheck
			} else {
				tx.Rollback() // nolint: errcheck
			}
		}()
	}

	stmt = tx.Stmt(stmt)
	var res sql.Result

EXEC_QUERY:
	if res, err = stmt.Exec(a.ID); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot delete audio asset %d (%q): %s\n",
			a.ID,
			a.File,
			err.Error())
		return err
	}

	var cnt int64

	if cnt, err = res.RowsAffected(); err != nil {
		db.log.Printf("[ERROR] Cannot query number of affected rows: %s\n",
			err.Error())
		return err
	} else if cnt == 0 {
		db.log.Printf("[DEBUG] Audio asset %d was not found in database\n",
			a.ID)
		return ErrObjectNotFound
	}

	status = true
	return nil
} // func (db *Database) AudioDelete(a *objects.AudioAsset) error

// AudioGetByFile looks up an uploaded audio asset by its file name.
// If no such asset exists, it returns nil, but no error.
func (db *Database) AudioGetByFile(file string) (*objects.AudioAsset, error) {
	const qid query.ID = query.AudioGetByFile
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(file); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot look up audio asset %q: %s\n",
			file,
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	if rows.Next() {
		var (
			a = objects.AudioAsset{
				File:   file,
				Origin: origin.Uploaded,
			}
			changed int64
		)

		if err = rows.Scan(&a.ID, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		a.Changed = time.Unix(changed, 0)
		return &a, nil
	}

	return nil, nil
} // func (db *Database) AudioGetByFile(file string) (*objects.AudioAsset, error)

// AudioGetAll returns all uploaded audio assets.
func (db *Database) AudioGetAll() ([]objects.AudioAsset, error) {
	const qid query.ID = query.AudioGetAll
	var (
		err  error
		stmt *sql.Stmt
	)

	if stmt, err = db.getQuery(qid); err != nil {
		db.log.Printf("[ERROR] Cannot prepare query %s: %s\n",
			qid,
			err.Error())
		return nil, err
	} else if db.tx != nil {
		stmt = db.tx.Stmt(stmt)
	}

	var rows *sql.Rows

EXEC_QUERY:
	if rows, err = stmt.Query(); err != nil {
		if worthARetry(err) {
			waitForRetry()
			goto EXEC_QUERY
		}

		db.log.Printf("[ERROR] Cannot query audio assets: %s\n",
			err.Error())
		return nil, err
	}

	defer rows.Close() // nolint: errcheck

	var assets = make([]objects.AudioAsset, 0, 8)

	for rows.Next() {
		var (
			a       = objects.AudioAsset{Origin: origin.Uploaded}
			changed int64
		)

		if err = rows.Scan(&a.ID, &a.File, &changed); err != nil {
			db.log.Printf("[ERROR] Cannot scan row: %s\n",
				err.Error())
			return nil, err
		}

		a.Changed = time.Unix(changed, 0)
		assets = append(assets, a)
	}

	return assets, nil
} // func (db *Database) AudioGetAll() ([]objects.AudioAsset, error)
