// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 21:04:47 krylon>

// Package backend implements the daemon at the heart of the
// application: it serves the HTTP and WebSocket interfaces, runs the
// scheduler, and passes due Reminders on to whoever is listening.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/mnemosyne/audio"
	"github.com/blicero/mnemosyne/broadcast"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/scheduler"
	"github.com/godbus/dbus/v5"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const poolSize = 4

// Daemon is the centerpiece of the backend, coordinating between the
// database, the scheduler, and the clients.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	catalog    *audio.Catalog
	broker     *broadcast.Broker
	sched      *scheduler.Scheduler
	bus        *dbus.Conn
	dnssd      *zeroconf.Server
	hostname   string
	lock       sync.RWMutex
	active     bool
	web        http.Server
	router     *mux.Router
	mimeTypes  map[string]string
	listenAddr string
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is required.
func Summon(addr string) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			router:     mux.NewRouter(),
			mimeTypes: map[string]string{
				".mp3":  "audio/mpeg",
				".ogg":  "audio/ogg",
				".oga":  "audio/ogg",
				".opus": "audio/opus",
				".wav":  "audio/wav",
				".flac": "audio/flac",
				".json": "application/json",
				".html": "text/html",
			},
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(poolSize); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.catalog, err = audio.NewCatalog(d.pool); err != nil {
		d.log.Printf("[ERROR] Cannot initialize audio catalog: %s\n",
			err.Error())
		return nil, err
	} else if d.broker, err = broadcast.New(); err != nil {
		d.log.Printf("[ERROR] Cannot initialize broker: %s\n",
			err.Error())
		return nil, err
	} else if d.sched, err = scheduler.New(d.pool, d.catalog, d.broker); err != nil {
		d.log.Printf("[ERROR] Cannot initialize scheduler: %s\n",
			err.Error())
		return nil, err
	}

	if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot query hostname: %s\n",
			err.Error())
		return nil, err
	}

	// Desktop notifications are a nicety, not a necessity. On a
	// headless box there is no session bus, and that is fine.
	if d.bus, err = dbus.SessionBus(); err != nil {
		d.log.Printf("[WARNING] No DBus session bus, desktop notifications are off: %s\n",
			err.Error())
		d.bus = nil
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		d.log.Printf("[WARNING] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	d.sched.Start()

	if d.bus != nil {
		go d.notifyLoop()
	}

	go d.serveHTTP()

	return d, nil
} // func Summon(addr string) (*Daemon, error)

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	d.sched.Stop()

	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) serveHTTP() {
	var err error

	defer d.log.Println("[INFO] Web server is shutting down")

	d.log.Printf("[INFO] Web interface is going online at %s\n", d.web.Addr)

	if err = d.web.ListenAndServe(); err != nil {
		if err != http.ErrServerClosed {
			d.log.Printf("[ERROR] ListenAndServe returned an error: %s\n",
				err.Error())
		} else {
			d.log.Println("[INFO] HTTP Server has shut down.")
		}
	}
} // func (d *Daemon) serveHTTP()

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
