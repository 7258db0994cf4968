// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/ws.go
// -*- mode: go; coding: utf-8; -*-
// Created on 17. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 21:44:10 krylon>

package backend

import (
	"net/http"
	"time"

	"github.com/blicero/mnemosyne/broadcast"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	writeWait      = time.Second * 10
	pongWait       = time.Second * 60
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Clients on the LAN are welcome, that is the whole point.
		return true
	},
}

// handleSubscribe upgrades the connection to a WebSocket and attaches
// it to the Broker. Every batch of due Reminders the Scheduler
// publishes from then on goes out over the socket as one JSON message.
func (d *Daemon) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		conn *websocket.Conn
	)

	if conn, err = upgrader.Upgrade(w, r, nil); err != nil {
		d.log.Printf("[ERROR] Cannot upgrade connection from %s: %s\n",
			r.RemoteAddr,
			err.Error())
		return
	}

	var sub = d.broker.Subscribe()

	d.log.Printf("[INFO] Subscriber %d connected from %s\n",
		sub.ID(),
		r.RemoteAddr)

	go d.wsWritePump(conn, sub)
	go d.wsReadPump(conn, sub)
} // func (d *Daemon) handleSubscribe(w http.ResponseWriter, r *http.Request)

// wsWritePump feeds batches from the Subscription to the socket and
// keeps the connection alive with periodic pings.
func (d *Daemon) wsWritePump(conn *websocket.Conn, sub *broadcast.Subscription) {
	var ticker = time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		d.broker.Unsubscribe(sub)
		conn.Close() // nolint: errcheck
	}()

	for {
		select {
		case batch, ok := <-sub.Queue:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) // nolint: errcheck
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{}) // nolint: errcheck
				return
			}

			var (
				err error
				buf []byte
			)

			if buf, err = ffjson.Marshal(&batch); err != nil {
				d.log.Printf("[ERROR] Cannot serialize batch for subscriber %d: %s\n",
					sub.ID(),
					err.Error())
				continue
			}

			err = conn.WriteMessage(websocket.TextMessage, buf)
			ffjson.Pool(buf)

			if err != nil {
				d.log.Printf("[INFO] Write to subscriber %d failed, dropping connection: %s\n",
					sub.ID(),
					err.Error())
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) // nolint: errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				d.log.Printf("[INFO] Ping to subscriber %d failed, dropping connection: %s\n",
					sub.ID(),
					err.Error())
				return
			}
		}
	}
} // func (d *Daemon) wsWritePump(conn *websocket.Conn, sub *broadcast.Subscription)

// wsReadPump drains the socket; the only thing we expect from the peer
// is pongs and, eventually, a close frame.
func (d *Daemon) wsReadPump(conn *websocket.Conn, sub *broadcast.Subscription) {
	defer func() {
		d.broker.Unsubscribe(sub)
		conn.Close() // nolint: errcheck
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) // nolint: errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.log.Printf("[WARNING] Subscriber %d went away unexpectedly: %s\n",
					sub.ID(),
					err.Error())
			} else {
				d.log.Printf("[INFO] Subscriber %d disconnected\n",
					sub.ID())
			}
			return
		}
	}
} // func (d *Daemon) wsReadPump(conn *websocket.Conn, sub *broadcast.Subscription)
