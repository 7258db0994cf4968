// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 22. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 22:58:17 krylon>

// Package clientlib provides the basic framework for building clients
// that talk to the Mnemosyne backend, including the WebSocket channel
// on which due Reminders arrive.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	pathReminderAdd     = "/reminder/add"
	pathReminderAll     = "/reminder/all"
	pathReminderPending = "/reminder/pending"
	pathReminderDelete  = "/reminder/%d/delete"
	pathAudioAll        = "/audio/all"
	pathSubscribe       = "/ws/subscribe"
)

// Client implements the fundamental communication with the Server.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client talking to the backend at the given address.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	c.Server.Scheme = "http"

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's Logger, so applications built on top
// do not need to create their own.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

func (c *Client) mkURL(path string) string {
	var u = *c.Server
	u.Path = path
	return u.String()
} // func (c *Client) mkURL(path string) string

func (c *Client) readResponse(hres *http.Response) (*objects.Response, error) {
	var (
		err    error
		rcvBuf bytes.Buffer
		ores   objects.Response
	)

	defer hres.Body.Close() // nolint: errcheck

	if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	} else if !ores.Status {
		err = fmt.Errorf("Request to %s failed: %s",
			c.Server,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return &ores, err
	}

	return &ores, nil
} // func (c *Client) readResponse(hres *http.Response) (*objects.Response, error)

// ReminderAdd submits a Reminder to the backend. On success, the UUID
// the backend assigned is stored in the Reminder.
func (c *Client) ReminderAdd(r *objects.Reminder) error {
	var (
		err    error
		msg    string
		hres   *http.Response
		ores   *objects.Response
		values = url.Values{
			"title":        []string{r.Title},
			"body":         []string{r.Description},
			"time":         []string{r.Timestamp.Format(time.RFC3339)},
			"audio_file":   []string{r.Audio.File},
			"audio_origin": []string{r.Audio.Origin.String()},
		}
	)

	if hres, err = c.Client.PostForm(c.mkURL(pathReminderAdd), values); err != nil {
		c.log.Printf("[ERROR] Failed to POST Reminder to %s: %s\n",
			c.Server,
			err.Error())
		return err
	} else if hres.StatusCode != http.StatusOK {
		hres.Body.Close() // nolint: errcheck
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			c.Server,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if ores, err = c.readResponse(hres); err != nil {
		return err
	}

	r.UUID = ores.Message

	c.log.Printf("[DEBUG] Reminder %q was accepted as %s\n",
		r.Title,
		r.UUID)

	return nil
} // func (c *Client) ReminderAdd(r *objects.Reminder) error

func (c *Client) reminderGetList(path string) ([]objects.Reminder, error) {
	var (
		err       error
		hres      *http.Response
		rcvBuf    bytes.Buffer
		reminders []objects.Reminder
	)

	if hres, err = c.Client.Get(c.mkURL(path)); err != nil {
		c.log.Printf("[ERROR] Failed to GET %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Reminder list from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &reminders); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Reminder list from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	}

	return reminders, nil
} // func (c *Client) reminderGetList(path string) ([]objects.Reminder, error)

// ReminderGetAll fetches all Reminders from the backend, fired ones included.
func (c *Client) ReminderGetAll() ([]objects.Reminder, error) {
	return c.reminderGetList(pathReminderAll)
} // func (c *Client) ReminderGetAll() ([]objects.Reminder, error)

// ReminderGetPending fetches the Reminders that have not fired, yet.
func (c *Client) ReminderGetPending() ([]objects.Reminder, error) {
	return c.reminderGetList(pathReminderPending)
} // func (c *Client) ReminderGetPending() ([]objects.Reminder, error)

// ReminderDelete asks the backend to delete the Reminder with the given ID.
func (c *Client) ReminderDelete(id int64) error {
	var (
		err  error
		hres *http.Response
	)

	if hres, err = c.Client.Get(c.mkURL(fmt.Sprintf(pathReminderDelete, id))); err != nil {
		c.log.Printf("[ERROR] Failed to delete Reminder %d: %s\n",
			id,
			err.Error())
		return err
	}

	_, err = c.readResponse(hres)
	return err
} // func (c *Client) ReminderDelete(id int64) error

// AudioList fetches the inventory of audio files known to the backend.
func (c *Client) AudioList() (*objects.AudioInventory, error) {
	var (
		err    error
		hres   *http.Response
		rcvBuf bytes.Buffer
		inv    objects.AudioInventory
	)

	if hres, err = c.Client.Get(c.mkURL(pathAudioAll)); err != nil {
		c.log.Printf("[ERROR] Failed to GET audio inventory: %s\n",
			err.Error())
		return nil, err
	}

	defer hres.Body.Close() // nolint: errcheck

	if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read audio inventory from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &inv); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize audio inventory from %s: %s\n",
			c.Server,
			err.Error())
		return nil, err
	}

	return &inv, nil
} // func (c *Client) AudioList() (*objects.AudioInventory, error)

// Subscribe opens the WebSocket channel and returns a channel on which
// batches of due Reminders arrive. The channel is closed when the
// connection goes away.
func (c *Client) Subscribe() (<-chan objects.DueBatch, error) {
	var (
		err  error
		conn *websocket.Conn
		wsu  = url.URL{
			Scheme: "ws",
			Host:   c.Server.Host,
			Path:   pathSubscribe,
		}
	)

	if conn, _, err = websocket.DefaultDialer.Dial(wsu.String(), nil); err != nil {
		c.log.Printf("[ERROR] Cannot connect to %s: %s\n",
			wsu.String(),
			err.Error())
		return nil, err
	}

	var queue = make(chan objects.DueBatch)

	go func() {
		defer close(queue)
		defer conn.Close() // nolint: errcheck

		for {
			var (
				msg   []byte
				batch objects.DueBatch
			)

			if _, msg, err = conn.ReadMessage(); err != nil {
				c.log.Printf("[INFO] Subscription to %s has ended: %s\n",
					c.Server,
					err.Error())
				return
			} else if err = ffjson.Unmarshal(msg, &batch); err != nil {
				c.log.Printf("[ERROR] Cannot de-serialize batch: %s\n",
					err.Error())
				continue
			}

			queue <- batch
		}
	}()

	return queue, nil
} // func (c *Client) Subscribe() (<-chan objects.DueBatch, error)
