// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/web.go
// -*- mode: go; coding: utf-8; -*-
// Created on 15. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 21:28:54 krylon>

package backend

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/blicero/mnemosyne/audio"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/origin"
	"github.com/gorilla/mux"
	"github.com/pquerna/ffjson/ffjson"
)

// maxUploadSize is the largest audio file we accept, 16 MiB.
const maxUploadSize = 16 << 20

func (d *Daemon) initWebHandlers() error {
	d.router.HandleFunc("/reminder/add", d.handleReminderAdd)
	d.router.HandleFunc("/reminder/all", d.handleReminderGetAll)
	d.router.HandleFunc("/reminder/pending", d.handleReminderGetPending)
	d.router.HandleFunc("/reminder/{id:(?:\\d+)}/delete", d.handleReminderDelete)
	d.router.HandleFunc("/audio/all", d.handleAudioGetAll)
	d.router.HandleFunc("/audio/upload", d.handleAudioUpload)
	d.router.HandleFunc("/audio/{file}/delete", d.handleAudioDelete)
	d.router.HandleFunc("/audio/file/{origin:(?:builtin|upload)}/{file}", d.handleAudioServe)
	d.router.HandleFunc("/ws/subscribe", d.handleSubscribe)
	d.router.HandleFunc("/time", d.handleTime)

	return nil
} // func (d *Daemon) initWebHandlers() error

func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		rem       objects.Reminder
		db        *database.Database
		tstr, msg string
		code      = http.StatusOK
		response  = objects.Response{ID: d.getID()}
	)

	if err = r.ParseForm(); err != nil {
		d.log.Printf("[ERROR] Cannot parse form data: %s\n",
			err.Error())
		response.Message = err.Error()
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	rem.Title = r.PostFormValue("title")
	rem.Description = r.PostFormValue("body")
	tstr = r.PostFormValue("time")
	rem.Audio.File = r.PostFormValue("audio_file")
	rem.Audio.Origin = origin.FromString(r.PostFormValue("audio_origin"))

	if rem.Title == "" {
		msg = "Reminder title must not be empty"
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	// The due time may well be in the past, the scheduler fires such
	// a Reminder on its next scan. But it has to be a time.
	if rem.Timestamp, err = time.Parse(time.RFC3339, tstr); err != nil {
		msg = fmt.Sprintf("Cannot parse time stamp %q: %s",
			tstr,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	rem.UUID = common.GetUUID()

	db = d.pool.Get()
	defer d.pool.Put(db)

	if err = db.ReminderAdd(&rem); err != nil {
		msg = fmt.Sprintf("Cannot add Reminder %q to database: %s",
			rem.Title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusInternalServerError
		goto SEND_RESPONSE
	}

	response.Message = rem.UUID
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response, code)
} // func (d *Daemon) handleReminderAdd(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		db        *database.Database
		reminders []objects.Reminder
		buf       []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if reminders, err = db.ReminderGetAll(); err != nil {
		d.log.Printf("[ERROR] Cannot load Reminders: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(reminders); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Reminder list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleReminderGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err       error
		db        *database.Database
		reminders []objects.Reminder
		buf       []byte
	)

	db = d.pool.Get()
	defer d.pool.Put(db)

	if reminders, err = db.ReminderGetPending(); err != nil {
		d.log.Printf("[ERROR] Cannot load Reminders: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(reminders); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Reminder list: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleReminderGetPending(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err        error
		vars       map[string]string
		idstr, msg string
		id         int64
		db         *database.Database
		rem        *objects.Reminder
		code       = http.StatusOK
		res        = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)

	idstr = vars["id"]

	if id, err = strconv.ParseInt(idstr, 10, 64); err != nil {
		msg = fmt.Sprintf("Cannot parse ID %q: %s",
			idstr,
			err.Error())
		d.log.Printf("[CANTHAPPEN] %s\n", msg)
		res.Message = msg
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	db = d.pool.Get()
	defer d.pool.Put(db)

	if rem, err = db.ReminderGetByID(id); err != nil {
		msg = fmt.Sprintf("Cannot lookup Reminder by ID %d: %s",
			id,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		code = http.StatusInternalServerError
		goto SEND_RESPONSE
	} else if rem == nil {
		msg = fmt.Sprintf("Did not find Reminder %d in database", id)
		d.log.Printf("[INFO] %s\n", msg)
		res.Message = msg
		code = http.StatusNotFound
		goto SEND_RESPONSE
	} else if err = db.ReminderDelete(rem); err != nil {
		msg = fmt.Sprintf("Failed to delete Reminder %d (%q): %s",
			id,
			rem.Title,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		if errors.Is(err, database.ErrObjectNotFound) {
			code = http.StatusNotFound
		} else {
			code = http.StatusInternalServerError
		}
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("Reminder %d (%q) was deleted",
		id,
		rem.Title)
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res, code)
} // func (d *Daemon) handleReminderDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAudioGetAll(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err error
		inv *objects.AudioInventory
		buf []byte
	)

	if inv, err = d.catalog.List(); err != nil {
		d.log.Printf("[ERROR] Cannot list audio files: %s\n",
			err.Error())

	} else if buf, err = ffjson.Marshal(inv); err != nil {
		d.log.Printf("[ERROR] Cannot serialize audio inventory: %s\n",
			err.Error())

	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) handleAudioGetAll(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAudioUpload(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err      error
		file     multipart.File
		hdr      *multipart.FileHeader
		data     []byte
		msg      string
		code     = http.StatusOK
		response = objects.Response{ID: d.getID()}
	)

	if err = r.ParseMultipartForm(maxUploadSize); err != nil {
		msg = fmt.Sprintf("Cannot parse upload: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	if file, hdr, err = r.FormFile("audio_file"); err != nil {
		msg = fmt.Sprintf("No audio_file in upload: %s",
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusBadRequest
		goto SEND_RESPONSE
	}

	defer file.Close() // nolint: errcheck

	if data, err = io.ReadAll(file); err != nil {
		msg = fmt.Sprintf("Cannot read uploaded file %q: %s",
			hdr.Filename,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		code = http.StatusInternalServerError
		goto SEND_RESPONSE
	}

	if _, err = d.catalog.Add(filepath.Base(hdr.Filename), data); err != nil {
		msg = fmt.Sprintf("Cannot store uploaded file %q: %s",
			hdr.Filename,
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		response.Message = msg
		switch {
		case errors.Is(err, audio.ErrBadName), errors.Is(err, audio.ErrDuplicate):
			code = http.StatusBadRequest
		default:
			code = http.StatusInternalServerError
		}
		goto SEND_RESPONSE
	}

	response.Message = filepath.Base(hdr.Filename)
	response.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &response, code)
} // func (d *Daemon) handleAudioUpload(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAudioDelete(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		vars map[string]string
		msg  string
		code = http.StatusOK
		res  = objects.Response{ID: d.getID()}
	)

	vars = mux.Vars(r)

	if err = d.catalog.Delete(vars["file"]); err != nil {
		msg = fmt.Sprintf("Cannot delete audio file %q: %s",
			vars["file"],
			err.Error())
		d.log.Printf("[ERROR] %s\n", msg)
		res.Message = msg
		switch {
		case errors.Is(err, audio.ErrForbidden):
			code = http.StatusForbidden
		case errors.Is(err, audio.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, audio.ErrBadName):
			code = http.StatusBadRequest
		default:
			code = http.StatusInternalServerError
		}
		goto SEND_RESPONSE
	}

	res.Message = fmt.Sprintf("Audio file %q was deleted",
		vars["file"])
	res.Status = true

SEND_RESPONSE:
	d.sendResponseJSON(w, &res, code)
} // func (d *Daemon) handleAudioDelete(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleAudioServe(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var (
		err  error
		vars = mux.Vars(r)
		path string
	)

	if path, err = d.catalog.FilePath(origin.FromString(vars["origin"]), vars["file"]); err != nil {
		d.log.Printf("[ERROR] Cannot serve audio file %q: %s\n",
			vars["file"],
			err.Error())
		http.Error(w,
			fmt.Sprintf("Audio file %q was not found", vars["file"]),
			http.StatusNotFound)
		return
	}

	if mime, ok := d.mimeTypes[filepath.Ext(path)]; ok {
		w.Header().Set("Content-Type", mime)
	}

	http.ServeFile(w, r, path)
} // func (d *Daemon) handleAudioServe(w http.ResponseWriter, r *http.Request)

func (d *Daemon) handleTime(w http.ResponseWriter, r *http.Request) {
	d.log.Printf("[TRACE] Handle %s from %s\n",
		r.URL,
		r.RemoteAddr)

	var res = objects.Response{
		ID:      d.getID(),
		Status:  true,
		Message: time.Now().UTC().Format(time.RFC3339),
	}

	d.sendResponseJSON(w, &res, http.StatusOK)
} // func (d *Daemon) handleTime(w http.ResponseWriter, r *http.Request)

//////////////////////////////////////////////////////////////////////////////////////////////////
/// Helpers //////////////////////////////////////////////////////////////////////////////////////
//////////////////////////////////////////////////////////////////////////////////////////////////

func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response, code int) {
	var (
		err error
		buf []byte
	)

	if buf, err = ffjson.Marshal(res); err != nil {
		d.log.Printf("[ERROR] Cannot serialize Response object %#v: %s\n",
			res,
			err.Error())
		return
	}

	defer ffjson.Pool(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf) // nolint: errcheck
} // func (d *Daemon) sendResponseJSON(w http.ResponseWriter, res *objects.Response, code int)
