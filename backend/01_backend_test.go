// /home/krylon/go/src/github.com/blicero/mnemosyne/backend/01_backend_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 20. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 22:20:41 krylon>

package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"
)

const testAddr = "localhost:42719"

var back *Daemon

func init() {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("mnemosyne_backend_test_%d",
			time.Now().Unix()))

	if err := common.SetBaseDir(baseDir); err != nil {
		panic(err)
	}

	var beep = filepath.Join(common.AudioBuiltinDir, common.DefaultAudioFile)

	if err := os.WriteFile(beep, []byte("BEEP"), 0644); err != nil {
		panic(err)
	}
} // func init()

func testURL(path string) string {
	return fmt.Sprintf("http://%s%s", testAddr, path)
} // func testURL(path string) string

func getResponse(t *testing.T, res *http.Response) objects.Response {
	t.Helper()

	var (
		err  error
		body []byte
		r    objects.Response
	)

	defer res.Body.Close() // nolint: errcheck

	if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read response body: %s",
			err.Error())
	} else if err = ffjson.Unmarshal(body, &r); err != nil {
		t.Fatalf("Cannot parse response body %q: %s",
			body,
			err.Error())
	}

	return r
} // func getResponse(t *testing.T, res *http.Response) objects.Response

func TestSummon(t *testing.T) {
	var err error

	if back, err = Summon(testAddr); err != nil {
		back = nil
		t.Fatalf("Cannot create Daemon: %s",
			err.Error())
	}

	// The web server comes up asynchronously, give it a moment.
	for i := 0; i < 20; i++ {
		var res *http.Response
		if res, err = http.Get(testURL("/time")); err == nil {
			res.Body.Close() // nolint: errcheck
			return
		}
		time.Sleep(time.Millisecond * 100)
	}

	back = nil
	t.Fatalf("Web server did not come up at %s: %s",
		testAddr,
		err.Error())
} // func TestSummon(t *testing.T)

func TestTime(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err error
		res *http.Response
	)

	if res, err = http.Get(testURL("/time")); err != nil {
		t.Fatalf("Cannot query server time: %s",
			err.Error())
	}

	var r = getResponse(t, res)

	if !r.Status {
		t.Fatalf("Time query failed: %s",
			r.Message)
	} else if _, err = time.Parse(time.RFC3339, r.Message); err != nil {
		t.Errorf("Server time %q is not a valid RFC3339 stamp: %s",
			r.Message,
			err.Error())
	}
} // func TestTime(t *testing.T)

func TestReminderRoundTrip(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err  error
		res  *http.Response
		form = url.Values{
			"title": []string{"Dentist"},
			"body":  []string{"Try not to scream this time"},
			"time":  []string{time.Now().Add(time.Hour).Format(time.RFC3339)},
		}
	)

	if res, err = http.PostForm(testURL("/reminder/add"), form); err != nil {
		t.Fatalf("Cannot add Reminder: %s",
			err.Error())
	}

	var r = getResponse(t, res)

	if res.StatusCode != http.StatusOK {
		t.Fatalf("Unexpected HTTP status %d: %s",
			res.StatusCode,
			r.Message)
	} else if !r.Status {
		t.Fatalf("Adding Reminder failed: %s",
			r.Message)
	}

	if res, err = http.Get(testURL("/reminder/pending")); err != nil {
		t.Fatalf("Cannot fetch pending Reminders: %s",
			err.Error())
	}

	var (
		body      []byte
		reminders []objects.Reminder
	)

	if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read Reminder list: %s",
			err.Error())
	}
	res.Body.Close() // nolint: errcheck

	if err = ffjson.Unmarshal(body, &reminders); err != nil {
		t.Fatalf("Cannot parse Reminder list: %s",
			err.Error())
	} else if len(reminders) != 1 {
		t.Fatalf("Unexpected number of pending Reminders: %d (expected 1)",
			len(reminders))
	} else if reminders[0].Title != "Dentist" {
		t.Fatalf("Unexpected Reminder title %q",
			reminders[0].Title)
	} else if reminders[0].UUID != r.Message {
		t.Errorf("Reminder UUID %q does not match the one returned on add (%q)",
			reminders[0].UUID,
			r.Message)
	}

	var delURL = testURL(fmt.Sprintf("/reminder/%d/delete", reminders[0].ID))

	if res, err = http.Get(delURL); err != nil {
		t.Fatalf("Cannot delete Reminder: %s",
			err.Error())
	} else if r = getResponse(t, res); !r.Status {
		t.Fatalf("Deleting Reminder failed: %s",
			r.Message)
	}

	// Deleting it again gets us a 404.
	if res, err = http.Get(delURL); err != nil {
		t.Fatalf("Cannot re-delete Reminder: %s",
			err.Error())
	} else if res.StatusCode != http.StatusNotFound {
		t.Errorf("Deleting a deleted Reminder should yield a 404, not %d",
			res.StatusCode)
	}
	res.Body.Close() // nolint: errcheck
} // func TestReminderRoundTrip(t *testing.T)

func TestReminderAddValidation(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	type testCase struct {
		title string
		stamp string
	}

	var cases = []testCase{
		{title: "", stamp: time.Now().Format(time.RFC3339)},
		{title: "Broken clock", stamp: "yesterday-ish"},
	}

	for _, c := range cases {
		var (
			err  error
			res  *http.Response
			form = url.Values{
				"title": []string{c.title},
				"time":  []string{c.stamp},
			}
		)

		if res, err = http.PostForm(testURL("/reminder/add"), form); err != nil {
			t.Fatalf("Cannot POST Reminder: %s",
				err.Error())
		}

		var r = getResponse(t, res)

		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("Reminder (%q, %q) should have been rejected with a 400, got %d",
				c.title,
				c.stamp,
				res.StatusCode)
		} else if r.Status {
			t.Errorf("Reminder (%q, %q) should have been rejected",
				c.title,
				c.stamp)
		}
	}
} // func TestReminderAddValidation(t *testing.T)

func uploadFile(t *testing.T, name string, data []byte) *http.Response {
	t.Helper()

	var (
		err  error
		buf  bytes.Buffer
		res  *http.Response
		mw   = multipart.NewWriter(&buf)
		part io.Writer
	)

	if part, err = mw.CreateFormFile("audio_file", name); err != nil {
		t.Fatalf("Cannot create multipart file: %s",
			err.Error())
	} else if _, err = part.Write(data); err != nil {
		t.Fatalf("Cannot write multipart file: %s",
			err.Error())
	} else if err = mw.Close(); err != nil {
		t.Fatalf("Cannot finalize multipart body: %s",
			err.Error())
	}

	if res, err = http.Post(testURL("/audio/upload"), mw.FormDataContentType(), &buf); err != nil {
		t.Fatalf("Cannot upload %q: %s",
			name,
			err.Error())
	}

	return res
} // func uploadFile(t *testing.T, name string, data []byte) *http.Response

func TestAudioEndpoints(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err error
		res *http.Response
		r   objects.Response
	)

	res = uploadFile(t, "ding.mp3", []byte("DING"))
	if r = getResponse(t, res); !r.Status {
		t.Fatalf("Uploading ding.mp3 failed: %s",
			r.Message)
	}

	// Uploading the same name again is an error.
	res = uploadFile(t, "ding.mp3", []byte("DING AGAIN"))
	if r = getResponse(t, res); res.StatusCode != http.StatusBadRequest {
		t.Errorf("Duplicate upload should yield a 400, got %d",
			res.StatusCode)
	}

	// So is shadowing a built-in file.
	res = uploadFile(t, common.DefaultAudioFile, []byte("FAKE BEEP"))
	if r = getResponse(t, res); res.StatusCode != http.StatusBadRequest {
		t.Errorf("Shadowing a built-in file should yield a 400, got %d",
			res.StatusCode)
	}

	var (
		body []byte
		inv  objects.AudioInventory
	)

	if res, err = http.Get(testURL("/audio/all")); err != nil {
		t.Fatalf("Cannot fetch audio inventory: %s",
			err.Error())
	} else if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read audio inventory: %s",
			err.Error())
	}
	res.Body.Close() // nolint: errcheck

	if err = ffjson.Unmarshal(body, &inv); err != nil {
		t.Fatalf("Cannot parse audio inventory: %s",
			err.Error())
	} else if len(inv.Uploaded) != 1 || inv.Uploaded[0] != "ding.mp3" {
		t.Errorf("Unexpected list of uploaded files: %v",
			inv.Uploaded)
	} else if len(inv.BuiltIn) != 1 || inv.BuiltIn[0] != common.DefaultAudioFile {
		t.Errorf("Unexpected list of built-in files: %v",
			inv.BuiltIn)
	}

	if res, err = http.Get(testURL("/audio/file/upload/ding.mp3")); err != nil {
		t.Fatalf("Cannot fetch uploaded file: %s",
			err.Error())
	} else if body, err = io.ReadAll(res.Body); err != nil {
		t.Fatalf("Cannot read uploaded file: %s",
			err.Error())
	} else if !bytes.Equal(body, []byte("DING")) {
		t.Errorf("Uploaded file came back wrong: %q",
			body)
	}
	res.Body.Close() // nolint: errcheck

	// Built-in files cannot be deleted.
	if res, err = http.Get(testURL(fmt.Sprintf("/audio/%s/delete", common.DefaultAudioFile))); err != nil {
		t.Fatalf("Cannot attempt delete: %s",
			err.Error())
	} else if res.StatusCode != http.StatusForbidden {
		t.Errorf("Deleting a built-in file should yield a 403, got %d",
			res.StatusCode)
	}
	res.Body.Close() // nolint: errcheck

	if res, err = http.Get(testURL("/audio/ding.mp3/delete")); err != nil {
		t.Fatalf("Cannot delete uploaded file: %s",
			err.Error())
	} else if r = getResponse(t, res); !r.Status {
		t.Fatalf("Deleting ding.mp3 failed: %s",
			r.Message)
	}

	if res, err = http.Get(testURL("/audio/ding.mp3/delete")); err != nil {
		t.Fatalf("Cannot re-delete uploaded file: %s",
			err.Error())
	} else if res.StatusCode != http.StatusNotFound {
		t.Errorf("Deleting a deleted file should yield a 404, got %d",
			res.StatusCode)
	}
	res.Body.Close() // nolint: errcheck
} // func TestAudioEndpoints(t *testing.T)

func TestSubscribe(t *testing.T) {
	if back == nil {
		t.SkipNow()
	}

	var (
		err  error
		conn *websocket.Conn
		wsu  = fmt.Sprintf("ws://%s/ws/subscribe", testAddr)
	)

	if conn, _, err = websocket.DefaultDialer.Dial(wsu, nil); err != nil {
		t.Fatalf("Cannot connect to %s: %s",
			wsu,
			err.Error())
	}
	defer conn.Close() // nolint: errcheck

	// Give the server a moment to attach the Subscription, then push a
	// batch through the Broker by hand.
	time.Sleep(time.Millisecond * 100)

	var batch = objects.DueBatch{
		Stamp: time.Now(),
		Reminders: []objects.DueReminder{
			{
				ID:        23,
				Title:     "Tea time",
				Timestamp: time.Now(),
				UUID:      common.GetUUID(),
				AudioPath: "/audio/file/builtin/" + common.DefaultAudioFile,
			},
		},
	}

	back.broker.Publish(&batch)

	var (
		msg  []byte
		recv objects.DueBatch
	)

	conn.SetReadDeadline(time.Now().Add(time.Second * 5)) // nolint: errcheck

	if _, msg, err = conn.ReadMessage(); err != nil {
		t.Fatalf("Did not receive the batch: %s",
			err.Error())
	} else if err = ffjson.Unmarshal(msg, &recv); err != nil {
		t.Fatalf("Cannot parse batch %q: %s",
			msg,
			err.Error())
	} else if recv.Size() != 1 {
		t.Fatalf("Unexpected batch size %d (expected 1)",
			recv.Size())
	} else if recv.Reminders[0].Title != "Tea time" {
		t.Errorf("Unexpected Reminder in batch: %q",
			recv.Reminders[0].Title)
	}
} // func TestSubscribe(t *testing.T)
