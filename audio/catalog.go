// /home/krylon/go/src/github.com/blicero/mnemosyne/audio/catalog.go
// -*- mode: go; coding: utf-8; -*-
// Created on 09. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 19:48:25 krylon>

// Package audio manages the sound files a Reminder can play when it
// goes off. Built-in sounds live in a read-only directory that ships
// with the application; uploaded sounds are stored on disk with their
// metadata kept in the database.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/blicero/krylib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/origin"
)

// ErrBadName indicates a file name that is empty or tries to escape
// the audio directory.
var ErrBadName = errors.New("File name is empty or not acceptable")

// ErrDuplicate indicates that an audio file by the given name exists
// already.
var ErrDuplicate = errors.New("An audio file by that name already exists")

// ErrForbidden indicates an attempt to delete a built-in audio file.
var ErrForbidden = errors.New("Built-in audio files cannot be deleted")

// ErrNotFound indicates that no audio file by the given name exists.
var ErrNotFound = errors.New("No audio file by that name exists")

// Catalog keeps track of the audio files known to the application.
type Catalog struct {
	log        *log.Logger
	pool       *database.Pool
	builtinDir string
	uploadDir  string
}

// NewCatalog creates a Catalog using the application's audio
// directories.
func NewCatalog(pool *database.Pool) (*Catalog, error) {
	var (
		err error
		cat = &Catalog{
			pool:       pool,
			builtinDir: common.AudioBuiltinDir,
			uploadDir:  common.AudioUploadDir,
		}
	)

	if cat.log, err = common.GetLogger(logdomain.Catalog); err != nil {
		return nil, err
	}

	return cat, nil
} // func NewCatalog(pool *database.Pool) (*Catalog, error)

// ListBuiltin returns the names of the built-in audio files.
func (c *Catalog) ListBuiltin() ([]string, error) {
	var (
		err     error
		entries []os.DirEntry
	)

	if entries, err = os.ReadDir(c.builtinDir); err != nil {
		c.log.Printf("[ERROR] Cannot read directory %s: %s\n",
			c.builtinDir,
			err.Error())
		return nil, err
	}

	var files = make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}

	return files, nil
} // func (c *Catalog) ListBuiltin() ([]string, error)

// ListUploaded returns the names of the uploaded audio files.
func (c *Catalog) ListUploaded() ([]string, error) {
	var (
		err    error
		db     *database.Database
		assets []objects.AudioAsset
	)

	db = c.pool.Get()
	defer c.pool.Put(db)

	if assets, err = db.AudioGetAll(); err != nil {
		c.log.Printf("[ERROR] Cannot fetch audio assets from database: %s\n",
			err.Error())
		return nil, err
	}

	var files = make([]string, len(assets))

	for i, a := range assets {
		files[i] = a.File
	}

	return files, nil
} // func (c *Catalog) ListUploaded() ([]string, error)

// List returns the full inventory of audio files, built-in and
// uploaded.
func (c *Catalog) List() (*objects.AudioInventory, error) {
	var (
		err error
		inv objects.AudioInventory
	)

	if inv.BuiltIn, err = c.ListBuiltin(); err != nil {
		return nil, err
	} else if inv.Uploaded, err = c.ListUploaded(); err != nil {
		return nil, err
	}

	return &inv, nil
} // func (c *Catalog) List() (*objects.AudioInventory, error)

// Add stores an uploaded audio file. The name must be a plain file
// name and must not collide with an existing file, built-in or
// uploaded. The bytes are on disk and the metadata is in the database
// by the time Add returns.
func (c *Catalog) Add(filename string, data []byte) (*objects.AudioAsset, error) {
	var (
		err   error
		db    *database.Database
		old   *objects.AudioAsset
		exist bool
	)

	if !nameIsSafe(filename) {
		c.log.Printf("[ERROR] Refusing to store audio file %q\n",
			filename)
		return nil, ErrBadName
	}

	db = c.pool.Get()
	defer c.pool.Put(db)

	if exist, err = krylib.Fexists(filepath.Join(c.builtinDir, filename)); err != nil {
		c.log.Printf("[ERROR] Cannot check for built-in file %q: %s\n",
			filename,
			err.Error())
		return nil, err
	} else if exist {
		c.log.Printf("[ERROR] %q collides with a built-in audio file\n",
			filename)
		return nil, ErrDuplicate
	} else if old, err = db.AudioGetByFile(filename); err != nil {
		return nil, err
	} else if old != nil {
		c.log.Printf("[ERROR] An uploaded audio file named %q exists already\n",
			filename)
		return nil, ErrDuplicate
	}

	var path = filepath.Join(c.uploadDir, filename)

	if err = os.WriteFile(path, data, 0644); err != nil {
		c.log.Printf("[ERROR] Cannot write audio file %s: %s\n",
			path,
			err.Error())
		return nil, err
	}

	var asset = objects.AudioAsset{File: filename}

	if err = db.AudioAdd(&asset); err != nil {
		// Get rid of the file again, or a later upload by the same
		// name would fail.
		if rmErr := os.Remove(path); rmErr != nil {
			c.log.Printf("[ERROR] Cannot remove orphaned audio file %s: %s\n",
				path,
				rmErr.Error())
		}
		return nil, err
	}

	c.log.Printf("[INFO] Stored uploaded audio file %q (%d bytes)\n",
		filename,
		len(data))

	return &asset, nil
} // func (c *Catalog) Add(filename string, data []byte) (*objects.AudioAsset, error)

// Delete removes an uploaded audio file. Built-in files cannot be
// deleted. Reminders referencing the deleted file keep their
// reference; it resolves to the default sound from now on.
func (c *Catalog) Delete(filename string) error {
	var (
		err   error
		db    *database.Database
		asset *objects.AudioAsset
		exist bool
	)

	if !nameIsSafe(filename) {
		return ErrBadName
	}

	if exist, err = krylib.Fexists(filepath.Join(c.builtinDir, filename)); err != nil {
		c.log.Printf("[ERROR] Cannot check for built-in file %q: %s\n",
			filename,
			err.Error())
		return err
	} else if exist {
		c.log.Printf("[INFO] Refusing to delete built-in audio file %q\n",
			filename)
		return ErrForbidden
	}

	db = c.pool.Get()
	defer c.pool.Put(db)

	if asset, err = db.AudioGetByFile(filename); err != nil {
		return err
	} else if asset == nil {
		c.log.Printf("[DEBUG] Uploaded audio file %q does not exist\n",
			filename)
		return ErrNotFound
	} else if err = db.AudioDelete(asset); err != nil {
		return err
	}

	var path = filepath.Join(c.uploadDir, filename)

	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.Printf("[ERROR] Cannot remove audio file %s: %s\n",
			path,
			err.Error())
		return err
	}

	c.log.Printf("[INFO] Deleted uploaded audio file %q\n",
		filename)

	return nil
} // func (c *Catalog) Delete(filename string) error

// Resolve turns an AudioRef into the URL path a client fetches the
// sound from. References that are unset, or that point to a file that
// no longer exists, resolve to the default sound instead of failing.
func (c *Catalog) Resolve(ref objects.AudioRef) string {
	if ref.IsZero() {
		return c.defaultPath()
	}

	var (
		err   error
		exist bool
	)

	switch ref.Origin {
	case origin.BuiltIn:
		exist, err = krylib.Fexists(filepath.Join(c.builtinDir, ref.File))
	case origin.Uploaded:
		exist, err = krylib.Fexists(filepath.Join(c.uploadDir, ref.File))
	default:
		return c.defaultPath()
	}

	if err != nil {
		c.log.Printf("[ERROR] Cannot check for audio file %q: %s\n",
			ref.File,
			err.Error())
		return c.defaultPath()
	} else if !exist {
		c.log.Printf("[DEBUG] Audio file %q (%s) is gone, falling back to default\n",
			ref.File,
			ref.Origin)
		return c.defaultPath()
	}

	return fmt.Sprintf("/audio/file/%s/%s",
		originSlug(ref.Origin),
		ref.File)
} // func (c *Catalog) Resolve(ref objects.AudioRef) string

// FilePath returns the location on disk of the given audio file, for
// handing its bytes to a client.
func (c *Catalog) FilePath(o origin.Origin, filename string) (string, error) {
	if !nameIsSafe(filename) {
		return "", ErrBadName
	}

	var dir string

	switch o {
	case origin.BuiltIn:
		dir = c.builtinDir
	case origin.Uploaded:
		dir = c.uploadDir
	default:
		return "", ErrNotFound
	}

	var (
		err   error
		exist bool
		path  = filepath.Join(dir, filename)
	)

	if exist, err = krylib.Fexists(path); err != nil {
		return "", err
	} else if !exist {
		return "", ErrNotFound
	}

	return path, nil
} // func (c *Catalog) FilePath(o origin.Origin, filename string) (string, error)

func (c *Catalog) defaultPath() string {
	return fmt.Sprintf("/audio/file/builtin/%s",
		common.DefaultAudioFile)
} // func (c *Catalog) defaultPath() string

func originSlug(o origin.Origin) string {
	if o == origin.Uploaded {
		return "upload"
	}

	return "builtin"
} // func originSlug(o origin.Origin) string

func nameIsSafe(filename string) bool {
	if filename == "" {
		return false
	} else if filename != filepath.Base(filename) {
		return false
	} else if strings.HasPrefix(filename, ".") {
		return false
	}

	return true
} // func nameIsSafe(filename string) bool
