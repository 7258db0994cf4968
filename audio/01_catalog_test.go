// /home/krylon/go/src/github.com/blicero/mnemosyne/audio/01_catalog_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 10. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-06 20:05:48 krylon>

package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/database"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/origin"
)

var (
	pool *database.Pool
	cat  *Catalog
)

func init() {
	var baseDir = filepath.Join(
		os.TempDir(),
		fmt.Sprintf("mnemosyne_audio_test_%d",
			time.Now().Unix()))

	if err := common.SetBaseDir(baseDir); err != nil {
		panic(err)
	}

	// The default sound normally ships with the application.
	var beep = filepath.Join(common.AudioBuiltinDir, common.DefaultAudioFile)
	if err := os.WriteFile(beep, []byte("BEEP"), 0644); err != nil {
		panic(err)
	}
} // func init()

func TestCatalogCreate(t *testing.T) {
	var err error

	if pool, err = database.NewPool(2); err != nil {
		t.Fatalf("Cannot create database pool: %s",
			err.Error())
	} else if cat, err = NewCatalog(pool); err != nil {
		cat = nil
		t.Fatalf("Cannot create Catalog: %s",
			err.Error())
	}
} // func TestCatalogCreate(t *testing.T)

func TestCatalogAdd(t *testing.T) {
	if cat == nil {
		t.SkipNow()
	}

	var (
		err   error
		asset *objects.AudioAsset
	)

	if asset, err = cat.Add("chime.mp3", []byte("CHIME")); err != nil {
		t.Fatalf("Cannot add audio file: %s",
			err.Error())
	} else if asset.Origin != origin.Uploaded {
		t.Errorf("Origin of uploaded file is %s",
			asset.Origin)
	}

	type failCase struct {
		name string
		want error
	}

	var cases = []failCase{
		{name: "", want: ErrBadName},
		{name: "../../etc/passwd", want: ErrBadName},
		{name: ".hidden.mp3", want: ErrBadName},
		{name: "chime.mp3", want: ErrDuplicate},
		{name: common.DefaultAudioFile, want: ErrDuplicate},
	}

	for _, c := range cases {
		if _, err = cat.Add(c.name, []byte("x")); !errors.Is(err, c.want) {
			t.Errorf("Adding %q should fail with %q, got %v",
				c.name,
				c.want,
				err)
		}
	}
} // func TestCatalogAdd(t *testing.T)

func TestCatalogList(t *testing.T) {
	if cat == nil {
		t.SkipNow()
	}

	var (
		err error
		inv *objects.AudioInventory
	)

	if inv, err = cat.List(); err != nil {
		t.Fatalf("Cannot list audio files: %s",
			err.Error())
	} else if len(inv.BuiltIn) != 1 || inv.BuiltIn[0] != common.DefaultAudioFile {
		t.Errorf("Unexpected built-in inventory: %v",
			inv.BuiltIn)
	} else if len(inv.Uploaded) != 1 || inv.Uploaded[0] != "chime.mp3" {
		t.Errorf("Unexpected uploaded inventory: %v",
			inv.Uploaded)
	}
} // func TestCatalogList(t *testing.T)

func TestCatalogResolve(t *testing.T) {
	if cat == nil {
		t.SkipNow()
	}

	var defaultPath = fmt.Sprintf("/audio/file/builtin/%s",
		common.DefaultAudioFile)

	type testCase struct {
		ref  objects.AudioRef
		path string
	}

	var cases = []testCase{
		{ref: objects.AudioRef{}, path: defaultPath},
		{
			ref:  objects.AudioRef{File: "chime.mp3", Origin: origin.Uploaded},
			path: "/audio/file/upload/chime.mp3",
		},
		{
			ref:  objects.AudioRef{File: common.DefaultAudioFile, Origin: origin.BuiltIn},
			path: defaultPath,
		},
		// A dangling reference falls back to the default sound.
		{
			ref:  objects.AudioRef{File: "gone.mp3", Origin: origin.Uploaded},
			path: defaultPath,
		},
	}

	for _, c := range cases {
		if path := cat.Resolve(c.ref); path != c.path {
			t.Errorf("AudioRef %v resolved to %q (expected %q)",
				c.ref,
				path,
				c.path)
		}
	}
} // func TestCatalogResolve(t *testing.T)

func TestCatalogDelete(t *testing.T) {
	if cat == nil {
		t.SkipNow()
	}

	var err error

	if err = cat.Delete(common.DefaultAudioFile); !errors.Is(err, ErrForbidden) {
		t.Errorf("Deleting a built-in file should be forbidden, got %v",
			err)
	}

	if err = cat.Delete("no-such-file.mp3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleting an unknown file should fail with not-found, got %v",
			err)
	}

	if err = cat.Delete("chime.mp3"); err != nil {
		t.Fatalf("Cannot delete uploaded file: %s",
			err.Error())
	}

	// The file is gone now, deleting again must fail.
	if err = cat.Delete("chime.mp3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Deleting a file twice should fail with not-found, got %v",
			err)
	}
} // func TestCatalogDelete(t *testing.T)
