// /home/krylon/go/src/github.com/blicero/mnemosyne/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 18:44:10 krylon>

// Package common provides constants and utility functions used
// throughout the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/blicero/mnemosyne/logdomain"
	"github.com/hashicorp/logutils"
	"github.com/odeke-em/go-uuid"
)

// BuildStamp is the time at which the application was built.
var BuildStamp = "2024-02-19 18:50:31"

// Application-wide constants.
const (
	AppName                  = "Mnemosyne"
	Version                  = "0.4.2"
	Debug                    = true
	TimestampFormat          = "2006-01-02 15:04:05"
	TimestampFormatMinute    = "2006-01-02 15:04"
	TimestampFormatTime      = "15:04:05"
	TimestampFormatSubSecond = "2006-01-02 15:04:05.0000 MST"
	DefaultPort              = 5202
	DefaultAudioFile         = "default_beep.mp3"
)

// LogLevels are the names of the log levels supported by the logger.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARNING",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// PackageLevels defines minimum log levels per package.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// Paths of the directories and files used by the application.
var (
	BaseDir         = filepath.Join(os.Getenv("HOME"), ".mnemosyne.d")
	LogPath         = filepath.Join(BaseDir, "mnemosyne.log")
	DbPath          = filepath.Join(BaseDir, "mnemosyne.db")
	AudioBuiltinDir = filepath.Join(BaseDir, "audio", "builtin")
	AudioUploadDir  = filepath.Join(BaseDir, "audio", "upload")
)

// MinLogLevel is the minimum level a log message must have to
// actually get logged.
var MinLogLevel logutils.LogLevel = "TRACE"

func init() {
	if !Debug {
		MinLogLevel = "INFO"
	}
} // func init()

// SetBaseDir sets the BaseDir and related paths and creates the
// directories if they do not exist already.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, "mnemosyne.log")
	DbPath = filepath.Join(BaseDir, "mnemosyne.db")
	AudioBuiltinDir = filepath.Join(BaseDir, "audio", "builtin")
	AudioUploadDir = filepath.Join(BaseDir, "audio", "upload")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp creates the directories the application expects to find.
func InitApp() error {
	var (
		err  error
		dirs = []string{
			BaseDir,
			AudioBuiltinDir,
			AudioUploadDir,
		}
	)

	for _, dir := range dirs {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("Error creating directory %s: %s",
				dir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetLogger tries to create a Logger for the given log domain.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err error
		fh  *os.File
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	var name = fmt.Sprintf("%s.%s ",
		AppName,
		dom)

	if fh, err = os.OpenFile(LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stdout, fh)

	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: PackageLevels[dom],
		Writer:   writer,
	}

	var logger = log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile)

	return logger, nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a fresh UUID.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string

// TimeEqual returns true if the two timestamps are less than one
// second apart.
func TimeEqual(t1, t2 time.Time) bool {
	var delta = t1.Sub(t2)

	if delta < 0 {
		delta = -delta
	}

	return delta < time.Second
} // func TimeEqual(t1, t2 time.Time) bool
