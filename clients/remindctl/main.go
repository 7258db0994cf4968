// /home/krylon/go/src/github.com/blicero/mnemosyne/clients/remindctl/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 24. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 23:12:40 krylon>

// remindctl is a simple command line client for the Mnemosyne backend.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/blicero/mnemosyne/clients/clientlib"
	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/objects"
	"github.com/blicero/mnemosyne/objects/origin"
)

func main() {
	var (
		err                    error
		client                 *clientlib.Client
		srv, title, body, due  string
		audioFile, audioOrigin string
	)

	flag.StringVar(
		&srv,
		"server",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the backend")
	flag.StringVar(&title, "title", "", "Title of the Reminder to add")
	flag.StringVar(&body, "body", "", "Description of the Reminder to add")
	flag.StringVar(&due, "time", "", "Due time of the Reminder to add (RFC3339)")
	flag.StringVar(&audioFile, "audio", "", "Audio file to play when the Reminder fires")
	flag.StringVar(&audioOrigin, "origin", "upload", "Where the audio file lives (builtin or upload)")

	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	if client, err = clientlib.NewClient(srv); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create client: %s\n",
			err.Error())
		os.Exit(1)
	}

	switch cmd := flag.Arg(0); cmd {
	case "add":
		cmdAdd(client, title, body, due, audioFile, audioOrigin)
	case "list":
		cmdList(client, false)
	case "pending":
		cmdList(client, true)
	case "del":
		cmdDelete(client, flag.Args()[1:])
	case "audio":
		cmdAudio(client)
	case "watch":
		cmdWatch(client)
	default:
		fmt.Fprintf(
			os.Stderr,
			"Unknown command %q\n",
			cmd)
		usage()
	}
}

func usage() {
	fmt.Fprintf(
		os.Stderr,
		"Usage: %s [options] add|list|pending|del|audio|watch\n",
		os.Args[0])
	flag.PrintDefaults()
	os.Exit(1)
} // func usage()

func cmdAdd(client *clientlib.Client, title, body, due, audioFile, audioOrigin string) {
	var (
		err   error
		stamp time.Time
		rem   objects.Reminder
	)

	if due == "" {
		stamp = time.Now()
	} else if stamp, err = time.Parse(time.RFC3339, due); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot parse time stamp %q: %s\n",
			due,
			err.Error())
		os.Exit(1)
	}

	rem = objects.Reminder{
		Title:       title,
		Description: body,
		Timestamp:   stamp,
	}

	if audioFile != "" {
		rem.Audio = objects.AudioRef{
			File:   audioFile,
			Origin: origin.FromString(audioOrigin),
		}
	}

	if err = client.ReminderAdd(&rem); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot add Reminder: %s\n",
			err.Error())
		os.Exit(1)
	}

	fmt.Printf("Reminder was accepted as %s\n",
		rem.UUID)
} // func cmdAdd(client *clientlib.Client, title, body, due, audioFile, audioOrigin string)

func cmdList(client *clientlib.Client, pendingOnly bool) {
	var (
		err       error
		reminders []objects.Reminder
	)

	if pendingOnly {
		reminders, err = client.ReminderGetPending()
	} else {
		reminders, err = client.ReminderGetAll()
	}

	if err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot fetch Reminders: %s\n",
			err.Error())
		os.Exit(1)
	}

	for _, r := range reminders {
		var status = " "
		if r.Fired {
			status = "*"
		}

		fmt.Printf("%s %4d  %s  %s\n",
			status,
			r.ID,
			r.Timestamp.Format(common.TimestampFormat),
			r.Title)
	}
} // func cmdList(client *clientlib.Client, pendingOnly bool)

func cmdDelete(client *clientlib.Client, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "del needs at least one Reminder ID")
		os.Exit(1)
	}

	for _, arg := range args {
		var (
			err error
			id  int64
		)

		if id, err = strconv.ParseInt(arg, 10, 64); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot parse ID %q: %s\n",
				arg,
				err.Error())
			os.Exit(1)
		} else if err = client.ReminderDelete(id); err != nil {
			fmt.Fprintf(
				os.Stderr,
				"Cannot delete Reminder %d: %s\n",
				id,
				err.Error())
			os.Exit(1)
		}

		fmt.Printf("Reminder %d was deleted\n", id)
	}
} // func cmdDelete(client *clientlib.Client, args []string)

func cmdAudio(client *clientlib.Client) {
	var (
		err error
		inv *objects.AudioInventory
	)

	if inv, err = client.AudioList(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot fetch audio inventory: %s\n",
			err.Error())
		os.Exit(1)
	}

	fmt.Println("Built-in:")
	for _, f := range inv.BuiltIn {
		fmt.Printf("\t%s\n", f)
	}

	fmt.Println("Uploaded:")
	for _, f := range inv.Uploaded {
		fmt.Printf("\t%s\n", f)
	}
} // func cmdAudio(client *clientlib.Client)

func cmdWatch(client *clientlib.Client) {
	var (
		err   error
		queue <-chan objects.DueBatch
	)

	if queue, err = client.Subscribe(); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot subscribe to backend: %s\n",
			err.Error())
		os.Exit(1)
	}

	for batch := range queue {
		for _, r := range batch.Reminders {
			fmt.Printf("%s  %s - %s (%s)\n",
				batch.Stamp.Format(common.TimestampFormat),
				r.Title,
				r.Description,
				r.AudioPath)
		}
	}

	fmt.Println("Connection to backend is gone, quitting.")
} // func cmdWatch(client *clientlib.Client)
