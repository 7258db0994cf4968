// /home/krylon/go/src/github.com/blicero/mnemosyne/broadcast/broker.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 01. 2024 by Benjamin Walkenhorst
// (c) 2024 Benjamin Walkenhorst
// Time-stamp: <2024-02-19 20:12:40 krylon>

// Package broadcast fans out DueBatches to everybody who is listening
// at that moment. It is a live channel, not a queue: nothing is stored,
// nothing is replayed.
package broadcast

import (
	"log"
	"sync"

	"github.com/blicero/mnemosyne/common"
	"github.com/blicero/mnemosyne/logdomain"
	"github.com/blicero/mnemosyne/objects"
)

// queueDepth is the number of batches a Subscription can buffer before
// further batches are dropped for that subscriber.
const queueDepth = 8

// Subscription is the handle a subscriber reads batches from.
// Queue is closed when the Subscription is cancelled.
type Subscription struct {
	id    int64
	Queue chan objects.DueBatch
}

// ID returns the Subscription's id.
func (s *Subscription) ID() int64 {
	return s.id
} // func (s *Subscription) ID() int64

// Broker distributes DueBatches to the current set of subscribers.
type Broker struct {
	log  *log.Logger
	lock sync.RWMutex
	subs map[int64]*Subscription
	cnt  int64
}

// New creates a Broker.
func New() (*Broker, error) {
	var (
		err error
		b   = &Broker{
			subs: make(map[int64]*Subscription),
		}
	)

	if b.log, err = common.GetLogger(logdomain.Broker); err != nil {
		return nil, err
	}

	return b, nil
} // func New() (*Broker, error)

// Subscribe registers a new subscriber and returns its handle.
// A subscriber only sees batches published after it has subscribed;
// Subscribe waits for an in-flight Publish to finish, so the batch
// being published right now is not delivered to the newcomer either.
func (b *Broker) Subscribe() *Subscription {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.cnt++
	var sub = &Subscription{
		id:    b.cnt,
		Queue: make(chan objects.DueBatch, queueDepth),
	}

	b.subs[sub.id] = sub

	b.log.Printf("[DEBUG] Subscriber #%d registered (%d total)\n",
		sub.id,
		len(b.subs))

	return sub
} // func (b *Broker) Subscribe() *Subscription

// Unsubscribe removes a subscriber and closes its Queue.
// Calling it twice, or with a handle the Broker has never seen, is
// harmless.
func (b *Broker) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	if _, ok := b.subs[sub.id]; !ok {
		return
	}

	delete(b.subs, sub.id)
	close(sub.Queue)

	b.log.Printf("[DEBUG] Subscriber #%d unregistered (%d left)\n",
		sub.id,
		len(b.subs))
} // func (b *Broker) Unsubscribe(sub *Subscription)

// Publish hands the batch to every current subscriber. A subscriber
// that cannot keep up misses the batch; that is never an error for
// the caller. Batches from a single caller arrive at each subscriber
// in the order they were published.
func (b *Broker) Publish(batch *objects.DueBatch) {
	b.lock.RLock()
	defer b.lock.RUnlock()

	b.log.Printf("[DEBUG] Publish batch of %d Reminders to %d subscribers\n",
		batch.Size(),
		len(b.subs))

	for _, sub := range b.subs {
		select {
		case sub.Queue <- *batch:
			// Delivered.
		default:
			b.log.Printf("[WARNING] Subscriber #%d is not keeping up, batch dropped\n",
				sub.id)
		}
	}
} // func (b *Broker) Publish(batch *objects.DueBatch)

// Count returns the number of current subscribers.
func (b *Broker) Count() int {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return len(b.subs)
} // func (b *Broker) Count() int
