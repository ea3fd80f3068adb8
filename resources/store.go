// Copyright 2025 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"fmt"
	"math"

	"github.com/cockroachdb/field-eng-simkit/sim"
	"github.com/cockroachdb/field-eng-simkit/waitq"
)

// Unlimited is a Store capacity that never blocks puts.
const Unlimited = math.MaxInt

// A storePut is a queued put of one item.
type storePut[T any] struct {
	event      *sim.Event
	proc       *sim.Process
	item       T
	enqueuedAt float64
}

// A storeGet is a queued get. A nil filter matches any item; only
// FilterStore gets carry a non-nil filter.
type storeGet[T any] struct {
	event      *sim.Event
	proc       *sim.Process
	filter     func(T) bool
	enqueuedAt float64
}

// A Store holds up to capacity discrete items in insertion order.
// Puts and gets have independent wait queues; gets receive the oldest
// buffered item.
type Store[T any] struct {
	env      *sim.Environment
	capacity int
	items    []T
	putters  waitq.Queue[*storePut[T]]
	getters  waitq.Queue[*storeGet[T]]

	// filtered selects the FilterStore resolution pass for the get
	// queue: a full re-scan instead of head-of-line order.
	filtered bool
	events   *Events
}

// NewStore constructs an empty Store. Use [Unlimited] for a store that
// never blocks puts. It returns ErrInvalidCapacity if capacity is not
// positive.
func NewStore[T any](env *sim.Environment, capacity int, opts ...Option) (*Store[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	cfg := applyOptions(opts)
	return &Store[T]{
		env:      env,
		capacity: capacity,
		putters:  waitq.New[*storePut[T]](cfg.order),
		getters:  waitq.New[*storeGet[T]](cfg.order),
		events:   cfg.events,
	}, nil
}

// Capacity returns the maximum number of buffered items.
func (s *Store[T]) Capacity() int { return s.capacity }

// Count returns the number of buffered items.
func (s *Store[T]) Count() int { return len(s.items) }

// Items returns a snapshot of the buffered items in insertion order.
func (s *Store[T]) Items() []T { return append([]T(nil), s.items...) }

// Put adds item to the store. If the buffer has room the returned
// event is already succeeded and queued gets are granted while items
// remain; otherwise the put is queued until a get makes room.
func (s *Store[T]) Put(item T) *sim.Event {
	proc := active(s.env)
	ev := s.env.NewEvent()
	if len(s.items) < s.capacity {
		s.items = append(s.items, item)
		s.drainGetters()
		ev.Succeed(nil)
		s.events.doImmediate(OpPut, proc)
	} else {
		s.putters.Push(&storePut[T]{
			event:      ev,
			proc:       proc,
			item:       item,
			enqueuedAt: s.env.Now(),
		})
		s.events.doEnqueue(OpPut, proc)
	}
	return ev
}

// Get removes the oldest buffered item; the returned event succeeds
// with it. If the buffer is empty the get is queued until a put
// arrives. A get that frees buffer room grants queued puts in queue
// order.
func (s *Store[T]) Get() *sim.Event {
	proc := active(s.env)
	ev := s.env.NewEvent()
	if len(s.items) > 0 {
		item := s.items[0]
		s.items = s.items[1:]
		s.drainPutters()
		ev.Succeed(item)
		s.events.doImmediate(OpGet, proc)
	} else {
		s.getters.Push(&storeGet[T]{
			event:      ev,
			proc:       proc,
			enqueuedAt: s.env.Now(),
		})
		s.events.doEnqueue(OpGet, proc)
	}
	return ev
}

// drainPutters grants queued puts, in queue order, while the buffer
// has room, appending their items. Stale entries are discarded; the
// loop stops at the first live entry once the buffer is full.
func (s *Store[T]) drainPutters() {
	for {
		req, err := s.putters.Peek()
		if err != nil {
			return
		}
		if req.proc.Target() != req.event {
			_, _ = s.putters.Pop()
			s.events.doStale(OpPut, req.proc)
			continue
		}
		if len(s.items) >= s.capacity {
			return
		}
		_, _ = s.putters.Pop()
		s.items = append(s.items, req.item)
		req.event.Succeed(nil)
		s.events.doGrant(OpPut, req.proc, s.env.Now()-req.enqueuedAt)
	}
}

// drainGetters grants queued gets while items remain. Plain stores
// grant strictly in queue order; filtered stores re-scan the whole
// queue against the buffer.
func (s *Store[T]) drainGetters() {
	if s.filtered {
		s.drainFiltered()
		return
	}
	for {
		req, err := s.getters.Peek()
		if err != nil {
			return
		}
		if req.proc.Target() != req.event {
			_, _ = s.getters.Pop()
			s.events.doStale(OpGet, req.proc)
			continue
		}
		if len(s.items) == 0 {
			return
		}
		_, _ = s.getters.Pop()
		item := s.items[0]
		s.items = s.items[1:]
		req.event.Succeed(item)
		s.events.doGrant(OpGet, req.proc, s.env.Now()-req.enqueuedAt)
	}
}

// drainFiltered makes one in-order pass over the whole get queue,
// granting every entry whose filter matches a buffered item. The
// buffer only shrinks during the pass, so one pass reaches the fixed
// point: anything still queued afterwards matches nothing buffered.
func (s *Store[T]) drainFiltered() {
	for _, req := range s.getters.Items() {
		if req.proc.Target() != req.event {
			_ = s.getters.Remove(req)
			s.events.doStale(OpGet, req.proc)
			continue
		}
		idx := s.matchIndex(req.filter)
		if idx < 0 {
			continue
		}
		_ = s.getters.Remove(req)
		item := s.items[idx]
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		req.event.Succeed(item)
		s.events.doGrant(OpGet, req.proc, s.env.Now()-req.enqueuedAt)
	}
}

// matchIndex returns the index of the earliest-inserted buffered item
// the filter accepts, or -1. A nil filter accepts any item.
func (s *Store[T]) matchIndex(filter func(T) bool) int {
	for idx, item := range s.items {
		if filter == nil || filter(item) {
			return idx
		}
	}
	return -1
}
