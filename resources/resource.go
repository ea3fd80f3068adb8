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

	"github.com/cockroachdb/field-eng-simkit/sim"
	"github.com/cockroachdb/field-eng-simkit/waitq"
)

// A request is a queued, not-yet-granted slot request.
type request struct {
	event      *sim.Event
	proc       *sim.Process
	prio       int
	enqueuedAt float64
}

// A Resource has a fixed number of interchangeable slots. The first
// capacity concurrently-holding processes are granted immediately;
// later requesters queue until a holder releases.
type Resource struct {
	env      *sim.Environment
	capacity int
	users    map[*sim.Process]struct{}
	waiters  waitq.Queue[*request]
	events   *Events
}

// NewResource constructs a Resource with the given number of slots.
// It returns ErrInvalidCapacity if capacity is not positive.
func NewResource(env *sim.Environment, capacity int, opts ...Option) (*Resource, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	cfg := applyOptions(opts)
	return &Resource{
		env:      env,
		capacity: capacity,
		users:    make(map[*sim.Process]struct{}),
		waiters:  waitq.New[*request](cfg.order),
		events:   cfg.events,
	}, nil
}

// Capacity returns the number of slots.
func (r *Resource) Capacity() int { return r.capacity }

// Count returns the number of slots currently held.
func (r *Resource) Count() int { return len(r.users) }

// Waiting returns the number of queued requests.
func (r *Resource) Waiting() int { return r.waiters.Len() }

// Request asks for a slot on behalf of the calling process. If a slot
// is free the returned event is already succeeded and the process
// holds the slot; otherwise the request is queued and the event
// resolves when a holder releases.
func (r *Resource) Request() *sim.Event {
	return r.request(0)
}

func (r *Resource) request(prio int) *sim.Event {
	proc := active(r.env)
	ev := r.env.NewEvent()
	if len(r.users) < r.capacity {
		r.users[proc] = struct{}{}
		ev.Succeed(nil)
		r.events.doImmediate(OpRequest, proc)
	} else {
		r.waiters.Push(&request{
			event:      ev,
			proc:       proc,
			prio:       prio,
			enqueuedAt: r.env.Now(),
		})
		r.events.doEnqueue(OpRequest, proc)
	}
	return ev
}

// Release gives up the calling process's slot and grants it to the
// next waiter, if any. If the process holds no slot but has a queued
// request, as after an interrupt while waiting, that request is
// removed instead. If the process is found in neither place, Release
// returns ErrInvalidRelease.
func (r *Resource) Release() error {
	proc := active(r.env)
	if _, ok := r.users[proc]; !ok {
		for _, req := range r.waiters.Items() {
			if req.proc == proc {
				_ = r.waiters.Remove(req)
				return nil
			}
		}
		return fmt.Errorf("%w by %s", ErrInvalidRelease, proc)
	}
	delete(r.users, proc)

	// Wake the next waiter whose process is still targeting its
	// request. This is the sole wakeup path.
	for {
		req, err := r.waiters.Pop()
		if err != nil {
			break
		}
		if req.proc.Target() != req.event {
			r.events.doStale(OpRequest, req.proc)
			continue
		}
		r.users[req.proc] = struct{}{}
		req.event.Succeed(nil)
		r.events.doGrant(OpRequest, req.proc, r.env.Now()-req.enqueuedAt)
		break
	}
	return nil
}

// A PriorityResource is a [Resource] whose queued requests are served
// in priority order instead of strict arrival order. Lower values are
// served first; arrival order breaks ties within a priority.
type PriorityResource struct {
	*Resource
}

// NewPriorityResource constructs a PriorityResource with the given
// number of slots.
func NewPriorityResource(env *sim.Environment, capacity int, opts ...Option) (*PriorityResource, error) {
	inner, err := NewResource(env, capacity, opts...)
	if err != nil {
		return nil, err
	}
	inner.waiters = waitq.NewPriority(func(a, b *request) bool {
		return a.prio < b.prio
	})
	return &PriorityResource{Resource: inner}, nil
}

// Request asks for a slot with the given priority; lower values are
// served first.
func (r *PriorityResource) Request(priority int) *sim.Event {
	return r.request(priority)
}
