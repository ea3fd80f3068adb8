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

// Unbounded is a Container capacity that never blocks puts.
var Unbounded = math.Inf(1)

// A bulkRequest is a queued put or get of some amount.
type bulkRequest struct {
	event      *sim.Event
	proc       *sim.Process
	amount     float64
	enqueuedAt float64
}

// A Container models a scalar quantity between 0 and a capacity, like
// fuel in a tank. Puts and gets have independent wait queues: a put
// can unblock queued gets and vice versa.
type Container struct {
	env      *sim.Environment
	capacity float64
	level    float64
	putters  waitq.Queue[*bulkRequest]
	getters  waitq.Queue[*bulkRequest]
	events   *Events
}

// NewContainer constructs a Container holding init of capacity. Use
// [Unbounded] for a container that never blocks puts. It returns
// ErrInvalidCapacity if capacity is not positive, and
// ErrInvalidInitialLevel if init is negative or exceeds capacity.
func NewContainer(env *sim.Environment, capacity, init float64, opts ...Option) (*Container, error) {
	if capacity <= 0 || math.IsNaN(capacity) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCapacity, capacity)
	}
	if init < 0 || init > capacity || math.IsNaN(init) {
		return nil, fmt.Errorf("%w: %v of %v", ErrInvalidInitialLevel, init, capacity)
	}
	cfg := applyOptions(opts)
	return &Container{
		env:      env,
		capacity: capacity,
		level:    init,
		putters:  waitq.New[*bulkRequest](cfg.order),
		getters:  waitq.New[*bulkRequest](cfg.order),
		events:   cfg.events,
	}, nil
}

// Capacity returns the container's maximum level.
func (c *Container) Capacity() float64 { return c.capacity }

// Level returns the current level, between 0 and the capacity.
func (c *Container) Level() float64 { return c.level }

// Put adds amount to the container. If the new level would not exceed
// the capacity the returned event is already succeeded and any queued
// gets the raised level can satisfy are granted; otherwise the put is
// queued. It returns ErrInvalidAmount, before any state change, if
// amount is not positive.
func (c *Container) Put(amount float64) (*sim.Event, error) {
	if amount <= 0 || math.IsNaN(amount) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	proc := active(c.env)
	ev := c.env.NewEvent()
	if c.level+amount <= c.capacity {
		c.level += amount
		c.drainGetters()
		ev.Succeed(nil)
		c.events.doImmediate(OpPut, proc)
	} else {
		c.putters.Push(&bulkRequest{
			event:      ev,
			proc:       proc,
			amount:     amount,
			enqueuedAt: c.env.Now(),
		})
		c.events.doEnqueue(OpPut, proc)
	}
	return ev, nil
}

// Get removes amount from the container. If the level covers it the
// returned event is already succeeded and any queued puts the lowered
// level can accommodate are granted; otherwise the get is queued. It
// returns ErrInvalidAmount, before any state change, if amount is not
// positive.
func (c *Container) Get(amount float64) (*sim.Event, error) {
	if amount <= 0 || math.IsNaN(amount) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	proc := active(c.env)
	ev := c.env.NewEvent()
	if c.level >= amount {
		c.level -= amount
		c.drainPutters()
		ev.Succeed(nil)
		c.events.doImmediate(OpGet, proc)
	} else {
		c.getters.Push(&bulkRequest{
			event:      ev,
			proc:       proc,
			amount:     amount,
			enqueuedAt: c.env.Now(),
		})
		c.events.doEnqueue(OpGet, proc)
	}
	return ev, nil
}

// drainGetters grants queued gets, in queue order, while the level
// covers them. Stale entries are discarded; the loop stops at the
// first live entry it cannot satisfy, so a later, smaller get is
// never granted ahead of the head.
func (c *Container) drainGetters() {
	for {
		req, err := c.getters.Peek()
		if err != nil {
			return
		}
		if req.proc.Target() != req.event {
			_, _ = c.getters.Pop()
			c.events.doStale(OpGet, req.proc)
			continue
		}
		if c.level < req.amount {
			return
		}
		_, _ = c.getters.Pop()
		c.level -= req.amount
		req.event.Succeed(nil)
		c.events.doGrant(OpGet, req.proc, c.env.Now()-req.enqueuedAt)
	}
}

// drainPutters is the mirror of drainGetters for queued puts.
func (c *Container) drainPutters() {
	for {
		req, err := c.putters.Peek()
		if err != nil {
			return
		}
		if req.proc.Target() != req.event {
			_, _ = c.putters.Pop()
			c.events.doStale(OpPut, req.proc)
			continue
		}
		if c.level+req.amount > c.capacity {
			return
		}
		_, _ = c.putters.Pop()
		c.level += req.amount
		req.event.Succeed(nil)
		c.events.doGrant(OpPut, req.proc, c.env.Now()-req.enqueuedAt)
	}
}
