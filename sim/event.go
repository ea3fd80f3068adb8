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

package sim

// State describes the resolution state of an [Event].
type State int

const (
	// Pending events have not been resolved.
	Pending State = iota
	// Succeeded events carry a value.
	Succeeded
	// Failed events carry an error.
	Failed
)

// An Event is a single-resolution outcome cell. It is created pending
// and is resolved at most once, by [Event.Succeed] or [Event.Fail].
// Resolving an event schedules it for dispatch at the current simulated
// time; dispatch delivers the outcome to every process waiting on it.
//
// Events are created by [Environment.NewEvent] and may only be used
// with the environment that created them.
type Event struct {
	env        *Environment
	state      State
	value      any
	err        error
	dispatched bool
	waiters    []*Process
}

// NewEvent returns a new pending event.
func (env *Environment) NewEvent() *Event {
	return &Event{env: env}
}

// Succeed resolves the event with the given value, which may be nil,
// and schedules it for dispatch at the current simulated time. The
// event is returned to allow chaining. Succeed panics if the event has
// already been resolved.
func (e *Event) Succeed(value any) *Event {
	if e.state != Pending {
		panic("sim: event resolved twice")
	}
	e.state = Succeeded
	e.value = value
	e.env.scheduleAt(e, e.env.now)
	return e
}

// Fail resolves the event with the given error and schedules it for
// dispatch at the current simulated time. The event is returned to
// allow chaining. Fail panics if err is nil or if the event has
// already been resolved.
func (e *Event) Fail(err error) *Event {
	if err == nil {
		panic("sim: Fail requires a non-nil error")
	}
	if e.state != Pending {
		panic("sim: event resolved twice")
	}
	e.state = Failed
	e.err = err
	e.env.scheduleAt(e, e.env.now)
	return e
}

// State returns the event's resolution state.
func (e *Event) State() State { return e.state }

// Pending returns true if the event has not been resolved.
func (e *Event) Pending() bool { return e.state == Pending }

// Succeeded returns true if the event was resolved with a value.
func (e *Event) Succeeded() bool { return e.state == Succeeded }

// Failed returns true if the event was resolved with an error.
func (e *Event) Failed() bool { return e.state == Failed }

// Value returns the value the event succeeded with, or nil.
func (e *Event) Value() any { return e.value }

// Err returns the error the event failed with, or nil.
func (e *Event) Err() error { return e.err }
