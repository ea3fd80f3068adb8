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

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Interrupted is delivered from [Process.Wait] when the waiting
// process is interrupted by another process.
type Interrupted struct {
	// Cause is the value passed to [Process.Interrupt]; may be nil.
	Cause error
}

// Error returns a message.
func (i *Interrupted) Error() string {
	if i.Cause == nil {
		return "interrupted"
	}
	return "interrupted: " + i.Cause.Error()
}

// Unwrap returns the interrupt cause.
func (i *Interrupted) Unwrap() error { return i.Cause }

// outcome is delivered to a process when its target event dispatches.
type outcome struct {
	value any
	err   error
}

// A ProcessFunc is the body of a process. It runs when the process's
// start event dispatches and may suspend itself with [Process.Wait].
// A non-nil return value fails the process's [Process.Done] event.
type ProcessFunc func(p *Process) error

// A Process is a cooperatively scheduled actor. It is created by
// [Environment.Spawn] and runs on its own goroutine, but only while
// the environment has handed control to it.
type Process struct {
	env      *Environment
	name     string
	target   *Event
	resume   chan outcome
	done     *Event
	finished bool
}

// Spawn creates a process and schedules its body to start at the
// current simulated time.
func (env *Environment) Spawn(name string, fn ProcessFunc) *Process {
	p := &Process{
		env:    env,
		name:   name,
		resume: make(chan outcome),
		done:   env.NewEvent(),
	}

	start := env.NewEvent().Succeed(nil)
	p.target = start
	start.waiters = append(start.waiters, p)
	env.log.Debug("process spawned", zap.String("process", name))

	err := env.runner.Go(func(context.Context) {
		<-p.resume
		err := tryRun(p, fn)
		p.finished = true
		if err != nil {
			p.done.Fail(err)
		} else {
			p.done.Succeed(nil)
		}
		env.yielded <- struct{}{}
	})
	if err != nil {
		// The body never starts; detach from the start event so its
		// dispatch does not try to hand control to a dead process.
		p.target = nil
		p.finished = true
		p.done.Fail(err)
	}
	return p
}

// Env returns the environment the process belongs to.
func (p *Process) Env() *Environment { return p.env }

// Name returns the name given to [Environment.Spawn].
func (p *Process) Name() string { return p.name }

// String implements the Stringer interface.
func (p *Process) String() string { return "process " + p.name }

// Done returns the event resolved when the process body returns: it
// succeeds with nil, or fails with the body's error.
func (p *Process) Done() *Event { return p.done }

// Target returns the event the process is currently waiting on, or
// nil if the process is running or has finished. Resource primitives
// compare this against a queued entry's event to detect entries whose
// process has moved on.
func (p *Process) Target() *Event { return p.target }

// Wait suspends the process until e dispatches, returning the event's
// outcome. Waiting on an event that has already been dispatched
// returns its outcome immediately without suspending. Wait panics if
// called from outside the process's own body.
func (p *Process) Wait(e *Event) (any, error) {
	if p.env.active != p {
		panic("sim: Wait called from outside the process body")
	}
	if e.dispatched {
		return e.value, e.err
	}
	p.target = e
	e.waiters = append(e.waiters, p)
	p.env.yielded <- struct{}{}
	o := <-p.resume
	return o.value, o.err
}

// Sleep suspends the process for delay time units. The returned error
// is non-nil only if the process is interrupted while sleeping.
func (p *Process) Sleep(delay float64) error {
	_, err := p.Wait(p.env.Timeout(delay))
	return err
}

// Interrupt retargets a suspended process away from the event it is
// waiting on without resolving that event; the process observes an
// [*Interrupted] error from its pending Wait at the current simulated
// time. Whatever the process was waiting for stays unresolved, and any
// wait-queue entries it owns become stale.
//
// A process cannot interrupt itself, and a finished process cannot be
// interrupted.
func (p *Process) Interrupt(cause error) error {
	if p.env.active == p {
		return errors.New("a process cannot interrupt itself")
	}
	if p.finished {
		return fmt.Errorf("cannot interrupt %s: already finished", p)
	}
	ie := p.env.NewEvent().Fail(&Interrupted{Cause: cause})
	p.target = ie
	ie.waiters = append(ie.waiters, p)
	p.env.log.Debug("process interrupted", zap.String("process", p.name))
	return nil
}

// tryRun invokes the process body with a panic handler.
func tryRun(p *Process, fn ProcessFunc) (err error) {
	defer func() {
		x := recover()
		switch t := x.(type) {
		case nil:
		// Success.
		case error:
			err = t
		default:
			err = fmt.Errorf("panic in %s: %v", p, t)
		}
	}()

	return fn(p)
}
