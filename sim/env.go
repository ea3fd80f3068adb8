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

	"github.com/google/btree"
	"go.uber.org/zap"
)

// A scheduled entry pairs an event with its dispatch time. The
// insertion sequence breaks ties so that events scheduled for the same
// time are dispatched in scheduling order.
type scheduled struct {
	at  float64
	seq uint64
	ev  *Event
}

// An Environment owns the virtual clock and the event calendar, and
// drives process execution. Construct one with [NewEnvironment].
//
// An Environment is not internally synchronized: it must be driven
// from a single goroutine, and simulation state may only be touched
// from process bodies or between calls to [Environment.Step].
type Environment struct {
	log      *zap.Logger
	runner   Runner
	now      float64
	seq      uint64
	calendar *btree.BTreeG[*scheduled]
	active   *Process
	yielded  chan struct{}
}

// Option configures an [Environment].
type Option func(*Environment)

// WithLogger installs a logger for debug-level tracing of scheduling
// and dispatch. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(env *Environment) { env.log = log }
}

// WithRunner installs the [Runner] used to launch process goroutines.
// The default is [GoRunner] with a background context.
func WithRunner(runner Runner) Option {
	return func(env *Environment) { env.runner = runner }
}

// NewEnvironment constructs an empty environment with the clock at 0.
func NewEnvironment(opts ...Option) *Environment {
	env := &Environment{
		log:     zap.NewNop(),
		yielded: make(chan struct{}),
		calendar: btree.NewG(8, func(a, b *scheduled) bool {
			if a.at != b.at {
				return a.at < b.at
			}
			return a.seq < b.seq
		}),
	}
	for _, opt := range opts {
		opt(env)
	}
	if env.runner == nil {
		env.runner = GoRunner(context.Background())
	}
	return env
}

// Now returns the current simulated time.
func (env *Environment) Now() float64 { return env.now }

// Active returns the process currently executing, or nil when no
// process is running.
func (env *Environment) Active() *Process { return env.active }

// Timeout returns an event that dispatches delay time units in the
// future, succeeding with a nil value. Timeout panics if delay is
// negative.
func (env *Environment) Timeout(delay float64) *Event {
	if delay < 0 {
		panic("sim: negative timeout delay")
	}
	e := env.NewEvent()
	e.state = Succeeded
	env.scheduleAt(e, env.now+delay)
	return e
}

func (env *Environment) scheduleAt(e *Event, at float64) {
	env.seq++
	env.calendar.ReplaceOrInsert(&scheduled{at: at, seq: env.seq, ev: e})
	env.log.Debug("event scheduled",
		zap.Float64("at", at), zap.Uint64("seq", env.seq))
}

// Step dispatches the earliest scheduled event, advancing the clock to
// its scheduled time and resuming, one at a time, every process whose
// current target is that event. It returns false if the calendar is
// empty.
func (env *Environment) Step() bool {
	item, ok := env.calendar.DeleteMin()
	if !ok {
		return false
	}
	env.now = item.at
	e := item.ev
	e.dispatched = true
	env.log.Debug("event dispatched",
		zap.Float64("now", env.now),
		zap.Int("waiters", len(e.waiters)))

	waiters := e.waiters
	e.waiters = nil
	for _, p := range waiters {
		// The process was retargeted (interrupted) after it started
		// waiting here; the outcome is not delivered.
		if p.target != e {
			continue
		}
		env.resumeProcess(p, e.value, e.err)
	}
	return true
}

// Run drives the dispatch loop until the calendar drains, the clock
// would pass until, or ctx is canceled. Pass until <= 0 to run until
// no scheduled events remain. If the loop stops because of until, the
// clock is advanced to exactly until.
func (env *Environment) Run(ctx context.Context, until float64) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, ok := env.calendar.Min()
		if !ok {
			return nil
		}
		if until > 0 && item.at > until {
			env.now = until
			return nil
		}
		env.Step()
	}
}

// resumeProcess hands control to p and blocks until it waits on its
// next event or its body returns.
func (env *Environment) resumeProcess(p *Process, value any, err error) {
	env.active = p
	p.target = nil
	p.resume <- outcome{value: value, err: err}
	<-env.yielded
	env.active = nil
}
