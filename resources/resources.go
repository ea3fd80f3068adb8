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

/*
Package resources provides contention primitives for simulated
processes: limited-capacity slot pools ([Resource]), bulk-quantity
buffers ([Container]), and discrete-item buffers ([Store],
[FilterStore]).

Every primitive follows the same admission protocol. A request is
either satisfied immediately, returning an already-succeeded event, or
queued, returning a pending event for the caller to wait on. When
another process releases capacity, the primitive re-scans the relevant
wait queue and grants every request it now can, in queue order,
stopping at the first request it cannot satisfy. FilterStore is the
documented exception: its gets carry a predicate and are granted in
item-availability order, which may overtake earlier arrivals.

A gas station with two pumps and a fuel tank:

	env := sim.NewEnvironment()
	pumps, _ := NewResource(env, 2)
	tank, _ := NewContainer(env, 1000, 500)

	env.Spawn("car", func(p *sim.Process) error {
		if _, err := p.Wait(pumps.Request()); err != nil {
			return err
		}
		defer pumps.Release()
		ev, _ := tank.Get(40)
		_, err := p.Wait(ev)
		return err
	})

	env.Run(context.Background(), 0)

All operations must be invoked from within a running process; the
active process is the requester. Queued requests whose process has
since been interrupted away from its event are discarded, without
being granted, on the next resolution pass.
*/
package resources

import "github.com/cockroachdb/field-eng-simkit/sim"

// active returns the process invoking the current operation.
func active(env *sim.Environment) *sim.Process {
	p := env.Active()
	if p == nil {
		panic("resources: operation requires a running process")
	}
	return p
}
