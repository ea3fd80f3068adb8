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
Package sim provides a deterministic discrete-event simulation engine:
a virtual clock, single-resolution outcome cells called events, and
cooperatively scheduled processes.

A minimal simulation looks like this:

	env := NewEnvironment()

	env.Spawn("clock", func(p *Process) error {
		for i := 0; i < 3; i++ {
			if err := p.Sleep(10); err != nil {
				return err
			}
			fmt.Println("tick at", p.Env().Now())
		}
		return nil
	})

	env.Run(context.Background(), 0)

Processes run on their own goroutines, but execution is strictly
cooperative: exactly one process runs at a time, handed control by the
environment's dispatch loop and returning it by waiting on an event.
State touched only between [Process.Wait] calls therefore needs no
locking. An Environment and its processes must all be driven from a
single [Environment.Run] call; the Environment itself is not safe for
concurrent use from multiple goroutines.

Simulated time is a float64 and only advances when the dispatch loop
moves to the next scheduled event. Events scheduled for the same time
are dispatched in the order they were scheduled.

The resource primitives built on this engine live in the resources
package.
*/
package sim
