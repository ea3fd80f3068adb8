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

import "github.com/cockroachdb/field-eng-simkit/sim"

// Op names the primitive operation an instrumentation callback refers
// to.
type Op string

const (
	// OpRequest is a Resource slot request.
	OpRequest Op = "request"
	// OpPut is a Container or Store put.
	OpPut Op = "put"
	// OpGet is a Container or Store get.
	OpGet Op = "get"
)

// Events provides a primitive with optional callbacks to monitor
// admission and resolution. Callbacks observe the protocol; they must
// not mutate the primitive. A nil Events or a nil callback is ignored.
//
// See [WithEvents].
type Events struct {
	// OnImmediate fires when a request is satisfied without queueing.
	OnImmediate func(op Op, p *sim.Process)
	// OnEnqueue fires when a request is queued.
	OnEnqueue func(op Op, p *sim.Process)
	// OnGrant fires when a queued request is granted; waited is the
	// simulated time spent in the queue.
	OnGrant func(op Op, p *sim.Process, waited float64)
	// OnStale fires when a queued request is discarded because its
	// process no longer targets the request's event.
	OnStale func(op Op, p *sim.Process)
}

func (e *Events) doImmediate(op Op, p *sim.Process) {
	if e != nil && e.OnImmediate != nil {
		e.OnImmediate(op, p)
	}
}

func (e *Events) doEnqueue(op Op, p *sim.Process) {
	if e != nil && e.OnEnqueue != nil {
		e.OnEnqueue(op, p)
	}
}

func (e *Events) doGrant(op Op, p *sim.Process, waited float64) {
	if e != nil && e.OnGrant != nil {
		e.OnGrant(op, p, waited)
	}
}

func (e *Events) doStale(op Op, p *sim.Process) {
	if e != nil && e.OnStale != nil {
		e.OnStale(op, p)
	}
}
