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

// Package waitq provides the pluggable wait-queue disciplines used by
// the resource primitives: arrival order (the default), last-arrival
// first, and priority order. A discipline decides only the order in
// which queued entries are offered for resolution; the resolution
// protocol itself lives with each primitive.
package waitq

import "errors"

var (
	// ErrEmpty is returned by Pop and Peek on an empty queue.
	ErrEmpty = errors.New("queue is empty")
	// ErrNotFound is returned by Remove if the entry is not queued.
	ErrNotFound = errors.New("entry not in queue")
)

// A Queue holds pending entries in a discipline-defined order.
// Entries must be distinct values; in practice they are pointers to
// per-request state. Pushing an entry that is already queued panics.
//
// Queues are not internally synchronized; the simulation's cooperative
// scheduling makes every queue operation an atomic step.
type Queue[T comparable] interface {
	// Push adds an entry.
	Push(v T)
	// Pop removes and returns the entry first in discipline order. It
	// returns ErrEmpty if the queue is empty.
	Pop() (T, error)
	// Peek returns the entry first in discipline order without
	// removing it. It returns ErrEmpty if the queue is empty.
	Peek() (T, error)
	// Remove removes an entry regardless of its position. It returns
	// ErrNotFound if the entry is not queued.
	Remove(v T) error
	// Len returns the number of queued entries.
	Len() int
	// Items returns a snapshot of the queued entries in discipline
	// order, first-to-pop first.
	Items() []T
}

// Order selects one of the sequence-based disciplines for [New].
type Order int

const (
	// FIFO pops entries in arrival order. This is the default
	// discipline everywhere.
	FIFO Order = iota
	// LIFO pops the most recently arrived entry first.
	LIFO
)

// New constructs a sequence-ordered queue with the given discipline.
func New[T comparable](order Order) Queue[T] {
	return &seqQueue[T]{order: order}
}
