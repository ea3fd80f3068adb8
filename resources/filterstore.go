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

// A FilterStore is a [Store] whose gets carry a predicate and only
// receive items it accepts. Puts behave exactly as on a Store.
//
// Gets are granted in item-availability order, not arrival order: when
// a put makes a new item available, the whole get queue is re-scanned
// and an entry behind the head may be granted if only its predicate
// matches. A process requesting an item type nobody has produced yet
// can therefore be overtaken by a later process requesting an
// available type. This is documented behavior, not a bug.
type FilterStore[T any] struct {
	*Store[T]
}

// NewFilterStore constructs an empty FilterStore. It returns
// ErrInvalidCapacity if capacity is not positive.
func NewFilterStore[T any](env *sim.Environment, capacity int, opts ...Option) (*FilterStore[T], error) {
	s, err := NewStore[T](env, capacity, opts...)
	if err != nil {
		return nil, err
	}
	s.filtered = true
	return &FilterStore[T]{Store: s}, nil
}

// Get removes the earliest-inserted buffered item the filter accepts;
// the returned event succeeds with it. If no buffered item matches,
// the get is queued until a put provides one. A nil filter accepts
// any item, behaving exactly like [Store.Get].
func (s *FilterStore[T]) Get(filter func(T) bool) *sim.Event {
	proc := active(s.env)
	ev := s.env.NewEvent()
	if idx := s.matchIndex(filter); idx >= 0 {
		item := s.items[idx]
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.drainPutters()
		ev.Succeed(item)
		s.events.doImmediate(OpGet, proc)
	} else {
		s.getters.Push(&storeGet[T]{
			event:      ev,
			proc:       proc,
			filter:     filter,
			enqueuedAt: s.env.Now(),
		})
		s.events.doEnqueue(OpGet, proc)
	}
	return ev
}
