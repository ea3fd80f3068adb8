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

package waitq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type entry struct {
	name string
	prio int
}

func TestFIFO(t *testing.T) {
	r := require.New(t)

	q := New[*entry](FIFO)
	a, b, c := &entry{name: "a"}, &entry{name: "b"}, &entry{name: "c"}
	q.Push(a)
	q.Push(b)
	q.Push(c)
	r.Equal(3, q.Len())
	r.Equal([]*entry{a, b, c}, q.Items())

	head, err := q.Peek()
	r.NoError(err)
	r.Same(a, head)

	got, err := q.Pop()
	r.NoError(err)
	r.Same(a, got)
	got, err = q.Pop()
	r.NoError(err)
	r.Same(b, got)
	r.Equal(1, q.Len())
}

func TestLIFO(t *testing.T) {
	r := require.New(t)

	q := New[*entry](LIFO)
	a, b, c := &entry{name: "a"}, &entry{name: "b"}, &entry{name: "c"}
	q.Push(a)
	q.Push(b)
	q.Push(c)
	r.Equal([]*entry{c, b, a}, q.Items())

	got, err := q.Pop()
	r.NoError(err)
	r.Same(c, got)
	head, err := q.Peek()
	r.NoError(err)
	r.Same(b, head)
}

func TestPriority(t *testing.T) {
	r := require.New(t)

	q := NewPriority(func(a, b *entry) bool { return a.prio < b.prio })
	low := &entry{name: "low", prio: 9}
	first := &entry{name: "first", prio: 1}
	second := &entry{name: "second", prio: 1}
	q.Push(low)
	q.Push(first)
	q.Push(second)
	r.Equal(3, q.Len())

	// Priority wins; arrival order breaks the tie.
	r.Equal([]*entry{first, second, low}, q.Items())
	got, err := q.Pop()
	r.NoError(err)
	r.Same(first, got)
	got, err = q.Pop()
	r.NoError(err)
	r.Same(second, got)
	got, err = q.Pop()
	r.NoError(err)
	r.Same(low, got)
}

func TestEmpty(t *testing.T) {
	r := require.New(t)

	for _, q := range []Queue[*entry]{
		New[*entry](FIFO),
		New[*entry](LIFO),
		NewPriority(func(a, b *entry) bool { return a.prio < b.prio }),
	} {
		_, err := q.Pop()
		r.ErrorIs(err, ErrEmpty)
		_, err = q.Peek()
		r.ErrorIs(err, ErrEmpty)
		r.Zero(q.Len())
		r.Empty(q.Items())
	}
}

func TestRemove(t *testing.T) {
	r := require.New(t)

	for _, q := range []Queue[*entry]{
		New[*entry](FIFO),
		NewPriority(func(a, b *entry) bool { return a.prio < b.prio }),
	} {
		a, b, c := &entry{name: "a"}, &entry{name: "b"}, &entry{name: "c"}
		q.Push(a)
		q.Push(b)
		q.Push(c)

		// Middle-of-queue removal is the cancellation path.
		r.NoError(q.Remove(b))
		r.Equal(2, q.Len())
		r.ErrorIs(q.Remove(b), ErrNotFound)
		r.ErrorIs(q.Remove(&entry{name: "d"}), ErrNotFound)

		got, err := q.Pop()
		r.NoError(err)
		r.Same(a, got)
		got, err = q.Pop()
		r.NoError(err)
		r.Same(c, got)
	}
}

func TestDuplicatePanics(t *testing.T) {
	r := require.New(t)

	a := &entry{name: "a"}
	q := New[*entry](FIFO)
	q.Push(a)
	r.Panics(func() { q.Push(a) })

	p := NewPriority(func(a, b *entry) bool { return a.prio < b.prio })
	p.Push(a)
	r.Panics(func() { p.Push(a) })
}
