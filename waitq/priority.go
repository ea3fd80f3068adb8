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

import "github.com/google/btree"

// prioEntry tags an entry with its arrival sequence so that entries
// the less function considers equal pop in arrival order.
type prioEntry[T comparable] struct {
	val T
	seq uint64
}

type prioQueue[T comparable] struct {
	tree *btree.BTreeG[prioEntry[T]]
	seqs map[T]uint64
	next uint64
}

var _ Queue[int] = (*prioQueue[int])(nil)

// NewPriority constructs a queue that pops the least entry according
// to less, breaking ties by arrival order. It is a drop-in alternative
// to the sequence disciplines from [New].
func NewPriority[T comparable](less func(a, b T) bool) Queue[T] {
	return &prioQueue[T]{
		tree: btree.NewG(8, func(a, b prioEntry[T]) bool {
			if less(a.val, b.val) {
				return true
			}
			if less(b.val, a.val) {
				return false
			}
			return a.seq < b.seq
		}),
		seqs: make(map[T]uint64),
	}
}

func (q *prioQueue[T]) Push(v T) {
	if _, dup := q.seqs[v]; dup {
		panic("waitq: duplicate entry")
	}
	q.next++
	q.seqs[v] = q.next
	q.tree.ReplaceOrInsert(prioEntry[T]{val: v, seq: q.next})
}

func (q *prioQueue[T]) Pop() (T, error) {
	e, ok := q.tree.DeleteMin()
	if !ok {
		return *new(T), ErrEmpty
	}
	delete(q.seqs, e.val)
	return e.val, nil
}

func (q *prioQueue[T]) Peek() (T, error) {
	e, ok := q.tree.Min()
	if !ok {
		return *new(T), ErrEmpty
	}
	return e.val, nil
}

func (q *prioQueue[T]) Remove(v T) error {
	seq, ok := q.seqs[v]
	if !ok {
		return ErrNotFound
	}
	q.tree.Delete(prioEntry[T]{val: v, seq: seq})
	delete(q.seqs, v)
	return nil
}

func (q *prioQueue[T]) Len() int { return q.tree.Len() }

func (q *prioQueue[T]) Items() []T {
	out := make([]T, 0, q.tree.Len())
	q.tree.Ascend(func(e prioEntry[T]) bool {
		out = append(out, e.val)
		return true
	})
	return out
}
