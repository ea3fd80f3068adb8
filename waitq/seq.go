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

// seqQueue keeps entries in arrival order and pops from either end
// depending on the configured Order.
type seqQueue[T comparable] struct {
	order Order
	elts  []T
}

var _ Queue[int] = (*seqQueue[int])(nil)

func (q *seqQueue[T]) Push(v T) {
	for _, e := range q.elts {
		if e == v {
			panic("waitq: duplicate entry")
		}
	}
	q.elts = append(q.elts, v)
}

func (q *seqQueue[T]) Pop() (T, error) {
	if len(q.elts) == 0 {
		return *new(T), ErrEmpty
	}
	var v T
	if q.order == LIFO {
		v = q.elts[len(q.elts)-1]
		q.elts = q.elts[:len(q.elts)-1]
	} else {
		v = q.elts[0]
		q.elts = q.elts[1:]
	}
	return v, nil
}

func (q *seqQueue[T]) Peek() (T, error) {
	if len(q.elts) == 0 {
		return *new(T), ErrEmpty
	}
	if q.order == LIFO {
		return q.elts[len(q.elts)-1], nil
	}
	return q.elts[0], nil
}

func (q *seqQueue[T]) Remove(v T) error {
	for idx, e := range q.elts {
		if e == v {
			q.elts = append(q.elts[:idx], q.elts[idx+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (q *seqQueue[T]) Len() int { return len(q.elts) }

func (q *seqQueue[T]) Items() []T {
	out := make([]T, len(q.elts))
	if q.order == LIFO {
		for idx, e := range q.elts {
			out[len(out)-1-idx] = e
		}
	} else {
		copy(out, q.elts)
	}
	return out
}
