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

import (
	"context"
	"testing"

	"github.com/cockroachdb/field-eng-simkit/sim"
	"github.com/stretchr/testify/require"
)

func TestStoreValidation(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()

	_, err := NewStore[int](env, 0)
	r.ErrorIs(err, ErrInvalidCapacity)
	_, err = NewStore[int](env, -1)
	r.ErrorIs(err, ErrInvalidCapacity)

	s, err := NewStore[int](env, Unlimited)
	r.NoError(err)
	r.Equal(Unlimited, s.Capacity())
	r.Zero(s.Count())
}

// Items come out in the order they went in.
func TestStoreRoundTrip(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()
	s, err := NewStore[string](env, Unlimited)
	r.NoError(err)

	var got []string
	env.Spawn("mover", func(p *sim.Process) error {
		for _, item := range []string{"a", "b", "c"} {
			if _, err := p.Wait(s.Put(item)); err != nil {
				return err
			}
		}
		r.Equal([]string{"a", "b", "c"}, s.Items())
		for i := 0; i < 3; i++ {
			v, err := p.Wait(s.Get())
			if err != nil {
				return err
			}
			got = append(got, v.(string))
		}
		return nil
	})

	r.NoError(env.Run(context.Background(), 0))
	r.Equal([]string{"a", "b", "c"}, got)
	r.Zero(s.Count())
}

// A put into a full store queues until a get frees a slot, and the
// freed slot goes to the oldest queued put.
func TestStorePutBlocksWhenFull(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()
	s, err := NewStore[string](env, 1)
	r.NoError(err)

	var order []string
	env.Spawn("producer", func(p *sim.Process) error {
		first := s.Put("a")
		r.True(first.Succeeded())
		second := s.Put("b")
		r.True(second.Pending())
		if _, err := p.Wait(second); err != nil {
			return err
		}
		order = append(order, "b stored")
		r.Equal(float64(5), p.Env().Now())
		return nil
	})
	env.Spawn("consumer", func(p *sim.Process) error {
		if err := p.Sleep(5); err != nil {
			return err
		}
		v, err := p.Wait(s.Get())
		if err != nil {
			return err
		}
		order = append(order, "got "+v.(string))
		return nil
	})

	r.NoError(env.Run(context.Background(), 0))
	// The queued put resolves before the get's own event, so the
	// producer observes its grant first.
	r.Equal([]string{"b stored", "got a"}, order)
	r.Equal([]string{"b"}, s.Items())
}

// A get on an empty store receives the item of the unblocking put.
func TestStoreGetBlocksWhenEmpty(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()
	s, err := NewStore[int](env, 4)
	r.NoError(err)

	var got int
	var gotAt float64
	env.Spawn("consumer", func(p *sim.Process) error {
		ev := s.Get()
		r.True(ev.Pending())
		v, err := p.Wait(ev)
		if err != nil {
			return err
		}
		got = v.(int)
		gotAt = p.Env().Now()
		return nil
	})
	env.Spawn("producer", func(p *sim.Process) error {
		if err := p.Sleep(2); err != nil {
			return err
		}
		_, err := p.Wait(s.Put(17))
		return err
	})

	r.NoError(env.Run(context.Background(), 0))
	r.Equal(17, got)
	r.Equal(float64(2), gotAt)
	r.Zero(s.Count())
}

// Queued gets are served strictly in arrival order, one item each.
func TestStoreGetFIFO(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()
	s, err := NewStore[int](env, Unlimited)
	r.NoError(err)

	var order []string
	var got []int
	for _, name := range []string{"first", "second"} {
		name := name
		env.Spawn(name, func(p *sim.Process) error {
			v, err := p.Wait(s.Get())
			if err != nil {
				return err
			}
			order = append(order, name)
			got = append(got, v.(int))
			return nil
		})
	}
	env.Spawn("producer", func(p *sim.Process) error {
		if err := p.Sleep(1); err != nil {
			return err
		}
		if _, err := p.Wait(s.Put(10)); err != nil {
			return err
		}
		if err := p.Sleep(1); err != nil {
			return err
		}
		_, err := p.Wait(s.Put(20))
		return err
	})

	r.NoError(env.Run(context.Background(), 0))
	r.Equal([]string{"first", "second"}, order)
	r.Equal([]int{10, 20}, got)
}

// An interrupted putter's queued entry is skipped when room opens up.
func TestStoreStalePutter(t *testing.T) {
	r := require.New(t)
	env := sim.NewEnvironment()
	s, err := NewStore[string](env, 1)
	r.NoError(err)

	env.Spawn("filler", func(p *sim.Process) error {
		_, err := p.Wait(s.Put("resident"))
		return err
	})
	abandoned := env.Spawn("abandoned", func(p *sim.Process) error {
		_, err := p.Wait(s.Put("never"))
		var intr *sim.Interrupted
		r.ErrorAs(err, &intr)
		return nil
	})
	env.Spawn("patient", func(p *sim.Process) error {
		_, err := p.Wait(s.Put("eventually"))
		return err
	})
	env.Spawn("driver", func(p *sim.Process) error {
		if err := p.Sleep(1); err != nil {
			return err
		}
		if err := abandoned.Interrupt(nil); err != nil {
			return err
		}
		if err := p.Sleep(1); err != nil {
			return err
		}
		v, err := p.Wait(s.Get())
		if err != nil {
			return err
		}
		r.Equal("resident", v)
		return nil
	})

	r.NoError(env.Run(context.Background(), 0))
	r.Equal([]string{"eventually"}, s.Items())
}
