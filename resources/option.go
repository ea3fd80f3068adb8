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

import "github.com/cockroachdb/field-eng-simkit/waitq"

type options struct {
	order  waitq.Order
	events *Events
}

// Option configures a primitive at construction.
type Option func(*options)

// WithOrder selects the wait-queue discipline; the default is
// [waitq.FIFO]. A FilterStore's get side re-scans the whole queue
// regardless of the discipline's pop order.
func WithOrder(order waitq.Order) Option {
	return func(o *options) { o.order = order }
}

// WithEvents installs instrumentation callbacks.
func WithEvents(events *Events) Option {
	return func(o *options) { o.events = events }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
