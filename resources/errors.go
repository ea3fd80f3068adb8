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

import "errors"

var (
	// ErrInvalidCapacity is raised at construction if the capacity is
	// not positive.
	ErrInvalidCapacity = errors.New("capacity must be positive")
	// ErrInvalidInitialLevel is raised at construction if a Container's
	// initial level is negative or exceeds its capacity.
	ErrInvalidInitialLevel = errors.New("initial level out of range")
	// ErrInvalidAmount is raised by Container.Put and Container.Get if
	// the amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidRelease is raised by Resource.Release if the calling
	// process holds no slot and has no queued request to cancel.
	ErrInvalidRelease = errors.New("resource was not requested")
)
