// Copyright 2026 The zsetd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zset

import "errors"

// Allocator models the allocation step Insert performs. The default never
// fails; a fault-injection harness can install one that does, to exercise
// ZADD's OUT_OF_MEMORY path (spec §7) without actually exhausting memory.
type Allocator interface {
	Alloc() error
}

type unboundedAllocator struct{}

func (unboundedAllocator) Alloc() error { return nil }

// DefaultAllocator never fails.
var DefaultAllocator Allocator = unboundedAllocator{}

// ErrOutOfMemory is returned by Insert when the set's allocator refuses a
// write.
var ErrOutOfMemory = errors.New("out of memory")

// FailingAllocator always refuses, for tests exercising OOM handling.
type FailingAllocator struct{}

func (FailingAllocator) Alloc() error { return ErrOutOfMemory }
