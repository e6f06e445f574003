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

// Package shard implements the coordination layer described in spec §5: N
// shard executors, each owning a disjoint slice of the key-space, and a
// transaction scheduler offering single-hop and multi-hop operation classes.
package shard

import (
	"fmt"
	"sync"

	"github.com/coreshard/zsetd/internal/assert"
	"github.com/coreshard/zsetd/internal/zset"
)

// Shard owns a disjoint slice of the key-space ("db_slice" in spec terms).
// Only its own transactions ever mutate it.
type Shard struct {
	id       int
	mu       sync.RWMutex
	keyspace map[string]*zset.ZSet
}

func newShard(id int) *Shard {
	return &Shard{id: id, keyspace: make(map[string]*zset.ZSet)}
}

func (s *Shard) ID() int {
	return s.id
}

// Get returns the sorted set at key, or nil if it does not exist. Callers
// must hold at least a read lock (acquired for them by the scheduler before
// the callback runs).
func (s *Shard) Get(key string) *zset.ZSet {
	return s.keyspace[key]
}

// GetOrCreate returns the existing set at key, creating an empty one if
// absent. Callers must be running under a write callback.
func (s *Shard) GetOrCreate(key string) *zset.ZSet {
	z, ok := s.keyspace[key]
	if !ok {
		z = zset.New()
		s.keyspace[key] = z
	}
	return z
}

// Set installs z at key, overwriting any previous value.
func (s *Shard) Set(key string, z *zset.ZSet) {
	s.keyspace[key] = z
}

// Delete removes key. Invariant (spec §3 inv. 5): callers must also call
// this whenever a mutation leaves a set empty.
func (s *Shard) Delete(key string) {
	delete(s.keyspace, key)
}

// SyncEmpty deletes key if the set stored there is now empty, enforcing
// spec invariant 5 ("Cardinality = 0 => the key is removed") after a
// mutating operation. It panics if the set reports a negative cardinality;
// no other consistency check is made here.
func (s *Shard) SyncEmpty(key string) {
	z, ok := s.keyspace[key]
	if !ok {
		return
	}
	assert.Invariant(z.Cardinality() >= 0, fmt.Sprintf("negative cardinality for key %q", key))
	if z.Cardinality() == 0 {
		delete(s.keyspace, key)
	}
}
