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

package shard

import (
	"github.com/cespare/xxhash/v2"
)

// ShardSet is the fixed pool of shard executors a zsetd instance runs with.
// Every key belongs to exactly one shard, chosen by consistent hashing
// (spec §5).
type ShardSet struct {
	shards []*Shard
	latch  *keyLatch
}

// New creates a ShardSet with n shards. n should match the number of cores
// dedicated to the engine; a single shard is valid and simply serializes
// everything, which is a correct (if non-parallel) degenerate case.
func New(n int) *ShardSet {
	if n < 1 {
		n = 1
	}
	shards := make([]*Shard, n)
	for i := range shards {
		shards[i] = newShard(i)
	}
	return &ShardSet{shards: shards, latch: newKeyLatch()}
}

func (ss *ShardSet) Size() int {
	return len(ss.shards)
}

// ShardFor returns the shard that owns key.
func (ss *ShardSet) ShardFor(key string) *Shard {
	idx := xxhash.Sum64String(key) % uint64(len(ss.shards))
	return ss.shards[idx]
}

// groupByShard partitions keys by the shard that owns each one.
func (ss *ShardSet) groupByShard(keys []string) map[*Shard][]string {
	groups := make(map[*Shard][]string)
	for _, k := range keys {
		sh := ss.ShardFor(k)
		groups[sh] = append(groups[sh], k)
	}
	return groups
}
