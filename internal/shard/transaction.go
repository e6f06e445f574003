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
	"sync"

	"github.com/hashicorp/go-multierror"
)

// ScheduleSingleHop runs fn once, against the single shard that owns key,
// under that shard's write lock (or read lock when write is false). This is
// the operation class every single-key ZSET command uses (spec §5).
func ScheduleSingleHop[T any](ss *ShardSet, key string, write bool, fn func(*Shard) (T, error)) (T, error) {
	ss.latch.Acquire([]string{key})
	defer ss.latch.Release([]string{key})

	sh := ss.ShardFor(key)
	if write {
		sh.mu.Lock()
		defer sh.mu.Unlock()
	} else {
		sh.mu.RLock()
		defer sh.mu.RUnlock()
	}
	return fn(sh)
}

// GatherFunc runs read-only against one shard's subset of the input keys
// and returns that shard's partial contribution.
type GatherFunc[G any] func(sh *Shard, keys []string) (G, error)

// StoreFunc runs once, against the shard owning the destination key, with
// exclusive access, and performs the final write.
type StoreFunc[G, R any] func(sh *Shard, merged G) (R, error)

// ScheduleMultiHop implements the two-phase transaction of spec §5/§4.7:
// Phase A (gather) runs concurrently across every shard that owns at least
// one of inputKeys, without writing; phase B (store) runs once against the
// destination shard after all gather results have been folded together by
// merge. No other transaction touching inputKeys or destKey can interleave
// between the phases, because the whole key set is held by the latch for
// the duration of the call.
func ScheduleMultiHop[G, R any](
	ss *ShardSet,
	inputKeys []string,
	destKey string,
	gather GatherFunc[G],
	merge func(a, b G) G,
	zero G,
	store StoreFunc[G, R],
) (R, error) {
	var zeroR R

	allKeys := append(append([]string{}, inputKeys...), destKey)
	ss.latch.Acquire(allKeys)
	defer ss.latch.Release(allKeys)

	groups := ss.groupByShard(inputKeys)

	type partial struct {
		value G
	}
	results := make([]partial, 0, len(groups))
	var mu sync.Mutex
	var wg sync.WaitGroup
	var merr *multierror.Error

	for sh, keys := range groups {
		sh := sh
		keys := keys
		wg.Add(1)
		go func() {
			defer wg.Done()
			sh.mu.RLock()
			val, err := gather(sh, keys)
			sh.mu.RUnlock()
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				merr = multierror.Append(merr, err)
				return
			}
			results = append(results, partial{value: val})
		}()
	}
	wg.Wait()
	// A multi-hop transaction spans several shards; reporting every shard
	// that failed (rather than just the first) matters when diagnosing a
	// partial outage.
	if err := merr.ErrorOrNil(); err != nil {
		return zeroR, err
	}

	merged := zero
	for _, p := range results {
		merged = merge(merged, p.value)
	}

	destShard := ss.ShardFor(destKey)
	destShard.mu.Lock()
	ret, err := store(destShard, merged)
	destShard.mu.Unlock()
	if err != nil {
		return zeroR, err
	}
	return ret, nil
}
