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

import "sort"

// keyLatch serializes transactions whose key sets overlap, independent of
// (and coarser-grained than) the per-shard RWMutex. It exists because a
// multi-hop transaction's keys can span several shards, and per-shard locks
// alone would let another transaction slip in between the gather and store
// phases (spec §5: "between the two executes, no other transaction sees a
// partial state"). Generalizes the teacher's single-key KeyLock/KeyRLock to
// an arbitrary key set.
type keyLatch struct {
	mu     chan struct{} // binary semaphore guarding 'locked'
	locked map[string]struct{}
	wake   chan struct{}
}

func newKeyLatch() *keyLatch {
	kl := &keyLatch{
		mu:     make(chan struct{}, 1),
		locked: make(map[string]struct{}),
		wake:   make(chan struct{}),
	}
	return kl
}

func dedupSorted(keys []string) []string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	out := sorted[:0]
	for i, k := range sorted {
		if i == 0 || k != sorted[i-1] {
			out = append(out, k)
		}
	}
	return out
}

// Acquire blocks until none of keys is held by another in-flight
// transaction, then marks all of them held.
func (kl *keyLatch) Acquire(keys []string) {
	sorted := dedupSorted(keys)
	for {
		kl.mu <- struct{}{}
		conflict := false
		for _, k := range sorted {
			if _, ok := kl.locked[k]; ok {
				conflict = true
				break
			}
		}
		if !conflict {
			for _, k := range sorted {
				kl.locked[k] = struct{}{}
			}
			<-kl.mu
			return
		}
		wake := kl.wake
		<-kl.mu
		<-wake
	}
}

// Release frees keys and wakes any transaction waiting on them.
func (kl *keyLatch) Release(keys []string) {
	kl.mu <- struct{}{}
	for _, k := range keys {
		delete(kl.locked, k)
	}
	old := kl.wake
	kl.wake = make(chan struct{})
	<-kl.mu
	close(old)
}
