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
	"errors"
	"sync"
	"testing"

	"github.com/coreshard/zsetd/internal/zset"
)

func TestScheduleSingleHopWriteThenRead(t *testing.T) {
	ss := New(4)
	_, err := ScheduleSingleHop(ss, "k", true, func(sh *Shard) (struct{}, error) {
		z := sh.GetOrCreate("k")
		z.Insert("a", 1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	card, err := ScheduleSingleHop(ss, "k", false, func(sh *Shard) (int, error) {
		return sh.Get("k").Cardinality(), nil
	})
	if err != nil || card != 1 {
		t.Fatalf("expected cardinality 1, got %d err=%v", card, err)
	}
}

func TestShardForIsConsistent(t *testing.T) {
	ss := New(8)
	a := ss.ShardFor("hello")
	b := ss.ShardFor("hello")
	if a != b {
		t.Fatal("expected the same key to always map to the same shard")
	}
}

func TestScheduleMultiHopUnion(t *testing.T) {
	ss := New(4)
	keys := []string{"k1", "k2", "k3", "k4", "k5"}
	for i, k := range keys {
		k := k
		i := i
		_, err := ScheduleSingleHop(ss, k, true, func(sh *Shard) (struct{}, error) {
			z := sh.GetOrCreate(k)
			z.Insert("m", zset.Score(i+1))
			return struct{}{}, nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	gather := func(sh *Shard, localKeys []string) (float64, error) {
		var sum float64
		for _, k := range localKeys {
			if z := sh.Get(k); z != nil {
				if s, ok := z.ScoreOf("m"); ok {
					sum += float64(s)
				}
			}
		}
		return sum, nil
	}
	merge := func(a, b float64) float64 { return a + b }
	store := func(sh *Shard, merged float64) (float64, error) {
		sh.GetOrCreate("dest")
		return merged, nil
	}

	total, err := ScheduleMultiHop[float64, float64](ss, keys, "dest", gather, merge, 0, store)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1+2+3+4+5 {
		t.Fatalf("expected sum 15, got %v", total)
	}
}

func TestScheduleMultiHopAbortsStoreOnGatherError(t *testing.T) {
	ss := New(4)
	gather := func(sh *Shard, keys []string) (int, error) {
		return 0, errors.New("boom")
	}
	storeCalled := false
	store := func(sh *Shard, merged int) (int, error) {
		storeCalled = true
		return merged, nil
	}
	_, err := ScheduleMultiHop[int, int](ss, []string{"a", "b"}, "dest", gather, func(a, b int) int { return a + b }, 0, store)
	if err == nil {
		t.Fatal("expected gather error to propagate")
	}
	if storeCalled {
		t.Fatal("expected store phase to be skipped after a gather error")
	}
}

func TestKeyLatchSerializesOverlappingKeys(t *testing.T) {
	ss := New(1)
	var wg sync.WaitGroup
	var mu sync.Mutex
	order := make([]int, 0, 2)

	wg.Add(2)
	start := make(chan struct{})
	go func() {
		defer wg.Done()
		<-start
		ScheduleSingleHop(ss, "shared", true, func(sh *Shard) (struct{}, error) {
			mu.Lock()
			order = append(order, 1)
			mu.Unlock()
			return struct{}{}, nil
		})
	}()
	go func() {
		defer wg.Done()
		<-start
		ScheduleSingleHop(ss, "shared", true, func(sh *Shard) (struct{}, error) {
			mu.Lock()
			order = append(order, 2)
			mu.Unlock()
			return struct{}{}, nil
		})
	}()
	close(start)
	wg.Wait()

	if len(order) != 2 {
		t.Fatalf("expected both transactions to run, got %v", order)
	}
}
