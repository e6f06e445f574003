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

package sorted_set

import (
	"github.com/coreshard/zsetd/internal/zset"
)

// aggregateFn combines an existing accumulated score with a freshly seen
// one, implementing the ZUNIONSTORE/ZINTERSTORE AGGREGATE option.
type aggregateFn func(existing, next zset.Score) zset.Score

func aggregateSum(existing, next zset.Score) zset.Score {
	return existing + next
}

func aggregateMin(existing, next zset.Score) zset.Score {
	if next < existing {
		return next
	}
	return existing
}

func aggregateMax(existing, next zset.Score) zset.Score {
	if next > existing {
		return next
	}
	return existing
}

// scoredMap is the gather-phase accumulator shard.ScheduleMultiHop folds
// together for ZUNIONSTORE/ZINTERSTORE (spec §4.7). hits tracks how many of
// the source keys each member appeared in, so the merge step can tell a
// union contribution apart from an intersection requirement.
type scoredMap struct {
	scores map[zset.Member]zset.Score
	hits   map[zset.Member]int
	agg    aggregateFn
}

func newScoredMap(agg aggregateFn) scoredMap {
	return scoredMap{
		scores: make(map[zset.Member]zset.Score),
		hits:   make(map[zset.Member]int),
		agg:    agg,
	}
}

// addSet folds every member of one source set, weighted by w, into sm.
func (sm scoredMap) addSet(z *zset.ZSet, w float64) {
	for _, p := range z.All() {
		weighted := zset.Score(float64(p.Score) * w)
		if existing, ok := sm.scores[p.Member]; ok {
			sm.scores[p.Member] = sm.agg(existing, weighted)
		} else {
			sm.scores[p.Member] = weighted
		}
		sm.hits[p.Member]++
	}
}

// mergeScoredMaps combines two per-shard partial scoredMaps produced by
// concurrent gather calls into one, the same aggregation function applying
// across shard boundaries as within a single shard's set.
func mergeScoredMaps(a, b scoredMap) scoredMap {
	if a.agg == nil {
		return b
	}
	if b.agg == nil {
		return a
	}
	out := newScoredMap(a.agg)
	for m, s := range a.scores {
		out.scores[m] = s
		out.hits[m] = a.hits[m]
	}
	for m, s := range b.scores {
		if existing, ok := out.scores[m]; ok {
			out.scores[m] = out.agg(existing, s)
		} else {
			out.scores[m] = s
		}
		out.hits[m] += b.hits[m]
	}
	return out
}

// toUnionPairs keeps every member seen in at least one source set.
func (sm scoredMap) toUnionPairs() []zset.Pair {
	out := make([]zset.Pair, 0, len(sm.scores))
	for m, s := range sm.scores {
		out = append(out, zset.Pair{Member: m, Score: s})
	}
	return out
}

// toIntersectPairs keeps only members seen in every one of numKeys source
// sets, the ZINTERSTORE requirement.
func (sm scoredMap) toIntersectPairs(numKeys int) []zset.Pair {
	out := make([]zset.Pair, 0, len(sm.scores))
	for m, s := range sm.scores {
		if sm.hits[m] == numKeys {
			out = append(out, zset.Pair{Member: m, Score: s})
		}
	}
	return out
}
