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

import (
	"fmt"
	"math"
	"sort"
)

func sortMembers(m []Member) {
	sort.Slice(m, func(i, j int) bool { return m[i] < m[j] })
}

// ZSet is the polymorphic sorted-set object (C3): it dispatches every
// operation to whichever of the two encodings (packed or indexed) it
// currently holds, and promotes packed->indexed the first time an insert
// would violate the packed preconditions. Promotion is one-way.
type ZSet struct {
	encoding Encoding
	packed   *packed
	indexed  *indexed
	alloc    Allocator
}

// New returns an empty, packed-encoded sorted set using DefaultAllocator.
func New() *ZSet {
	return NewWithAllocator(DefaultAllocator)
}

// NewWithAllocator is New, but with an explicit Allocator — for fault
// injection harnesses exercising ZADD's OUT_OF_MEMORY path.
func NewWithAllocator(a Allocator) *ZSet {
	return &ZSet{encoding: EncodingPacked, packed: newPacked(), alloc: a}
}

func (z *ZSet) Encoding() Encoding {
	return z.encoding
}

func (z *ZSet) Cardinality() int {
	if z.encoding == EncodingPacked {
		return z.packed.cardinality()
	}
	return z.indexed.cardinality()
}

func (z *ZSet) ScoreOf(m Member) (Score, bool) {
	if z.encoding == EncodingPacked {
		return z.packed.scoreOf(m)
	}
	return z.indexed.scoreOf(m)
}

func (z *ZSet) RankOf(m Member, reverse bool) (int, bool) {
	if z.encoding == EncodingPacked {
		return z.packed.rankOf(m, reverse)
	}
	return z.indexed.rankOf(m, reverse)
}

// Insert adds or updates a single member unconditionally (no flag matrix;
// callers implementing ZADD's NX/XX/GT/LT policy pre-check via ScoreOf and
// call Insert only when the policy allows the write).
func (z *ZSet) Insert(m Member, score Score) (Outcome, Score, error) {
	if math.IsNaN(float64(score)) {
		return Nop, 0, fmt.Errorf("score is not a number (NaN)")
	}
	if _, exists := z.ScoreOf(m); !exists {
		if err := z.alloc.Alloc(); err != nil {
			return Nop, 0, err
		}
	}
	if z.encoding == EncodingPacked {
		outcome, prev, overflow := z.packed.insert(m, score)
		if overflow {
			z.promote()
		}
		return outcome, prev, nil
	}
	outcome, prev := z.indexed.insert(m, score)
	return outcome, prev, nil
}

// Remove deletes m. Returns true if it was present.
func (z *ZSet) Remove(m Member) bool {
	if z.encoding == EncodingPacked {
		return z.packed.remove(m)
	}
	return z.indexed.remove(m)
}

// promote rebuilds the set as indexed encoding from the current packed
// contents. It is one-way: a ZSet never demotes back to packed.
func (z *ZSet) promote() {
	ix := newIndexed()
	for _, e := range z.packed.all() {
		ix.insert(e.Member, e.Score)
	}
	z.encoding = EncodingIndexed
	z.indexed = ix
	z.packed = nil
}

func (z *ZSet) All() []Pair {
	if z.encoding == EncodingPacked {
		return z.packed.all()
	}
	return z.indexed.all()
}

func (z *ZSet) RangeByRank(interval RankInterval, params RangeParams) []Pair {
	if z.encoding == EncodingPacked {
		return z.packed.iterRangeRank(interval.Start, interval.End, params.Reverse)
	}
	return z.indexed.iterRangeRank(interval.Start, interval.End, params.Reverse)
}

// RangeByScore walks the score interval. Reverse traversal direction is
// handled here; callers are responsible for handing Min/Max in data order
// regardless of which side of the command (e.g. ZREVRANGEBYSCORE takes its
// upper bound as the first argument) the bound came from — spec §6.
func (z *ZSet) RangeByScore(interval ScoreInterval, params RangeParams) []Pair {
	if z.encoding == EncodingPacked {
		return z.packed.iterRangeScore(interval, params.Reverse, params.Offset, params.Limit)
	}
	return z.indexed.iterRangeScore(interval, params.Reverse, params.Offset, params.Limit)
}

func (z *ZSet) RangeByLex(interval LexInterval, params RangeParams) []Pair {
	if z.encoding == EncodingPacked {
		return z.packed.iterRangeLex(interval, params.Reverse, params.Offset, params.Limit)
	}
	return z.indexed.iterRangeLex(interval, params.Reverse, params.Offset, params.Limit)
}

func (z *ZSet) RemoveByRank(interval RankInterval) int {
	if z.encoding == EncodingPacked {
		return z.packed.deleteRangeRank(interval.Start, interval.End)
	}
	return z.indexed.deleteRangeRank(interval.Start, interval.End)
}

func (z *ZSet) RemoveByScore(interval ScoreInterval) int {
	if z.encoding == EncodingPacked {
		return z.packed.deleteRangeScore(interval)
	}
	return z.indexed.deleteRangeScore(interval)
}

func (z *ZSet) RemoveByLex(interval LexInterval) int {
	if z.encoding == EncodingPacked {
		return z.packed.deleteRangeLex(interval)
	}
	return z.indexed.deleteRangeLex(interval)
}

// CountByScore counts members in the score interval (backs ZCOUNT) by
// walking the copy of every member that All returns.
func (z *ZSet) CountByScore(interval ScoreInterval) int {
	count := 0
	for _, e := range z.All() {
		if scoreInRange(e.Score, interval) {
			count++
		}
	}
	return count
}

// CountByLex counts members in the lex interval (backs ZLEXCOUNT). Per
// Redis semantics, ZLEXCOUNT assumes every member shares the same score;
// callers are expected to have already validated this upstream if they
// care, but the count itself is well defined regardless.
func (z *ZSet) CountByLex(interval LexInterval) int {
	count := 0
	for _, e := range z.All() {
		if lexInRange(e.Member, interval) {
			count++
		}
	}
	return count
}

// Scan implements the ZSCAN cursor contract (spec §4.8): packed sets are
// returned in a single shot with cursor 0; indexed sets are walked in
// bounded batches capped at 20 yielded entries (or count*10 probes,
// whichever is smaller in effect here since every probe yields a member).
func (z *ZSet) Scan(cursor uint64, count uint64) ([]Pair, uint64) {
	if z.encoding == EncodingPacked {
		return z.packed.all(), 0
	}
	if count == 0 {
		count = 10
	}
	limit := count * 10
	if limit > 20 {
		limit = 20
	}
	order := z.indexed.scanOrder()
	if cursor >= uint64(len(order)) {
		return nil, 0
	}
	end := cursor + limit
	if end >= uint64(len(order)) {
		end = uint64(len(order))
	}
	out := make([]Pair, 0, end-cursor)
	for _, m := range order[cursor:end] {
		score, _ := z.indexed.scoreOf(m)
		out = append(out, Pair{Member: m, Score: score})
	}
	next := end
	if next >= uint64(len(order)) {
		next = 0
	}
	return out, next
}
