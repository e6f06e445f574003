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

// indexed is the skiplist+hashmap encoding used once a set outgrows the
// packed thresholds. The skiplist gives ordered/rank access; the hashmap
// gives O(1) score lookup. Invariant: they agree exactly on membership.
type indexed struct {
	sl      *skiplist
	members map[Member]Score
}

func newIndexed() *indexed {
	return &indexed{sl: newSkiplist(), members: make(map[Member]Score)}
}

func (ix *indexed) cardinality() int {
	return len(ix.members)
}

func (ix *indexed) scoreOf(m Member) (Score, bool) {
	s, ok := ix.members[m]
	return s, ok
}

// insert adds or updates m/score. Returns the outcome and, for Updated, the
// previous score.
func (ix *indexed) insert(m Member, score Score) (Outcome, Score) {
	if prev, ok := ix.members[m]; ok {
		if prev == score {
			return Nop, prev
		}
		ix.sl.delete(m, prev)
		ix.sl.insert(m, score)
		ix.members[m] = score
		return Updated, prev
	}
	ix.sl.insert(m, score)
	ix.members[m] = score
	return Added, 0
}

func (ix *indexed) remove(m Member) bool {
	score, ok := ix.members[m]
	if !ok {
		return false
	}
	ix.sl.delete(m, score)
	delete(ix.members, m)
	return true
}

func (ix *indexed) rankOf(m Member, reverse bool) (int, bool) {
	score, ok := ix.members[m]
	if !ok {
		return 0, false
	}
	fwd := ix.sl.rankOf(m, score)
	if !reverse {
		return fwd, true
	}
	return ix.sl.length - 1 - fwd, true
}

func (ix *indexed) all() []Pair {
	out := make([]Pair, 0, ix.sl.length)
	for x := ix.sl.head.level[0].forward; x != nil; x = x.level[0].forward {
		out = append(out, Pair{Member: x.member, Score: x.score})
	}
	return out
}

func (ix *indexed) iterRangeRank(start, end int, reverse bool) []Pair {
	s, e, ok := clampRank(start, end, ix.sl.length)
	if !ok {
		return nil
	}
	var out []Pair
	if !reverse {
		x := ix.sl.nodeAtRank(s)
		for i := s; i <= e && x != nil; i, x = i+1, x.level[0].forward {
			out = append(out, Pair{Member: x.member, Score: x.score})
		}
		return out
	}
	// reverse: rank r (0-based reverse) corresponds to forward rank length-1-r
	x := ix.sl.nodeAtRank(ix.sl.length - 1 - s)
	for i := s; i <= e && x != nil; i, x = i+1, x.backward {
		out = append(out, Pair{Member: x.member, Score: x.score})
	}
	return out
}

func (ix *indexed) deleteRangeRank(start, end int) int {
	s, e, ok := clampRank(start, end, ix.sl.length)
	if !ok {
		return 0
	}
	x := ix.sl.nodeAtRank(s)
	removed := 0
	for i := s; i <= e && x != nil; i++ {
		next := x.level[0].forward
		ix.remove(x.member)
		removed++
		x = next
	}
	return removed
}

func (ix *indexed) iterRangeScore(spec ScoreInterval, reverse bool, offset, limit uint32) []Pair {
	var out []Pair
	skipped := uint32(0)
	if !reverse {
		x := ix.sl.firstInScoreRange(spec)
		for x != nil && scoreInRange(x.score, spec) {
			if skipped < offset {
				skipped++
				x = x.level[0].forward
				continue
			}
			if limit != NoLimit && uint32(len(out)) >= limit {
				break
			}
			out = append(out, Pair{Member: x.member, Score: x.score})
			x = x.level[0].forward
		}
		return out
	}
	x := ix.sl.lastInScoreRange(spec)
	for x != nil && scoreInRange(x.score, spec) {
		if skipped < offset {
			skipped++
			x = x.backward
			continue
		}
		if limit != NoLimit && uint32(len(out)) >= limit {
			break
		}
		out = append(out, Pair{Member: x.member, Score: x.score})
		x = x.backward
	}
	return out
}

func (ix *indexed) iterRangeLex(spec LexInterval, reverse bool, offset, limit uint32) []Pair {
	var out []Pair
	skipped := uint32(0)
	if !reverse {
		x := ix.sl.firstInLexRange(spec)
		for x != nil && lexInRange(x.member, spec) {
			if skipped < offset {
				skipped++
				x = x.level[0].forward
				continue
			}
			if limit != NoLimit && uint32(len(out)) >= limit {
				break
			}
			out = append(out, Pair{Member: x.member, Score: x.score})
			x = x.level[0].forward
		}
		return out
	}
	x := ix.sl.lastInLexRange(spec)
	for x != nil && lexInRange(x.member, spec) {
		if skipped < offset {
			skipped++
			x = x.backward
			continue
		}
		if limit != NoLimit && uint32(len(out)) >= limit {
			break
		}
		out = append(out, Pair{Member: x.member, Score: x.score})
		x = x.backward
	}
	return out
}

func (ix *indexed) deleteRangeScore(spec ScoreInterval) int {
	removed := 0
	x := ix.sl.firstInScoreRange(spec)
	for x != nil && scoreInRange(x.score, spec) {
		next := x.level[0].forward
		ix.remove(x.member)
		removed++
		x = next
	}
	return removed
}

func (ix *indexed) deleteRangeLex(spec LexInterval) int {
	removed := 0
	x := ix.sl.firstInLexRange(spec)
	for x != nil && lexInRange(x.member, spec) {
		next := x.level[0].forward
		ix.remove(x.member)
		removed++
		x = next
	}
	return removed
}

// scanOrder returns every member in a deterministic lexical order. Go map
// iteration order is randomized per range statement, so ZSCAN's cursor is
// defined as an index into this sorted order rather than into raw hashmap
// bucket order (spec §4.8 asks only for a bounded, resumable walk, not a
// specific order).
func (ix *indexed) scanOrder() []Member {
	order := make([]Member, 0, len(ix.members))
	for m := range ix.members {
		order = append(order, m)
	}
	sortMembers(order)
	return order
}
