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
	"sort"
)

// packed is the compact encoding: a slice of (member, score) pairs kept in
// (score, member) order at all times. Reads are linear, which is fine since
// it is only used below MaxPackedEntries/MaxPackedValue.
type packed struct {
	entries []Pair
}

func newPacked() *packed {
	return &packed{}
}

func lexLess(a, b Member) bool {
	return a < b
}

func pairLess(a, b Pair) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return lexLess(a.Member, b.Member)
}

func (p *packed) find(m Member) int {
	for i, e := range p.entries {
		if e.Member == m {
			return i
		}
	}
	return -1
}

// insert adds or updates m/score, keeping entries sorted. The bool return
// reports whether the encoding now exceeds the packed thresholds and must be
// promoted by the caller (ZSet.promoteIfNeeded).
func (p *packed) insert(m Member, score Score) (Outcome, Score, bool) {
	if i := p.find(m); i != -1 {
		prev := p.entries[i].Score
		if prev == score {
			return Nop, prev, p.overflows(m)
		}
		p.entries = append(p.entries[:i], p.entries[i+1:]...)
		pos := p.insertionPoint(Pair{Member: m, Score: score})
		p.entries = insertAt(p.entries, pos, Pair{Member: m, Score: score})
		return Updated, prev, p.overflows(m)
	}
	pos := p.insertionPoint(Pair{Member: m, Score: score})
	p.entries = insertAt(p.entries, pos, Pair{Member: m, Score: score})
	return Added, 0, p.overflows(m)
}

func (p *packed) overflows(justInserted Member) bool {
	if len(justInserted) > MaxPackedValue {
		return true
	}
	return len(p.entries) > MaxPackedEntries
}

func (p *packed) insertionPoint(e Pair) int {
	return sort.Search(len(p.entries), func(i int) bool {
		return !pairLess(p.entries[i], e)
	})
}

func insertAt(s []Pair, i int, v Pair) []Pair {
	s = append(s, Pair{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func (p *packed) remove(m Member) bool {
	i := p.find(m)
	if i == -1 {
		return false
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	return true
}

func (p *packed) scoreOf(m Member) (Score, bool) {
	if i := p.find(m); i != -1 {
		return p.entries[i].Score, true
	}
	return 0, false
}

func (p *packed) cardinality() int {
	return len(p.entries)
}

// rankOf returns the 0-based forward rank, or reverse rank when reverse is set.
func (p *packed) rankOf(m Member, reverse bool) (int, bool) {
	i := p.find(m)
	if i == -1 {
		return 0, false
	}
	if reverse {
		return len(p.entries) - 1 - i, true
	}
	return i, true
}

func (p *packed) all() []Pair {
	out := make([]Pair, len(p.entries))
	copy(out, p.entries)
	return out
}

// iterRangeRank returns the slice of entries within the clamped rank range.
func (p *packed) iterRangeRank(start, end int, reverse bool) []Pair {
	n := len(p.entries)
	s, e, ok := clampRank(start, end, n)
	if !ok {
		return nil
	}
	sub := p.entries[s : e+1]
	if !reverse {
		out := make([]Pair, len(sub))
		copy(out, sub)
		return out
	}
	out := make([]Pair, len(sub))
	for i, j := 0, len(sub)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = sub[j]
	}
	return out
}

func (p *packed) deleteRangeRank(start, end int) int {
	n := len(p.entries)
	s, e, ok := clampRank(start, end, n)
	if !ok {
		return 0
	}
	removed := e - s + 1
	p.entries = append(p.entries[:s], p.entries[e+1:]...)
	return removed
}

func clampRank(start, end, n int) (s, e int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	if start < 0 {
		start = n + start
	}
	if end < 0 {
		end = n + end
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return 0, 0, false
	}
	return start, end, true
}

func scoreInRange(s Score, spec ScoreInterval) bool {
	if spec.Min.Open {
		if !(s > spec.Min.Value) {
			return false
		}
	} else if !(s >= spec.Min.Value) {
		return false
	}
	if spec.Max.Open {
		if !(s < spec.Max.Value) {
			return false
		}
	} else if !(s <= spec.Max.Value) {
		return false
	}
	return true
}

func lexInRange(m Member, spec LexInterval) bool {
	switch spec.Min.Kind {
	case LexPlusInf:
		return false
	case LexOpen:
		if !(m > spec.Min.Value) {
			return false
		}
	case LexClosed:
		if !(m >= spec.Min.Value) {
			return false
		}
	}
	switch spec.Max.Kind {
	case LexMinusInf:
		return false
	case LexOpen:
		if !(m < spec.Max.Value) {
			return false
		}
	case LexClosed:
		if !(m <= spec.Max.Value) {
			return false
		}
	}
	return true
}

// iterRangeScore walks entries by score order, honoring offset/limit/reverse.
func (p *packed) iterRangeScore(spec ScoreInterval, reverse bool, offset, limit uint32) []Pair {
	var ordered []Pair
	if !reverse {
		ordered = p.entries
	} else {
		ordered = make([]Pair, len(p.entries))
		for i, j := 0, len(p.entries)-1; j >= 0; i, j = i+1, j-1 {
			ordered[i] = p.entries[j]
		}
	}
	var out []Pair
	skipped := uint32(0)
	for _, e := range ordered {
		if !scoreInRange(e.Score, spec) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit != NoLimit && uint32(len(out)) >= limit {
			break
		}
		out = append(out, e)
	}
	return out
}

func (p *packed) iterRangeLex(spec LexInterval, reverse bool, offset, limit uint32) []Pair {
	var ordered []Pair
	if !reverse {
		ordered = p.entries
	} else {
		ordered = make([]Pair, len(p.entries))
		for i, j := 0, len(p.entries)-1; j >= 0; i, j = i+1, j-1 {
			ordered[i] = p.entries[j]
		}
	}
	var out []Pair
	skipped := uint32(0)
	for _, e := range ordered {
		if !lexInRange(e.Member, spec) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit != NoLimit && uint32(len(out)) >= limit {
			break
		}
		out = append(out, e)
	}
	return out
}

func (p *packed) deleteRangeScore(spec ScoreInterval) int {
	removed := 0
	kept := p.entries[:0:0]
	for _, e := range p.entries {
		if scoreInRange(e.Score, spec) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
	return removed
}

func (p *packed) deleteRangeLex(spec LexInterval) int {
	removed := 0
	kept := p.entries[:0:0]
	for _, e := range p.entries {
		if lexInRange(e.Member, spec) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.entries = kept
	return removed
}
