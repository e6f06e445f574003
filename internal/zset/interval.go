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

// IntervalKind selects which of the three ordering domains an Interval
// addresses (spec §4.4, design note "sum type Interval ∈ {Rank, Score, Lex}").
type IntervalKind int

const (
	ByRank IntervalKind = iota
	ByScore
	ByLex
)

// Interval is the generic argument to Evaluator: exactly one of Rank, Score,
// or Lex is meaningful, selected by Kind.
type Interval struct {
	Kind  IntervalKind
	Rank  RankInterval
	Score ScoreInterval
	Lex   LexInterval
}

// Evaluator is the single operator (C4) that realizes RANGE and REMOVE for
// all three interval kinds over a ZSet, rather than one method per
// combination of (action, kind).
type Evaluator struct {
	Set *ZSet
}

func NewEvaluator(z *ZSet) Evaluator {
	return Evaluator{Set: z}
}

// Range returns the matching (member, score) pairs in the order and volume
// RangeParams dictates.
func (e Evaluator) Range(interval Interval, params RangeParams) []Pair {
	switch interval.Kind {
	case ByRank:
		return e.Set.RangeByRank(interval.Rank, params)
	case ByScore:
		return e.Set.RangeByScore(interval.Score, params)
	default:
		return e.Set.RangeByLex(interval.Lex, params)
	}
}

// Remove deletes every member the interval matches and returns the count
// removed.
func (e Evaluator) Remove(interval Interval) int {
	switch interval.Kind {
	case ByRank:
		return e.Set.RemoveByRank(interval.Rank)
	case ByScore:
		return e.Set.RemoveByScore(interval.Score)
	default:
		return e.Set.RemoveByLex(interval.Lex)
	}
}
