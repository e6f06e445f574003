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

// Package zset implements the dual-encoding sorted-set container: a compact
// packed buffer for small sets and a skiplist+hashmap pair once a set grows
// past the packed thresholds.
package zset

import "math"

// Member is a sorted-set element's string identity.
type Member string

// Score is a sorted-set element's associated value. Never NaN.
type Score float64

// MaxPackedValue is the longest a member may be (in bytes) while the
// enclosing set is still eligible for the packed encoding. A package var
// rather than a const so config.Config can lower or raise it at startup
// (spec §3's packed/indexed thresholds are operator-tunable, mirroring
// Redis's own listpack-entries/listpack-value knobs); leave untouched to
// get the defaults below.
var MaxPackedValue = 64

// MaxPackedEntries is the largest cardinality a set may reach while still
// eligible for the packed encoding. See MaxPackedValue.
var MaxPackedEntries = 128

// Outcome describes what AddOrUpdate did with a single (member, score) pair.
type Outcome int

const (
	Nop Outcome = iota
	Added
	Updated
)

// UpdatePolicy mirrors the ZADD NX/XX flags.
type UpdatePolicy int

const (
	PolicyNone UpdatePolicy = iota
	PolicyNX
	PolicyXX
)

// Comparison mirrors the ZADD GT/LT flags.
type Comparison int

const (
	CompareNone Comparison = iota
	CompareGT
	CompareLT
)

// AddFlags is the parsed ZADD flag matrix (spec §4.5).
type AddFlags struct {
	Policy     UpdatePolicy
	Comparison Comparison
	Changed    bool // CH
	Incr       bool // INCR
}

// Bound is one endpoint of a ScoreInterval.
type Bound struct {
	Value Score
	Open  bool
}

var (
	MinScore = Bound{Value: Score(math.Inf(-1)), Open: false}
	MaxScore = Bound{Value: Score(math.Inf(1)), Open: false}
)

// ScoreInterval is a [min,max] (or open-ended) range over scores.
type ScoreInterval struct {
	Min Bound
	Max Bound
}

// LexBoundKind distinguishes the four forms a lex endpoint can take.
type LexBoundKind int

const (
	LexMinusInf LexBoundKind = iota
	LexPlusInf
	LexOpen
	LexClosed
)

// LexBound is one endpoint of a LexInterval.
type LexBound struct {
	Kind  LexBoundKind
	Value Member
}

// LexInterval is a lexicographic range over member bytes.
type LexInterval struct {
	Min LexBound
	Max LexBound
}

// RankInterval is an inclusive, possibly end-relative, rank range.
type RankInterval struct {
	Start int
	End   int
}

// RangeParams configures how an interval is walked and emitted.
type RangeParams struct {
	Reverse    bool
	WithScores bool
	Offset     uint32
	Limit      uint32 // math.MaxUint32 means "no limit"
}

// NoLimit is the sentinel RangeParams.Limit value meaning "unbounded".
const NoLimit = ^uint32(0)

// Pair is a single (member, score) result emitted by a range scan.
type Pair struct {
	Member Member
	Score  Score
}

// Encoding identifies which physical representation a ZSet currently uses.
type Encoding int

const (
	EncodingPacked Encoding = iota
	EncodingIndexed
)
