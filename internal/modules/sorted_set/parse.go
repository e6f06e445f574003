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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/coreshard/zsetd/internal"
	"github.com/coreshard/zsetd/internal/constants"
	"github.com/coreshard/zsetd/internal/zset"
)

// parseScoreBound parses one ZRANGEBYSCORE/ZCOUNT/ZREMRANGEBYSCORE
// endpoint: a bare float, "-inf"/"+inf", or a "(" prefix marking the bound
// exclusive (spec §4.4).
func parseScoreBound(tok string) (zset.Bound, error) {
	open := false
	if strings.HasPrefix(tok, "(") {
		open = true
		tok = tok[1:]
	}
	switch strings.ToLower(tok) {
	case "-inf":
		return zset.Bound{Value: zset.Score(math.Inf(-1)), Open: open}, nil
	case "+inf", "inf":
		return zset.Bound{Value: zset.Score(math.Inf(1)), Open: open}, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return zset.Bound{}, errors.New("min or max is not a float")
	}
	return zset.Bound{Value: zset.Score(f), Open: open}, nil
}

func parseScoreInterval(minTok, maxTok string) (zset.ScoreInterval, error) {
	min, err := parseScoreBound(minTok)
	if err != nil {
		return zset.ScoreInterval{}, err
	}
	max, err := parseScoreBound(maxTok)
	if err != nil {
		return zset.ScoreInterval{}, err
	}
	return zset.ScoreInterval{Min: min, Max: max}, nil
}

// parseLexBound parses one ZRANGEBYLEX/ZLEXCOUNT/ZREMRANGEBYLEX endpoint:
// "-", "+", "[member" (closed), or "(member" (open) (spec §4.4).
func parseLexBound(tok string) (zset.LexBound, error) {
	switch tok {
	case "-":
		return zset.LexBound{Kind: zset.LexMinusInf}, nil
	case "+":
		return zset.LexBound{Kind: zset.LexPlusInf}, nil
	}
	if len(tok) == 0 {
		return zset.LexBound{}, errors.New("min or max not valid string range item")
	}
	switch tok[0] {
	case '[':
		return zset.LexBound{Kind: zset.LexClosed, Value: zset.Member(tok[1:])}, nil
	case '(':
		return zset.LexBound{Kind: zset.LexOpen, Value: zset.Member(tok[1:])}, nil
	default:
		return zset.LexBound{}, errors.New("min or max not valid string range item")
	}
}

func parseLexInterval(minTok, maxTok string) (zset.LexInterval, error) {
	min, err := parseLexBound(minTok)
	if err != nil {
		return zset.LexInterval{}, err
	}
	max, err := parseLexBound(maxTok)
	if err != nil {
		return zset.LexInterval{}, err
	}
	return zset.LexInterval{Min: min, Max: max}, nil
}

// parseRank parses a ZRANGE/ZREMRANGEBYRANK endpoint, which Redis allows to
// be negative (end-relative); the evaluator's packed/indexed layers resolve
// negative indices against the live cardinality.
func parseRank(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.New("value is not an integer or out of range")
	}
	return n, nil
}

// parseAddArgs parses the ZADD argument tail (everything after the key)
// into its flag matrix and (member, score) pairs, following the same
// "scan until the first token that looks like a score" strategy the
// teacher's handleZADD uses to separate options from the score/member list.
func parseAddArgs(tokens []string) ([]zset.Pair, zset.AddFlags, error) {
	membersStart := -1
	for i, t := range tokens {
		switch internal.AdaptType(t).(type) {
		case int, float64:
			membersStart = i
		case string:
			if strings.EqualFold(t, "-inf") || strings.EqualFold(t, "+inf") {
				membersStart = i
			}
		}
		if membersStart != -1 {
			break
		}
	}
	if membersStart == -1 || len(tokens[membersStart:])%2 != 0 {
		return nil, zset.AddFlags{}, errors.New("score/member pairs must be float/string")
	}

	var flags zset.AddFlags
	var nx, xx, gt, lt bool
	for _, opt := range tokens[:membersStart] {
		switch {
		case strings.EqualFold(opt, "NX"):
			nx = true
			flags.Policy = zset.PolicyNX
		case strings.EqualFold(opt, "XX"):
			xx = true
			flags.Policy = zset.PolicyXX
		case strings.EqualFold(opt, "GT"):
			gt = true
			flags.Comparison = zset.CompareGT
		case strings.EqualFold(opt, "LT"):
			lt = true
			flags.Comparison = zset.CompareLT
		case strings.EqualFold(opt, "CH"):
			flags.Changed = true
		case strings.EqualFold(opt, "INCR"):
			flags.Incr = true
		default:
			return nil, zset.AddFlags{}, fmt.Errorf("invalid option %q", opt)
		}
	}
	// The AddFlags model keeps only one Policy/Comparison value each, so
	// NX+XX and GT+LT conflicts (last-token-wins) must be caught here,
	// before they collapse into a single value ValidateAddFlags can't tell
	// apart from a single flag (spec §7 SYNTAXERR: NX+XX, GT+LT, GT|LT+NX).
	if nx && xx {
		return nil, zset.AddFlags{}, errors.New("XX and NX options at the same time are not compatible")
	}
	if gt && lt {
		return nil, zset.AddFlags{}, errors.New("GT, LT, and/or NX options at the same time are not compatible")
	}
	if err := zset.ValidateAddFlags(flags); err != nil {
		return nil, zset.AddFlags{}, err
	}

	rest := tokens[membersStart:]
	if flags.Incr && len(rest) != 2 {
		return nil, zset.AddFlags{}, errors.New("INCR option supports a single increment-element pair")
	}

	members := make([]zset.Pair, 0, len(rest)/2)
	for i := 0; i < len(rest); i += 2 {
		bound, err := parseScoreBound(rest[i])
		if err != nil {
			return nil, zset.AddFlags{}, errors.New("invalid score in score/member list")
		}
		members = append(members, zset.Pair{Member: zset.Member(rest[i+1]), Score: bound.Value})
	}
	return members, flags, nil
}

// rangeSpec is the fully-parsed form of a generalized ZRANGE/ZRANGESTORE
// invocation (spec §4.6): exactly one interval kind, a direction, and an
// optional LIMIT.
type rangeSpec struct {
	interval   zset.Interval
	params     zset.RangeParams
	withScores bool
}

// parseGeneralizedRange parses the common tail shared by ZRANGE and
// ZRANGESTORE: "<min> <max> [BYSCORE|BYLEX] [REV] [LIMIT offset count]
// [WITHSCORES]". By default the range is interpreted as a rank interval.
func parseGeneralizedRange(minTok, maxTok string, rest []string) (rangeSpec, error) {
	var spec rangeSpec
	byScore, byLex, rev := false, false, false
	var limitOffset, limitCount int
	hasLimit := false

	for i := 0; i < len(rest); i++ {
		switch strings.ToUpper(rest[i]) {
		case "BYSCORE":
			byScore = true
		case "BYLEX":
			byLex = true
		case "REV":
			rev = true
		case "WITHSCORES":
			spec.withScores = true
		case "LIMIT":
			if i+2 >= len(rest) {
				return rangeSpec{}, errors.New(constants.WrongArgsResponse)
			}
			off, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return rangeSpec{}, errors.New("limit offset is not an integer")
			}
			cnt, err := strconv.Atoi(rest[i+2])
			if err != nil {
				return rangeSpec{}, errors.New("limit count is not an integer")
			}
			limitOffset, limitCount, hasLimit = off, cnt, true
			i += 2
		default:
			return rangeSpec{}, fmt.Errorf("invalid option %q", rest[i])
		}
	}
	if byScore && byLex {
		return rangeSpec{}, errors.New("BYSCORE and BYLEX options are not compatible")
	}
	if hasLimit && !byScore && !byLex {
		return rangeSpec{}, errors.New("syntax error, LIMIT is only supported in combination with either BYSCORE or BYLEX")
	}

	spec.params.Reverse = rev
	if hasLimit {
		spec.params.Offset = uint32(limitOffset)
		if limitCount < 0 {
			spec.params.Limit = zset.NoLimit
		} else {
			spec.params.Limit = uint32(limitCount)
		}
	} else {
		spec.params.Limit = zset.NoLimit
	}

	switch {
	case byScore:
		// ZRANGE REV BYSCORE takes its bounds max-then-min, like
		// ZREVRANGEBYSCORE; normalize so Min/Max are in data order here and
		// let ZSet.RangeByScore's Reverse flag drive traversal direction.
		first, second := minTok, maxTok
		if rev {
			first, second = maxTok, minTok
		}
		interval, err := parseScoreInterval(first, second)
		if err != nil {
			return rangeSpec{}, err
		}
		spec.interval = zset.Interval{Kind: zset.ByScore, Score: interval}
	case byLex:
		first, second := minTok, maxTok
		if rev {
			first, second = maxTok, minTok
		}
		interval, err := parseLexInterval(first, second)
		if err != nil {
			return rangeSpec{}, err
		}
		spec.interval = zset.Interval{Kind: zset.ByLex, Lex: interval}
	default:
		start, err := parseRank(minTok)
		if err != nil {
			return rangeSpec{}, err
		}
		end, err := parseRank(maxTok)
		if err != nil {
			return rangeSpec{}, err
		}
		spec.interval = zset.Interval{Kind: zset.ByRank, Rank: zset.RankInterval{Start: start, End: end}}
	}
	return spec, nil
}

// parseAggregateOpts parses the WEIGHTS/AGGREGATE/WITHSCORES tail shared by
// ZUNIONSTORE and ZINTERSTORE.
func parseAggregateOpts(tokens []string, numKeys int) (weights []float64, aggFn aggregateFn, withScores bool, err error) {
	aggFn = aggregateSum
	for i := 0; i < len(tokens); i++ {
		switch strings.ToUpper(tokens[i]) {
		case "WEIGHTS":
			if i+numKeys >= len(tokens) {
				return nil, nil, false, errors.New(constants.WrongArgsResponse)
			}
			weights = make([]float64, numKeys)
			for j := 0; j < numKeys; j++ {
				f, perr := strconv.ParseFloat(tokens[i+1+j], 64)
				if perr != nil {
					return nil, nil, false, errors.New("weight value is not a float")
				}
				weights[j] = f
			}
			i += numKeys
		case "AGGREGATE":
			if i+1 >= len(tokens) {
				return nil, nil, false, errors.New(constants.WrongArgsResponse)
			}
			switch strings.ToUpper(tokens[i+1]) {
			case "SUM":
				aggFn = aggregateSum
			case "MIN":
				aggFn = aggregateMin
			case "MAX":
				aggFn = aggregateMax
			default:
				return nil, nil, false, errors.New("syntax error")
			}
			i++
		case "WITHSCORES":
			withScores = true
		default:
			return nil, nil, false, fmt.Errorf("invalid option %q", tokens[i])
		}
	}
	return weights, aggFn, withScores, nil
}
