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

// Package sorted_set implements the ZSET command family (spec §4): argument
// parsing, key extraction and the command table that wires each handler
// through the shard scheduler.
package sorted_set

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/coreshard/zsetd/internal"
	"github.com/coreshard/zsetd/internal/constants"
	"github.com/coreshard/zsetd/internal/shard"
	"github.com/coreshard/zsetd/internal/zset"
)

func handleZADD(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zaddKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]

	members, flags, err := parseAddArgs(cmd[2:])
	if err != nil {
		return nil, err
	}

	res, err := shard.ScheduleSingleHop(ss, key, true, func(sh *shard.Shard) (zset.AddResult, error) {
		z := sh.GetOrCreate(key)
		res, err := z.AddOrUpdate(members, flags)
		sh.SyncEmpty(key)
		return res, err
	})
	if err != nil {
		return nil, err
	}

	if flags.Incr {
		if !res.IncrOK {
			return internal.WriteNilBulkString(), nil
		}
		formatted := internal.FormatScore(float64(res.IncrScore))
		return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(formatted), formatted)), nil
	}
	if flags.Changed {
		return internal.WriteInteger(res.Changed), nil
	}
	return internal.WriteInteger(res.Added), nil
}

func handleZCARD(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zcardKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	n, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (int, error) {
		z := sh.Get(key)
		if z == nil {
			return 0, nil
		}
		return z.Cardinality(), nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func handleZCOUNT(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zcountKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	interval, err := parseScoreInterval(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}

	n, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (int, error) {
		z := sh.Get(key)
		if z == nil {
			return 0, nil
		}
		return z.CountByScore(interval), nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func handleZLEXCOUNT(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zlexcountKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	interval, err := parseLexInterval(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}

	n, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (int, error) {
		z := sh.Get(key)
		if z == nil {
			return 0, nil
		}
		return z.CountByLex(interval), nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func handleZINCRBY(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zincrbyKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]

	bound, err := parseScoreBound(cmd[2])
	if err != nil {
		return nil, errors.New("value is not a valid float")
	}
	member := zset.Member(cmd[3])

	newScore, err := shard.ScheduleSingleHop(ss, key, true, func(sh *shard.Shard) (zset.Score, error) {
		z := sh.GetOrCreate(key)
		existing, ok := z.ScoreOf(member)
		target := bound.Value
		if ok {
			target = existing + bound.Value
		}
		if _, _, err := z.Insert(member, target); err != nil {
			sh.SyncEmpty(key)
			return 0, err
		}
		return target, nil
	})
	if err != nil {
		return nil, err
	}
	formatted := internal.FormatScore(float64(newScore))
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(formatted), formatted)), nil
}

func handleZSCORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zscoreKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	member := zset.Member(cmd[2])

	type result struct {
		score zset.Score
		found bool
	}
	res, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (result, error) {
		z := sh.Get(key)
		if z == nil {
			return result{}, nil
		}
		s, ok := z.ScoreOf(member)
		return result{score: s, found: ok}, nil
	})
	if err != nil {
		return nil, err
	}
	if !res.found {
		return internal.WriteNilBulkString(), nil
	}
	formatted := internal.FormatScore(float64(res.score))
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(formatted), formatted)), nil
}

func handleZMSCORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zmscoreKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	members := cmd[2:]

	type scoreOrNil struct {
		score zset.Score
		found bool
	}
	results, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) ([]scoreOrNil, error) {
		z := sh.Get(key)
		out := make([]scoreOrNil, len(members))
		if z == nil {
			return out, nil
		}
		for i, m := range members {
			s, ok := z.ScoreOf(zset.Member(m))
			out[i] = scoreOrNil{score: s, found: ok}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%d\r\n", len(results))
	for _, r := range results {
		if !r.found {
			b.WriteString("$-1\r\n")
			continue
		}
		formatted := internal.FormatScore(float64(r.score))
		fmt.Fprintf(&b, "$%d\r\n%s\r\n", len(formatted), formatted)
	}
	return []byte(b.String()), nil
}

func handleZRANK(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return rankHandler(ss, cmd, false)
}

func handleZREVRANK(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return rankHandler(ss, cmd, true)
}

func rankHandler(ss *shard.ShardSet, cmd []string, reverse bool) ([]byte, error) {
	keys, err := zrankKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	member := zset.Member(cmd[2])
	withScore := len(cmd) == 4 && strings.EqualFold(cmd[3], "WITHSCORE")
	if len(cmd) == 4 && !withScore {
		return nil, fmt.Errorf("invalid option %q", cmd[3])
	}

	type result struct {
		rank  int
		score zset.Score
		found bool
	}
	res, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (result, error) {
		z := sh.Get(key)
		if z == nil {
			return result{}, nil
		}
		rank, ok := z.RankOf(member, reverse)
		if !ok {
			return result{}, nil
		}
		score, _ := z.ScoreOf(member)
		return result{rank: rank, score: score, found: true}, nil
	})
	if err != nil {
		return nil, err
	}
	if !res.found {
		if withScore {
			return []byte("*-1\r\n"), nil
		}
		return internal.WriteNilBulkString(), nil
	}
	if !withScore {
		return internal.WriteInteger(res.rank), nil
	}
	formatted := internal.FormatScore(float64(res.score))
	return []byte(fmt.Sprintf("*2\r\n:%d\r\n$%d\r\n%s\r\n", res.rank, len(formatted), formatted)), nil
}

func handleZREM(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zremKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.WriteKeys[0]
	members := cmd[2:]

	n, err := shard.ScheduleSingleHop(ss, key, true, func(sh *shard.Shard) (int, error) {
		z := sh.Get(key)
		if z == nil {
			return 0, nil
		}
		removed := 0
		for _, m := range members {
			if z.Remove(zset.Member(m)) {
				removed++
			}
		}
		sh.SyncEmpty(key)
		return removed, nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func remRangeHandler(ss *shard.ShardSet, key string, interval zset.Interval) ([]byte, error) {
	n, err := shard.ScheduleSingleHop(ss, key, true, func(sh *shard.Shard) (int, error) {
		z := sh.Get(key)
		if z == nil {
			return 0, nil
		}
		ev := zset.NewEvaluator(z)
		removed := ev.Remove(interval)
		sh.SyncEmpty(key)
		return removed, nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func handleZREMRANGEBYRANK(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zremrangebyFunc(cmd)
	if err != nil {
		return nil, err
	}
	start, err := parseRank(cmd[2])
	if err != nil {
		return nil, err
	}
	end, err := parseRank(cmd[3])
	if err != nil {
		return nil, err
	}
	return remRangeHandler(ss, keys.WriteKeys[0], zset.Interval{Kind: zset.ByRank, Rank: zset.RankInterval{Start: start, End: end}})
}

func handleZREMRANGEBYSCORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zremrangebyFunc(cmd)
	if err != nil {
		return nil, err
	}
	interval, err := parseScoreInterval(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	return remRangeHandler(ss, keys.WriteKeys[0], zset.Interval{Kind: zset.ByScore, Score: interval})
}

func handleZREMRANGEBYLEX(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zremrangebyFunc(cmd)
	if err != nil {
		return nil, err
	}
	interval, err := parseLexInterval(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}
	return remRangeHandler(ss, keys.WriteKeys[0], zset.Interval{Kind: zset.ByLex, Lex: interval})
}

func writeRangeReply(pairs []zset.Pair, withScores bool) []byte {
	members := make([]string, len(pairs))
	scores := make([]float64, len(pairs))
	for i, p := range pairs {
		members[i] = string(p.Member)
		scores[i] = float64(p.Score)
	}
	return internal.WritePairArray(members, scores, withScores)
}

func rangeReadHandler(ss *shard.ShardSet, key string, interval zset.Interval, params zset.RangeParams, withScores bool) ([]byte, error) {
	pairs, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) ([]zset.Pair, error) {
		z := sh.Get(key)
		if z == nil {
			return nil, nil
		}
		ev := zset.NewEvaluator(z)
		return ev.Range(interval, params), nil
	})
	if err != nil {
		return nil, err
	}
	return writeRangeReply(pairs, withScores), nil
}

func handleZRANGE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zrangeKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	spec, err := parseGeneralizedRange(cmd[2], cmd[3], cmd[4:])
	if err != nil {
		return nil, err
	}
	return rangeReadHandler(ss, keys.ReadKeys[0], spec.interval, spec.params, spec.withScores)
}

func handleZREVRANGE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zrevrangeKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	start, err := parseRank(cmd[2])
	if err != nil {
		return nil, err
	}
	end, err := parseRank(cmd[3])
	if err != nil {
		return nil, err
	}
	withScores := false
	if len(cmd) == 5 {
		if !strings.EqualFold(cmd[4], "WITHSCORES") {
			return nil, fmt.Errorf("invalid option %q", cmd[4])
		}
		withScores = true
	}
	interval := zset.Interval{Kind: zset.ByRank, Rank: zset.RankInterval{Start: start, End: end}}
	params := zset.RangeParams{Reverse: true, WithScores: withScores, Limit: zset.NoLimit}
	return rangeReadHandler(ss, keys.ReadKeys[0], interval, params, withScores)
}

// rangeByScoreHandler backs both ZRANGEBYSCORE and ZREVRANGEBYSCORE, whose
// only difference is argument order (min-max vs max-min) and default
// traversal direction.
func rangeByScoreHandler(ss *shard.ShardSet, cmd []string, reverse bool) ([]byte, error) {
	keys, err := zrangebyscoreKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	minTok, maxTok := cmd[2], cmd[3]
	if reverse {
		minTok, maxTok = cmd[3], cmd[2]
	}
	interval, err := parseScoreInterval(minTok, maxTok)
	if err != nil {
		return nil, err
	}

	params := zset.RangeParams{Reverse: reverse, Limit: zset.NoLimit}
	withScores := false
	for i := 4; i < len(cmd); i++ {
		switch strings.ToUpper(cmd[i]) {
		case "WITHSCORES":
			withScores = true
		case "LIMIT":
			if i+2 >= len(cmd) {
				return nil, errors.New(constants.WrongArgsResponse)
			}
			off, err := strconv.Atoi(cmd[i+1])
			if err != nil {
				return nil, errors.New("limit offset is not an integer")
			}
			cnt, err := strconv.Atoi(cmd[i+2])
			if err != nil {
				return nil, errors.New("limit count is not an integer")
			}
			params.Offset = uint32(off)
			if cnt < 0 {
				params.Limit = zset.NoLimit
			} else {
				params.Limit = uint32(cnt)
			}
			i += 2
		default: 
			return nil, fmt.Errorf("invalid option %q", cmd[i])
		}
	}
	params.WithScores = withScores
	return rangeReadHandler(ss, keys.ReadKeys[0], zset.Interval{Kind: zset.ByScore, Score: interval}, params, withScores)
}

func handleZRANGEBYSCORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return rangeByScoreHandler(ss, cmd, false)
}

func handleZREVRANGEBYSCORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return rangeByScoreHandler(ss, cmd, true)
}

func handleZRANGEBYLEX(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zrangebylexKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	interval, err := parseLexInterval(cmd[2], cmd[3])
	if err != nil {
		return nil, err
	}

	params := zset.RangeParams{Limit: zset.NoLimit}
	for i := 4; i < len(cmd); i++ {
		if !strings.EqualFold(cmd[i], "LIMIT") {
			return nil, fmt.Errorf("invalid option %q", cmd[i])
		}
		if i+2 >= len(cmd) {
			return nil, errors.New(constants.WrongArgsResponse)
		}
		// Offset then count, in that order: the teacher's own ZRANGEBYLEX
		// parser swaps these two, which spec §9 calls out as a bug. We parse
		// them in the order Redis documents.
		off, err := strconv.Atoi(cmd[i+1])
		if err != nil {
			return nil, errors.New("limit offset is not an integer")
		}
		cnt, err := strconv.Atoi(cmd[i+2])
		if err != nil {
			return nil, errors.New("limit count is not an integer")
		}
		params.Offset = uint32(off)
		if cnt < 0 {
			params.Limit = zset.NoLimit
		} else {
			params.Limit = uint32(cnt)
		}
		i += 2
	}
	return rangeReadHandler(ss, keys.ReadKeys[0], zset.Interval{Kind: zset.ByLex, Lex: interval}, params, false)
}

func handleZRANGESTORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zrangestoreKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	dest, src := keys.WriteKeys[0], keys.ReadKeys[0]
	spec, err := parseGeneralizedRange(cmd[3], cmd[4], cmd[5:])
	if err != nil {
		return nil, err
	}

	pairs, err := shard.ScheduleSingleHop(ss, src, false, func(sh *shard.Shard) ([]zset.Pair, error) {
		z := sh.Get(src)
		if z == nil {
			return nil, nil
		}
		ev := zset.NewEvaluator(z)
		return ev.Range(spec.interval, spec.params), nil
	})
	if err != nil {
		return nil, err
	}

	n, err := shard.ScheduleSingleHop(ss, dest, true, func(sh *shard.Shard) (int, error) {
		if len(pairs) == 0 {
			sh.Delete(dest)
			return 0, nil
		}
		z := zset.New()
		for _, p := range pairs {
			if _, _, err := z.Insert(p.Member, p.Score); err != nil {
				return 0, err
			}
		}
		sh.Set(dest, z)
		return z.Cardinality(), nil
	})
	if err != nil {
		return nil, err
	}
	return internal.WriteInteger(n), nil
}

func handleZSCAN(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zscanKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]
	cursor, err := strconv.ParseUint(cmd[2], 10, 64)
	if err != nil {
		return nil, errors.New("cursor is not an integer")
	}
	var count uint64 = 10
	for i := 3; i < len(cmd); i++ {
		if strings.EqualFold(cmd[i], "COUNT") && i+1 < len(cmd) {
			c, err := strconv.ParseUint(cmd[i+1], 10, 64)
			if err != nil {
				return nil, errors.New("count is not an integer")
			}
			count = c
			i++
			continue
		}
		return nil, fmt.Errorf("invalid option %q", cmd[i])
	}

	type result struct {
		pairs []zset.Pair
		next  uint64
	}
	res, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) (result, error) {
		z := sh.Get(key)
		if z == nil {
			return result{}, nil
		}
		pairs, next := z.Scan(cursor, count)
		return result{pairs: pairs, next: next}, nil
	})
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(res.pairs)*2)
	for _, p := range res.pairs {
		members = append(members, string(p.Member), internal.FormatScore(float64(p.Score)))
	}
	cursorStr := strconv.FormatUint(res.next, 10)
	return []byte(fmt.Sprintf("*2\r\n$%d\r\n%s\r\n%s", len(cursorStr), cursorStr, internal.WriteStringArray(members))), nil
}

func handleZRANDMEMBER(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	keys, err := zrandmemberKeyFunc(cmd)
	if err != nil {
		return nil, err
	}
	key := keys.ReadKeys[0]

	count := 1
	explicitCount := false
	if len(cmd) >= 3 {
		c, err := strconv.Atoi(cmd[2])
		if err != nil {
			return nil, errors.New("value is not an integer or out of range")
		}
		count = c
		explicitCount = true
	}
	withScores := false
	if len(cmd) == 4 {
		if !strings.EqualFold(cmd[3], "WITHSCORES") {
			return nil, fmt.Errorf("invalid option %q", cmd[3])
		}
		withScores = true
	}

	pairs, err := shard.ScheduleSingleHop(ss, key, false, func(sh *shard.Shard) ([]zset.Pair, error) {
		z := sh.Get(key)
		if z == nil {
			return nil, nil
		}
		return z.All(), nil
	})
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		if !explicitCount {
			return internal.WriteNilBulkString(), nil
		}
		return internal.WriteStringArray(nil), nil
	}

	picked := pickRandomMembers(pairs, count)
	if !explicitCount {
		return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(picked[0].Member), picked[0].Member)), nil
	}
	return writeRangeReply(picked, withScores), nil
}

// pickRandomMembers implements ZRANDMEMBER's count semantics: a positive
// count returns up to that many distinct members; a negative count returns
// exactly abs(count) members, allowing repeats.
func pickRandomMembers(pairs []zset.Pair, count int) []zset.Pair {
	if count >= 0 {
		if count > len(pairs) {
			count = len(pairs)
		}
		shuffled := append([]zset.Pair(nil), pairs...)
		rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		return shuffled[:count]
	}
	n := -count
	out := make([]zset.Pair, n)
	for i := 0; i < n; i++ {
		out[i] = pairs[rand.Intn(len(pairs))]
	}
	return out
}

// setOpHandler implements the shared two-phase gather/store shape of
// ZUNIONSTORE and ZINTERSTORE (spec §4.7): gather folds each shard's
// contribution into a scoredMap, then the store phase keeps either every
// member seen (union) or only members seen in all source keys (intersect).
func setOpHandler(ss *shard.ShardSet, cmd []string, intersect bool) ([]byte, error) {
	destKey := cmd[1]
	numKeys, err := strconv.Atoi(cmd[2])
	if err != nil || numKeys < 1 {
		return nil, fmt.Errorf("at least 1 input key is needed for %s", strings.ToUpper(cmd[0]))
	}
	if len(cmd) < 3+numKeys {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	sourceKeys := cmd[3 : 3+numKeys]
	weights, aggFn, withScores, err := parseAggregateOpts(cmd[3+numKeys:], numKeys)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		weights = make([]float64, numKeys)
		for i := range weights {
			weights[i] = 1
		}
	}
	keyWeight := make(map[string]float64, numKeys)
	for i, k := range sourceKeys {
		keyWeight[k] = weights[i]
	}

	gather := func(sh *shard.Shard, keys []string) (scoredMap, error) {
		sm := newScoredMap(aggFn)
		for _, k := range keys {
			z := sh.Get(k)
			if z == nil {
				continue
			}
			sm.addSet(z, keyWeight[k])
		}
		return sm, nil
	}

	result, err := shard.ScheduleMultiHop(ss, sourceKeys, destKey, gather, mergeScoredMaps, newScoredMap(aggFn),
		func(sh *shard.Shard, merged scoredMap) (int, error) {
			var pairs []zset.Pair
			if intersect {
				pairs = merged.toIntersectPairs(numKeys)
			} else {
				pairs = merged.toUnionPairs()
			}
			if len(pairs) == 0 {
				sh.Delete(destKey)
				return 0, nil
			}
			z := zset.New()
			for _, p := range pairs {
				if _, _, err := z.Insert(p.Member, p.Score); err != nil {
					return 0, err
				}
			}
			sh.Set(destKey, z)
			return z.Cardinality(), nil
		})
	if err != nil {
		return nil, err
	}
	_ = withScores // ZUNIONSTORE/ZINTERSTORE reply is always a count; WITHSCORES has no effect on *STORE variants.
	return internal.WriteInteger(result), nil
}

func handleZUNIONSTORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return setOpHandler(ss, cmd, false)
}

func handleZINTERSTORE(ss *shard.ShardSet, cmd []string) ([]byte, error) {
	return setOpHandler(ss, cmd, true)
}

// Commands returns the ZSET command table, grouping every handler with its
// key-extraction function and arity the way the teacher's module registries
// do (spec §4).
func Commands() []internal.Command {
	return []internal.Command{
		{
			Name: "ZADD",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZADD key [NX | XX] [GT | LT] [CH] [INCR] score member [score member ...])
Adds members with their scores, honoring the NX/XX/GT/LT/CH/INCR flag matrix.`,
			KeyExtractionFunc: zaddKeyFunc,
			HandlerFunc: handleZADD,
		},
		{
			Name: "ZCARD",
			Arity: 2,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZCARD key) Returns the cardinality of the sorted set at key, or 0 if key does not exist.`,
			KeyExtractionFunc: zcardKeyFunc,
			HandlerFunc: handleZCARD,
		},
		{
			Name: "ZCOUNT",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZCOUNT key min max) Returns the number of members with scores in [min, max].`,
			KeyExtractionFunc: zcountKeyFunc,
			HandlerFunc: handleZCOUNT,
		},
		{
			Name: "ZINCRBY",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZINCRBY key increment member) Increments member's score by increment, creating key/member as needed.`,
			KeyExtractionFunc: zincrbyKeyFunc,
			HandlerFunc: handleZINCRBY,
		},
		{
			Name: "ZINTERSTORE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZINTERSTORE destination numkeys key [key ...] [WEIGHTS weight [weight ...]] [AGGREGATE SUM|MIN|MAX])
Stores the intersection of the given sorted sets in destination.`,
			KeyExtractionFunc: zinterstoreKeyFunc,
			HandlerFunc: handleZINTERSTORE,
		},
		{
			Name: "ZLEXCOUNT",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZLEXCOUNT key min max) Counts members in the lexicographic range [min, max], assuming all members share one score.`,
			KeyExtractionFunc: zlexcountKeyFunc,
			HandlerFunc: handleZLEXCOUNT,
		},
		{
			Name: "ZRANGE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGE key start stop [BYSCORE | BYLEX] [REV] [LIMIT offset count] [WITHSCORES])
Generalized range query over rank, score, or lex ordering.`,
			KeyExtractionFunc: zrangeKeyFunc,
			HandlerFunc: handleZRANGE,
		},
		{
			Name: "ZRANGESTORE",
			Arity: -5,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZRANGESTORE dst src min max [BYSCORE | BYLEX] [REV] [LIMIT offset count])
Like ZRANGE, but stores the result at dst instead of returning it.`,
			KeyExtractionFunc: zrangestoreKeyFunc,
			HandlerFunc: handleZRANGESTORE,
		},
		{
			Name: "ZRANGEBYLEX",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGEBYLEX key min max [LIMIT offset count]) Returns members in lexicographic range [min, max].`,
			KeyExtractionFunc: zrangebylexKeyFunc,
			HandlerFunc: handleZRANGEBYLEX,
		},
		{
			Name: "ZRANGEBYSCORE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANGEBYSCORE key min max [WITHSCORES] [LIMIT offset count]) Returns members with scores in [min, max].`,
			KeyExtractionFunc: zrangebyscoreKeyFunc,
			HandlerFunc: handleZRANGEBYSCORE,
		},
		{
			Name: "ZRANK",
			Arity: -3,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZRANK key member [WITHSCORE]) Returns member's ascending rank, or nil if absent.`,
			KeyExtractionFunc: zrankKeyFunc,
			HandlerFunc: handleZRANK,
		},
		{
			Name: "ZREM",
			Arity: -3,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.FastCategory},
			Description: `(ZREM key member [member ...]) Removes the given members, returning the count removed.`,
			KeyExtractionFunc: zremKeyFunc,
			HandlerFunc: handleZREM,
		},
		{
			Name: "ZREMRANGEBYLEX",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYLEX key min max) Removes members in the lexicographic range [min, max].`,
			KeyExtractionFunc: zremrangebyFunc,
			HandlerFunc: handleZREMRANGEBYLEX,
		},
		{
			Name: "ZREMRANGEBYRANK",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYRANK key start stop) Removes members whose rank falls in [start, stop].`,
			KeyExtractionFunc: zremrangebyFunc,
			HandlerFunc: handleZREMRANGEBYRANK,
		},
		{
			Name: "ZREMRANGEBYSCORE",
			Arity: 4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZREMRANGEBYSCORE key min max) Removes members whose score falls in [min, max].`,
			KeyExtractionFunc: zremrangebyFunc,
			HandlerFunc: handleZREMRANGEBYSCORE,
		},
		{
			Name: "ZREVRANGE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANGE key start stop [WITHSCORES]) Like ZRANGE but in descending rank order.`,
			KeyExtractionFunc: zrevrangeKeyFunc,
			HandlerFunc: handleZREVRANGE,
		},
		{
			Name: "ZREVRANGEBYSCORE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZREVRANGEBYSCORE key max min [WITHSCORES] [LIMIT offset count]) Like ZRANGEBYSCORE but descending.`,
			KeyExtractionFunc: zrevrangebyscoreKeyFunc,
			HandlerFunc: handleZREVRANGEBYSCORE,
		},
		{
			Name: "ZREVRANK",
			Arity: -3,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZREVRANK key member [WITHSCORE]) Returns member's descending rank, or nil if absent.`,
			KeyExtractionFunc: zrevrankKeyFunc,
			HandlerFunc: handleZREVRANK,
		},
		{
			Name: "ZSCAN",
			Arity: -3,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZSCAN key cursor [COUNT count]) Incrementally iterates over a sorted set's members.`,
			KeyExtractionFunc: zscanKeyFunc,
			HandlerFunc: handleZSCAN,
		},
		{
			Name: "ZSCORE",
			Arity: 3,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZSCORE key member) Returns member's score, or nil if absent.`,
			KeyExtractionFunc: zscoreKeyFunc,
			HandlerFunc: handleZSCORE,
		},
		{
			Name: "ZMSCORE",
			Arity: -3,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.FastCategory},
			Description: `(ZMSCORE key member [member ...]) Returns the scores of multiple members in one call.`,
			KeyExtractionFunc: zmscoreKeyFunc,
			HandlerFunc: handleZMSCORE,
		},
		{
			Name: "ZRANDMEMBER",
			Arity: -2,
			Categories: []string{constants.SortedSetCategory, constants.ReadCategory, constants.SlowCategory},
			Description: `(ZRANDMEMBER key [count [WITHSCORES]]) Returns one or more random members.`,
			KeyExtractionFunc: zrandmemberKeyFunc,
			HandlerFunc: handleZRANDMEMBER,
		},
		{
			Name: "ZUNIONSTORE",
			Arity: -4,
			Categories: []string{constants.SortedSetCategory, constants.WriteCategory, constants.SlowCategory},
			Description: `(ZUNIONSTORE destination numkeys key [key ...] [WEIGHTS weight [weight ...]] [AGGREGATE SUM|MIN|MAX])
Stores the union of the given sorted sets in destination.`,
			KeyExtractionFunc: zunionstoreKeyFunc,
			HandlerFunc: handleZUNIONSTORE,
		},
	}
}
