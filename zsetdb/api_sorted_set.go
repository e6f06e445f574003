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

package zsetdb

import (
	"strconv"

	"github.com/coreshard/zsetd/internal"
)

// ZAddOptions mirrors the ZADD flag matrix (spec §4.5).
//
// NX only adds a member if it does not already exist; mutually exclusive
// with XX, GT and LT. XX only updates members that already exist. GT/LT
// only let the score change in the given direction. CH makes ZAdd return
// the number of members added plus changed, rather than just added. INCR
// makes ZAdd behave like ZIncrBy and accepts exactly one member/score pair.
type ZAddOptions struct {
	NX   bool
	XX   bool
	GT   bool
	LT   bool
	CH   bool
	INCR bool
}

// ZAdd adds or updates members of the sorted set at key.
//
// Errors:
//
// "GT, LT, and/or NX options at the same time are not compatible" - NX combined with GT/LT.
func (db *ZSetDB) ZAdd(key string, members map[string]float64, options ZAddOptions) (int, error) {
	cmd := []string{"ZADD", key}
	switch {
	case options.NX:
		cmd = append(cmd, "NX")
	case options.XX:
		cmd = append(cmd, "XX")
	}
	switch {
	case options.GT:
		cmd = append(cmd, "GT")
	case options.LT:
		cmd = append(cmd, "LT")
	}
	if options.CH {
		cmd = append(cmd, "CH")
	}
	if options.INCR {
		cmd = append(cmd, "INCR")
	}
	for member, score := range members {
		cmd = append(cmd, strconv.FormatFloat(score, 'f', -1, 64), member)
	}

	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	if options.INCR {
		f, err := internal.ParseFloatResponse(b)
		return int(f), err
	}
	return internal.ParseIntegerResponse(b)
}

// ZIncrBy increments member's score by increment, creating key and member as
// needed, and returns the resulting score.
func (db *ZSetDB) ZIncrBy(key string, increment float64, member string) (float64, error) {
	cmd := []string{"ZINCRBY", key, strconv.FormatFloat(increment, 'f', -1, 64), member}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseFloatResponse(b)
}

// ZCard returns the cardinality of the sorted set at key, or 0 if it does
// not exist.
func (db *ZSetDB) ZCard(key string) (int, error) {
	b, err := db.Dispatch([]string{"ZCARD", key})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZCount returns the number of members with scores in [min, max].
func (db *ZSetDB) ZCount(key string, min, max float64) (int, error) {
	cmd := []string{"ZCOUNT", key, strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64)}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZLexCount returns the number of members in the lexicographic range [min,
// max]. min and max must be formatted as "-"/"+"/"[member"/"(member".
func (db *ZSetDB) ZLexCount(key, min, max string) (int, error) {
	b, err := db.Dispatch([]string{"ZLEXCOUNT", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZScore returns member's score and whether it was present.
func (db *ZSetDB) ZScore(key, member string) (float64, bool, error) {
	b, err := db.Dispatch([]string{"ZSCORE", key, member})
	if err != nil {
		return 0, false, err
	}
	if string(b) == internal.NilBulkString {
		return 0, false, nil
	}
	f, err := internal.ParseFloatResponse(b)
	return f, err == nil, err
}

// ZMScore returns the scores of multiple members in one round trip. Absent
// members report found=false.
func (db *ZSetDB) ZMScore(key string, members ...string) ([]float64, []bool, error) {
	cmd := append([]string{"ZMSCORE", key}, members...)
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParseScoreOrNilArray(b)
}

// ZRank returns member's ascending rank (0-based), or found=false if absent.
func (db *ZSetDB) ZRank(key, member string) (int, bool, error) {
	return rankCall(db, "ZRANK", key, member)
}

// ZRevRank returns member's descending rank (0-based), or found=false if
// absent.
func (db *ZSetDB) ZRevRank(key, member string) (int, bool, error) {
	return rankCall(db, "ZREVRANK", key, member)
}

func rankCall(db *ZSetDB, command, key, member string) (int, bool, error) {
	b, err := db.Dispatch([]string{command, key, member})
	if err != nil {
		return 0, false, err
	}
	if string(b) == internal.NilBulkString {
		return 0, false, nil
	}
	n, err := internal.ParseIntegerResponse(b)
	return n, err == nil, err
}

// ZRem removes the given members and returns the count removed.
func (db *ZSetDB) ZRem(key string, members ...string) (int, error) {
	cmd := append([]string{"ZREM", key}, members...)
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRemRangeByRank removes members whose rank falls in [start, stop].
func (db *ZSetDB) ZRemRangeByRank(key string, start, stop int) (int, error) {
	cmd := []string{"ZREMRANGEBYRANK", key, strconv.Itoa(start), strconv.Itoa(stop)}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRemRangeByScore removes members whose score falls in [min, max].
func (db *ZSetDB) ZRemRangeByScore(key string, min, max float64) (int, error) {
	cmd := []string{"ZREMRANGEBYSCORE", key, strconv.FormatFloat(min, 'f', -1, 64), strconv.FormatFloat(max, 'f', -1, 64)}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRemRangeByLex removes members in the lexicographic range [min, max].
func (db *ZSetDB) ZRemRangeByLex(key, min, max string) (int, error) {
	b, err := db.Dispatch([]string{"ZREMRANGEBYLEX", key, min, max})
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRangeOptions configures the generalized ZRange/ZRangeStore family.
type ZRangeOptions struct {
	WithScores bool
	ByScore    bool
	ByLex      bool
	Rev        bool
	Offset     int
	Count      int // -1 means "no LIMIT clause"
}

func (o ZRangeOptions) appendTo(cmd []string) []string {
	if o.ByScore {
		cmd = append(cmd, "BYSCORE")
	} else if o.ByLex {
		cmd = append(cmd, "BYLEX")
	}
	if o.Rev {
		cmd = append(cmd, "REV")
	}
	if o.Count >= 0 {
		cmd = append(cmd, "LIMIT", strconv.Itoa(o.Offset), strconv.Itoa(o.Count))
	}
	if o.WithScores {
		cmd = append(cmd, "WITHSCORES")
	}
	return cmd
}

// ZRange returns the members (and optionally scores) in [min, max], under
// whichever ordering domain options selects.
func (db *ZSetDB) ZRange(key, min, max string, options ZRangeOptions) ([]string, []float64, error) {
	cmd := options.appendTo([]string{"ZRANGE", key, min, max})
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParsePairArrayResponse(b, options.WithScores)
}

// ZRangeStore is like ZRange, but stores the result at dest and returns its
// cardinality instead of the members.
func (db *ZSetDB) ZRangeStore(dest, src, min, max string, options ZRangeOptions) (int, error) {
	cmd := options.appendTo([]string{"ZRANGESTORE", dest, src, min, max})
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZRevRange returns members in descending rank order over [start, stop].
func (db *ZSetDB) ZRevRange(key string, start, stop int, withScores bool) ([]string, []float64, error) {
	cmd := []string{"ZREVRANGE", key, strconv.Itoa(start), strconv.Itoa(stop)}
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParsePairArrayResponse(b, withScores)
}

// ZRangeByScoreOptions configures ZRangeByScore/ZRevRangeByScore.
type ZRangeByScoreOptions struct {
	WithScores bool
	Offset     int
	Count      int // -1 means "no LIMIT clause"
}

func (o ZRangeByScoreOptions) appendTo(cmd []string) []string {
	if o.WithScores {
		cmd = append(cmd, "WITHSCORES")
	}
	if o.Count >= 0 {
		cmd = append(cmd, "LIMIT", strconv.Itoa(o.Offset), strconv.Itoa(o.Count))
	}
	return cmd
}

// ZRangeByScore returns members with scores in [min, max] (both accept
// "-inf"/"+inf" and a "(" prefix for an exclusive bound).
func (db *ZSetDB) ZRangeByScore(key, min, max string, options ZRangeByScoreOptions) ([]string, []float64, error) {
	cmd := options.appendTo([]string{"ZRANGEBYSCORE", key, min, max})
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParsePairArrayResponse(b, options.WithScores)
}

// ZRevRangeByScore is ZRangeByScore in descending order; max is given
// before min, matching the wire command's argument order.
func (db *ZSetDB) ZRevRangeByScore(key, max, min string, options ZRangeByScoreOptions) ([]string, []float64, error) {
	cmd := options.appendTo([]string{"ZREVRANGEBYSCORE", key, max, min})
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParsePairArrayResponse(b, options.WithScores)
}

// ZRangeByLex returns members in the lexicographic range [min, max].
func (db *ZSetDB) ZRangeByLex(key, min, max string, offset, count int) ([]string, error) {
	cmd := []string{"ZRANGEBYLEX", key, min, max}
	if count >= 0 {
		cmd = append(cmd, "LIMIT", strconv.Itoa(offset), strconv.Itoa(count))
	}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, err
	}
	members, _, err := internal.ParsePairArrayResponse(b, false)
	return members, err
}

// ZScan incrementally iterates over a sorted set, mirroring SCAN's cursor
// contract. Pass cursor 0 to start a new scan; continue until the returned
// cursor is 0 again.
func (db *ZSetDB) ZScan(key string, cursor uint64, count uint64) ([]string, []float64, uint64, error) {
	cmd := []string{"ZSCAN", key, strconv.FormatUint(cursor, 10)}
	if count > 0 {
		cmd = append(cmd, "COUNT", strconv.FormatUint(count, 10))
	}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, 0, err
	}
	return internal.ParseScanResponse(b)
}

// ZRandMember returns one or more random members. A negative count allows
// repeats; a positive count returns up to that many distinct members.
func (db *ZSetDB) ZRandMember(key string, count int, withScores bool) ([]string, []float64, error) {
	cmd := []string{"ZRANDMEMBER", key, strconv.Itoa(count)}
	if withScores {
		cmd = append(cmd, "WITHSCORES")
	}
	b, err := db.Dispatch(cmd)
	if err != nil {
		return nil, nil, err
	}
	return internal.ParsePairArrayResponse(b, withScores)
}

// ZSetOpOptions configures ZUnionStore/ZInterStore's WEIGHTS and AGGREGATE
// options (spec §4.7).
type ZSetOpOptions struct {
	Weights   []float64
	Aggregate string // "SUM" (default), "MIN", or "MAX"
}

func (o ZSetOpOptions) appendTo(cmd []string) []string {
	if len(o.Weights) > 0 {
		cmd = append(cmd, "WEIGHTS")
		for _, w := range o.Weights {
			cmd = append(cmd, strconv.FormatFloat(w, 'f', -1, 64))
		}
	}
	if o.Aggregate != "" {
		cmd = append(cmd, "AGGREGATE", o.Aggregate)
	}
	return cmd
}

// ZUnionStore stores the union of the given sorted sets at destination and
// returns its cardinality.
func (db *ZSetDB) ZUnionStore(destination string, keys []string, options ZSetOpOptions) (int, error) {
	cmd := append([]string{"ZUNIONSTORE", destination, strconv.Itoa(len(keys))}, keys...)
	cmd = options.appendTo(cmd)
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}

// ZInterStore stores the intersection of the given sorted sets at
// destination and returns its cardinality.
func (db *ZSetDB) ZInterStore(destination string, keys []string, options ZSetOpOptions) (int, error) {
	cmd := append([]string{"ZINTERSTORE", destination, strconv.Itoa(len(keys))}, keys...)
	cmd = options.appendTo(cmd)
	b, err := db.Dispatch(cmd)
	if err != nil {
		return 0, err
	}
	return internal.ParseIntegerResponse(b)
}
