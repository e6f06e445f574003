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

package zsetdb_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/coreshard/zsetd/internal/config"
	"github.com/coreshard/zsetd/zsetdb"
)

func newTestDB(shards int) *zsetdb.ZSetDB {
	conf := config.DefaultConfig()
	conf.Shards = shards
	return zsetdb.New(conf)
}

func TestZAddAndZScore(t *testing.T) {
	db := newTestDB(1)
	n, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2}, zsetdb.ZAddOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 added, got %d", n)
	}
	score, found, err := db.ZScore("key1", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !found || score != 1 {
		t.Fatalf("expected a=1, got %v found=%v", score, found)
	}
	_, found, err = db.ZScore("key1", "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected ghost to be absent")
	}
}

func TestZAddNXExcludesGT(t *testing.T) {
	db := newTestDB(1)
	_, err := db.ZAdd("key1", map[string]float64{"a": 1}, zsetdb.ZAddOptions{NX: true, GT: true})
	if err == nil {
		t.Fatal("expected an error combining NX and GT")
	}
}

func TestZIncrByCreatesKey(t *testing.T) {
	db := newTestDB(1)
	score, err := db.ZIncrBy("key1", 2.5, "a")
	if err != nil {
		t.Fatal(err)
	}
	if score != 2.5 {
		t.Fatalf("expected 2.5, got %v", score)
	}
	score, err = db.ZIncrBy("key1", 2.5, "a")
	if err != nil {
		t.Fatal(err)
	}
	if score != 5 {
		t.Fatalf("expected 5, got %v", score)
	}
}

func TestZRankAndZRevRank(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2, "c": 3}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	rank, found, err := db.ZRank("key1", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !found || rank != 1 {
		t.Fatalf("expected rank 1, got %d found=%v", rank, found)
	}
	revRank, found, err := db.ZRevRank("key1", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !found || revRank != 1 {
		t.Fatalf("expected rev rank 1, got %d found=%v", revRank, found)
	}
	_, found, err = db.ZRank("key1", "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected ghost to be absent")
	}
}

func TestZRangeWithScores(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2, "c": 3}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	members, scores, err := db.ZRange("key1", "0", "-1", zsetdb.ZRangeOptions{WithScores: true, Count: -1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(scores, []float64{1, 2, 3}); diff != nil {
		t.Error(diff)
	}
}

func TestZRangeByScoreRevWithLimit(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2, "c": 3, "d": 4}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	members, _, err := db.ZRevRangeByScore("key1", "+inf", "-inf", zsetdb.ZRangeByScoreOptions{Offset: 1, Count: 2})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"c", "b"}); diff != nil {
		t.Error(diff)
	}
}

func TestZRangeByLex(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 0, "b": 0, "c": 0, "d": 0}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	members, err := db.ZRangeByLex("key1", "-", "+", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"b", "c"}); diff != nil {
		t.Error(diff)
	}
}

func TestZCountAndZLexCount(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2, "c": 3}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	n, err := db.ZCount("key1", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	n, err = db.ZLexCount("key1", "-", "+")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestZRemAndZRemRangeByRank(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2, "c": 3}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	n, err := db.ZRem("key1", "a", "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	n, err = db.ZRemRangeByRank("key1", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 removed, got %d", n)
	}
	card, err := db.ZCard("key1")
	if err != nil {
		t.Fatal(err)
	}
	if card != 1 {
		t.Fatalf("expected cardinality 1, got %d", card)
	}
}

func TestZUnionStoreWeightsAndAggregate(t *testing.T) {
	db := newTestDB(4)
	if _, err := db.ZAdd("s1", map[string]float64{"a": 1, "b": 2}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ZAdd("s2", map[string]float64{"b": 10, "c": 20}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	card, err := db.ZUnionStore("dest", []string{"s1", "s2"}, zsetdb.ZSetOpOptions{Weights: []float64{2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if card != 3 {
		t.Fatalf("expected cardinality 3, got %d", card)
	}
	score, found, err := db.ZScore("dest", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !found || score != 14 { // 2*2 + 1*10
		t.Fatalf("expected 14, got %v found=%v", score, found)
	}
}

func TestZInterStoreMaxAggregate(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("s1", map[string]float64{"a": 5}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ZAdd("s2", map[string]float64{"a": 9}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	card, err := db.ZInterStore("dest", []string{"s1", "s2"}, zsetdb.ZSetOpOptions{Aggregate: "MAX"})
	if err != nil {
		t.Fatal(err)
	}
	if card != 1 {
		t.Fatalf("expected cardinality 1, got %d", card)
	}
	score, found, err := db.ZScore("dest", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !found || score != 9 {
		t.Fatalf("expected 9, got %v found=%v", score, found)
	}
}

func TestZScanRoundTrip(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1, "b": 2}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	members, scores, cursor, err := db.ZScan("key1", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cursor != 0 {
		t.Fatalf("expected a single-shot packed scan, got cursor %d", cursor)
	}
	if len(members) != 2 || len(scores) != 2 {
		t.Fatalf("expected 2 members, got %v / %v", members, scores)
	}
}

func TestZMScoreMixedPresence(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("key1", map[string]float64{"a": 1}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	scores, found, err := db.ZMScore("key1", "a", "ghost")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(found, []bool{true, false}); diff != nil {
		t.Error(diff)
	}
	if scores[0] != 1 {
		t.Fatalf("expected a=1, got %v", scores[0])
	}
}

func TestZRangeStore(t *testing.T) {
	db := newTestDB(1)
	if _, err := db.ZAdd("src", map[string]float64{"a": 1, "b": 2, "c": 3}, zsetdb.ZAddOptions{}); err != nil {
		t.Fatal(err)
	}
	card, err := db.ZRangeStore("dest", "src", "0", "1", zsetdb.ZRangeOptions{Count: -1})
	if err != nil {
		t.Fatal(err)
	}
	if card != 2 {
		t.Fatalf("expected cardinality 2, got %d", card)
	}
	members, _, err := db.ZRange("dest", "0", "-1", zsetdb.ZRangeOptions{Count: -1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(members, []string{"a", "b"}); diff != nil {
		t.Error(diff)
	}
}
