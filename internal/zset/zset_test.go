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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/go-test/deep"
)

func membersOf(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = string(p.Member)
	}
	return out
}

func TestInsertAndOrdering(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"c", 3}, {"a", 1}, {"b", 2}} {
		if _, _, err := z.Insert(p.Member, p.Score); err != nil {
			t.Fatal(err)
		}
	}
	got := membersOf(z.All())
	if diff := deep.Equal(got, []string{"a", "b", "c"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestIdempotence(t *testing.T) {
	z := New()
	z.Insert("a", 1)
	outcome, _, _ := z.Insert("a", 1)
	if outcome != Nop {
		t.Fatalf("expected Nop, got %v", outcome)
	}
	if z.Cardinality() != 1 {
		t.Fatalf("expected cardinality 1, got %d", z.Cardinality())
	}
	score, ok := z.ScoreOf("a")
	if !ok || score != 1 {
		t.Fatalf("expected score 1, got %v ok=%v", score, ok)
	}
}

func TestCardinalityAndRemoval(t *testing.T) {
	z := New()
	z.Insert("a", 1)
	z.Insert("b", 2)
	if !z.Remove("a") {
		t.Fatal("expected removal of a to succeed")
	}
	if z.Remove("a") {
		t.Fatal("expected second removal of a to fail")
	}
	if z.Cardinality() != 1 {
		t.Fatalf("expected cardinality 1, got %d", z.Cardinality())
	}
}

func TestPromotionOnCardinality(t *testing.T) {
	z := New()
	for i := 0; i < MaxPackedEntries; i++ {
		z.Insert(Member(fmt.Sprintf("m%04d", i)), Score(i))
	}
	if z.Encoding() != EncodingPacked {
		t.Fatalf("expected still packed at exactly MaxPackedEntries")
	}
	z.Insert(Member(fmt.Sprintf("m%04d", MaxPackedEntries)), Score(MaxPackedEntries))
	if z.Encoding() != EncodingIndexed {
		t.Fatalf("expected promotion to indexed after exceeding MaxPackedEntries")
	}
	if z.Cardinality() != MaxPackedEntries+1 {
		t.Fatalf("expected cardinality preserved across promotion, got %d", z.Cardinality())
	}
}

func TestPromotionOnValueLength(t *testing.T) {
	z := New()
	long := Member(make([]byte, MaxPackedValue+1))
	z.Insert(long, 1)
	if z.Encoding() != EncodingIndexed {
		t.Fatal("expected promotion when inserting an over-length member")
	}
}

func TestEncodingEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var pairs []Pair
	for i := 0; i < 50; i++ {
		pairs = append(pairs, Pair{Member: Member(fmt.Sprintf("m%d", i)), Score: Score(rng.Intn(100))})
	}

	packedSet := New()
	indexedSet := New()
	for i := 0; i < MaxPackedEntries+5; i++ {
		indexedSet.Insert(Member(fmt.Sprintf("filler%d", i)), Score(i))
	}
	for _, filler := range indexedSet.All() {
		indexedSet.Remove(filler.Member)
	}
	// Force indexedSet to stay indexed (promotion is one-way) while it is
	// otherwise empty, then apply the same sequence as packedSet.
	for _, p := range pairs {
		packedSet.Insert(p.Member, p.Score)
		indexedSet.Insert(p.Member, p.Score)
	}
	if packedSet.Encoding() != EncodingPacked {
		t.Fatal("expected packedSet to remain packed")
	}
	if indexedSet.Encoding() != EncodingIndexed {
		t.Fatal("expected indexedSet to remain indexed")
	}
	if diff := deep.Equal(packedSet.All(), indexedSet.All()); diff != nil {
		t.Fatal(diff)
	}
}

func TestRankOfAndBounds(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"a", 1}, {"b", 2}, {"c", 3}} {
		z.Insert(p.Member, p.Score)
	}
	for i, m := range []Member{"a", "b", "c"} {
		rank, ok := z.RankOf(m, false)
		if !ok || rank != i {
			t.Fatalf("RankOf(%s) = %d,%v want %d", m, rank, ok, i)
		}
		revRank, ok := z.RankOf(m, true)
		if !ok || revRank != 2-i {
			t.Fatalf("RankOf(%s, reverse) = %d want %d", m, revRank, 2-i)
		}
	}
	if _, ok := z.RankOf("missing", false); ok {
		t.Fatal("expected missing member to report not-found")
	}
}

func TestRangeByRankReverse(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"a", 1}, {"b", 2}, {"c", 3}} {
		z.Insert(p.Member, p.Score)
	}
	got := membersOf(z.RangeByRank(RankInterval{Start: 0, End: -1}, RangeParams{Reverse: true}))
	if diff := deep.Equal(got, []string{"c", "b", "a"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestRangeByRankClamping(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"a", 1}, {"b", 2}, {"c", 3}} {
		z.Insert(p.Member, p.Score)
	}
	if got := z.RangeByRank(RankInterval{Start: 5, End: 10}, RangeParams{}); got != nil {
		t.Fatalf("expected empty result for out-of-range start, got %v", got)
	}
	got := membersOf(z.RangeByRank(RankInterval{Start: -2, End: -1}, RangeParams{}))
	if diff := deep.Equal(got, []string{"b", "c"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestRangeByScoreOpenBounds(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"a", 1}, {"b", 2}, {"c", 3}} {
		z.Insert(p.Member, p.Score)
	}
	got := membersOf(z.RangeByScore(ScoreInterval{
		Min: Bound{Value: 1, Open: true},
		Max: MaxScore,
	}, RangeParams{Limit: NoLimit}))
	if diff := deep.Equal(got, []string{"b", "c"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestRangeByScoreLimit(t *testing.T) {
	z := New()
	for _, p := range []Pair{{"a", 1}, {"b", 2}, {"c", 3}} {
		z.Insert(p.Member, p.Score)
	}
	got := membersOf(z.RangeByScore(ScoreInterval{Min: MinScore, Max: Bound{Value: 2, Open: false}}, RangeParams{Offset: 0, Limit: 1}))
	if diff := deep.Equal(got, []string{"a"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestLexRangeAndRemove(t *testing.T) {
	z := New()
	for _, m := range []Member{"a", "b", "c", "d"} {
		z.Insert(m, 0)
	}
	got := membersOf(z.RangeByLex(LexInterval{
		Min: LexBound{Kind: LexClosed, Value: "b"},
		Max: LexBound{Kind: LexOpen, Value: "d"},
	}, RangeParams{Limit: NoLimit}))
	if diff := deep.Equal(got, []string{"b", "c"}); diff != nil {
		t.Fatal(diff)
	}

	removed := z.RemoveByLex(LexInterval{
		Min: LexBound{Kind: LexMinusInf},
		Max: LexBound{Kind: LexClosed, Value: "b"},
	})
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	got = membersOf(z.All())
	if diff := deep.Equal(got, []string{"c", "d"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestAddOrUpdateFlagMatrix(t *testing.T) {
	z := New()
	res, err := z.AddOrUpdate([]Pair{{"a", 1}}, AddFlags{Policy: PolicyNX})
	if err != nil || res.Added != 1 {
		t.Fatalf("expected NX add to succeed once, got %+v err=%v", res, err)
	}
	res, err = z.AddOrUpdate([]Pair{{"a", 2}}, AddFlags{Policy: PolicyNX})
	if err != nil || res.Added != 0 {
		t.Fatalf("expected NX re-add to be a no-op, got %+v err=%v", res, err)
	}
	score, _ := z.ScoreOf("a")
	if score != 1 {
		t.Fatalf("expected score unchanged at 1, got %v", score)
	}

	res, err = z.AddOrUpdate([]Pair{{"a", 5}}, AddFlags{Comparison: CompareGT})
	if err != nil || res.Changed != 1 {
		t.Fatalf("expected GT update to 5 to succeed, got %+v err=%v", res, err)
	}
	res, err = z.AddOrUpdate([]Pair{{"a", 3}}, AddFlags{Comparison: CompareGT})
	if err != nil || res.Changed != 0 {
		t.Fatalf("expected GT update to 3 to be rejected, got %+v err=%v", res, err)
	}
}

func TestAddOrUpdateIncr(t *testing.T) {
	z := New()
	z.Insert("a", 1)
	res, err := z.AddOrUpdate([]Pair{{"a", 3.5}}, AddFlags{Incr: true})
	if err != nil || !res.IncrOK || res.IncrScore != 4.5 {
		t.Fatalf("expected incr to 4.5, got %+v err=%v", res, err)
	}
}

func TestRemoveByRank(t *testing.T) {
	z := New()
	for _, m := range []Member{"a", "b", "c", "d"} {
		z.Insert(m, 0)
	}
	removed := z.RemoveByRank(RankInterval{Start: 0, End: 1})
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	got := membersOf(z.All())
	if diff := deep.Equal(got, []string{"c", "d"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestScanPackedOneShot(t *testing.T) {
	z := New()
	for _, m := range []Member{"a", "b", "c"} {
		z.Insert(m, 0)
	}
	pairs, cursor := z.Scan(0, 10)
	if cursor != 0 || len(pairs) != 3 {
		t.Fatalf("expected one-shot scan of packed set, got %d pairs cursor=%d", len(pairs), cursor)
	}
}

func TestScanIndexedBounded(t *testing.T) {
	z := New()
	n := MaxPackedEntries + 50
	for i := 0; i < n; i++ {
		z.Insert(Member(fmt.Sprintf("m%04d", i)), Score(i))
	}
	if z.Encoding() != EncodingIndexed {
		t.Fatal("expected the set to be indexed-encoded")
	}
	seen := map[Member]bool{}
	cursor := uint64(0)
	for i := 0; i < 100; i++ {
		pairs, next := z.Scan(cursor, 1)
		for _, p := range pairs {
			seen[p.Member] = true
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	if len(seen) != n {
		t.Fatalf("expected to eventually see all %d members, saw %d", n, len(seen))
	}
}

func TestInsertRejectsNaN(t *testing.T) {
	z := New()
	if _, _, err := z.Insert("a", Score(math.NaN())); err == nil {
		t.Fatal("expected NaN score to be rejected")
	}
}

func TestInsertOutOfMemory(t *testing.T) {
	z := NewWithAllocator(FailingAllocator{})
	if _, _, err := z.Insert("a", 1); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, got %v", err)
	}
	if z.Cardinality() != 0 {
		t.Fatalf("failed insert must not leave a partial member, got cardinality %d", z.Cardinality())
	}
}

func TestInsertOutOfMemoryDoesNotBlockUpdates(t *testing.T) {
	z := New()
	if _, _, err := z.Insert("a", 1); err != nil {
		t.Fatal(err)
	}
	z.alloc = FailingAllocator{}
	// Updating an existing member never allocates, so it must still succeed
	// even once the allocator starts refusing.
	if _, _, err := z.Insert("a", 2); err != nil {
		t.Fatal(err)
	}
	score, _ := z.ScoreOf("a")
	if score != 2 {
		t.Fatalf("expected updated score 2, got %v", score)
	}
}
