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

package sorted_set_test

import (
	"strings"
	"testing"

	"github.com/coreshard/zsetd/internal/modules/sorted_set"
	"github.com/coreshard/zsetd/internal/shard"
	"github.com/go-test/deep"
)

func exec(t *testing.T, ss *shard.ShardSet, cmd []string) string {
	t.Helper()
	table := sorted_set.Commands()
	for _, c := range table {
		if strings.EqualFold(c.Name, cmd[0]) {
			if !c.CheckArity(cmd) {
				t.Fatalf("%s: wrong number of arguments", cmd[0])
			}
			out, err := c.HandlerFunc(ss, cmd)
			if err != nil {
				t.Fatalf("%s returned error: %v", cmd[0], err)
			}
			return string(out)
		}
	}
	t.Fatalf("no command registered for %s", cmd[0])
	return ""
}

func execErr(t *testing.T, ss *shard.ShardSet, cmd []string) error {
	t.Helper()
	table := sorted_set.Commands()
	for _, c := range table {
		if strings.EqualFold(c.Name, cmd[0]) {
			_, err := c.HandlerFunc(ss, cmd)
			return err
		}
	}
	t.Fatalf("no command registered for %s", cmd[0])
	return nil
}

func TestZADDBasic(t *testing.T) {
	ss := shard.New(1)
	got := exec(t, ss, []string{"ZADD", "key1", "5.5", "member1", "67.77", "member2", "10", "member3"})
	if diff := deep.Equal(got, ":3\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZADDNXSkipsExisting(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b"})
	got := exec(t, ss, []string{"ZADD", "key1", "NX", "5", "a", "5", "c"})
	if diff := deep.Equal(got, ":1\r\n"); diff != nil {
		t.Error(diff)
	}
	score := exec(t, ss, []string{"ZSCORE", "key1", "a"})
	if diff := deep.Equal(score, "$1\r\n1\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZADDGTLTWithNXIsRejected(t *testing.T) {
	ss := shard.New(1)
	err := execErr(t, ss, []string{"ZADD", "key1", "NX", "GT", "5", "a"})
	if err == nil {
		t.Fatal("expected an error for NX combined with GT")
	}
}

func TestZADDNXWithXXIsRejected(t *testing.T) {
	ss := shard.New(1)
	err := execErr(t, ss, []string{"ZADD", "key1", "NX", "XX", "5", "a"})
	if err == nil {
		t.Fatal("expected an error for NX combined with XX")
	}
}

func TestZADDGTWithLTIsRejected(t *testing.T) {
	ss := shard.New(1)
	err := execErr(t, ss, []string{"ZADD", "key1", "GT", "LT", "5", "a"})
	if err == nil {
		t.Fatal("expected an error for GT combined with LT")
	}
}

func TestZADDIncr(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "5", "a"})
	got := exec(t, ss, []string{"ZADD", "key1", "INCR", "3", "a"})
	if diff := deep.Equal(got, "$1\r\n8\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZCARDMissingKey(t *testing.T) {
	ss := shard.New(1)
	got := exec(t, ss, []string{"ZCARD", "nope"})
	if diff := deep.Equal(got, ":0\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZINCRBYCreatesKey(t *testing.T) {
	ss := shard.New(1)
	got := exec(t, ss, []string{"ZINCRBY", "key1", "2.5", "a"})
	if diff := deep.Equal(got, "$3\r\n2.5\r\n"); diff != nil {
		t.Error(diff)
	}
	got = exec(t, ss, []string{"ZINCRBY", "key1", "2.5", "a"})
	if diff := deep.Equal(got, "$1\r\n5\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZRANKWithScore(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b", "3", "c"})
	got := exec(t, ss, []string{"ZRANK", "key1", "b", "WITHSCORE"})
	if diff := deep.Equal(got, "*2\r\n:1\r\n$1\r\n2\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZRANKMissingMember(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a"})
	got := exec(t, ss, []string{"ZRANK", "key1", "ghost"})
	if diff := deep.Equal(got, "$-1\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZRANGEBasic(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b", "3", "c"})
	got := exec(t, ss, []string{"ZRANGE", "key1", "0", "-1"})
	if diff := deep.Equal(got, "*3\r\n$1\r\na\r\n$1\r\nb\r\n$1\r\nc\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZRANGEByScoreRevLimit(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b", "3", "c", "4", "d"})
	got := exec(t, ss, []string{"ZRANGE", "key1", "+inf", "-inf", "BYSCORE", "REV", "LIMIT", "1", "2"})
	if diff := deep.Equal(got, "*2\r\n$1\r\nc\r\n$1\r\nb\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZRANGEBYLEXOffsetCountOrder(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "0", "a", "0", "b", "0", "c", "0", "d"})
	got := exec(t, ss, []string{"ZRANGEBYLEX", "key1", "-", "+", "LIMIT", "1", "2"})
	if diff := deep.Equal(got, "*2\r\n$1\r\nb\r\n$1\r\nc\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZREMRANGEBYRANK(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b", "3", "c"})
	got := exec(t, ss, []string{"ZREMRANGEBYRANK", "key1", "0", "0"})
	if diff := deep.Equal(got, ":1\r\n"); diff != nil {
		t.Error(diff)
	}
	got = exec(t, ss, []string{"ZCARD", "key1"})
	if diff := deep.Equal(got, ":2\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZUNIONSTORESum(t *testing.T) {
	ss := shard.New(4)
	exec(t, ss, []string{"ZADD", "s1", "1", "a", "2", "b"})
	exec(t, ss, []string{"ZADD", "s2", "10", "b", "20", "c"})
	got := exec(t, ss, []string{"ZUNIONSTORE", "dest", "2", "s1", "s2"})
	if diff := deep.Equal(got, ":3\r\n"); diff != nil {
		t.Error(diff)
	}
	got = exec(t, ss, []string{"ZSCORE", "dest", "b"})
	if diff := deep.Equal(got, "$2\r\n12\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZINTERSTOREOnlyCommonMembers(t *testing.T) {
	ss := shard.New(4)
	exec(t, ss, []string{"ZADD", "s1", "1", "a", "2", "b"})
	exec(t, ss, []string{"ZADD", "s2", "10", "b", "20", "c"})
	got := exec(t, ss, []string{"ZINTERSTORE", "dest", "2", "s1", "s2"})
	if diff := deep.Equal(got, ":1\r\n"); diff != nil {
		t.Error(diff)
	}
	got = exec(t, ss, []string{"ZSCORE", "dest", "b"})
	if diff := deep.Equal(got, "$2\r\n12\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZINTERSTOREMaxAggregate(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "s1", "5", "a"})
	exec(t, ss, []string{"ZADD", "s2", "9", "a"})
	exec(t, ss, []string{"ZINTERSTORE", "dest", "2", "s1", "s2", "AGGREGATE", "MAX"})
	got := exec(t, ss, []string{"ZSCORE", "dest", "a"})
	if diff := deep.Equal(got, "$1\r\n9\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZSCANPackedSingleShot(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a", "2", "b"})
	got := exec(t, ss, []string{"ZSCAN", "key1", "0"})
	if diff := deep.Equal(got, "*2\r\n$1\r\n0\r\n*4\r\n$1\r\na\r\n$1\r\n1\r\n$1\r\nb\r\n$1\r\n2\r\n"); diff != nil {
		t.Error(diff)
	}
}

func TestZMSCOREMixedPresence(t *testing.T) {
	ss := shard.New(1)
	exec(t, ss, []string{"ZADD", "key1", "1", "a"})
	got := exec(t, ss, []string{"ZMSCORE", "key1", "a", "ghost"})
	if diff := deep.Equal(got, "*2\r\n$1\r\n1\r\n$-1\r\n"); diff != nil {
		t.Error(diff)
	}
}
