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

// Package zsetdb is the embeddable Go API for zsetd's sorted-set engine: an
// in-process ShardSet plus the typed method surface the RESP front door
// also dispatches through, mirroring the teacher's EchoVault/SugarDB
// pattern of exposing every command both over the wire and as a direct Go
// call.
package zsetdb

import (
	"fmt"
	"strings"

	"github.com/coreshard/zsetd/internal"
	"github.com/coreshard/zsetd/internal/config"
	sortedset "github.com/coreshard/zsetd/internal/modules/sorted_set"
	"github.com/coreshard/zsetd/internal/shard"
)

// ZSetDB is an embeddable, in-process instance of the sorted-set engine.
type ZSetDB struct {
	shards   *shard.ShardSet
	registry map[string]internal.Command
}

// New creates a ZSetDB backed by conf.Shards shard executors.
func New(conf config.Config) *ZSetDB {
	registry := make(map[string]internal.Command)
	for _, c := range sortedset.Commands() {
		registry[strings.ToUpper(c.Name)] = c
	}
	return &ZSetDB{
		shards:   shard.New(conf.Shards),
		registry: registry,
	}
}

// Dispatch runs a raw command (as a token slice, e.g. {"ZADD", "key", "1",
// "a"}) against the engine and returns its RESP2-encoded reply. This is the
// single entry point the typed methods below and the RESP front door both
// funnel through.
func (db *ZSetDB) Dispatch(cmd []string) ([]byte, error) {
	if len(cmd) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	c, ok := db.registry[strings.ToUpper(cmd[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command '%s'", cmd[0])
	}
	if !c.CheckArity(cmd) {
		return nil, fmt.Errorf("wrong number of arguments for '%s' command", cmd[0])
	}
	return c.HandlerFunc(db.shards, cmd)
}

// Shards exposes the underlying ShardSet, for callers (tests, the RESP
// front door) that need direct scheduler access.
func (db *ZSetDB) Shards() *shard.ShardSet {
	return db.shards
}
