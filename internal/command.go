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

// Package internal holds the pieces shared by every command module: the
// Command/HandlerFunc contract, and small RESP/string helpers that do not
// belong to any single module.
package internal

import (
	"github.com/coreshard/zsetd/internal/shard"
)

// AccessKeys reports which keys a command reads from and writes to. The
// command layer uses it both for shard scheduling and (in a fuller server)
// for ACL authorization.
type AccessKeys struct {
	ReadKeys  []string
	WriteKeys []string
}

// KeyExtractionFunc returns the keys a command touches before it runs, so
// the scheduler knows which shard(s) and which key-latch entries it needs.
type KeyExtractionFunc func(cmd []string) (AccessKeys, error)

// HandlerFunc executes a fully-parsed command against the shard set and
// returns a wire-ready RESP2 reply.
type HandlerFunc func(ss *shard.ShardSet, cmd []string) ([]byte, error)

// Command is one entry in a module's command table.
type Command struct {
	Name              string
	Arity             int // negative means "at least abs(Arity)"
	Categories        []string
	Description       string
	KeyExtractionFunc KeyExtractionFunc
	HandlerFunc       HandlerFunc
}

// CheckArity validates a command's argument count against its declared
// arity, the same convention Redis and the teacher's command tables use:
// a positive arity must match exactly, a negative one is a lower bound.
func (c Command) CheckArity(cmd []string) bool {
	if c.Arity >= 0 {
		return len(cmd) == c.Arity
	}
	return len(cmd) >= -c.Arity
}
