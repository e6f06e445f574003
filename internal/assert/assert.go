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

// Package assert holds the one fatal-assertion helper shared by packages
// that cannot import each other (internal <-> shard): a violated invariant
// (encoding tag corruption, skiplist/hashmap disagreement, negative
// cardinality) means the process must not continue (spec §7).
package assert

// Invariant panics with msg if cond is false.
func Invariant(cond bool, msg string) {
	if !cond {
		panic("zsetd: " + msg)
	}
}
