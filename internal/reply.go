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

package internal

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/resp"
)

// FormatScore renders a score the way RESP2 Redis replies do: %.17g for
// ordinary values, with the literal strings "inf"/"-inf"/"nan" for the
// special cases (spec §6).
func FormatScore(s float64) string {
	switch {
	case math.IsInf(s, 1):
		return "inf"
	case math.IsInf(s, -1):
		return "-inf"
	case math.IsNaN(s):
		return "nan"
	default:
		return strconv.FormatFloat(s, 'g', 17, 64)
	}
}

// WriteInteger formats a RESP2 integer reply.
func WriteInteger(n int) []byte {
	return []byte(fmt.Sprintf(":%d\r\n", n))
}

// WriteBulkString formats a RESP2 bulk string reply.
func WriteBulkString(s string) []byte {
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(s), s))
}

// NilBulkString is the RESP2 nil bulk string reply, exported so callers
// (the embeddable API) can compare a raw reply against it directly.
const NilBulkString = "$-1\r\n"

// WriteNilBulkString formats the RESP2 nil bulk string reply.
func WriteNilBulkString() []byte {
	return []byte(NilBulkString)
}

// WriteError formats a RESP2 error reply.
func WriteError(err error) []byte {
	return []byte(fmt.Sprintf("-ERR %s\r\n", err.Error()))
}

// WriteStringArray formats a RESP2 array of bulk strings.
func WriteStringArray(items []string) []byte {
	var buf bytes.Buffer
	w := resp.NewWriter(&buf)
	values := make([]resp.Value, len(items))
	for i, it := range items {
		values[i] = resp.StringValue(it)
	}
	w.WriteArray(values)
	return buf.Bytes()
}

// WritePairArray formats a []Pair as a RESP2 array, interleaving the score
// as a bulk string after each member when withScores is set (spec §4.6
// point 5: "bulk string array, optionally interleaved scores").
func WritePairArray(members []string, scores []float64, withScores bool) []byte {
	var buf bytes.Buffer
	w := resp.NewWriter(&buf)
	var values []resp.Value
	for i, m := range members {
		values = append(values, resp.StringValue(m))
		if withScores {
			values = append(values, resp.StringValue(FormatScore(scores[i])))
		}
	}
	w.WriteArray(values)
	return buf.Bytes()
}
