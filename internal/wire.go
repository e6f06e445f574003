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
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/tidwall/resp"
)

// AdaptType mirrors the teacher's argument-sniffing helper: a raw command
// token is treated as an int, a float, or (failing both) a plain string.
func AdaptType(s string) interface{} {
	n, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return s
	}
	if n.IsInt() {
		i, _ := n.Int64()
		return int(i)
	}
	f, _ := n.Float64()
	return f
}

// EncodeCommand turns a string slice into a RESP2 array-of-bulk-strings
// request, the wire shape the embeddable API and the socket front door both
// dispatch through.
func EncodeCommand(cmd []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(cmd))
	for _, token := range cmd {
		fmt.Fprintf(&buf, "$%d\r\n%s\r\n", len(token), token)
	}
	return buf.Bytes()
}

// DecodeCommand parses a single RESP2 array-of-bulk-strings request off the
// wire. This is the one piece of "wire protocol parsing" zsetd owns; full
// framing/pipelining for arbitrary RESP traffic is out of scope (spec §1).
func DecodeCommand(r *resp.Reader) ([]string, error) {
	v, _, err := r.ReadValue()
	if err != nil {
		return nil, err
	}
	arr := v.Array()
	out := make([]string, len(arr))
	for i, e := range arr {
		out[i] = e.String()
	}
	return out, nil
}

func ParseIntegerResponse(b []byte) (int, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return 0, err
	}
	return v.Integer(), nil
}

func ParseFloatResponse(b []byte) (float64, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

func ParseStringArrayResponse(b []byte) ([]string, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return nil, nil
	}
	arr := v.Array()
	out := make([]string, len(arr))
	for i, e := range arr {
		out[i] = e.String()
	}
	return out, nil
}

// ParsePairArrayResponse decodes the flat, optionally score-interleaved
// bulk-string array WritePairArray produces (spec §4.6 point 5), the reply
// shape ZRANGE and its relatives use.
func ParsePairArrayResponse(b []byte, withScores bool) ([]string, []float64, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, nil, err
	}
	if v.IsNull() {
		return nil, nil, nil
	}
	arr := v.Array()
	if !withScores {
		out := make([]string, len(arr))
		for i, e := range arr {
			out[i] = e.String()
		}
		return out, nil, nil
	}
	if len(arr)%2 != 0 {
		return nil, nil, errors.New("malformed member/score array")
	}
	members := make([]string, len(arr)/2)
	scores := make([]float64, len(arr)/2)
	for i := 0; i < len(arr); i += 2 {
		members[i/2] = arr[i].String()
		f, err := strconv.ParseFloat(arr[i+1].String(), 64)
		if err != nil {
			return nil, nil, err
		}
		scores[i/2] = f
	}
	return members, scores, nil
}

// ParseScoreOrNilArray decodes the reply shape ZMSCORE uses: one bulk
// string per requested member, nil for members that were absent.
func ParseScoreOrNilArray(b []byte) ([]float64, []bool, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, nil, err
	}
	arr := v.Array()
	scores := make([]float64, len(arr))
	found := make([]bool, len(arr))
	for i, e := range arr {
		if e.IsNull() {
			continue
		}
		f, err := strconv.ParseFloat(e.String(), 64)
		if err != nil {
			return nil, nil, err
		}
		scores[i] = f
		found[i] = true
	}
	return scores, found, nil
}

// ParseScanResponse decodes ZSCAN's [cursor, members] reply shape.
func ParseScanResponse(b []byte) ([]string, []float64, uint64, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, nil, 0, err
	}
	outer := v.Array()
	if len(outer) != 2 {
		return nil, nil, 0, errors.New("malformed ZSCAN reply")
	}
	cursor, err := strconv.ParseUint(outer[0].String(), 10, 64)
	if err != nil {
		return nil, nil, 0, err
	}
	items := outer[1].Array()
	if len(items)%2 != 0 {
		return nil, nil, 0, errors.New("malformed ZSCAN member array")
	}
	members := make([]string, len(items)/2)
	scores := make([]float64, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		members[i/2] = items[i].String()
		f, err := strconv.ParseFloat(items[i+1].String(), 64)
		if err != nil {
			return nil, nil, 0, err
		}
		scores[i/2] = f
	}
	return members, scores, cursor, nil
}
