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
)

// AddResult is the per-member outcome plus the aggregate counters ZADD
// needs to compose its reply (spec §4.5).
type AddResult struct {
	Added   int
	Changed int // added + updated, used when CH is set
	// IncrScore/IncrOK are only meaningful when flags.Incr was set.
	IncrScore Score
	IncrOK    bool
}

// AddOrUpdate applies the ZADD flag matrix to a batch of (member, score)
// pairs. Flag validation is the caller's responsibility (NX+XX and GT+LT
// while parsing, GT|LT+NX via ValidateAddFlags); AddOrUpdate assumes flags
// are valid.
func (z *ZSet) AddOrUpdate(members []Pair, flags AddFlags) (AddResult, error) {
	if flags.Incr && len(members) != 1 {
		return AddResult{}, errors.New("INCR option supports a single increment-element pair")
	}

	var res AddResult

	if flags.Incr {
		m := members[0]
		existing, ok := z.ScoreOf(m.Member)
		if flags.Policy == PolicyXX && !ok {
			return AddResult{IncrOK: false}, nil
		}
		if flags.Policy == PolicyNX && ok {
			return AddResult{IncrOK: false}, nil
		}
		newScore := m.Score
		if ok {
			if !passesComparison(flags.Comparison, existing, existing+m.Score) {
				return AddResult{IncrOK: false}, nil
			}
			newScore = existing + m.Score
		}
		if math.IsNaN(float64(newScore)) {
			return AddResult{}, fmt.Errorf("resulting score is not a number (NaN)")
		}
		outcome, _, err := z.Insert(m.Member, newScore)
		if err != nil {
			return AddResult{}, err
		}
		if outcome == Added {
			res.Added = 1
		}
		res.Changed = 1
		res.IncrScore = newScore
		res.IncrOK = true
		return res, nil
	}

	for _, m := range members {
		existing, ok := z.ScoreOf(m.Member)
		switch flags.Policy {
		case PolicyXX:
			if !ok {
				continue
			}
		case PolicyNX:
			if ok {
				continue
			}
		}
		if ok && !passesComparison(flags.Comparison, existing, m.Score) {
			continue
		}
		outcome, _, err := z.Insert(m.Member, m.Score)
		if err != nil {
			return AddResult{}, err
		}
		switch outcome {
		case Added:
			res.Added++
			res.Changed++
		case Updated:
			res.Changed++
		}
	}
	return res, nil
}

func passesComparison(c Comparison, old, candidate Score) bool {
	switch c {
	case CompareGT:
		return candidate > old
	case CompareLT:
		return candidate < old
	default:
		return true
	}
}

// ValidateAddFlags rejects NX combined with GT or LT (spec §4.5). AddFlags
// holds a single Policy and a single Comparison, so NX+XX and GT+LT cannot
// be expressed in it and are not checked here; the ZADD parser rejects them
// before building the flags.
func ValidateAddFlags(flags AddFlags) error {
	if flags.Policy == PolicyNX && flags.Comparison != CompareNone {
		return errors.New("GT, LT, and/or NX options at the same time are not compatible")
	}
	return nil
}
