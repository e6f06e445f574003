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

package sorted_set

import (
	"errors"
	"slices"
	"strings"

	"github.com/coreshard/zsetd/internal"
	"github.com/coreshard/zsetd/internal/constants"
)

func zaddKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{WriteKeys: cmd[1:2]}, nil
}

func zcardKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 2 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zcountKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zincrbyKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{WriteKeys: cmd[1:2]}, nil
}

func zlexcountKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrankKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 3 || len(cmd) > 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrevrankKeyFunc(cmd []string) (internal.AccessKeys, error) {
	return zrankKeyFunc(cmd)
}

func zremKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 3 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{WriteKeys: cmd[1:2]}, nil
}

func zremrangebyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{WriteKeys: cmd[1:2]}, nil
}

func zscoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) != 3 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zmscoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 3 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrandmemberKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 2 || len(cmd) > 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrangeKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 || len(cmd) > 11 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrangestoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 5 || len(cmd) > 12 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[2:3], WriteKeys: cmd[1:2]}, nil
}

func zrevrangeKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 || len(cmd) > 5 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrangebyscoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zrevrangebyscoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	return zrangebyscoreKeyFunc(cmd)
}

func zrangebylexKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

func zscanKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 3 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	return internal.AccessKeys{ReadKeys: cmd[1:2]}, nil
}

// setopEndIndex finds where the key list ends in a ZUNIONSTORE/ZINTERSTORE
// invocation, i.e. the first WEIGHTS/AGGREGATE/WITHSCORES token.
func setopEndIndex(tokens []string) int {
	return slices.IndexFunc(tokens, func(s string) bool {
		return strings.EqualFold(s, "WEIGHTS") || strings.EqualFold(s, "AGGREGATE") || strings.EqualFold(s, "WITHSCORES")
	})
}

func zunionstoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	if len(cmd) < 4 {
		return internal.AccessKeys{}, errors.New(constants.WrongArgsResponse)
	}
	// cmd[2] is numkeys, not a key; the source keys start at cmd[3].
	end := setopEndIndex(cmd[3:])
	if end == -1 {
		return internal.AccessKeys{ReadKeys: cmd[3:], WriteKeys: cmd[1:2]}, nil
	}
	return internal.AccessKeys{ReadKeys: cmd[3 : 3+end], WriteKeys: cmd[1:2]}, nil
}

func zinterstoreKeyFunc(cmd []string) (internal.AccessKeys, error) {
	return zunionstoreKeyFunc(cmd)
}
