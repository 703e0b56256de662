// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"fmt"
)

// New returns a fresh Scheduler for the given pairing policy name. The
// empty name selects the default swiss policy.
func New(name string) (Scheduler, error) {
	switch name {
	case "swiss", "":
		return &Swiss{}, nil
	default:
		return nil, fmt.Errorf("new scheduler: invalid scheduler %s", name)
	}
}

// Scheduler hands out the encounters of a single round. Players are
// identified by their index in the ranked standings, 0 through n-1.
//
// A Scheduler is stateful and must not be shared between goroutines.
type Scheduler interface {
	Initialize(int)
	NextEncounter() (int, int)
	TotalEncounters() int
}

// Swiss pairs neighbours in the standings: (0, 1), (2, 3), (4, 5), ...
// The player count is expected to be even; an odd trailing player is
// never handed out, so callers must reject odd counts beforehand.
type Swiss struct {
	player_count int
	pair_number  int
}

func (s *Swiss) Initialize(n int) {
	s.player_count = n
	s.pair_number = 0
}

func (s *Swiss) NextEncounter() (int, int) {
	player1 := 2 * s.pair_number
	s.pair_number++

	return player1, player1 + 1
}

func (s *Swiss) TotalEncounters() int {
	return s.player_count / 2
}
