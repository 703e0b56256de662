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

package tournament

import (
	"fmt"

	"github.com/google/uuid"
)

// Player is a registered tournament participant. The ID is assigned by the
// Store on registration and never changes.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (player Player) String() string {
	return fmt.Sprintf("%s (%d)", player.Name, player.ID)
}

// Outcome is a single entry of the outcome log: one finished match between
// two registered players. Outcomes are never modified once recorded.
type Outcome struct {
	ID     uuid.UUID `json:"id"`
	Winner int64     `json:"winner"`
	Loser  int64     `json:"loser"`
}

// NewOutcome creates an Outcome with a fresh log entry id.
func NewOutcome(winner, loser int64) Outcome {
	return Outcome{
		ID:     uuid.New(),
		Winner: winner,
		Loser:  loser,
	}
}

// Standing is a player's win record derived from the outcome log.
type Standing struct {
	Player

	Wins    int `json:"wins"`
	Matches int `json:"matches"`
}

func (standing Standing) Losses() int {
	return standing.Matches - standing.Wins
}

// Pairing is a single encounter of the next round.
type Pairing [2]Player

func (pairing Pairing) String() string {
	return fmt.Sprintf("%s vs. %s", pairing[0], pairing[1])
}

// Snapshot is a consistent view of the whole Store, read in one unit.
type Snapshot struct {
	Players  []Player
	Outcomes []Outcome
}
