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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourPlayers() []Player {
	return []Player{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
		{ID: 4, Name: "D"},
	}
}

// randomTournament builds n players and m outcomes between distinct
// players from a fixed seed.
func randomTournament(seed int64, n, m int) ([]Player, []Outcome) {
	rng := rand.New(rand.NewSource(seed))

	players := make([]Player, n)
	for i := range players {
		players[i] = Player{ID: int64(i + 1), Name: fmt.Sprintf("Player %d", i+1)}
	}

	outcomes := make([]Outcome, 0, m)
	for len(outcomes) < m && n > 1 {
		winner, loser := rng.Intn(n), rng.Intn(n)
		if winner == loser {
			continue
		}
		outcomes = append(outcomes, NewOutcome(players[winner].ID, players[loser].ID))
	}

	return players, outcomes
}

func TestComputeStandingsScenario(t *testing.T) {
	outcomes := []Outcome{
		NewOutcome(1, 2),
		NewOutcome(3, 4),
	}

	standings := ComputeStandings(fourPlayers(), outcomes)

	assert.Equal(t, []Standing{
		{Player: Player{ID: 2, Name: "B"}, Wins: 0, Matches: 1},
		{Player: Player{ID: 4, Name: "D"}, Wins: 0, Matches: 1},
		{Player: Player{ID: 1, Name: "A"}, Wins: 1, Matches: 1},
		{Player: Player{ID: 3, Name: "C"}, Wins: 1, Matches: 1},
	}, standings)
}

func TestComputeStandingsEmpty(t *testing.T) {
	standings := ComputeStandings(nil, nil)
	require.NotNil(t, standings)
	assert.Empty(t, standings)
}

func TestComputeStandingsNoOutcomes(t *testing.T) {
	players := fourPlayers()
	standings := ComputeStandings(players, nil)

	require.Len(t, standings, len(players))
	for i, standing := range standings {
		assert.Equal(t, players[i], standing.Player, "ties keep the input order")
		assert.Zero(t, standing.Wins)
		assert.Zero(t, standing.Matches)
		assert.Zero(t, standing.Losses())
	}
}

func TestComputeStandingsAscending(t *testing.T) {
	players := fourPlayers()
	outcomes := []Outcome{
		NewOutcome(4, 1),
		NewOutcome(4, 2),
		NewOutcome(4, 3),
		NewOutcome(3, 1),
	}

	standings := ComputeStandings(players, outcomes)

	ids := make([]int64, len(standings))
	for i, standing := range standings {
		ids[i] = standing.ID
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)

	assert.Equal(t, 3, standings[3].Wins)
	assert.Equal(t, 3, standings[3].Matches)
	assert.Equal(t, 2, standings[0].Losses())
}

func TestComputeStandingsRepeatedPair(t *testing.T) {
	players := fourPlayers()[:2]
	outcomes := []Outcome{
		NewOutcome(1, 2),
		NewOutcome(1, 2),
		NewOutcome(2, 1),
	}

	standings := ComputeStandings(players, outcomes)

	assert.Equal(t, Standing{Player: players[1], Wins: 1, Matches: 3}, standings[0])
	assert.Equal(t, Standing{Player: players[0], Wins: 2, Matches: 3}, standings[1])
}

func TestComputeStandingsSkipsUnknownPlayers(t *testing.T) {
	players := fourPlayers()[:2]
	outcomes := []Outcome{
		NewOutcome(1, 2),
		NewOutcome(1, 99),
		NewOutcome(99, 2),
	}

	standings := ComputeStandings(players, outcomes)

	require.Len(t, standings, 2)
	assert.Equal(t, 1, standings[1].Wins)
	assert.Equal(t, 1, standings[1].Matches)
	assert.Equal(t, 1, standings[0].Matches)
}

func TestComputeStandingsDoesNotModifyInput(t *testing.T) {
	players := fourPlayers()
	outcomes := []Outcome{NewOutcome(1, 2), NewOutcome(1, 3)}

	ComputeStandings(players, outcomes)

	assert.Equal(t, fourPlayers(), players)
}

func TestComputeStandingsProperties(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		n := int(seed%9) + 1
		m := int(seed * 3 % 40)
		players, outcomes := randomTournament(seed, n, m)

		standings := ComputeStandings(players, outcomes)

		// One record per player, no duplicates, no omissions.
		require.Len(t, standings, len(players))
		seen := make(map[int64]bool)
		for _, standing := range standings {
			assert.False(t, seen[standing.ID], "seed %d: duplicate %d", seed, standing.ID)
			seen[standing.ID] = true
		}
		for _, player := range players {
			assert.True(t, seen[player.ID], "seed %d: missing %d", seed, player.ID)
		}

		// Every outcome is two matches and one win.
		matches, wins := 0, 0
		played := make(map[int64]bool)
		for _, outcome := range outcomes {
			played[outcome.Winner] = true
			played[outcome.Loser] = true
		}
		for i, standing := range standings {
			matches += standing.Matches
			wins += standing.Wins

			if !played[standing.ID] {
				assert.Zero(t, standing.Wins)
				assert.Zero(t, standing.Matches)
			}
			if i > 0 {
				assert.LessOrEqual(t, standings[i-1].Wins, standing.Wins)
			}
		}
		assert.Equal(t, 2*len(outcomes), matches, "seed %d", seed)
		assert.Equal(t, len(outcomes), wins, "seed %d", seed)
	}
}
