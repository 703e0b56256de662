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
	"cmp"
	"slices"
)

// ComputeStandings folds the outcome log into one Standing per player and
// orders the result by ascending wins, so the weakest record comes first.
// Players with the same number of wins keep their order from players.
//
// Outcomes naming a player that is not in players are skipped.
func ComputeStandings(players []Player, outcomes []Outcome) []Standing {
	standings := make([]Standing, len(players))
	index := make(map[int64]int, len(players))

	for i, player := range players {
		standings[i] = Standing{Player: player}
		index[player.ID] = i
	}

	for _, outcome := range outcomes {
		winner, found_winner := index[outcome.Winner]
		loser, found_loser := index[outcome.Loser]
		if !found_winner || !found_loser {
			continue
		}

		standings[winner].Wins++
		standings[winner].Matches++
		standings[loser].Matches++
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		return cmp.Compare(a.Wins, b.Wins)
	})

	return standings
}
