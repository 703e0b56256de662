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

	"laptudirm.com/x/swiss/pkg/tournament/schedule"
)

// GeneratePairings computes the standings of players from outcomes and
// pairs every player with a neighbour in them. An odd number of players is
// rejected with ErrOddPlayerCount.
func GeneratePairings(players []Player, outcomes []Outcome) ([]Pairing, error) {
	return PairStandings(ComputeStandings(players, outcomes), &schedule.Swiss{})
}

// PairStandings builds one round of pairings over the ranked standings
// using the encounters handed out by the scheduler.
func PairStandings(standings []Standing, scheduler schedule.Scheduler) ([]Pairing, error) {
	if len(standings)%2 == 1 {
		return nil, fmt.Errorf("%w: %d players", ErrOddPlayerCount, len(standings))
	}

	scheduler.Initialize(len(standings))

	pairings := make([]Pairing, 0, scheduler.TotalEncounters())
	for encounter := 0; encounter < scheduler.TotalEncounters(); encounter++ {
		p1, p2 := scheduler.NextEncounter()
		pairings = append(pairings, Pairing{
			standings[p1].Player,
			standings[p2].Player,
		})
	}

	return pairings, nil
}
