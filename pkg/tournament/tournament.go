// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/tournament/schedule"
)

func NewTournament(store Store, config Config) (*Tournament, error) {
	// Validate the scheduler name up front, a fresh one is made per round.
	if _, err := schedule.New(config.Scheduler); err != nil {
		return nil, err
	}

	return &Tournament{
		Config: config,

		store:  store,
		policy: bluemonday.StrictPolicy(),
	}, nil
}

// Tournament is the Swiss-system tournament kept in a Store. It holds no
// state of its own: standings and pairings are recomputed from the outcome
// log on every call, so a Tournament is safe for concurrent use as long as
// the Store is.
type Tournament struct {
	Config Config

	store  Store
	policy *bluemonday.Policy
}

type Config struct {
	// Pairing policy used for the next round.
	Scheduler string `yaml:"scheduler"`
}

// RegisterPlayer adds a new player to the tournament. Markup is stripped
// from the name and runs of whitespace are collapsed. Names need not be
// unique.
func (tour *Tournament) RegisterPlayer(ctx context.Context, name string) (Player, error) {
	clean := tour.sanitize(name)
	if clean == "" {
		return Player{}, fmt.Errorf("register player %q: %w", name, ErrEmptyName)
	}

	player, err := tour.store.AddPlayer(ctx, clean)
	if err != nil {
		return Player{}, unavailable("register player", err)
	}

	logrus.WithFields(logrus.Fields{
		"player": player.ID,
		"name":   player.Name,
	}).Debug("Registered player")

	return player, nil
}

// RecordOutcome appends the result of a single match between two
// registered players to the outcome log.
func (tour *Tournament) RecordOutcome(ctx context.Context, winner, loser int64) (Outcome, error) {
	if winner == loser {
		return Outcome{}, fmt.Errorf("record outcome: %w: %d", ErrSamePlayer, winner)
	}

	for _, id := range [2]int64{winner, loser} {
		if _, err := tour.store.Player(ctx, id); err != nil {
			return Outcome{}, tour.lookupError(id, err)
		}
	}

	outcome := NewOutcome(winner, loser)
	if err := tour.store.AddOutcome(ctx, outcome); err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			// One of the players was deleted after the lookup.
			return Outcome{}, fmt.Errorf("record outcome: %w: %w", ErrUnknownPlayer, err)
		}

		return Outcome{}, unavailable("record outcome", err)
	}

	logrus.WithFields(logrus.Fields{
		"outcome": outcome.ID,
		"winner":  winner,
		"loser":   loser,
	}).Debug("Recorded outcome")

	return outcome, nil
}

func (tour *Tournament) CountPlayers(ctx context.Context) (int, error) {
	count, err := tour.store.CountPlayers(ctx)
	if err != nil {
		return 0, unavailable("count players", err)
	}

	return count, nil
}

// Standings returns the current standings ordered by ascending wins.
func (tour *Tournament) Standings(ctx context.Context) ([]Standing, error) {
	snapshot, err := tour.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeStandings(snapshot.Players, snapshot.Outcomes), nil
}

// Pairings returns the pairings for the next round.
func (tour *Tournament) Pairings(ctx context.Context) ([]Pairing, error) {
	snapshot, err := tour.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	scheduler, err := schedule.New(tour.Config.Scheduler)
	if err != nil {
		return nil, err
	}

	standings := ComputeStandings(snapshot.Players, snapshot.Outcomes)
	return PairStandings(standings, scheduler)
}

// DeleteMatches clears the outcome log, keeping the registered players.
func (tour *Tournament) DeleteMatches(ctx context.Context) error {
	if err := tour.store.DeleteOutcomes(ctx); err != nil {
		return unavailable("delete matches", err)
	}

	logrus.Debug("Deleted all outcomes")
	return nil
}

// DeletePlayers removes every player along with the outcome log.
func (tour *Tournament) DeletePlayers(ctx context.Context) error {
	if err := tour.store.DeletePlayers(ctx); err != nil {
		return unavailable("delete players", err)
	}

	logrus.Debug("Deleted all players")
	return nil
}

func (tour *Tournament) snapshot(ctx context.Context) (Snapshot, error) {
	snapshot, err := tour.store.Snapshot(ctx)
	if err != nil {
		return Snapshot{}, unavailable("read snapshot", err)
	}

	logrus.WithFields(logrus.Fields{
		"players":  len(snapshot.Players),
		"outcomes": len(snapshot.Outcomes),
	}).Trace("Read store snapshot")

	return snapshot, nil
}

func (tour *Tournament) lookupError(id int64, err error) error {
	if errors.Is(err, ErrPlayerNotFound) {
		return fmt.Errorf("record outcome: %w: %d", ErrUnknownPlayer, id)
	}

	return unavailable("record outcome", err)
}

// maxSanitizePasses bounds how many layers of escaped markup are peeled off.
const maxSanitizePasses = 8

func (tour *Tournament) sanitize(name string) string {
	// The strict policy escapes what it keeps, and unescaping can surface
	// markup that was written as entities, so repeat until nothing changes.
	for i := 0; i < maxSanitizePasses; i++ {
		clean := html.UnescapeString(tour.policy.Sanitize(name))
		if clean == name {
			return strings.Join(strings.Fields(name), " ")
		}
		name = clean
	}

	// Still changing after every pass, keep the escaped form.
	return strings.Join(strings.Fields(tour.policy.Sanitize(name)), " ")
}
