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

// Package memory implements an in-process tournament.Store. Its contents
// are lost when the process exits.
package memory

import (
	"context"
	"slices"
	"sync"

	"laptudirm.com/x/swiss/pkg/tournament"
)

var _ tournament.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

type Store struct {
	mu sync.RWMutex

	players  []tournament.Player
	outcomes []tournament.Outcome

	last_id int64
}

func (s *Store) Players(ctx context.Context) ([]tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.players), nil
}

func (s *Store) Outcomes(ctx context.Context) ([]tournament.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.outcomes), nil
}

func (s *Store) Snapshot(ctx context.Context) (tournament.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return tournament.Snapshot{
		Players:  slices.Clone(s.players),
		Outcomes: slices.Clone(s.outcomes),
	}, nil
}

func (s *Store) Player(ctx context.Context, id int64) (tournament.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.find(id); i >= 0 {
		return s.players[i], nil
	}

	return tournament.Player{}, tournament.ErrPlayerNotFound
}

func (s *Store) AddPlayer(ctx context.Context, name string) (tournament.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last_id++
	player := tournament.Player{ID: s.last_id, Name: name}
	s.players = append(s.players, player)

	return player, nil
}

func (s *Store) AddOutcome(ctx context.Context, outcome tournament.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(outcome.Winner) < 0 || s.find(outcome.Loser) < 0 {
		return tournament.ErrPlayerNotFound
	}

	s.outcomes = append(s.outcomes, outcome)
	return nil
}

func (s *Store) DeletePlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Outcomes cannot outlive their players. The id sequence is kept.
	s.players = nil
	s.outcomes = nil
	return nil
}

func (s *Store) DeleteOutcomes(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes = nil
	return nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.players), nil
}

func (s *Store) Close() error {
	return nil
}

// find returns the index of the player with the given id, or -1.
func (s *Store) find(id int64) int {
	return slices.IndexFunc(s.players, func(player tournament.Player) bool {
		return player.ID == id
	})
}
