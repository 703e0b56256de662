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

// Package storetest checks that a tournament.Store backend behaves the way
// the tournament package expects.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/swiss/pkg/tournament"
)

// Opener returns an empty store. Stores are closed by Run.
type Opener func(t *testing.T) tournament.Store

// Run runs every store test against stores made by open.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		test func(*testing.T, tournament.Store)
	}{
		{"Empty", testEmpty},
		{"AddPlayer", testAddPlayer},
		{"PlayerLookup", testPlayerLookup},
		{"AddOutcome", testAddOutcome},
		{"AddOutcomeUnknownPlayer", testAddOutcomeUnknownPlayer},
		{"Snapshot", testSnapshot},
		{"DeleteOutcomes", testDeleteOutcomes},
		{"DeletePlayers", testDeletePlayers},
		{"ConcurrentAddPlayer", testConcurrentAddPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := open(t)
			t.Cleanup(func() { store.Close() })
			tt.test(t, store)
		})
	}
}

func addPlayers(t *testing.T, store tournament.Store, names ...string) []tournament.Player {
	t.Helper()

	players := make([]tournament.Player, 0, len(names))
	for _, name := range names {
		player, err := store.AddPlayer(context.Background(), name)
		require.NoError(t, err)
		players = append(players, player)
	}

	return players
}

func testEmpty(t *testing.T, store tournament.Store) {
	ctx := context.Background()

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	players, err := store.Players(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)

	outcomes, err := store.Outcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Players)
	assert.Empty(t, snapshot.Outcomes)
}

func testAddPlayer(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob", "Ann")

	assert.Equal(t, "Ann", players[0].Name)
	assert.Less(t, players[0].ID, players[1].ID)
	assert.Less(t, players[1].ID, players[2].ID)

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	listed, err := store.Players(ctx)
	require.NoError(t, err)
	assert.Equal(t, players, listed, "players are listed in registration order")
}

func testPlayerLookup(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob")

	player, err := store.Player(ctx, players[1].ID)
	require.NoError(t, err)
	assert.Equal(t, players[1], player)

	_, err = store.Player(ctx, players[1].ID+1000)
	assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)
}

func testAddOutcome(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob", "Cid")

	recorded := []tournament.Outcome{
		tournament.NewOutcome(players[0].ID, players[1].ID),
		tournament.NewOutcome(players[2].ID, players[0].ID),
		// The same pair again is a new entry, never merged.
		tournament.NewOutcome(players[0].ID, players[1].ID),
	}
	for _, outcome := range recorded {
		require.NoError(t, store.AddOutcome(ctx, outcome))
	}

	outcomes, err := store.Outcomes(ctx)
	require.NoError(t, err)
	assert.Equal(t, recorded, outcomes, "outcomes are listed in recording order")
}

func testAddOutcomeUnknownPlayer(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann")

	err := store.AddOutcome(ctx, tournament.NewOutcome(players[0].ID, players[0].ID+1000))
	assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)

	err = store.AddOutcome(ctx, tournament.NewOutcome(players[0].ID+1000, players[0].ID))
	assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)

	outcomes, err := store.Outcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func testSnapshot(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob")

	outcome := tournament.NewOutcome(players[1].ID, players[0].ID)
	require.NoError(t, store.AddOutcome(ctx, outcome))

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, players, snapshot.Players)
	assert.Equal(t, []tournament.Outcome{outcome}, snapshot.Outcomes)
}

func testDeleteOutcomes(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob")
	require.NoError(t, store.AddOutcome(ctx, tournament.NewOutcome(players[0].ID, players[1].ID)))

	require.NoError(t, store.DeleteOutcomes(ctx))

	outcomes, err := store.Outcomes(ctx)
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "players survive deleting the outcomes")
}

func testDeletePlayers(t *testing.T, store tournament.Store) {
	ctx := context.Background()
	players := addPlayers(t, store, "Ann", "Bob")
	require.NoError(t, store.AddOutcome(ctx, tournament.NewOutcome(players[0].ID, players[1].ID)))

	require.NoError(t, store.DeletePlayers(ctx))

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Players)
	assert.Empty(t, snapshot.Outcomes, "outcomes are deleted with their players")

	_, err = store.Player(ctx, players[0].ID)
	assert.ErrorIs(t, err, tournament.ErrPlayerNotFound)

	again := addPlayers(t, store, "Cid")
	assert.Greater(t, again[0].ID, players[1].ID, "ids are never reused")
}

func testConcurrentAddPlayer(t *testing.T, store tournament.Store) {
	ctx := context.Background()

	const n = 16
	ids := make([]int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			player, err := store.AddPlayer(ctx, "Player")
			assert.NoError(t, err)
			ids[i] = player.ID
		}(i)
	}
	wg.Wait()

	unique := make(map[int64]bool, n)
	for _, id := range ids {
		unique[id] = true
	}
	assert.Len(t, unique, n)

	count, err := store.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
