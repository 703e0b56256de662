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

import "context"

// Store is the record store the Tournament reads players and outcomes from
// and appends them to.
//
// Players are returned in registration order and outcomes in the order they
// were recorded. Deleting the players also deletes every outcome, and a
// Store never hands out the same player id twice.
type Store interface {
	Players(ctx context.Context) ([]Player, error)
	Outcomes(ctx context.Context) ([]Outcome, error)

	// Snapshot reads the players and the outcomes as one consistent unit.
	Snapshot(ctx context.Context) (Snapshot, error)

	// Player looks up a single player, returning ErrPlayerNotFound if
	// the id was never registered or has been deleted.
	Player(ctx context.Context, id int64) (Player, error)

	AddPlayer(ctx context.Context, name string) (Player, error)

	// AddOutcome appends the outcome to the log. It returns
	// ErrPlayerNotFound if either player is not registered.
	AddOutcome(ctx context.Context, outcome Outcome) error

	DeletePlayers(ctx context.Context) error
	DeleteOutcomes(ctx context.Context) error

	CountPlayers(ctx context.Context) (int, error)

	Close() error
}
