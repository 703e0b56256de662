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
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the root of every rejected request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable wraps every failure reported by the Store other
	// than a missing player. Such failures are worth retrying.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrPlayerNotFound is returned by Store implementations when a player
	// id lookup or an outcome references an unregistered player.
	ErrPlayerNotFound = errors.New("player not found")
)

var (
	ErrOddPlayerCount = fmt.Errorf("%w: odd player count", ErrInvalidInput)
	ErrSamePlayer     = fmt.Errorf("%w: winner and loser are the same player", ErrInvalidInput)
	ErrUnknownPlayer  = fmt.Errorf("%w: unknown player", ErrInvalidInput)
	ErrEmptyName      = fmt.Errorf("%w: empty player name", ErrInvalidInput)
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
