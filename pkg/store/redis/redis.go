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

// Package redis implements a tournament.Store on a Redis server.
//
// A store with prefix P uses four keys:
//
//	P:seq       last assigned player id
//	P:players   list of player ids in registration order
//	P:names     hash from player id to name
//	P:outcomes  list of JSON encoded outcomes in recording order
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/tournament"
)

// DefaultPrefix is used for the store's keys when Options.Prefix is empty.
const DefaultPrefix = "swiss"

// maxWatchRetries bounds the optimistic transaction in AddOutcome.
const maxWatchRetries = 10

var _ tournament.Store = (*Store)(nil)

type Options struct {
	Addr   string
	DB     int
	Prefix string
}

type Store struct {
	rdb *redis.Client

	seq, players, names, outcomes string
}

// Open connects to the Redis server described by options.
func Open(ctx context.Context, options Options) (*Store, error) {
	if options.Prefix == "" {
		options.Prefix = DefaultPrefix
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: options.Addr,
		DB:   options.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", options.Addr, err)
	}

	logrus.WithFields(logrus.Fields{
		"addr":   options.Addr,
		"db":     options.DB,
		"prefix": options.Prefix,
	}).Debug("Connected to redis store")

	return &Store{
		rdb: rdb,

		seq:      options.Prefix + ":seq",
		players:  options.Prefix + ":players",
		names:    options.Prefix + ":names",
		outcomes: options.Prefix + ":outcomes",
	}, nil
}

func (s *Store) Players(ctx context.Context) ([]tournament.Player, error) {
	var (
		ids   *redis.StringSliceCmd
		names *redis.MapStringStringCmd
	)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		ids = pipe.LRange(ctx, s.players, 0, -1)
		names = pipe.HGetAll(ctx, s.names)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}

	return joinPlayers(ids.Val(), names.Val())
}

func (s *Store) Outcomes(ctx context.Context) ([]tournament.Outcome, error) {
	encoded, err := s.rdb.LRange(ctx, s.outcomes, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read outcomes: %w", err)
	}

	return decodeOutcomes(encoded)
}

// Snapshot reads every key inside one MULTI/EXEC block.
func (s *Store) Snapshot(ctx context.Context) (tournament.Snapshot, error) {
	var (
		ids      *redis.StringSliceCmd
		names    *redis.MapStringStringCmd
		outcomes *redis.StringSliceCmd
	)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		ids = pipe.LRange(ctx, s.players, 0, -1)
		names = pipe.HGetAll(ctx, s.names)
		outcomes = pipe.LRange(ctx, s.outcomes, 0, -1)
		return nil
	})
	if err != nil {
		return tournament.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot tournament.Snapshot
	if snapshot.Players, err = joinPlayers(ids.Val(), names.Val()); err != nil {
		return tournament.Snapshot{}, err
	}

	snapshot.Outcomes, err = decodeOutcomes(outcomes.Val())
	return snapshot, err
}

func (s *Store) Player(ctx context.Context, id int64) (tournament.Player, error) {
	name, err := s.rdb.HGet(ctx, s.names, strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return tournament.Player{}, tournament.ErrPlayerNotFound
	}
	if err != nil {
		return tournament.Player{}, fmt.Errorf("read player %d: %w", id, err)
	}

	return tournament.Player{ID: id, Name: name}, nil
}

func (s *Store) AddPlayer(ctx context.Context, name string) (tournament.Player, error) {
	// The sequence key is never deleted, so ids are never handed out twice.
	id, err := s.rdb.Incr(ctx, s.seq).Result()
	if err != nil {
		return tournament.Player{}, fmt.Errorf("assign player id: %w", err)
	}

	field := strconv.FormatInt(id, 10)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.names, field, name)
		pipe.RPush(ctx, s.players, field)
		return nil
	})
	if err != nil {
		return tournament.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return tournament.Player{ID: id, Name: name}, nil
}

// AddOutcome checks both players and appends the outcome in one optimistic
// transaction, so a concurrent DeletePlayers cannot leave it dangling.
func (s *Store) AddOutcome(ctx context.Context, outcome tournament.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		for _, id := range [2]int64{outcome.Winner, outcome.Loser} {
			found, err := tx.HExists(ctx, s.names, strconv.FormatInt(id, 10)).Result()
			if err != nil {
				return err
			}
			if !found {
				return tournament.ErrPlayerNotFound
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, s.outcomes, data)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err = s.rdb.Watch(ctx, txf, s.names)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}

	switch {
	case err == nil, errors.Is(err, tournament.ErrPlayerNotFound):
		return err
	default:
		return fmt.Errorf("insert outcome: %w", err)
	}
}

func (s *Store) DeletePlayers(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.players, s.names, s.outcomes).Err(); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	return nil
}

func (s *Store) DeleteOutcomes(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.outcomes).Err(); err != nil {
		return fmt.Errorf("delete outcomes: %w", err)
	}

	return nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.rdb.LLen(ctx, s.players).Result()
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return int(count), nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

// joinPlayers pairs the registration ordered ids with their names.
func joinPlayers(ids []string, names map[string]string) ([]tournament.Player, error) {
	var players []tournament.Player
	for _, field := range ids {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad player id %q: %w", field, err)
		}

		players = append(players, tournament.Player{ID: id, Name: names[field]})
	}

	return players, nil
}

func decodeOutcomes(encoded []string) ([]tournament.Outcome, error) {
	var outcomes []tournament.Outcome
	for _, data := range encoded {
		var outcome tournament.Outcome
		if err := json.Unmarshal([]byte(data), &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
