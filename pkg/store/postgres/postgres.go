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

// Package postgres implements a tournament.Store on a PostgreSQL database.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/tournament"
)

//go:embed schema.sql
var schemaSQL string

// foreign_key_violation
const codeForeignKeyViolation = "23503"

var _ tournament.Store = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database at dsn and creates the tables if they do
// not exist yet.
func Open(ctx context.Context, dsn string) (*Store, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host":     config.ConnConfig.Host,
		"database": config.ConnConfig.Database,
	}).Debug("Connected to postgres store")

	return &Store{pool: pool}, nil
}

func (s *Store) Players(ctx context.Context) ([]tournament.Player, error) {
	return players(ctx, s.pool)
}

func (s *Store) Outcomes(ctx context.Context) ([]tournament.Outcome, error) {
	return outcomes(ctx, s.pool)
}

// Snapshot reads both tables in one repeatable read transaction.
func (s *Store) Snapshot(ctx context.Context) (tournament.Snapshot, error) {
	var snapshot tournament.Snapshot

	options := pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}

	err := pgx.BeginTxFunc(ctx, s.pool, options, func(tx pgx.Tx) error {
		var err error
		if snapshot.Players, err = players(ctx, tx); err != nil {
			return err
		}

		snapshot.Outcomes, err = outcomes(ctx, tx)
		return err
	})

	return snapshot, err
}

func (s *Store) Player(ctx context.Context, id int64) (tournament.Player, error) {
	player := tournament.Player{ID: id}

	err := s.pool.QueryRow(ctx, `SELECT name FROM players WHERE id = $1`, id).Scan(&player.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return tournament.Player{}, tournament.ErrPlayerNotFound
	}
	if err != nil {
		return tournament.Player{}, fmt.Errorf("query player %d: %w", id, err)
	}

	return player, nil
}

func (s *Store) AddPlayer(ctx context.Context, name string) (tournament.Player, error) {
	player := tournament.Player{Name: name}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO players (name) VALUES ($1) RETURNING id`, name,
	).Scan(&player.ID)
	if err != nil {
		return tournament.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return player, nil
}

func (s *Store) AddOutcome(ctx context.Context, outcome tournament.Outcome) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO outcomes (id, winner, loser) VALUES ($1::uuid, $2, $3)`,
		outcome.ID.String(), outcome.Winner, outcome.Loser,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return tournament.ErrPlayerNotFound
	}
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}

	return nil
}

func (s *Store) DeletePlayers(ctx context.Context) error {
	// Outcomes go with their players through ON DELETE CASCADE.
	if _, err := s.pool.Exec(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	return nil
}

func (s *Store) DeleteOutcomes(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM outcomes`); err != nil {
		return fmt.Errorf("delete outcomes: %w", err)
	}

	return nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func players(ctx context.Context, q querier) ([]tournament.Player, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tournament.Player, error) {
		var player tournament.Player
		err := row.Scan(&player.ID, &player.Name)
		return player, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan players: %w", err)
	}

	return list, nil
}

func outcomes(ctx context.Context, q querier) ([]tournament.Outcome, error) {
	rows, err := q.Query(ctx, `SELECT id::text, winner, loser FROM outcomes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tournament.Outcome, error) {
		var (
			outcome tournament.Outcome
			id      string
		)
		err := row.Scan(&id, &outcome.Winner, &outcome.Loser)
		if err != nil {
			return outcome, err
		}

		outcome.ID, err = uuid.Parse(id)
		return outcome, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan outcomes: %w", err)
	}

	return list, nil
}
