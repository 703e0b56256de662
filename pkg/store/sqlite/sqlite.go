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

// Package sqlite implements a tournament.Store on an embedded SQLite
// database file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/tournament"
)

//go:embed schema.sql
var schemaSQL string

var _ tournament.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and applies the schema.
// Opening an existing database is safe and keeps its contents.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer, and the pragmas below are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logrus.WithField("path", path).Debug("Opened sqlite store")
	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) Players(ctx context.Context) ([]tournament.Player, error) {
	return players(ctx, s.db)
}

func (s *Store) Outcomes(ctx context.Context) ([]tournament.Outcome, error) {
	return outcomes(ctx, s.db)
}

func (s *Store) Snapshot(ctx context.Context) (tournament.Snapshot, error) {
	var snapshot tournament.Snapshot

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return snapshot, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	if snapshot.Players, err = players(ctx, tx); err != nil {
		return snapshot, err
	}

	if snapshot.Outcomes, err = outcomes(ctx, tx); err != nil {
		return snapshot, err
	}

	return snapshot, tx.Commit()
}

func (s *Store) Player(ctx context.Context, id int64) (tournament.Player, error) {
	player := tournament.Player{ID: id}

	err := s.db.QueryRowContext(ctx, "SELECT name FROM players WHERE id = ?", id).Scan(&player.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.Player{}, tournament.ErrPlayerNotFound
	}
	if err != nil {
		return tournament.Player{}, fmt.Errorf("query player %d: %w", id, err)
	}

	return player, nil
}

func (s *Store) AddPlayer(ctx context.Context, name string) (tournament.Player, error) {
	result, err := s.db.ExecContext(ctx, "INSERT INTO players (name) VALUES (?)", name)
	if err != nil {
		return tournament.Player{}, fmt.Errorf("insert player: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return tournament.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return tournament.Player{ID: id, Name: name}, nil
}

func (s *Store) AddOutcome(ctx context.Context, outcome tournament.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO outcomes (id, winner, loser) VALUES (?, ?, ?)",
		outcome.ID.String(), outcome.Winner, outcome.Loser,
	)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return tournament.ErrPlayerNotFound
	}
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}

	return nil
}

func (s *Store) DeletePlayers(ctx context.Context) error {
	// Outcomes go with their players through ON DELETE CASCADE.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM players"); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	return nil
}

func (s *Store) DeleteOutcomes(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM outcomes"); err != nil {
		return fmt.Errorf("delete outcomes: %w", err)
	}

	return nil
}

func (s *Store) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}

	return count, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func players(ctx context.Context, q querier) ([]tournament.Player, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name FROM players ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var list []tournament.Player
	for rows.Next() {
		var player tournament.Player
		if err := rows.Scan(&player.ID, &player.Name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		list = append(list, player)
	}

	return list, rows.Err()
}

func outcomes(ctx context.Context, q querier) ([]tournament.Outcome, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, winner, loser FROM outcomes ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var list []tournament.Outcome
	for rows.Next() {
		var (
			outcome tournament.Outcome
			id      string
		)
		if err := rows.Scan(&id, &outcome.Winner, &outcome.Loser); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		if outcome.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		list = append(list, outcome)
	}

	return list, rows.Err()
}
