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

// Package store opens the tournament.Store backend named by a config.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/swiss/pkg/common"
	"laptudirm.com/x/swiss/pkg/config"
	"laptudirm.com/x/swiss/pkg/store/memory"
	"laptudirm.com/x/swiss/pkg/store/postgres"
	"laptudirm.com/x/swiss/pkg/store/redis"
	"laptudirm.com/x/swiss/pkg/store/sqlite"
	"laptudirm.com/x/swiss/pkg/tournament"
)

// Open connects to the backend selected by options.Driver.
func Open(ctx context.Context, options config.StoreConfig) (tournament.Store, error) {
	var (
		store tournament.Store
		err   error
	)

	switch options.Driver {
	case config.DriverSQLite:
		if err := common.TryMkdir(filepath.Dir(options.SQLite.Path)); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		store, err = openSQLite(options.SQLite.Path)

	case config.DriverPostgres:
		store, err = openPostgres(ctx, options.Postgres.DSN)

	case config.DriverRedis:
		store, err = openRedis(ctx, redis.Options{
			Addr:   options.Redis.Addr,
			DB:     options.Redis.DB,
			Prefix: options.Redis.Prefix,
		})

	case config.DriverMemory:
		store = memory.New()

	default:
		return nil, fmt.Errorf("open store: unknown driver %q", options.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", options.Driver, err)
	}

	logrus.WithField("driver", options.Driver).Debug("Opened tournament store")
	return store, nil
}

// The wrappers below keep a failed open from producing a non-nil
// interface around a nil pointer.

func openSQLite(path string) (tournament.Store, error) {
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openPostgres(ctx context.Context, dsn string) (tournament.Store, error) {
	s, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openRedis(ctx context.Context, options redis.Options) (tournament.Store, error) {
	s, err := redis.Open(ctx, options)
	if err != nil {
		return nil, err
	}
	return s, nil
}
