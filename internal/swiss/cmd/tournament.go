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

package cmd

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/internal/util"
	"laptudirm.com/x/swiss/pkg/common"
	"laptudirm.com/x/swiss/pkg/config"
	"laptudirm.com/x/swiss/pkg/store"
	"laptudirm.com/x/swiss/pkg/tournament"
)

type configKey struct{}

func withConfig(ctx context.Context, config config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, config)
}

// loadConfig reads the config file named by --config and applies the
// --store and --dsn flags on top of it. Validation happens once, after the
// flags, since they may fill in what the other layers left out.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	// Only the default location is seeded, an explicit --config is read as is.
	if path == common.ConfigFile {
		if err := config.Seed(path); err != nil {
			logrus.WithError(err).Debug("Could not write the default config file")
		}
	}

	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, err
	}

	if driver, _ := cmd.Flags().GetString("store"); driver != "" {
		cfg.Store.Driver = driver
	}

	if dsn, _ := cmd.Flags().GetString("dsn"); dsn != "" {
		cfg.SetDSN(dsn)
	}

	return cfg, cfg.Validate()
}

// withTournament opens the configured store and runs fn on a tournament
// kept in it. The spinner is shown while fn runs, so fn should not print.
func withTournament(cmd *cobra.Command, fn func(context.Context, *tournament.Tournament) error) error {
	ctx := cmd.Context()

	cfg, ok := ctx.Value(configKey{}).(config.Config)
	if !ok {
		return errors.New("swiss: configuration not loaded")
	}

	logrus.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"store":   cfg.Store.Driver,
	}).Debug("Opening tournament")

	util.StartSpinner()
	defer util.PauseSpinner()

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer db.Close()

	tour, err := tournament.NewTournament(db, tournament.Config{
		Scheduler: cfg.Scheduler,
	})
	if err != nil {
		return err
	}

	return fn(ctx, tour)
}
