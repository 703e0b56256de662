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
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/swiss/pkg/tournament"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:   "register name",
		Short: "Register a new player in the tournament",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`register adds a player with the given name to the
			tournament and prints the id the player was given. The id
			is used to report the player's matches.

			Any markup in the name is removed and runs of whitespace
			are collapsed into a single space. Names don't need to be
			unique, but they can't be empty.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var player tournament.Player
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) (err error) {
				player, err = tour.RegisterPlayer(ctx, strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered player %s\n", player)
			return nil
		},
	}
}

func Count() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of registered players",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			var count int
			err := withTournament(cmd, func(ctx context.Context, tour *tournament.Tournament) (err error) {
				count, err = tour.CountPlayers(ctx)
				return err
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}
}
